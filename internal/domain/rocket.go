package domain

import "time"

type RangeCategory string

const (
	RangeSuborbital     RangeCategory = "SUBORBITAL"
	RangeLowEarthOrbit  RangeCategory = "LOW_EARTH_ORBIT"
	RangeLunar          RangeCategory = "LUNAR"
	RangeInterplanetary RangeCategory = "INTERPLANETARY"
)

func (r RangeCategory) Valid() bool {
	switch r {
	case RangeSuborbital, RangeLowEarthOrbit, RangeLunar, RangeInterplanetary:
		return true
	}
	return false
}

const (
	MinRocketCapacity = 1
	MaxRocketCapacity = 10
)

type Rocket struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Capacity  int           `json:"capacity"`
	Range     RangeCategory `json:"range"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
