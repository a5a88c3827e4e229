package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/rocketbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps the domain error taxonomy onto HTTP: field validation
// and business-rule rejections are 400, unresolved identifiers on direct
// reads are 404, consistency failures are a generic 500.
func writeError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	var bErr *domain.BusinessRuleError
	var cErr *domain.ConsistencyError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": vErr.Fields})
	case errors.As(err, &bErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": bErr.Message})
	case errors.As(err, &cErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	offset, _ = strconv.Atoi(c.Query("offset"))
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
