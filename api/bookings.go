package api

import (
	"net/http"

	"github.com/Domenick1991/rocketbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	LaunchID      string `json:"launch_id"`
	CustomerEmail string `json:"customer_email"`
	Seats         int    `json:"seats"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	details, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		LaunchID:      req.LaunchID,
		CustomerEmail: req.CustomerEmail,
		Seats:         req.Seats,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, details)
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) list(c *gin.Context) {
	ctx := c.Request.Context()
	if launchID := c.Query("launch_id"); launchID != "" {
		bookings, err := h.service.ListByLaunch(ctx, launchID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}
	if email := c.Query("email"); email != "" {
		bookings, err := h.service.ListByCustomerEmail(ctx, email)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "launch_id or email query parameter is required"})
}

func (h *BookingHandler) update(c *gin.Context) {
	var input booking.UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateBooking(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	cancelled, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}
