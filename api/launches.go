package api

import (
	"net/http"

	"github.com/Domenick1991/rocketbooking/internal/service/launches"
	"github.com/gin-gonic/gin"
)

type LaunchHandler struct {
	service launches.LaunchUseCase
}

func NewLaunchHandler(service launches.LaunchUseCase) *LaunchHandler {
	return &LaunchHandler{service: service}
}

func (h *LaunchHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
	router.GET("/:id/availability", h.availability)
}

func (h *LaunchHandler) list(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *LaunchHandler) create(c *gin.Context) {
	var input launches.CreateLaunchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	launch, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, launch)
}

func (h *LaunchHandler) get(c *gin.Context) {
	launch, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, launch)
}

func (h *LaunchHandler) update(c *gin.Context) {
	var input launches.UpdateLaunchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	launch, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, launch)
}

func (h *LaunchHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LaunchHandler) availability(c *gin.Context) {
	availability, err := h.service.Availability(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}
