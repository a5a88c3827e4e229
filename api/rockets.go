package api

import (
	"net/http"

	"github.com/Domenick1991/rocketbooking/internal/service/rockets"
	"github.com/gin-gonic/gin"
)

type RocketHandler struct {
	service rockets.RocketUseCase
}

func NewRocketHandler(service rockets.RocketUseCase) *RocketHandler {
	return &RocketHandler{service: service}
}

func (h *RocketHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *RocketHandler) list(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *RocketHandler) create(c *gin.Context) {
	var input rockets.CreateRocketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rocket, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rocket)
}

func (h *RocketHandler) get(c *gin.Context) {
	rocket, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rocket)
}

func (h *RocketHandler) update(c *gin.Context) {
	var input rockets.UpdateRocketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rocket, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rocket)
}

func (h *RocketHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
