package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/iowasensors/internal/server/http/dto"
)

// SensorHandler adds and registers sensors for the signed-in account.
type SensorHandler struct {
	facade SensorFacade
}

func NewSensorHandler(facade SensorFacade) *SensorHandler {
	return &SensorHandler{facade: facade}
}

// Add handles POST /api/sensors/add.
func (h *SensorHandler) Add(c *gin.Context) {
	var req dto.AddSensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed sensor payload")
		return
	}
	msg, err := h.facade.AddSensor(c.Request.Context(), req.Addition())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}

// Register handles POST /api/sensors/register.
func (h *SensorHandler) Register(c *gin.Context) {
	var req dto.RegisterSensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed sensor payload")
		return
	}
	msg, err := h.facade.RegisterSensor(c.Request.Context(), req.Registration())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: msg})
}
