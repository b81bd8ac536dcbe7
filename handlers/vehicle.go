package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyago/database/repository"
)

// VehicleHandler serves the vehicle catalog.
type VehicleHandler struct {
	Repo   repository.VehicleRepository
	Logger *zap.Logger
}

// NewVehicleHandler creates a VehicleHandler.
func NewVehicleHandler(repo repository.VehicleRepository, logger *zap.Logger) *VehicleHandler {
	return &VehicleHandler{Repo: repo, Logger: logger}
}

// GetVehicleByID returns one vehicle record with its rates, options,
// insurance price and hourly-rental policy.
func (h *VehicleHandler) GetVehicleByID(c *gin.Context) {
	vehicle, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// ListVehicles returns the catalog, optionally filtered by category.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.Repo.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.Logger.Error("failed to list vehicles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}
