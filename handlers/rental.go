package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyago/services/rental"
)

// RentalHandler exposes the booking wizard as a session API.
type RentalHandler struct {
	Service rental.SessionService
	Logger  *zap.Logger
}

// NewRentalHandler creates a RentalHandler.
func NewRentalHandler(service rental.SessionService, logger *zap.Logger) *RentalHandler {
	return &RentalHandler{Service: service, Logger: logger}
}

// statusForError maps rental error codes onto HTTP statuses.
func statusForError(err error) int {
	switch rental.ErrorCode(err) {
	case rental.ErrCodeSessionNotFound, rental.ErrCodeVehicleNotFound:
		return http.StatusNotFound
	case rental.ErrCodeValidation:
		return http.StatusBadRequest
	case rental.ErrCodeUnavailable:
		return http.StatusConflict
	case rental.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case rental.ErrCodeBackend:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *RentalHandler) respondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		h.Logger.Error("rental handler failure", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// StartSession creates a new booking session for a vehicle.
func (h *RentalHandler) StartSession(c *gin.Context) {
	var input struct {
		VehicleID string `json:"vehicle_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.StartSession(c.Request.Context(), input.VehicleID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GetSession returns the current session state.
func (h *RentalHandler) GetSession(c *gin.Context) {
	session, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SetVehicle snapshots the chosen vehicle onto an existing session.
func (h *RentalHandler) SetVehicle(c *gin.Context) {
	var input struct {
		VehicleID string `json:"vehicle_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.SetVehicle(c.Request.Context(), c.Param("sessionID"), input.VehicleID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SetDates stores the rental period and locations.
func (h *RentalHandler) SetDates(c *gin.Context) {
	var input rental.DatesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.SetRentalDates(c.Request.Context(), c.Param("sessionID"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SetOptions replaces the selected add-ons.
func (h *RentalHandler) SetOptions(c *gin.Context) {
	var input struct {
		Options []rental.OptionSelection `json:"options"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.SetSelectedOptions(c.Request.Context(), c.Param("sessionID"), input.Options)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SetInsurance sets both insurance flags.
func (h *RentalHandler) SetInsurance(c *gin.Context) {
	var input struct {
		Basic         bool `json:"basic"`
		Comprehensive bool `json:"comprehensive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.SetInsurance(c.Request.Context(), c.Param("sessionID"), input.Basic, input.Comprehensive)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SetDriver merges driver details into the session.
func (h *RentalHandler) SetDriver(c *gin.Context) {
	var input rental.DriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.SetDriverInfo(c.Request.Context(), c.Param("sessionID"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// NextStep advances the wizard; gate failures come back in the session's
// error slots, not as HTTP errors.
func (h *RentalHandler) NextStep(c *gin.Context) {
	session, err := h.Service.NextStep(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// PreviousStep moves the wizard back one step.
func (h *RentalHandler) PreviousStep(c *gin.Context) {
	session, err := h.Service.PreviousStep(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// ResetSession clears the session back to its initial empty state.
func (h *RentalHandler) ResetSession(c *gin.Context) {
	session, err := h.Service.ResetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// CancelSession discards the session entirely.
func (h *RentalHandler) CancelSession(c *gin.Context) {
	if err := h.Service.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// RecalculatePricing re-runs the pricing calculation synchronously and
// returns the refreshed session. Pricing failures keep the previous
// breakdown and are reported in the response next to it.
func (h *RentalHandler) RecalculatePricing(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var pricingErr string
	if err := h.Service.RecalculatePricing(c.Request.Context(), sessionID); err != nil {
		if code := rental.ErrorCode(err); code == "" || code == rental.ErrCodeSessionNotFound {
			h.respondError(c, err)
			return
		}
		// Recoverable pricing failure: the session keeps its last-known-good
		// breakdown and the failure is reported alongside it.
		pricingErr = err.Error()
	}
	session, err := h.Service.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "pricing_error": pricingErr})
}

// GetPricing returns the current pricing breakdown.
func (h *RentalHandler) GetPricing(c *gin.Context) {
	session, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pricing":       session.Pricing,
		"total_price":   session.TotalPrice,
		"pricing_error": session.PricingError,
	})
}

// ConfirmBooking submits the assembled booking to the backend.
func (h *RentalHandler) ConfirmBooking(c *gin.Context) {
	booking, err := h.Service.ConfirmBooking(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// GetLocations returns the predefined pickup/dropoff directory.
func (h *RentalHandler) GetLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"locations": h.Service.Locations()})
}
