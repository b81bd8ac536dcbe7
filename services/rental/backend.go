package rental

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"voyago/models"
)

// AvailabilityRequest identifies the vehicle and period to be priced.
type AvailabilityRequest struct {
	VehicleID   string `json:"vehicle_id"`
	PickupDate  string `json:"pickup_date"`
	DropoffDate string `json:"dropoff_date"`
	PickupTime  string `json:"pickup_time"`
	DropoffTime string `json:"dropoff_time"`
}

// AvailabilityResult is the backend's authoritative pricing answer. The base
// price already has the backend's discount tiers applied; it is never
// recomputed locally.
type AvailabilityResult struct {
	Available       bool    `json:"available"`
	RentalDays      int     `json:"rental_days"`
	BasePrice       float64 `json:"base_price"`
	WeeklyDiscount  float64 `json:"weekly_discount"`
	MonthlyDiscount float64 `json:"monthly_discount"`
	InsuranceTotal  float64 `json:"insurance_total"`
}

// BookingSubmission is the fully assembled payload handed to the backend at
// confirm time.
type BookingSubmission struct {
	VehicleID   string `json:"vehicle_id"`
	PickupDate  string `json:"pickup_date"`
	DropoffDate string `json:"dropoff_date"`
	PickupTime  string `json:"pickup_time"`
	DropoffTime string `json:"dropoff_time"`

	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`

	Driver            models.Driver             `json:"driver"`
	AdditionalDrivers []models.AdditionalDriver `json:"additional_drivers,omitempty"`

	SelectedOptions        []models.SelectedOption `json:"selected_options,omitempty"`
	BasicInsurance         bool                    `json:"basic_insurance"`
	ComprehensiveInsurance bool                    `json:"comprehensive_insurance"`

	SpecialRequirements string  `json:"special_requirements,omitempty"`
	TotalPrice          float64 `json:"total_price"`
	Currency            string  `json:"currency"`
}

// BackendClient talks to the remote booking backend, the authority for
// availability, base pricing and booking creation.
type BackendClient interface {
	CheckAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResult, error)
	SubmitBooking(ctx context.Context, req BookingSubmission) (string, error)
}

// HTTPBackendClient implements BackendClient over the backend's REST API.
type HTTPBackendClient struct {
	BaseURL string
	Client  *http.Client
	Logger  *zap.Logger
}

// NewHTTPBackendClient builds a client with the given base URL and per-call
// timeout.
func NewHTTPBackendClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPBackendClient {
	return &HTTPBackendClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

// CheckAvailability queries the backend for availability and authoritative
// pricing. Unavailability and timeouts are reported as typed RentalErrors so
// callers can keep the last-known-good breakdown.
func (c *HTTPBackendClient) CheckAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResult, error) {
	var result AvailabilityResult
	if err := c.post(ctx, "/api/rentals/availability", req, &result); err != nil {
		return nil, err
	}
	if !result.Available {
		return nil, NewRentalError(ErrCodeUnavailable, "vehicle is not available for the selected period")
	}
	return &result, nil
}

// SubmitBooking hands the final booking payload to the backend and returns
// the booking reference it issued.
func (c *HTTPBackendClient) SubmitBooking(ctx context.Context, req BookingSubmission) (string, error) {
	var result struct {
		BookingID string `json:"booking_id"`
	}
	if err := c.post(ctx, "/api/rentals/bookings", req, &result); err != nil {
		return "", err
	}
	if result.BookingID == "" {
		return "", NewRentalError(ErrCodeBackend, "backend did not return a booking reference")
	}
	return result.BookingID, nil
}

func (c *HTTPBackendClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return NewRentalError(ErrCodeBackend, fmt.Sprintf("failed to encode request: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return NewRentalError(ErrCodeBackend, fmt.Sprintf("failed to build request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			c.Logger.Warn("booking backend call timed out", zap.String("path", path))
			return NewRentalError(ErrCodeTimeout, "booking backend did not respond in time")
		}
		c.Logger.Warn("booking backend call failed", zap.String("path", path), zap.Error(err))
		return NewRentalError(ErrCodeBackend, fmt.Sprintf("booking backend request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.Logger.Warn("booking backend returned non-OK status",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return NewRentalError(ErrCodeBackend, fmt.Sprintf("booking backend returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewRentalError(ErrCodeBackend, fmt.Sprintf("failed to decode backend response: %v", err))
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
