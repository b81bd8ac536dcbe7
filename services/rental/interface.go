package rental

import (
	"context"
	"sync"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"voyago/database/repository"
	"voyago/models"
	"voyago/services/tasks"
)

// DatesInput carries the dates-step form. The four period fields are stored
// verbatim; no cross-field defaulting happens.
type DatesInput struct {
	PickupDate  string `json:"pickup_date"`
	DropoffDate string `json:"dropoff_date"`
	PickupTime  string `json:"pickup_time"`
	DropoffTime string `json:"dropoff_time"`

	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
}

// OptionSelection is the user's choice of one add-on; pricing terms are
// resolved against the vehicle snapshot by the service.
type OptionSelection struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// DriverInput merges into the session's driver details. Empty primary fields
// leave existing values untouched; a non-nil AdditionalDrivers replaces the
// list wholesale.
type DriverInput struct {
	Name    string `json:"name"`
	License string `json:"license"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`

	AdditionalDrivers *[]models.AdditionalDriver `json:"additional_drivers,omitempty"`

	SpecialRequirements string `json:"special_requirements"`
}

// SessionService manages the stateful car-rental booking wizard. Mutators
// are total: validation problems land in the session's error slots rather
// than failing the call. Mutators that change the rental period, options or
// insurance issue an explicit pricing recalculation task as a follow-up.
type SessionService interface {
	StartSession(ctx context.Context, vehicleID string) (*models.BookingSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error)

	SetVehicle(ctx context.Context, sessionID, vehicleID string) (*models.BookingSession, error)
	SetRentalDates(ctx context.Context, sessionID string, input DatesInput) (*models.BookingSession, error)
	SetSelectedOptions(ctx context.Context, sessionID string, selections []OptionSelection) (*models.BookingSession, error)
	SetInsurance(ctx context.Context, sessionID string, basic, comprehensive bool) (*models.BookingSession, error)
	SetDriverInfo(ctx context.Context, sessionID string, input DriverInput) (*models.BookingSession, error)

	NextStep(ctx context.Context, sessionID string) (*models.BookingSession, error)
	PreviousStep(ctx context.Context, sessionID string) (*models.BookingSession, error)
	ResetSession(ctx context.Context, sessionID string) (*models.BookingSession, error)
	CancelSession(ctx context.Context, sessionID string) error

	RecalculatePricing(ctx context.Context, sessionID string) error
	ConfirmBooking(ctx context.Context, sessionID string) (*models.Booking, error)

	Locations() []models.RentalLocation
}

// DefaultSessionService implements SessionService.
type DefaultSessionService struct {
	Store    SessionStore
	Backend  BackendClient
	Vehicles repository.VehicleRepository
	Bookings repository.BookingRepository
	Logger   *zap.Logger

	// dispatch issues a pricing recalculation task after a mutator has
	// committed its state change. The default enqueues onto the task queue;
	// tests substitute a synchronous or inert implementation.
	dispatch func(sessionID string)

	// priceMu serializes pricing sequence claims and commits per session.
	priceMu sync.Map // sessionID -> *sync.Mutex
}

func (svc *DefaultSessionService) priceLock(sessionID string) *sync.Mutex {
	mu, _ := svc.priceMu.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// NewDefaultSessionService wires a session service that dispatches pricing
// recalculation through the task queue.
func NewDefaultSessionService(store SessionStore, backend BackendClient,
	vehicles repository.VehicleRepository, bookings repository.BookingRepository,
	taskClient *asynq.Client, logger *zap.Logger) *DefaultSessionService {

	svc := &DefaultSessionService{
		Store:    store,
		Backend:  backend,
		Vehicles: vehicles,
		Bookings: bookings,
		Logger:   logger,
	}
	svc.dispatch = func(sessionID string) {
		task, err := tasks.NewPricingRecalculateTask(models.PricingTaskPayload{SessionID: sessionID})
		if err != nil {
			logger.Error("failed to build pricing recalculation task",
				zap.String("sessionID", sessionID), zap.Error(err))
			return
		}
		if _, err := taskClient.Enqueue(task); err != nil {
			logger.Error("failed to enqueue pricing recalculation",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}
	return svc
}
