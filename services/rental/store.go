package rental

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"voyago/models"
)

// SessionStore persists in-progress booking sessions across requests and
// page reloads. NextPriceSeq hands out strictly increasing pricing sequence
// numbers per session; concurrent callers never receive the same value.
type SessionStore interface {
	Save(ctx context.Context, session *models.BookingSession) error
	Get(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Delete(ctx context.Context, sessionID string) error
	NextPriceSeq(ctx context.Context, sessionID string) (uint64, error)
}

// persistedSession is the subset of BookingSession that survives a reload.
// Loading/error flags are deliberately absent: they are UI-transient and
// always start over from their zero values.
type persistedSession struct {
	SessionID string `json:"session_id"`

	Vehicle  *models.Vehicle `json:"vehicle,omitempty"`
	Currency string          `json:"currency,omitempty"`

	PickupDate  string `json:"pickup_date,omitempty"`
	DropoffDate string `json:"dropoff_date,omitempty"`
	PickupTime  string `json:"pickup_time,omitempty"`
	DropoffTime string `json:"dropoff_time,omitempty"`

	PickupLocation  string `json:"pickup_location,omitempty"`
	DropoffLocation string `json:"dropoff_location,omitempty"`

	Duration models.RentalDuration `json:"duration"`

	Driver            models.Driver             `json:"driver"`
	AdditionalDrivers []models.AdditionalDriver `json:"additional_drivers,omitempty"`

	SelectedOptions        []models.SelectedOption `json:"selected_options,omitempty"`
	BasicInsurance         bool                    `json:"basic_insurance"`
	ComprehensiveInsurance bool                    `json:"comprehensive_insurance"`

	SpecialRequirements string `json:"special_requirements,omitempty"`

	Pricing    *models.PricingBreakdown `json:"pricing,omitempty"`
	TotalPrice *float64                 `json:"total_price,omitempty"`

	CurrentStep string `json:"current_step"`
	PriceSeq    uint64 `json:"price_seq"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// encodeSession serializes the persistable subset of a session.
func encodeSession(s *models.BookingSession) ([]byte, error) {
	p := persistedSession{
		SessionID:              s.SessionID,
		Vehicle:                s.Vehicle,
		Currency:               s.Currency,
		PickupDate:             s.PickupDate,
		DropoffDate:            s.DropoffDate,
		PickupTime:             s.PickupTime,
		DropoffTime:            s.DropoffTime,
		PickupLocation:         s.PickupLocation,
		DropoffLocation:        s.DropoffLocation,
		Duration:               s.Duration,
		Driver:                 s.Driver,
		AdditionalDrivers:      s.AdditionalDrivers,
		SelectedOptions:        s.SelectedOptions,
		BasicInsurance:         s.BasicInsurance,
		ComprehensiveInsurance: s.ComprehensiveInsurance,
		SpecialRequirements:    s.SpecialRequirements,
		Pricing:                s.Pricing,
		TotalPrice:             s.TotalPrice,
		CurrentStep:            s.CurrentStep,
		PriceSeq:               s.PriceSeq,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
	return json.Marshal(p)
}

// decodeSession restores a session from its persisted form. A current step
// that is no longer a valid wizard step resets to the first step instead of
// being trusted; transient flags come back zeroed.
func decodeSession(data []byte) (*models.BookingSession, error) {
	var p persistedSession
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse persisted session: %w", err)
	}

	step := p.CurrentStep
	if !models.IsValidStep(step) {
		step = models.StepCar
	}

	return &models.BookingSession{
		SessionID:              p.SessionID,
		Vehicle:                p.Vehicle,
		Currency:               p.Currency,
		PickupDate:             p.PickupDate,
		DropoffDate:            p.DropoffDate,
		PickupTime:             p.PickupTime,
		DropoffTime:            p.DropoffTime,
		PickupLocation:         p.PickupLocation,
		DropoffLocation:        p.DropoffLocation,
		Duration:               p.Duration,
		Driver:                 p.Driver,
		AdditionalDrivers:      p.AdditionalDrivers,
		SelectedOptions:        p.SelectedOptions,
		BasicInsurance:         p.BasicInsurance,
		ComprehensiveInsurance: p.ComprehensiveInsurance,
		SpecialRequirements:    p.SpecialRequirements,
		Pricing:                p.Pricing,
		TotalPrice:             p.TotalPrice,
		CurrentStep:            step,
		PriceSeq:               p.PriceSeq,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}, nil
}

// RedisSessionStore keeps sessions in Redis under their session ID with a
// sliding TTL, the same way the generic cache clients are used elsewhere.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

const (
	sessionKeyPrefix  = "rental:session:"
	priceSeqKeySuffix = ":priceseq"
)

// NewRedisSessionStore builds a store over the given client. A zero TTL
// defaults to 24 hours.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (st *RedisSessionStore) Save(ctx context.Context, session *models.BookingSession) error {
	data, err := encodeSession(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := st.Client.Set(ctx, sessionKeyPrefix+session.SessionID, data, st.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (st *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, err := st.Client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, NewRentalError(ErrCodeSessionNotFound, "booking session not found or expired")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking session: %w", err)
	}
	session, err := decodeSession([]byte(data))
	if err != nil {
		// Unrecoverable persisted state is treated as expired rather than
		// surfaced as a server fault.
		return nil, NewRentalError(ErrCodeSessionNotFound, "booking session could not be restored")
	}
	return session, nil
}

func (st *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	keys := []string{sessionKeyPrefix + sessionID, sessionKeyPrefix + sessionID + priceSeqKeySuffix}
	if err := st.Client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	return nil
}

// NextPriceSeq claims the next pricing sequence number for a session via a
// Redis counter, so the allocation is atomic even across server instances.
func (st *RedisSessionStore) NextPriceSeq(ctx context.Context, sessionID string) (uint64, error) {
	key := sessionKeyPrefix + sessionID + priceSeqKeySuffix
	seq, err := st.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to claim pricing sequence: %w", err)
	}
	st.Client.Expire(ctx, key, st.TTL)
	return uint64(seq), nil
}
