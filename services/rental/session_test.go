package rental

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"voyago/models"
)

// memoryStore is an in-memory SessionStore that round-trips sessions through
// the persistence codec, so tests exercise the same persisted-subset
// semantics as the Redis store.
type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
	seqs map[string]uint64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte), seqs: make(map[string]uint64)}
}

func (m *memoryStore) Save(_ context.Context, session *models.BookingSession) error {
	data, err := encodeSession(session)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[session.SessionID] = data
	return nil
}

func (m *memoryStore) Get(_ context.Context, sessionID string) (*models.BookingSession, error) {
	m.mu.Lock()
	data, ok := m.data[sessionID]
	m.mu.Unlock()
	if !ok {
		return nil, NewRentalError(ErrCodeSessionNotFound, "booking session not found or expired")
	}
	return decodeSession(data)
}

func (m *memoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	delete(m.seqs, sessionID)
	return nil
}

func (m *memoryStore) NextPriceSeq(_ context.Context, sessionID string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seqs[sessionID]++
	return m.seqs[sessionID], nil
}

// stubBackend is a test double for BackendClient.
type stubBackend struct {
	availFn  func(req AvailabilityRequest) (*AvailabilityResult, error)
	submitFn func(req BookingSubmission) (string, error)
}

func (b *stubBackend) CheckAvailability(_ context.Context, req AvailabilityRequest) (*AvailabilityResult, error) {
	if b.availFn == nil {
		return &AvailabilityResult{Available: true, BasePrice: 100}, nil
	}
	return b.availFn(req)
}

func (b *stubBackend) SubmitBooking(_ context.Context, req BookingSubmission) (string, error) {
	if b.submitFn == nil {
		return "BK-0001", nil
	}
	return b.submitFn(req)
}

// stubVehicleRepo serves vehicles from a fixed map.
type stubVehicleRepo struct {
	vehicles map[string]*models.Vehicle
}

func (r *stubVehicleRepo) GetByID(_ context.Context, id string) (*models.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("failed to fetch vehicle with id %s", id)
	}
	copied := *v
	return &copied, nil
}

func (r *stubVehicleRepo) List(_ context.Context, _ string) ([]models.Vehicle, error) {
	return nil, nil
}

func testVehicle() *models.Vehicle {
	return &models.Vehicle{
		ID:              "veh-1",
		Name:            "Compact Hatchback",
		Category:        "economy",
		PricePerDay:     100,
		PricePerHour:    15,
		Currency:        "EUR",
		WeeklyDiscount:  10,
		InsurancePerDay: 12,
		HourlyPolicy:    models.HourlyPolicy{Allowed: false},
		Options: []models.RentalOption{
			{ID: "child-seat", Name: "Child seat", Price: 10, PriceType: models.PriceTypeFixed, MaxQuantity: 2},
			{ID: "gps", Name: "GPS", Price: 10, PriceType: models.PriceTypeDaily, MaxQuantity: 1},
		},
	}
}

func newTestService(backend *stubBackend) (*DefaultSessionService, *memoryStore) {
	store := newMemoryStore()
	second := testVehicle()
	second.ID = "veh-2"
	second.Name = "Mid-size Sedan"
	svc := &DefaultSessionService{
		Store:    store,
		Backend:  backend,
		Vehicles: &stubVehicleRepo{vehicles: map[string]*models.Vehicle{"veh-1": testVehicle(), "veh-2": second}},
		Logger:   zap.NewNop(),
	}
	// Tests drive pricing recalculation explicitly.
	svc.dispatch = func(string) {}
	return svc, store
}

func mustStart(t *testing.T, svc *DefaultSessionService) *models.BookingSession {
	t.Helper()
	session, err := svc.StartSession(context.Background(), "veh-1")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	return session
}

func TestStartSession_SnapshotsVehicle(t *testing.T) {
	svc, _ := newTestService(&stubBackend{})
	session := mustStart(t, svc)

	if session.Vehicle == nil || session.Vehicle.ID != "veh-1" {
		t.Fatalf("vehicle not snapshotted: %+v", session.Vehicle)
	}
	if session.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", session.Currency)
	}
	if session.CurrentStep != models.StepCar {
		t.Errorf("CurrentStep = %q, want car", session.CurrentStep)
	}
}

func TestStartSession_UnknownVehicle(t *testing.T) {
	svc, _ := newTestService(&stubBackend{})
	_, err := svc.StartSession(context.Background(), "nope")
	if ErrorCode(err) != ErrCodeVehicleNotFound {
		t.Errorf("expected vehicleNotFound, got %v", err)
	}
}

func TestSetVehicle_AfterReset(t *testing.T) {
	svc, _ := newTestService(&stubBackend{})
	ctx := context.Background()
	session := mustStart(t, svc)

	if _, err := svc.ResetSession(ctx, session.SessionID); err != nil {
		t.Fatalf("ResetSession failed: %v", err)
	}

	s, err := svc.SetVehicle(ctx, session.SessionID, "veh-1")
	if err != nil {
		t.Fatalf("SetVehicle failed: %v", err)
	}
	if s.Vehicle == nil || s.Vehicle.ID != "veh-1" {
		t.Fatalf("vehicle not snapshotted: %+v", s.Vehicle)
	}
	if s.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", s.Currency)
	}

	// The car gate must pass again.
	s, err = svc.NextStep(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("NextStep failed: %v", err)
	}
	if s.CurrentStep != models.StepDates {
		t.Errorf("CurrentStep = %q, want dates", s.CurrentStep)
	}
}

func TestSetVehicle_UnknownVehicle(t *testing.T) {
	svc, _ := newTestService(&stubBackend{})
	session := mustStart(t, svc)

	_, err := svc.SetVehicle(context.Background(), session.SessionID, "nope")
	if ErrorCode(err) != ErrCodeVehicleNotFound {
		t.Errorf("expected vehicleNotFound, got %v", err)
	}
}

func TestSetVehicle_SwitchDropsSelectionsAndPricing(t *testing.T) {
	svc, _ := newTestService(&stubBackend{})
	ctx := context.Background()
	sessionID := setupPricedSession(t, svc)

	if err := svc.RecalculatePricing(ctx, sessionID); err != nil {
		t.Fatalf("RecalculatePricing failed: %v", err)
	}
	if _, err := svc.SetSelectedOptions(ctx, sessionID, []OptionSelection{{ID: "gps", Quantity: 1}}); err != nil {
		t.Fatalf("SetSelectedOptions failed: %v", err)
	}

	s, err := svc.SetVehicle(ctx, sessionID, "veh-2")
	if err != nil {
		t.Fatalf("SetVehicle failed: %v", err)
	}
	if len(s.SelectedOptions) != 0 {
		t.Errorf("options from the previous vehicle must be dropped: %+v", s.SelectedOptions)
	}
	if s.Pricing != nil || s.TotalPrice != nil {
		t.Error("pricing from the previous vehicle must be dropped")
	}
	if s.PickupDate != "2025-07-01" {
		t.Error("rental period must survive a vehicle switch")
	}
}

func TestSetSelectedOptions_ClampAndRemove(t *testing.T) {
	svc, _ := newTestService(&stubBackend{})
	session := mustStart(t, svc)
	ctx := context.Background()

	updated, err := svc.SetSelectedOptions(ctx, session.SessionID, []OptionSelection{
		{ID: "child-seat", Quantity: 5}, // above max 2
		{ID: "gps", Quantity: 0},        // removed
		{ID: "unknown", Quantity: 1},    // not on the vehicle
	})
	if err != nil {
		t.Fatalf("SetSelectedOptions failed: %v", err)
	}

	if len(updated.SelectedOptions) != 1 {
		t.Fatalf("expected 1 option, got %d: %+v", len(updated.SelectedOptions), updated.SelectedOptions)
	}
	if updated.SelectedOptions[0].ID != "child-seat" || updated.SelectedOptions[0].Quantity != 2 {
		t.Errorf("expected child-seat clamped to 2, got %+v", updated.SelectedOptions[0])
	}
}

func TestSetRentalDates_StoresFieldsVerbatim(t *testing.T) {
	svc, _ := newTestService(&stubBackend{})
	session := mustStart(t, svc)
	ctx := context.Background()

	updated, err := svc.SetRentalDates(ctx, session.SessionID, DatesInput{
		PickupDate: "2025-06-01", DropoffDate: "2025-06-04",
		PickupTime: "10:00", DropoffTime: "10:00",
		PickupLocation: "ams-schiphol", DropoffLocation: "ams-central",
	})
	if err != nil {
		t.Fatalf("SetRentalDates failed: %v", err)
	}

	if updated.Duration.RentalType != models.RentalTypeDaily || updated.Duration.Days != 3 {
		t.Errorf("derived duration wrong: %+v", updated.Duration)
	}
	if updated.PickupTime != "10:00" || updated.DropoffTime != "10:00" {
		t.Error("period fields not stored verbatim")
	}
}

func TestStepNavigation_Clamping(t *testing.T) {
	svc, _ := newTestService(&stubBackend{})
	session := mustStart(t, svc)
	ctx := context.Background()

	// previousStep from "car" is a no-op.
	s, err := svc.PreviousStep(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("PreviousStep failed: %v", err)
	}
	if s.CurrentStep != models.StepCar {
		t.Errorf("CurrentStep = %q, want car", s.CurrentStep)
	}
}

func TestNextStep_HourlyDisallowedBlocksDates(t *testing.T) {
	svc, _ := newTestService(&stubBackend{})
	session := mustStart(t, svc)
	ctx := context.Background()

	if _, err := svc.NextStep(ctx, session.SessionID); err != nil { // car -> dates
		t.Fatalf("NextStep failed: %v", err)
	}
	if _, err := svc.SetRentalDates(ctx, session.SessionID, DatesInput{
		PickupDate: "2025-06-01", DropoffDate: "2025-06-01",
		PickupTime: "10:00", DropoffTime: "14:00",
		PickupLocation: "a", DropoffLocation: "b",
	}); err != nil {
		t.Fatalf("SetRentalDates failed: %v", err)
	}

	s, err := svc.NextStep(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("NextStep failed: %v", err)
	}
	if s.CurrentStep != models.StepDates {
		t.Errorf("CurrentStep = %q, want dates (gate blocked)", s.CurrentStep)
	}
	if s.Errors["dates"] == "" {
		t.Error("expected dates error slot to be set")
	}
}

func TestResetSession_Idempotent(t *testing.T) {
	svc, _ := newTestService(&stubBackend{})
	session := mustStart(t, svc)
	ctx := context.Background()

	if _, err := svc.SetRentalDates(ctx, session.SessionID, DatesInput{
		PickupDate: "2025-06-01", DropoffDate: "2025-06-04",
		PickupTime: "10:00", DropoffTime: "10:00",
		PickupLocation: "a", DropoffLocation: "b",
	}); err != nil {
		t.Fatalf("SetRentalDates failed: %v", err)
	}

	first, err := svc.ResetSession(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("ResetSession failed: %v", err)
	}
	second, err := svc.ResetSession(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("second ResetSession failed: %v", err)
	}

	normalize := func(s *models.BookingSession) models.BookingSession {
		c := *s
		c.CreatedAt = time.Time{}
		c.UpdatedAt = time.Time{}
		return c
	}
	if !reflect.DeepEqual(normalize(first), normalize(second)) {
		t.Errorf("reset is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if first.Vehicle != nil || first.CurrentStep != models.StepCar {
		t.Errorf("reset did not restore the initial state: %+v", first)
	}
}

func setupPricedSession(t *testing.T, svc *DefaultSessionService) string {
	t.Helper()
	ctx := context.Background()
	session := mustStart(t, svc)
	if _, err := svc.SetRentalDates(ctx, session.SessionID, DatesInput{
		PickupDate: "2025-07-01", DropoffDate: "2025-07-08",
		PickupTime: "10:00", DropoffTime: "10:00",
		PickupLocation: "ams-schiphol", DropoffLocation: "ams-central",
	}); err != nil {
		t.Fatalf("SetRentalDates failed: %v", err)
	}
	return session.SessionID
}

func TestRecalculatePricing_NoOpBeforePeriodComplete(t *testing.T) {
	called := false
	backend := &stubBackend{availFn: func(AvailabilityRequest) (*AvailabilityResult, error) {
		called = true
		return &AvailabilityResult{Available: true, BasePrice: 1}, nil
	}}
	svc, _ := newTestService(backend)
	session := mustStart(t, svc)

	if err := svc.RecalculatePricing(context.Background(), session.SessionID); err != nil {
		t.Fatalf("RecalculatePricing failed: %v", err)
	}
	if called {
		t.Error("backend must not be called before the period is complete")
	}
	s, _ := svc.GetSession(context.Background(), session.SessionID)
	if s.Pricing != nil {
		t.Error("pricing must stay nil before the period is complete")
	}
}

func TestRecalculatePricing_FailureKeepsLastKnownGood(t *testing.T) {
	var fail bool
	backend := &stubBackend{availFn: func(AvailabilityRequest) (*AvailabilityResult, error) {
		if fail {
			return nil, NewRentalError(ErrCodeUnavailable, "vehicle is not available for the selected period")
		}
		return &AvailabilityResult{Available: true, BasePrice: 700, WeeklyDiscount: 70, InsuranceTotal: 84}, nil
	}}
	svc, _ := newTestService(backend)
	ctx := context.Background()
	sessionID := setupPricedSession(t, svc)

	if err := svc.RecalculatePricing(ctx, sessionID); err != nil {
		t.Fatalf("RecalculatePricing failed: %v", err)
	}

	fail = true
	err := svc.RecalculatePricing(ctx, sessionID)
	if ErrorCode(err) != ErrCodeUnavailable {
		t.Fatalf("expected unavailable error, got %v", err)
	}

	s, _ := svc.GetSession(ctx, sessionID)
	if s.Pricing == nil || s.Pricing.BasePrice != 700 {
		t.Errorf("last-known-good breakdown was lost: %+v", s.Pricing)
	}
}

func TestRecalculatePricing_StaleResponseDiscarded(t *testing.T) {
	r1Started := make(chan struct{})
	release := make(chan struct{})

	backend := &stubBackend{availFn: func(req AvailabilityRequest) (*AvailabilityResult, error) {
		if req.PickupDate == "2025-07-01" {
			close(r1Started)
			<-release
			return &AvailabilityResult{Available: true, BasePrice: 100}, nil
		}
		return &AvailabilityResult{Available: true, BasePrice: 200}, nil
	}}
	svc, _ := newTestService(backend)
	ctx := context.Background()
	sessionID := setupPricedSession(t, svc) // dates D1 = 2025-07-01

	// R1 issued against D1, held in flight.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = svc.RecalculatePricing(ctx, sessionID)
	}()
	<-r1Started

	// User changes dates to D2 and a newer request resolves first.
	if _, err := svc.SetRentalDates(ctx, sessionID, DatesInput{
		PickupDate: "2025-08-01", DropoffDate: "2025-08-05",
		PickupTime: "10:00", DropoffTime: "10:00",
		PickupLocation: "a", DropoffLocation: "b",
	}); err != nil {
		t.Fatalf("SetRentalDates failed: %v", err)
	}
	if err := svc.RecalculatePricing(ctx, sessionID); err != nil {
		t.Fatalf("RecalculatePricing (R2) failed: %v", err)
	}

	// R1 finally resolves; its response must be discarded.
	close(release)
	<-done

	s, _ := svc.GetSession(ctx, sessionID)
	if s.Pricing == nil || s.Pricing.BasePrice != 200 {
		t.Errorf("committed breakdown must correspond to the latest dates, got %+v", s.Pricing)
	}
}

func TestRecalculatePricing_OverlappingRequestsLatestWins(t *testing.T) {
	var calls int32
	firstIn := make(chan struct{})
	firstRelease := make(chan struct{})

	backend := &stubBackend{availFn: func(AvailabilityRequest) (*AvailabilityResult, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(firstIn)
			<-firstRelease
			return &AvailabilityResult{Available: true, BasePrice: 100}, nil
		}
		return &AvailabilityResult{Available: true, BasePrice: 200}, nil
	}}
	svc, _ := newTestService(backend)
	ctx := context.Background()
	sessionID := setupPricedSession(t, svc)

	// First request claims its sequence and is held in flight.
	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_ = svc.RecalculatePricing(ctx, sessionID)
	}()
	<-firstIn

	// A later request is issued and commits while the first is still held.
	if err := svc.RecalculatePricing(ctx, sessionID); err != nil {
		t.Fatalf("RecalculatePricing failed: %v", err)
	}

	close(firstRelease)
	<-firstDone

	s, _ := svc.GetSession(ctx, sessionID)
	if s.Pricing == nil || s.Pricing.BasePrice != 200 {
		t.Errorf("held earlier response must not overwrite the later commit, got %+v", s.Pricing)
	}
}

func TestRecalculatePricing_ConcurrentClaimsStayOrdered(t *testing.T) {
	backend := &stubBackend{availFn: func(AvailabilityRequest) (*AvailabilityResult, error) {
		return &AvailabilityResult{Available: true, BasePrice: 100}, nil
	}}
	svc, _ := newTestService(backend)
	ctx := context.Background()
	sessionID := setupPricedSession(t, svc)

	const n = 25
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := svc.RecalculatePricing(ctx, sessionID); err != nil {
				t.Errorf("RecalculatePricing failed: %v", err)
			}
		}()
	}
	wg.Wait()

	s, err := svc.GetSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if s.PriceSeq != n {
		t.Errorf("PriceSeq = %d, want %d; concurrent requests must claim distinct sequences", s.PriceSeq, n)
	}
	if s.Pricing == nil || s.Pricing.BasePrice != 100 {
		t.Errorf("breakdown not committed: %+v", s.Pricing)
	}
}

func TestConfirmBooking_ValidationFailureKeepsSession(t *testing.T) {
	svc, _ := newTestService(&stubBackend{})
	ctx := context.Background()
	sessionID := setupPricedSession(t, svc)
	// No driver info and no pricing yet.

	_, err := svc.ConfirmBooking(ctx, sessionID)
	if ErrorCode(err) != ErrCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	s, getErr := svc.GetSession(ctx, sessionID)
	if getErr != nil {
		t.Fatalf("session must survive a failed confirm: %v", getErr)
	}
	if s.PickupDate == "" || s.Vehicle == nil {
		t.Error("expected session state to be untouched after a failed confirm")
	}
}

func TestConfirmBooking_BackendFailureKeepsSession(t *testing.T) {
	backend := &stubBackend{
		submitFn: func(BookingSubmission) (string, error) {
			return "", NewRentalError(ErrCodeBackend, "booking backend returned status 500")
		},
	}
	svc, _ := newTestService(backend)
	ctx := context.Background()
	sessionID := setupPricedSession(t, svc)

	if err := svc.RecalculatePricing(ctx, sessionID); err != nil {
		t.Fatalf("RecalculatePricing failed: %v", err)
	}
	if _, err := svc.SetDriverInfo(ctx, sessionID, DriverInput{
		Name: "A. Driver", License: "L-1", Phone: "+31", Email: "a@example.com",
	}); err != nil {
		t.Fatalf("SetDriverInfo failed: %v", err)
	}

	_, err := svc.ConfirmBooking(ctx, sessionID)
	if ErrorCode(err) != ErrCodeBackend {
		t.Fatalf("expected backend error, got %v", err)
	}

	s, getErr := svc.GetSession(ctx, sessionID)
	if getErr != nil {
		t.Fatalf("session must survive a failed submission: %v", getErr)
	}
	if s.Pricing == nil {
		t.Error("pricing must survive a failed submission")
	}
}

func TestBookingFlow_EndToEnd(t *testing.T) {
	// 7-day rental at 100/day with a 10% weekly discount applied by the
	// backend: base 700, no options, comprehensive insurance off.
	backend := &stubBackend{
		availFn: func(req AvailabilityRequest) (*AvailabilityResult, error) {
			return &AvailabilityResult{
				Available:      true,
				RentalDays:     7,
				BasePrice:      700,
				WeeklyDiscount: 70,
				InsuranceTotal: 84,
			}, nil
		},
		submitFn: func(req BookingSubmission) (string, error) {
			if req.TotalPrice != 700 {
				return "", fmt.Errorf("unexpected total %f", req.TotalPrice)
			}
			return "BK-1234", nil
		},
	}
	svc, _ := newTestService(backend)
	ctx := context.Background()

	session := mustStart(t, svc)
	id := session.SessionID

	if _, err := svc.NextStep(ctx, id); err != nil { // car -> dates
		t.Fatalf("NextStep failed: %v", err)
	}
	if _, err := svc.SetRentalDates(ctx, id, DatesInput{
		PickupDate: "2025-07-01", DropoffDate: "2025-07-08",
		PickupTime: "10:00", DropoffTime: "10:00",
		PickupLocation: "ams-schiphol", DropoffLocation: "ams-central",
	}); err != nil {
		t.Fatalf("SetRentalDates failed: %v", err)
	}
	if err := svc.RecalculatePricing(ctx, id); err != nil {
		t.Fatalf("RecalculatePricing failed: %v", err)
	}

	s, _ := svc.GetSession(ctx, id)
	if s.Duration.RentalType != models.RentalTypeDaily || s.Duration.Days != 7 {
		t.Fatalf("duration wrong: %+v", s.Duration)
	}
	if s.Pricing == nil || s.Pricing.FinalPrice != 700 {
		t.Fatalf("expected final price 700, got %+v", s.Pricing)
	}
	if s.Pricing.OptionsTotal != 0 {
		t.Errorf("OptionsTotal = %f, want 0", s.Pricing.OptionsTotal)
	}

	if _, err := svc.NextStep(ctx, id); err != nil { // dates -> options
		t.Fatalf("NextStep failed: %v", err)
	}
	if _, err := svc.NextStep(ctx, id); err != nil { // options -> driver
		t.Fatalf("NextStep failed: %v", err)
	}
	if _, err := svc.SetDriverInfo(ctx, id, DriverInput{
		Name: "A. Driver", License: "L-1", Phone: "+31612345678", Email: "a@example.com",
	}); err != nil {
		t.Fatalf("SetDriverInfo failed: %v", err)
	}
	s, err := svc.NextStep(ctx, id) // driver -> summary
	if err != nil {
		t.Fatalf("NextStep failed: %v", err)
	}
	if s.CurrentStep != models.StepSummary {
		t.Fatalf("CurrentStep = %q, want summary (errors: %v)", s.CurrentStep, s.Errors)
	}

	booking, err := svc.ConfirmBooking(ctx, id)
	if err != nil {
		t.Fatalf("ConfirmBooking failed: %v", err)
	}
	if booking.BackendID != "BK-1234" {
		t.Errorf("BackendID = %q, want BK-1234", booking.BackendID)
	}
	if booking.TotalPrice != 700 {
		t.Errorf("TotalPrice = %f, want 700", booking.TotalPrice)
	}
	if booking.Status != models.BookingStatusConfirmed {
		t.Errorf("Status = %q, want confirmed", booking.Status)
	}

	// The session is cleared after a successful confirmation.
	if _, err := svc.GetSession(ctx, id); ErrorCode(err) != ErrCodeSessionNotFound {
		t.Errorf("expected session to be gone, got %v", err)
	}
}
