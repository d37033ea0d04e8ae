package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	"github.com/m04kA/DMS-AppointmentService/internal/integrations/carrierservice"
	"github.com/m04kA/DMS-AppointmentService/internal/integrations/facilityservice"
	"github.com/m04kA/DMS-AppointmentService/pkg/ptr"
	"github.com/m04kA/DMS-AppointmentService/pkg/types"
)

// 2026-03-02 - понедельник (dayOfWeek = 1)
var mondayDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type fakeAppointmentRepo struct {
	existing []*domain.Appointment
	created  *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	created := *appointment
	created.ID = 42
	f.created = &created
	return &created, nil
}

func (f *fakeAppointmentRepo) GetByFacilityWithFilter(_ context.Context, _ domain.FacilityAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeRuleRepo struct {
	rules []domain.AvailabilityRule
}

func (f *fakeRuleRepo) GetByFacilityAndType(_ context.Context, _, _ int64) ([]domain.AvailabilityRule, error) {
	return f.rules, nil
}

type fakeFacilityClient struct {
	facility           *facilityservice.Facility
	facilityErr        error
	appointmentType    *facilityservice.AppointmentType
	appointmentTypeErr error
}

func (f *fakeFacilityClient) GetFacility(_ context.Context, _ int64) (*facilityservice.Facility, error) {
	return f.facility, f.facilityErr
}

func (f *fakeFacilityClient) GetAppointmentType(_ context.Context, _, _ int64) (*facilityservice.AppointmentType, error) {
	return f.appointmentType, f.appointmentTypeErr
}

type fakeCarrierClient struct {
	carrier    *carrierservice.Carrier
	carrierErr error
	truck      *carrierservice.Truck
	truckErr   error
}

func (f *fakeCarrierClient) GetCarrier(_ context.Context, _ int64) (*carrierservice.Carrier, error) {
	return f.carrier, f.carrierErr
}

func (f *fakeCarrierClient) GetActiveTruckWithGracefulDegradation(_ context.Context, _ int64) (*carrierservice.Truck, error) {
	return f.truck, f.truckErr
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, clock string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(clock)
	require.NoError(t, err)
	return ts
}

func weekdayRule(t *testing.T, dayOfWeek int, start, end string, maxConcurrent int) domain.AvailabilityRule {
	t.Helper()
	return domain.AvailabilityRule{
		ID:                1,
		FacilityID:        10,
		AppointmentTypeID: 20,
		DayOfWeek:         dayOfWeek,
		StartTime:         mustTime(t, start),
		EndTime:           mustTime(t, end),
		IsActive:          true,
		MaxConcurrent:     maxConcurrent,
	}
}

func scheduledAppointment(t *testing.T, start string, durationMinutes int) *domain.Appointment {
	t.Helper()
	return &domain.Appointment{
		CarrierUserID:     200,
		FacilityID:        10,
		AppointmentTypeID: 20,
		StartTime:         mustTime(t, start),
		DurationMinutes:   durationMinutes,
		Status:            domain.StatusScheduled,
	}
}

func defaultFacilityClient() *fakeFacilityClient {
	return &fakeFacilityClient{
		facility: &facilityservice.Facility{
			ID:             10,
			Name:           "North DC",
			Timezone:       "America/Chicago",
			ManagerUserIDs: []int64{1},
			IsActive:       true,
		},
		appointmentType: &facilityservice.AppointmentType{
			ID:                     20,
			FacilityID:             10,
			Name:                   "Live Unload",
			DefaultDurationMinutes: 60,
			IsActive:               true,
		},
	}
}

func defaultCarrierClient() *fakeCarrierClient {
	return &fakeCarrierClient{
		carrier: &carrierservice.Carrier{
			ID:       5,
			UserID:   100,
			Name:     "Acme Freight",
			MCNumber: "MC123456",
			IsActive: true,
		},
		truck: &carrierservice.Truck{
			ID:            7,
			CarrierUserID: 100,
			LicensePlate:  "TX-1234",
			TrailerNumber: ptr.Ptr("TR-99"),
			DriverName:    ptr.Ptr("J. Smith"),
			DriverPhone:   ptr.Ptr("+15550001111"),
			IsActive:      true,
		},
	}
}

func newTestUseCase(
	appointmentRepo *fakeAppointmentRepo,
	ruleRepo *fakeRuleRepo,
	facilityClient *fakeFacilityClient,
	carrierClient *fakeCarrierClient,
) *UseCase {
	uc := NewUseCase(appointmentRepo, ruleRepo, facilityClient, carrierClient, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		UserID:            100,
		FacilityID:        10,
		AppointmentTypeID: 20,
		Date:              mondayDate,
		StartTime:         mustTime(t, "10:00"),
		BOLNumber:         ptr.Ptr("BOL-789"),
	}
}

func TestExecute_CreatesAppointment(t *testing.T) {
	appointmentRepo := &fakeAppointmentRepo{}
	ruleRepo := &fakeRuleRepo{rules: []domain.AvailabilityRule{weekdayRule(t, 1, "08:00", "17:00", 2)}}

	uc := newTestUseCase(appointmentRepo, ruleRepo, defaultFacilityClient(), defaultCarrierClient())

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Len(t, resp.ReferenceCode, referenceCodeLength)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Live Unload", resp.AppointmentTypeName)
	assert.Equal(t, "Acme Freight", resp.CarrierName)
	require.NotNil(t, resp.TruckLicensePlate)
	assert.Equal(t, "TX-1234", *resp.TruckLicensePlate)
	require.NotNil(t, resp.BOLNumber)
	assert.Equal(t, "BOL-789", *resp.BOLNumber)
}

func TestExecute_RejectsTimeOutsideRules(t *testing.T) {
	ruleRepo := &fakeRuleRepo{rules: []domain.AvailabilityRule{weekdayRule(t, 1, "08:00", "17:00", 2)}}

	uc := newTestUseCase(&fakeAppointmentRepo{}, ruleRepo, defaultFacilityClient(), defaultCarrierClient())

	req := validRequest(t)
	req.StartTime = mustTime(t, "20:00")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTimeNotAvailable)
}

func TestExecute_FailsClosedWithoutRules(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeRuleRepo{}, defaultFacilityClient(), defaultCarrierClient())

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrTimeNotAvailable)
}

func TestExecute_RejectsFullSlot(t *testing.T) {
	appointmentRepo := &fakeAppointmentRepo{existing: []*domain.Appointment{
		scheduledAppointment(t, "10:00", 60),
		scheduledAppointment(t, "10:00", 60),
	}}
	ruleRepo := &fakeRuleRepo{rules: []domain.AvailabilityRule{weekdayRule(t, 1, "08:00", "17:00", 2)}}

	uc := newTestUseCase(appointmentRepo, ruleRepo, defaultFacilityClient(), defaultCarrierClient())

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CancelledAppointmentsDoNotCount(t *testing.T) {
	cancelled := scheduledAppointment(t, "10:00", 60)
	cancelled.Status = domain.StatusCancelledByCarrier

	appointmentRepo := &fakeAppointmentRepo{existing: []*domain.Appointment{cancelled}}
	ruleRepo := &fakeRuleRepo{rules: []domain.AvailabilityRule{weekdayRule(t, 1, "08:00", "17:00", 1)}}

	uc := newTestUseCase(appointmentRepo, ruleRepo, defaultFacilityClient(), defaultCarrierClient())

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.NoError(t, err)
}

func TestExecute_DegradedCarrierServiceCreatesWithoutTruck(t *testing.T) {
	carrierClient := defaultCarrierClient()
	carrierClient.truck = nil
	carrierClient.truckErr = carrierservice.ErrServiceDegraded

	appointmentRepo := &fakeAppointmentRepo{}
	ruleRepo := &fakeRuleRepo{rules: []domain.AvailabilityRule{weekdayRule(t, 1, "08:00", "17:00", 2)}}

	uc := newTestUseCase(appointmentRepo, ruleRepo, defaultFacilityClient(), carrierClient)

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Nil(t, resp.TruckLicensePlate)
	assert.Nil(t, resp.DriverName)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeRuleRepo{}, defaultFacilityClient(), defaultCarrierClient())

	req := validRequest(t)
	req.Date = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SameDayPastTime(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeRuleRepo{}, defaultFacilityClient(), defaultCarrierClient())
	uc.timeProvider = fixedTimeProvider{now: time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)}

	req := validRequest(t)
	req.StartTime = mustTime(t, "10:00")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_FacilityInactive(t *testing.T) {
	facilityClient := defaultFacilityClient()
	facilityClient.facility.IsActive = false

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeRuleRepo{}, facilityClient, defaultCarrierClient())

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrFacilityInactive)
}

func TestExecute_CarrierNotFound(t *testing.T) {
	carrierClient := defaultCarrierClient()
	carrierClient.carrier = nil
	carrierClient.carrierErr = carrierservice.ErrCarrierNotFound

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeRuleRepo{}, defaultFacilityClient(), carrierClient)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrCarrierNotFound)
}

func TestExecute_ValidatesInput(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeRuleRepo{}, defaultFacilityClient(), defaultCarrierClient())

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "zero user", mutate: func(req *Request) { req.UserID = 0 }},
		{name: "zero facility", mutate: func(req *Request) { req.FacilityID = 0 }},
		{name: "zero appointment type", mutate: func(req *Request) { req.AppointmentTypeID = 0 }},
		{name: "zero date", mutate: func(req *Request) { req.Date = time.Time{} }},
		{name: "empty start time", mutate: func(req *Request) { req.StartTime = "" }},
		{name: "duration out of bounds", mutate: func(req *Request) { req.DurationMinutes = 5000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGenerateReferenceCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := generateReferenceCode()
		assert.Len(t, code, referenceCodeLength)
		assert.False(t, seen[code], "reference codes must not repeat")
		seen[code] = true
	}
}
