package get_availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	"github.com/m04kA/DMS-AppointmentService/internal/integrations/facilityservice"
	"github.com/m04kA/DMS-AppointmentService/pkg/types"
)

// 2026-03-02 - понедельник (dayOfWeek = 1)
const mondayDate = "2026-03-02"

type fakeRuleRepo struct {
	rules []domain.AvailabilityRule
	err   error
}

func (f *fakeRuleRepo) GetByFacilityAndType(_ context.Context, _, _ int64) ([]domain.AvailabilityRule, error) {
	return f.rules, f.err
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
	lastFilter   domain.FacilityAppointmentsFilter
}

func (f *fakeAppointmentRepo) GetByFacilityWithFilter(_ context.Context, filter domain.FacilityAppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.appointments, f.err
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
		CarrierUserID:     100,
		FacilityID:        10,
		AppointmentTypeID: 20,
		StartTime:         mustTime(t, start),
		DurationMinutes:   durationMinutes,
		Status:            domain.StatusScheduled,
	}
}

func newTestUseCase(ruleRepo *fakeRuleRepo, appointmentRepo *fakeAppointmentRepo, client *fakeFacilityClient) *UseCase {
	return NewUseCase(ruleRepo, appointmentRepo, client, nopLogger{})
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

func slotByTime(t *testing.T, slots []Slot, clock string) Slot {
	t.Helper()
	for _, slot := range slots {
		if slot.Time == clock {
			return slot
		}
	}
	t.Fatalf("slot %s not found", clock)
	return Slot{}
}

func TestExecute_SubtractsOccupancy(t *testing.T) {
	ruleRepo := &fakeRuleRepo{rules: []domain.AvailabilityRule{weekdayRule(t, 1, "08:00", "17:00", 2)}}
	appointmentRepo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		scheduledAppointment(t, "10:00", 60),
	}}

	uc := newTestUseCase(ruleRepo, appointmentRepo, defaultFacilityClient())

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:            1,
		FacilityID:        10,
		AppointmentTypeID: 20,
		Date:              mondayDate,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 24)

	occupied := slotByTime(t, resp.Slots, "10:00")
	assert.True(t, occupied.Available)
	assert.Equal(t, 1, occupied.Remaining)

	free := slotByTime(t, resp.Slots, "13:00")
	assert.Equal(t, 2, free.Remaining)
}

func TestExecute_FullyBookedSlotBecomesUnavailable(t *testing.T) {
	ruleRepo := &fakeRuleRepo{rules: []domain.AvailabilityRule{weekdayRule(t, 1, "08:00", "17:00", 2)}}
	appointmentRepo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		scheduledAppointment(t, "11:00", 60),
		scheduledAppointment(t, "11:00", 60),
	}}

	uc := newTestUseCase(ruleRepo, appointmentRepo, defaultFacilityClient())

	resp, err := uc.Execute(context.Background(), &Request{
		FacilityID:        10,
		AppointmentTypeID: 20,
		Date:              mondayDate,
	})
	require.NoError(t, err)

	full := slotByTime(t, resp.Slots, "11:00")
	assert.False(t, full.Available)
	assert.Equal(t, 0, full.Remaining)
	assert.Equal(t, msgSlotFullyBooked, full.Reason)
}

func TestExecute_CancelledAppointmentsDoNotOccupy(t *testing.T) {
	ruleRepo := &fakeRuleRepo{rules: []domain.AvailabilityRule{weekdayRule(t, 1, "08:00", "17:00", 1)}}

	cancelled := scheduledAppointment(t, "09:00", 60)
	cancelled.Status = domain.StatusCancelledByCarrier
	appointmentRepo := &fakeAppointmentRepo{appointments: []*domain.Appointment{cancelled}}

	uc := newTestUseCase(ruleRepo, appointmentRepo, defaultFacilityClient())

	resp, err := uc.Execute(context.Background(), &Request{
		FacilityID:        10,
		AppointmentTypeID: 20,
		Date:              mondayDate,
	})
	require.NoError(t, err)

	slot := slotByTime(t, resp.Slots, "09:00")
	assert.True(t, slot.Available)
	assert.Equal(t, 1, slot.Remaining)
}

func TestExecute_NoRulesGivesOpenDay(t *testing.T) {
	ruleRepo := &fakeRuleRepo{}
	appointmentRepo := &fakeAppointmentRepo{}

	uc := newTestUseCase(ruleRepo, appointmentRepo, defaultFacilityClient())

	resp, err := uc.Execute(context.Background(), &Request{
		FacilityID:        10,
		AppointmentTypeID: 20,
		Date:              mondayDate,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 24)

	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
		assert.Equal(t, domain.DefaultOpenRemaining, slot.Remaining)
	}
}

func TestExecute_TimezoneDefaultsToFacility(t *testing.T) {
	uc := newTestUseCase(&fakeRuleRepo{}, &fakeAppointmentRepo{}, defaultFacilityClient())

	resp, err := uc.Execute(context.Background(), &Request{
		FacilityID:        10,
		AppointmentTypeID: 20,
		Date:              mondayDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", resp.Timezone)

	resp, err = uc.Execute(context.Background(), &Request{
		FacilityID:        10,
		AppointmentTypeID: 20,
		Date:              mondayDate,
		Timezone:          "America/New_York",
	})
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", resp.Timezone)
}

func TestExecute_InvalidDate(t *testing.T) {
	uc := newTestUseCase(&fakeRuleRepo{}, &fakeAppointmentRepo{}, defaultFacilityClient())

	_, err := uc.Execute(context.Background(), &Request{
		FacilityID:        10,
		AppointmentTypeID: 20,
		Date:              "03/02/2026",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_FacilityNotFound(t *testing.T) {
	client := defaultFacilityClient()
	client.facility = nil
	client.facilityErr = facilityservice.ErrFacilityNotFound

	uc := newTestUseCase(&fakeRuleRepo{}, &fakeAppointmentRepo{}, client)

	_, err := uc.Execute(context.Background(), &Request{
		FacilityID:        10,
		AppointmentTypeID: 20,
		Date:              mondayDate,
	})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestExecute_AppointmentTypeNotFound(t *testing.T) {
	client := defaultFacilityClient()
	client.appointmentType = nil
	client.appointmentTypeErr = facilityservice.ErrAppointmentTypeNotFound

	uc := newTestUseCase(&fakeRuleRepo{}, &fakeAppointmentRepo{}, client)

	_, err := uc.Execute(context.Background(), &Request{
		FacilityID:        10,
		AppointmentTypeID: 20,
		Date:              mondayDate,
	})
	assert.ErrorIs(t, err, ErrAppointmentTypeNotFound)
}

func TestExecute_ValidatesInput(t *testing.T) {
	uc := newTestUseCase(&fakeRuleRepo{}, &fakeAppointmentRepo{}, defaultFacilityClient())

	tests := []struct {
		name string
		req  Request
	}{
		{name: "zero facility", req: Request{AppointmentTypeID: 20, Date: mondayDate}},
		{name: "zero appointment type", req: Request{FacilityID: 10, Date: mondayDate}},
		{name: "empty date", req: Request{FacilityID: 10, AppointmentTypeID: 20}},
		{name: "interval out of bounds", req: Request{FacilityID: 10, AppointmentTypeID: 20, Date: mondayDate, IntervalMinutes: 3}},
		{name: "duration out of bounds", req: Request{FacilityID: 10, AppointmentTypeID: 20, Date: mondayDate, DurationMinutes: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_FiltersOnlyActiveAppointmentsOfType(t *testing.T) {
	ruleRepo := &fakeRuleRepo{rules: []domain.AvailabilityRule{weekdayRule(t, 1, "08:00", "17:00", 2)}}
	appointmentRepo := &fakeAppointmentRepo{}

	uc := newTestUseCase(ruleRepo, appointmentRepo, defaultFacilityClient())

	_, err := uc.Execute(context.Background(), &Request{
		FacilityID:        10,
		AppointmentTypeID: 20,
		Date:              mondayDate,
	})
	require.NoError(t, err)

	require.NotNil(t, appointmentRepo.lastFilter.AppointmentTypeID)
	assert.Equal(t, int64(20), *appointmentRepo.lastFilter.AppointmentTypeID)
	assert.False(t, appointmentRepo.lastFilter.IncludeInactive)
	require.NotNil(t, appointmentRepo.lastFilter.StartDate)
	assert.Equal(t, mondayDate, appointmentRepo.lastFilter.StartDate.Format(domain.DateFormat))
}
