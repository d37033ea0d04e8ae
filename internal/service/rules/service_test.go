package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	ruleStorage "github.com/m04kA/DMS-AppointmentService/internal/infra/storage/rule"
	"github.com/m04kA/DMS-AppointmentService/internal/integrations/facilityservice"
	"github.com/m04kA/DMS-AppointmentService/internal/service/rules/models"
)

func ruleRepoNotFound() error {
	return ruleStorage.ErrRuleNotFound
}

// Фейки для зависимостей сервиса

type fakeRuleRepo struct {
	rules      []domain.AvailabilityRule
	createdID  int64
	deletedIDs []int64
}

func (f *fakeRuleRepo) Create(_ context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	created := *rule
	f.createdID++
	created.ID = f.createdID
	f.rules = append(f.rules, created)
	return &created, nil
}

func (f *fakeRuleRepo) GetByID(_ context.Context, id int64) (*domain.AvailabilityRule, error) {
	for i := range f.rules {
		if f.rules[i].ID == id {
			rule := f.rules[i]
			return &rule, nil
		}
	}
	return nil, ruleRepoNotFound()
}

func (f *fakeRuleRepo) GetByFacility(_ context.Context, facilityID int64, appointmentTypeID *int64) ([]domain.AvailabilityRule, error) {
	var result []domain.AvailabilityRule
	for _, rule := range f.rules {
		if rule.FacilityID != facilityID {
			continue
		}
		if appointmentTypeID != nil && rule.AppointmentTypeID != *appointmentTypeID {
			continue
		}
		result = append(result, rule)
	}
	return result, nil
}

func (f *fakeRuleRepo) Update(_ context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	for i := range f.rules {
		if f.rules[i].ID == rule.ID {
			f.rules[i] = *rule
			updated := *rule
			return &updated, nil
		}
	}
	return nil, ruleRepoNotFound()
}

func (f *fakeRuleRepo) Delete(_ context.Context, id int64) error {
	for i := range f.rules {
		if f.rules[i].ID == id {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			f.deletedIDs = append(f.deletedIDs, id)
			return nil
		}
	}
	return ruleRepoNotFound()
}

type fakeFacilityClient struct {
	facility        *facilityservice.Facility
	appointmentType *facilityservice.AppointmentType
	facilityErr     error
	typeErr         error
}

func (f *fakeFacilityClient) GetFacility(_ context.Context, _ int64) (*facilityservice.Facility, error) {
	if f.facilityErr != nil {
		return nil, f.facilityErr
	}
	return f.facility, nil
}

func (f *fakeFacilityClient) GetAppointmentType(_ context.Context, _, _ int64) (*facilityservice.AppointmentType, error) {
	if f.typeErr != nil {
		return nil, f.typeErr
	}
	return f.appointmentType, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы

const managerUserID = int64(77)

func defaultFacilityClient() *fakeFacilityClient {
	return &fakeFacilityClient{
		facility: &facilityservice.Facility{
			ID:             1,
			Name:           "North DC",
			Timezone:       "America/Chicago",
			DockCount:      4,
			ManagerUserIDs: []int64{managerUserID},
			IsActive:       true,
		},
		appointmentType: &facilityservice.AppointmentType{
			ID:                     2,
			FacilityID:             1,
			Name:                   "Live Unload",
			DefaultDurationMinutes: 60,
			IsActive:               true,
		},
	}
}

func validCreateRequest() *models.CreateRuleRequest {
	return &models.CreateRuleRequest{
		UserID:             managerUserID,
		FacilityID:         1,
		AppointmentTypeID:  2,
		DayOfWeek:          1,
		StartTime:          "08:00",
		EndTime:            "17:00",
		MaxConcurrent:      3,
		BufferTimeMinutes:  15,
		GracePeriodMinutes: 30,
	}
}

// Тесты

func TestCreate_CreatesRule(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewService(repo, defaultFacilityClient(), nopLogger{})

	result, err := svc.Create(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, 1, result.DayOfWeek)
	assert.Equal(t, "08:00", result.StartTime)
	assert.Equal(t, "17:00", result.EndTime)
	assert.True(t, result.IsActive)
	assert.Equal(t, 3, result.MaxConcurrent)
}

func TestCreate_RejectsNonManager(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewService(repo, defaultFacilityClient(), nopLogger{})

	req := validCreateRequest()
	req.UserID = 999

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.rules)
}

func TestCreate_FacilityNotFound(t *testing.T) {
	client := defaultFacilityClient()
	client.facilityErr = facilityservice.ErrFacilityNotFound
	svc := NewService(&fakeRuleRepo{}, client, nopLogger{})

	_, err := svc.Create(context.Background(), validCreateRequest())

	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestCreate_AppointmentTypeNotFound(t *testing.T) {
	client := defaultFacilityClient()
	client.typeErr = facilityservice.ErrAppointmentTypeNotFound
	svc := NewService(&fakeRuleRepo{}, client, nopLogger{})

	_, err := svc.Create(context.Background(), validCreateRequest())

	assert.ErrorIs(t, err, ErrAppointmentTypeNotFound)
}

func TestCreate_ValidatesBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *models.CreateRuleRequest)
	}{
		{
			name:   "day of week below range",
			mutate: func(req *models.CreateRuleRequest) { req.DayOfWeek = -1 },
		},
		{
			name:   "day of week above range",
			mutate: func(req *models.CreateRuleRequest) { req.DayOfWeek = 7 },
		},
		{
			name: "start time not before end time",
			mutate: func(req *models.CreateRuleRequest) {
				req.StartTime = "17:00"
				req.EndTime = "08:00"
			},
		},
		{
			name: "equal start and end times",
			mutate: func(req *models.CreateRuleRequest) {
				req.StartTime = "08:00"
				req.EndTime = "08:00"
			},
		},
		{
			name:   "zero max concurrent",
			mutate: func(req *models.CreateRuleRequest) { req.MaxConcurrent = 0 },
		},
		{
			name:   "max concurrent above limit",
			mutate: func(req *models.CreateRuleRequest) { req.MaxConcurrent = domain.MaxConcurrent + 1 },
		},
		{
			name:   "negative buffer",
			mutate: func(req *models.CreateRuleRequest) { req.BufferTimeMinutes = -5 },
		},
		{
			name:   "buffer above limit",
			mutate: func(req *models.CreateRuleRequest) { req.BufferTimeMinutes = domain.MaxBufferTimeMinutes + 1 },
		},
		{
			name: "buffer consumes whole window",
			mutate: func(req *models.CreateRuleRequest) {
				req.StartTime = "08:00"
				req.EndTime = "09:00"
				req.BufferTimeMinutes = 60
			},
		},
		{
			name:   "negative grace period",
			mutate: func(req *models.CreateRuleRequest) { req.GracePeriodMinutes = -1 },
		},
		{
			name:   "grace period above limit",
			mutate: func(req *models.CreateRuleRequest) { req.GracePeriodMinutes = domain.MaxGracePeriodMinutes + 1 },
		},
		{
			name:   "malformed start time",
			mutate: func(req *models.CreateRuleRequest) { req.StartTime = "8am" },
		},
		{
			name: "end date before start date",
			mutate: func(req *models.CreateRuleRequest) {
				start := "2026-06-01"
				end := "2026-05-01"
				req.StartDate = &start
				req.EndDate = &end
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRuleRepo{}
			svc := NewService(repo, defaultFacilityClient(), nopLogger{})

			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.rules)
		})
	}
}

func TestGetByFacility_FiltersByAppointmentType(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewService(repo, defaultFacilityClient(), nopLogger{})

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	other := validCreateRequest()
	other.AppointmentTypeID = 5
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	typeID := int64(5)
	result, err := svc.GetByFacility(context.Background(), 1, &typeID, managerUserID)

	require.NoError(t, err)
	require.Len(t, result.Rules, 1)
	assert.Equal(t, typeID, result.Rules[0].AppointmentTypeID)
}

func TestGetByFacility_RejectsNonManager(t *testing.T) {
	svc := NewService(&fakeRuleRepo{}, defaultFacilityClient(), nopLogger{})

	_, err := svc.GetByFacility(context.Background(), 1, nil, 999)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_AppliesPartialChanges(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewService(repo, defaultFacilityClient(), nopLogger{})

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	newEnd := "18:00"
	inactive := false
	result, err := svc.Update(context.Background(), created.ID, &models.UpdateRuleRequest{
		UserID:   managerUserID,
		EndTime:  &newEnd,
		IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.Equal(t, "18:00", result.EndTime)
	assert.False(t, result.IsActive)
	// Остальные поля не тронуты
	assert.Equal(t, "08:00", result.StartTime)
	assert.Equal(t, 3, result.MaxConcurrent)
}

func TestUpdate_RejectsInvalidResult(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewService(repo, defaultFacilityClient(), nopLogger{})

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// Обновление делает startTime позже endTime
	badStart := "18:00"
	_, err = svc.Update(context.Background(), created.ID, &models.UpdateRuleRequest{
		UserID:    managerUserID,
		StartTime: &badStart,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)

	// Хранилище не изменилось
	stored, repoErr := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, repoErr)
	assert.Equal(t, "08:00", stored.StartTime.String())
}

func TestUpdate_RuleNotFound(t *testing.T) {
	svc := NewService(&fakeRuleRepo{}, defaultFacilityClient(), nopLogger{})

	newEnd := "18:00"
	_, err := svc.Update(context.Background(), 404, &models.UpdateRuleRequest{
		UserID:  managerUserID,
		EndTime: &newEnd,
	})

	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestDelete_DeletesRule(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewService(repo, defaultFacilityClient(), nopLogger{})

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID, managerUserID)

	require.NoError(t, err)
	assert.Equal(t, []int64{created.ID}, repo.deletedIDs)
}

func TestDelete_RejectsNonManager(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewService(repo, defaultFacilityClient(), nopLogger{})

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID, 999)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.deletedIDs)
}
