package scheduling_test

import (
	"errors"
	"testing"
	"time"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
	"github.com/gastrohub-dev/gastrohub/backend/internal/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShiftRepository struct {
	mock.Mock
}

func (m *MockShiftRepository) GetOverlappingShifts(businessID int64, staffID int64, start time.Time, end time.Time, excludeShiftID *int64) ([]*domain.Shift, error) {
	args := m.Called(businessID, staffID, start, end, excludeShiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Shift), args.Error(1)
}

type MockAbsenceRepository struct {
	mock.Mock
}

func (m *MockAbsenceRepository) GetApprovedAbsencesOnDate(businessID int64, staffID int64, date time.Time) ([]*domain.Absence, error) {
	args := m.Called(businessID, staffID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Absence), args.Error(1)
}

// overlaps reports the reduced interval test the repository query
// implements, so the boundary assertions below match the real port.
func overlaps(s *domain.Shift, start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestCheckConflicts_OverlappingShift(t *testing.T) {
	existing := &domain.Shift{
		ID:         7,
		BusinessID: 1,
		StaffID:    2,
		StartTime:  at(t, "2024-03-04T09:00:00Z"),
		EndTime:    at(t, "2024-03-04T17:00:00Z"),
		StaffName:  "Lena Hoffmann",
	}

	start := at(t, "2024-03-04T16:00:00Z")
	end := at(t, "2024-03-04T20:00:00Z")

	shiftRepo := new(MockShiftRepository)
	shiftRepo.On("GetOverlappingShifts", int64(1), int64(2), start, end, (*int64)(nil)).
		Return([]*domain.Shift{existing}, nil)

	absenceRepo := new(MockAbsenceRepository)
	absenceRepo.On("GetApprovedAbsencesOnDate", int64(1), int64(2), at(t, "2024-03-04T00:00:00Z")).
		Return([]*domain.Absence{}, nil)

	checker := scheduling.NewChecker(shiftRepo, absenceRepo)
	report, err := checker.CheckConflicts(1, 2, start, end, nil)
	require.NoError(t, err)

	require.True(t, report.HasConflicts())
	require.Len(t, report, 1)
	assert.Equal(t, domain.ConflictShiftOverlap, report[0].Kind)
	assert.Equal(t, "Staff member already has a shift during this time", report[0].Message)
	require.Len(t, report[0].Shifts, 1)
	assert.Equal(t, int64(7), report[0].Shifts[0].ID)
	assert.Equal(t, "Lena Hoffmann", report[0].Shifts[0].StaffName)

	shiftRepo.AssertExpectations(t)
	absenceRepo.AssertExpectations(t)
}

func TestCheckConflicts_TouchingShiftIsNotAConflict(t *testing.T) {
	// half-open semantics: a shift ending exactly when the proposal starts
	// does not collide, so the repository query returns no rows
	existing := &domain.Shift{
		StartTime: at(t, "2024-03-04T09:00:00Z"),
		EndTime:   at(t, "2024-03-04T17:00:00Z"),
	}
	start := at(t, "2024-03-04T17:00:00Z")
	end := at(t, "2024-03-04T20:00:00Z")
	assert.False(t, overlaps(existing, start, end))

	shiftRepo := new(MockShiftRepository)
	shiftRepo.On("GetOverlappingShifts", int64(1), int64(2), start, end, (*int64)(nil)).
		Return([]*domain.Shift{}, nil)

	absenceRepo := new(MockAbsenceRepository)
	absenceRepo.On("GetApprovedAbsencesOnDate", int64(1), int64(2), at(t, "2024-03-04T00:00:00Z")).
		Return([]*domain.Absence{}, nil)

	checker := scheduling.NewChecker(shiftRepo, absenceRepo)
	report, err := checker.CheckConflicts(1, 2, start, end, nil)
	require.NoError(t, err)
	assert.False(t, report.HasConflicts())
	assert.Empty(t, report)
}

func TestCheckConflicts_OverlapIsSymmetric(t *testing.T) {
	a := &domain.Shift{StartTime: at(t, "2024-03-04T09:00:00Z"), EndTime: at(t, "2024-03-04T17:00:00Z")}
	b := &domain.Shift{StartTime: at(t, "2024-03-04T16:00:00Z"), EndTime: at(t, "2024-03-04T20:00:00Z")}

	assert.True(t, overlaps(a, b.StartTime, b.EndTime))
	assert.True(t, overlaps(b, a.StartTime, a.EndTime))
}

func TestCheckConflicts_SelfExclusion(t *testing.T) {
	// editing shift 7 without moving it: the repository receives the
	// exclusion and therefore returns no rows, so the report stays empty
	start := at(t, "2024-03-04T09:00:00Z")
	end := at(t, "2024-03-04T17:00:00Z")
	editedID := int64(7)

	shiftRepo := new(MockShiftRepository)
	shiftRepo.On("GetOverlappingShifts", int64(1), int64(2), start, end, &editedID).
		Return([]*domain.Shift{}, nil)

	absenceRepo := new(MockAbsenceRepository)
	absenceRepo.On("GetApprovedAbsencesOnDate", int64(1), int64(2), at(t, "2024-03-04T00:00:00Z")).
		Return([]*domain.Absence{}, nil)

	checker := scheduling.NewChecker(shiftRepo, absenceRepo)
	report, err := checker.CheckConflicts(1, 2, start, end, &editedID)
	require.NoError(t, err)
	assert.False(t, report.HasConflicts())

	shiftRepo.AssertExpectations(t)
}

func TestCheckConflicts_ApprovedAbsence(t *testing.T) {
	absence := &domain.Absence{
		ID:         3,
		BusinessID: 1,
		StaffID:    2,
		StartDate:  day(t, "2024-01-10"),
		EndDate:    day(t, "2024-01-12"),
		Status:     domain.AbsenceStatusApproved,
	}

	start := at(t, "2024-01-10T08:00:00Z")
	end := at(t, "2024-01-10T12:00:00Z")

	shiftRepo := new(MockShiftRepository)
	shiftRepo.On("GetOverlappingShifts", int64(1), int64(2), start, end, (*int64)(nil)).
		Return([]*domain.Shift{}, nil)

	absenceRepo := new(MockAbsenceRepository)
	absenceRepo.On("GetApprovedAbsencesOnDate", int64(1), int64(2), at(t, "2024-01-10T00:00:00Z")).
		Return([]*domain.Absence{absence}, nil)

	checker := scheduling.NewChecker(shiftRepo, absenceRepo)
	report, err := checker.CheckConflicts(1, 2, start, end, nil)
	require.NoError(t, err)

	require.Len(t, report, 1)
	assert.Equal(t, domain.ConflictAbsenceConflict, report[0].Kind)
	assert.Equal(t, "Staff member has approved absence during this period", report[0].Message)
	require.Len(t, report[0].Absences, 1)
	assert.Equal(t, int64(3), report[0].Absences[0].ID)
}

func TestCheckConflicts_AbsenceDateTruncation(t *testing.T) {
	// a proposed 14:30 start must query the absence table with midnight of
	// the same calendar date, in the start's own location
	loc := time.FixedZone("CET", 60*60)
	start := time.Date(2024, 1, 13, 14, 30, 0, 0, loc)
	end := time.Date(2024, 1, 13, 22, 0, 0, 0, loc)
	wantDate := time.Date(2024, 1, 13, 0, 0, 0, 0, loc)

	shiftRepo := new(MockShiftRepository)
	shiftRepo.On("GetOverlappingShifts", int64(1), int64(2), start, end, (*int64)(nil)).
		Return([]*domain.Shift{}, nil)

	absenceRepo := new(MockAbsenceRepository)
	absenceRepo.On("GetApprovedAbsencesOnDate", int64(1), int64(2), wantDate).
		Return([]*domain.Absence{}, nil)

	checker := scheduling.NewChecker(shiftRepo, absenceRepo)
	_, err := checker.CheckConflicts(1, 2, start, end, nil)
	require.NoError(t, err)

	absenceRepo.AssertExpectations(t)
}

func TestCheckConflicts_BothKindsReported(t *testing.T) {
	start := at(t, "2024-01-10T08:00:00Z")
	end := at(t, "2024-01-10T12:00:00Z")

	shiftRepo := new(MockShiftRepository)
	shiftRepo.On("GetOverlappingShifts", int64(1), int64(2), start, end, (*int64)(nil)).
		Return([]*domain.Shift{{ID: 1}, {ID: 2}}, nil)

	absenceRepo := new(MockAbsenceRepository)
	absenceRepo.On("GetApprovedAbsencesOnDate", int64(1), int64(2), at(t, "2024-01-10T00:00:00Z")).
		Return([]*domain.Absence{{ID: 9}}, nil)

	checker := scheduling.NewChecker(shiftRepo, absenceRepo)
	report, err := checker.CheckConflicts(1, 2, start, end, nil)
	require.NoError(t, err)

	// one entry per kind, never one per colliding row
	require.Len(t, report, 2)
	assert.Equal(t, domain.ConflictShiftOverlap, report[0].Kind)
	assert.Len(t, report[0].Shifts, 2)
	assert.Equal(t, domain.ConflictAbsenceConflict, report[1].Kind)
}

func TestCheckConflicts_RepositoryErrorPropagates(t *testing.T) {
	start := at(t, "2024-01-10T08:00:00Z")
	end := at(t, "2024-01-10T12:00:00Z")
	dbErr := errors.New("connection refused")

	shiftRepo := new(MockShiftRepository)
	shiftRepo.On("GetOverlappingShifts", int64(1), int64(2), start, end, (*int64)(nil)).
		Return(nil, dbErr)

	checker := scheduling.NewChecker(shiftRepo, new(MockAbsenceRepository))
	report, err := checker.CheckConflicts(1, 2, start, end, nil)
	require.ErrorIs(t, err, dbErr)
	assert.Nil(t, report)
}
