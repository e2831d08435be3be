package scheduling

import (
	"time"

	"github.com/gastrohub-dev/gastrohub/backend/internal/domain"
)

const (
	shiftOverlapMessage    = "Staff member already has a shift during this time"
	absenceConflictMessage = "Staff member has approved absence during this period"
)

// ShiftRepository is the narrow read port the checker needs: all shifts of
// the staff member whose interval intersects the half-open window
// [start, end), optionally excluding the shift being edited.
type ShiftRepository interface {
	GetOverlappingShifts(businessID int64, staffID int64, start time.Time, end time.Time, excludeShiftID *int64) ([]*domain.Shift, error)
}

// AbsenceRepository returns approved absences whose inclusive date range
// covers the given calendar date.
type AbsenceRepository interface {
	GetApprovedAbsencesOnDate(businessID int64, staffID int64, date time.Time) ([]*domain.Absence, error)
}

type Checker struct {
	shifts   ShiftRepository
	absences AbsenceRepository
}

func NewChecker(shifts ShiftRepository, absences AbsenceRepository) *Checker {
	return &Checker{
		shifts:   shifts,
		absences: absences,
	}
}

// CheckConflicts reports whether the proposed window collides with an
// existing shift or an approved absence of the same staff member. It is a
// pure read: callers that create or move shifts must run it first and
// refuse to persist while the report is non-empty.
//
// start < end is the caller's precondition. The absence check truncates
// start to midnight in start's own location; no timezone conversion is
// performed, so the calendar date is taken in whatever zone the caller
// parsed the timestamp in.
func (c *Checker) CheckConflicts(businessID int64, staffID int64, start time.Time, end time.Time, excludeShiftID *int64) (domain.ConflictReport, error) {
	report := domain.ConflictReport{}

	overlapping, err := c.shifts.GetOverlappingShifts(businessID, staffID, start, end, excludeShiftID)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		report = append(report, domain.ConflictEntry{
			Kind:    domain.ConflictShiftOverlap,
			Message: shiftOverlapMessage,
			Shifts:  overlapping,
		})
	}

	shiftDate := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	absences, err := c.absences.GetApprovedAbsencesOnDate(businessID, staffID, shiftDate)
	if err != nil {
		return nil, err
	}
	if len(absences) > 0 {
		report = append(report, domain.ConflictEntry{
			Kind:     domain.ConflictAbsenceConflict,
			Message:  absenceConflictMessage,
			Absences: absences,
		})
	}

	return report, nil
}
