package domain

import "time"

type Shift struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"businessID"`
	StaffID    int64     `json:"staffID"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`

	// StaffName is joined in by the repository for conflict reporting and
	// schedule listings, not a column of the shifts table.
	StaffName string `json:"staffName,omitempty"`
}

type AbsenceStatus string

const (
	AbsenceStatusPending  AbsenceStatus = "PENDING"
	AbsenceStatusApproved AbsenceStatus = "APPROVED"
	AbsenceStatusRejected AbsenceStatus = "REJECTED"
)

type Absence struct {
	ID         int64         `json:"id"`
	BusinessID int64         `json:"businessID"`
	StaffID    int64         `json:"staffID"`
	StartDate  time.Time     `json:"startDate"`
	EndDate    time.Time     `json:"endDate"`
	Status     AbsenceStatus `json:"status"`
	Reason     string        `json:"reason"`
	CreatedAt  time.Time     `json:"createdAt"`
	Version    int32         `json:"-"`
}
