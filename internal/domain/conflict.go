package domain

type ConflictKind string

const (
	ConflictShiftOverlap    ConflictKind = "shift_overlap"
	ConflictAbsenceConflict ConflictKind = "absence_conflict"
)

// ConflictEntry describes one kind of collision found for a proposed shift
// window together with the colliding rows. At most one entry per kind is
// ever reported, even when several rows collide.
type ConflictEntry struct {
	Kind     ConflictKind `json:"kind"`
	Message  string       `json:"message"`
	Shifts   []*Shift     `json:"shifts,omitempty"`
	Absences []*Absence   `json:"absences,omitempty"`
}

// ConflictReport is never persisted. An empty report means the proposed
// window is schedulable.
type ConflictReport []ConflictEntry

func (r ConflictReport) HasConflicts() bool {
	return len(r) > 0
}
