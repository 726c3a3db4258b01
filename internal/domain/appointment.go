package domain

import (
	"strings"

	"github.com/uptrace/bun"
)

// Status is the closed set of appointment lifecycle states. Transitions
// are monotone: a booked appointment may become completed or cancelled,
// and neither terminal state may be left.
type Status string

const (
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusBooked {
		return false
	}
	return next == StatusCompleted || next == StatusCancelled
}

// Sentinel components substituted for blank date/time fields so that a
// partially recorded appointment sorts first instead of failing.
const (
	SentinelDate = "0000-00-00"
	SentinelTime = "00:00"
)

type Appointment struct {
	bun.BaseModel `bun:"table:appointments"`

	ID        int64  `bun:"appointment_id,pk,autoincrement"`
	PatientID int64  `bun:"patient_id,notnull"`
	DoctorID  int64  `bun:"doctor_id,notnull"`
	Date      string `bun:"appointment_date"`
	Time      string `bun:"appointment_time"`
	Status    Status `bun:"status,notnull"`
}

// DateTime joins the stored components into the canonical
// "YYYY-MM-DD HH:MM" form. The representation sorts identically under
// lexical and chronological ordering, which every ordering operation in
// the engine relies on instead of parsing into a calendar type.
func (a Appointment) DateTime() string {
	date := strings.TrimSpace(a.Date)
	if date == "" {
		date = SentinelDate
	}
	t := strings.TrimSpace(a.Time)
	if t == "" {
		t = SentinelTime
	}
	return date + " " + t
}

// SplitDateTime splits a canonical "YYYY-MM-DD HH:MM" value by fixed
// width: the first 10 bytes are the date, everything past index 11 is
// the time. Callers supply already-validated values; a malformed input
// yields malformed components, not an error.
func SplitDateTime(dateTime string) (date, timeOfDay string) {
	if len(dateTime) >= 11 {
		return dateTime[:10], dateTime[11:]
	}
	if len(dateTime) >= 10 {
		return dateTime[:10], ""
	}
	return dateTime, ""
}
