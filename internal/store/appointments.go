package store

import (
	"context"

	"medbook/backend/internal/domain"
)

// AppointmentRepository is the persistence contract for appointment
// records. Rows are never physically deleted; cancellation is a status
// transition, preserving the audit trail.
type AppointmentRepository interface {
	// Book atomically inserts a booked appointment and returns it with
	// its datastore-assigned id. No partial row survives a failure.
	Book(ctx context.Context, patientID, doctorID int64, date, timeOfDay string) (domain.Appointment, error)

	// ListBookedForPatient returns the patient's booked appointments in
	// no particular order; callers own the ordering.
	ListBookedForPatient(ctx context.Context, patientID int64) ([]domain.Appointment, error)

	// ListForDoctorOn returns the doctor's booked appointments for the
	// given canonical date, ordered ascending by time.
	ListForDoctorOn(ctx context.Context, doctorID int64, date string) ([]domain.Appointment, error)

	// UpdateStatus applies the from-to transition as a single guarded
	// statement and
	// reports whether a row in the expected prior state was updated.
	// A false result with a nil error means the guard rejected the
	// transition or no row matched; nothing was written.
	UpdateStatus(ctx context.Context, appointmentID int64, from, to domain.Status) (bool, error)

	// Cancel transitions a booked appointment to cancelled. The guard
	// and the write are one atomic statement.
	Cancel(ctx context.Context, appointmentID int64) (bool, error)

	// CountByStatus counts the doctor's appointments on the given date,
	// optionally filtered by status ("" means unfiltered).
	CountByStatus(ctx context.Context, doctorID int64, date string, status domain.Status) (int, error)

	// NextForDoctor returns the doctor's earliest booked appointment on
	// the given date, or ErrNotFound when none remain.
	NextForDoctor(ctx context.Context, doctorID int64, date string) (domain.Appointment, error)
}

// DoctorRepository reads doctor records. Doctors are treated as
// effectively immutable for the process lifetime.
type DoctorRepository interface {
	GetByID(ctx context.Context, doctorID int64) (domain.Doctor, error)
	ListAll(ctx context.Context) ([]domain.Doctor, error)
}
