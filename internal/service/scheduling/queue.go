package scheduling

import (
	"context"
	"errors"

	"medbook/backend/internal/domain"
)

// ErrNotCompleted reports that the completion write for a dequeued
// appointment did not take effect: the row was no longer in the booked
// state. The appointment has been reinserted into the queue.
var ErrNotCompleted = errors.New("appointment not completed")

type appointmentSource interface {
	ForDoctorToday(ctx context.Context, doctorID int64) ([]domain.Appointment, error)
	Complete(ctx context.Context, appointmentID int64) (bool, error)
}

// Queue is one doctor's day queue: their booked appointments ordered by
// canonical date-time, soonest first. It is a transient, derived view;
// the datastore stays the system of record.
//
// A Queue belongs to a single logical owner (one doctor session) and is
// not safe for concurrent use. It never detects day rollover on its
// own: callers compare LoadedFor against the current date and call Load
// again when the operating day changes.
type Queue struct {
	svc      appointmentSource
	doctorID int64
	heap     *domain.AppointmentHeap

	// LoadedFor is the canonical date of the appointments last loaded,
	// empty before the first Load or when the last load found none.
	LoadedFor string
}

func NewQueue(svc appointmentSource, doctorID int64) *Queue {
	return &Queue{
		svc:      svc,
		doctorID: doctorID,
		heap:     domain.NewAppointmentHeap(),
	}
}

// Load discards any existing contents and repopulates from the
// doctor's booked appointments for the current date. Ties in date-time
// keep their retrieval order within this load.
func (q *Queue) Load(ctx context.Context) error {
	rows, err := q.svc.ForDoctorToday(ctx, q.doctorID)
	if err != nil {
		return err
	}

	q.heap.Clear()
	q.LoadedFor = ""
	for _, a := range rows {
		q.heap.Push(a)
	}
	if len(rows) > 0 {
		q.LoadedFor = rows[0].Date
	}
	return nil
}

func (q *Queue) Len() int { return q.heap.Len() }

// PeekNext returns the earliest remaining appointment without removing
// it; the second result is false when the queue is empty.
func (q *Queue) PeekNext() (domain.Appointment, bool) {
	return q.heap.Peek()
}

// DequeueNext removes the earliest remaining appointment and persists
// its completion. The removal is only confirmed once the write
// succeeds: on any persistence failure the appointment is reinserted at
// its original position and the failure is reported, so the in-memory
// and persisted views never permanently diverge.
func (q *Queue) DequeueNext(ctx context.Context) (domain.Appointment, bool, error) {
	appt, ok := q.heap.Pop()
	if !ok {
		return domain.Appointment{}, false, nil
	}

	completed, err := q.svc.Complete(ctx, appt.ID)
	if err != nil {
		q.heap.Reinsert(appt)
		return domain.Appointment{}, false, err
	}
	if !completed {
		q.heap.Reinsert(appt)
		return domain.Appointment{}, false, ErrNotCompleted
	}

	appt.Status = domain.StatusCompleted
	return appt, true, nil
}
