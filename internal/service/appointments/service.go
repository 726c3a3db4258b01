package appointments

import (
	"context"
	"errors"
	"sync"
	"time"

	"medbook/backend/internal/domain"
	"medbook/backend/internal/store"
)

const dateLayout = "2006-01-02"

// Service is the engine facade over the appointment repository. It owns
// the in-process ordering of patient listings, the fixed-width split of
// the canonical date-time on booking, the monotone status-transition
// guard, and the cancellation history trail.
//
// Safe for concurrent use by independent callers; every repository call
// runs under its own timeout-bounded context.
type Service struct {
	repo         store.AppointmentRepository
	queryTimeout time.Duration
	now          func() time.Time

	mu            sync.Mutex
	cancellations []int64
}

func NewService(repo store.AppointmentRepository, queryTimeout time.Duration) *Service {
	return &Service{
		repo:         repo,
		queryTimeout: queryTimeout,
		now:          time.Now,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

func (s *Service) today() string {
	return s.now().Format(dateLayout)
}

// BookNew creates a booked appointment from a caller-validated
// canonical "YYYY-MM-DD HH:MM" value. The insert and id retrieval are
// one atomic unit; on failure no partial row remains and nil is
// returned with the error.
func (s *Service) BookNew(ctx context.Context, patientID, doctorID int64, dateTime string) (*domain.Appointment, error) {
	date, timeOfDay := domain.SplitDateTime(dateTime)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	appt, err := s.repo.Book(ctx, patientID, doctorID, date, timeOfDay)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// SortedForPatient returns the patient's booked appointments soonest
// first. Ordering happens in-process through a priority heap on the
// canonical date-time, keeping it centralized and testable independent
// of the datastore's ORDER BY.
func (s *Service) SortedForPatient(ctx context.Context, patientID int64) ([]domain.Appointment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.repo.ListBookedForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	h := domain.NewAppointmentHeap()
	for _, a := range rows {
		h.Push(a)
	}

	out := make([]domain.Appointment, 0, h.Len())
	for {
		a, ok := h.Pop()
		if !ok {
			break
		}
		out = append(out, a)
	}
	return out, nil
}

// ForDoctorToday returns the doctor's booked appointments for the
// current date, ascending by time.
func (s *Service) ForDoctorToday(ctx context.Context, doctorID int64) ([]domain.Appointment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.ListForDoctorOn(ctx, doctorID, s.today())
}

// ListFor dispatches on the caller's verified role: a patient sees
// their booked appointments soonest first, a doctor sees today's
// schedule. The role was decided once at the authentication boundary.
func (s *Service) ListFor(ctx context.Context, ident domain.Identity) ([]domain.Appointment, error) {
	switch ident.Role {
	case domain.RoleDoctor:
		return s.ForDoctorToday(ctx, ident.ID)
	case domain.RolePatient:
		return s.SortedForPatient(ctx, ident.ID)
	}
	return nil, errors.New("unknown caller role")
}

// UpdateStatus applies a monotone transition. Targets unreachable from
// the booked state are rejected as false without touching the
// datastore; for legal targets the prior-state guard rides inside the
// single update statement.
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, to domain.Status) (bool, error) {
	if !domain.StatusBooked.CanTransitionTo(to) {
		return false, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.UpdateStatus(ctx, appointmentID, domain.StatusBooked, to)
}

// Complete marks a booked appointment completed.
func (s *Service) Complete(ctx context.Context, appointmentID int64) (bool, error) {
	return s.UpdateStatus(ctx, appointmentID, domain.StatusCompleted)
}

// Cancel transitions a booked appointment to cancelled and, on success,
// records the id in the FIFO cancellation history. The history is a
// secondary bookkeeping trail; the datastore stays the source of truth.
func (s *Service) Cancel(ctx context.Context, appointmentID int64) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.Cancel(ctx, appointmentID)
	if err != nil {
		return false, err
	}
	if ok {
		s.mu.Lock()
		s.cancellations = append(s.cancellations, appointmentID)
		s.mu.Unlock()
	}
	return ok, nil
}

// DrainCancellations returns and clears the recorded cancellation ids
// in the order the cancellations succeeded.
func (s *Service) DrainCancellations() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.cancellations
	s.cancellations = nil
	return out
}

// CountByStatusToday counts the doctor's appointments for the current
// date; an empty status means unfiltered.
func (s *Service) CountByStatusToday(ctx context.Context, doctorID int64, status domain.Status) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.CountByStatus(ctx, doctorID, s.today(), status)
}

// NextForDoctorToday returns today's earliest booked appointment for
// the doctor, or nil when none remain.
func (s *Service) NextForDoctorToday(ctx context.Context, doctorID int64) (*domain.Appointment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	appt, err := s.repo.NextForDoctor(ctx, doctorID, s.today())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appt, nil
}
