package dashboard

import (
	"context"

	"medbook/backend/internal/domain"
)

type appointmentStats interface {
	CountByStatusToday(ctx context.Context, doctorID int64, status domain.Status) (int, error)
	NextForDoctorToday(ctx context.Context, doctorID int64) (*domain.Appointment, error)
}

// Summary is one doctor's day at a glance: appointments still booked,
// appointments completed, and the soonest remaining appointment (nil
// when none remain).
type Summary struct {
	Scheduled int
	Completed int
	Next      *domain.Appointment
}

// Aggregator composes summaries from fresh reads. No caching, no side
// effects beyond the reads it performs.
type Aggregator struct {
	stats appointmentStats
}

func NewAggregator(stats appointmentStats) *Aggregator {
	return &Aggregator{stats: stats}
}

func (a *Aggregator) Summary(ctx context.Context, doctorID int64) (Summary, error) {
	scheduled, err := a.stats.CountByStatusToday(ctx, doctorID, domain.StatusBooked)
	if err != nil {
		return Summary{}, err
	}
	completed, err := a.stats.CountByStatusToday(ctx, doctorID, domain.StatusCompleted)
	if err != nil {
		return Summary{}, err
	}
	next, err := a.stats.NextForDoctorToday(ctx, doctorID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Scheduled: scheduled, Completed: completed, Next: next}, nil
}
