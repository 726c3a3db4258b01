package doctors

import (
	"context"
	"sort"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"medbook/backend/internal/domain"
	"medbook/backend/internal/store"
)

// Directory is a read-through cache over the doctor repository. Doctor
// records are treated as immutable for the process lifetime, so the
// cache is unbounded with no TTL or invalidation. Concurrent lookups of
// the same missing id may both hit the datastore; last write wins with
// equal values.
type Directory struct {
	repo         store.DoctorRepository
	queryTimeout time.Duration
	cache        *xsync.MapOf[int64, domain.Doctor]
}

func NewDirectory(repo store.DoctorRepository, queryTimeout time.Duration) *Directory {
	return &Directory{
		repo:         repo,
		queryTimeout: queryTimeout,
		cache:        xsync.NewMapOf[int64, domain.Doctor](),
	}
}

func (d *Directory) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d.queryTimeout)
}

// GetByID returns the doctor from the cache, falling back to the
// repository on a miss and populating the cache on a found row. A miss
// in the datastore propagates store.ErrNotFound without caching.
func (d *Directory) GetByID(ctx context.Context, doctorID int64) (domain.Doctor, error) {
	if doc, ok := d.cache.Load(doctorID); ok {
		return doc, nil
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	doc, err := d.repo.GetByID(ctx, doctorID)
	if err != nil {
		return domain.Doctor{}, err
	}
	d.cache.Store(doctorID, doc)
	return doc, nil
}

// AllSorted returns every doctor ordered by specialization, then name,
// both ascending ordinal. The sort is stable so duplicate
// (specialization, name) pairs keep their retrieval order. Always a
// fresh read; the listing bypasses the cache.
func (d *Directory) AllSorted(ctx context.Context) ([]domain.Doctor, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	rows, err := d.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Specialization != rows[j].Specialization {
			return rows[i].Specialization < rows[j].Specialization
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}
