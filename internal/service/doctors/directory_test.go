package doctors

import (
	"context"
	"errors"
	"testing"
	"time"

	"medbook/backend/internal/domain"
	"medbook/backend/internal/store"
)

type countingRepo struct {
	getByIDCalls int
	listAllCalls int

	getByIDFn func(ctx context.Context, doctorID int64) (domain.Doctor, error)
	listAllFn func(ctx context.Context) ([]domain.Doctor, error)
}

func (r *countingRepo) GetByID(ctx context.Context, doctorID int64) (domain.Doctor, error) {
	r.getByIDCalls++
	if r.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return r.getByIDFn(ctx, doctorID)
}

func (r *countingRepo) ListAll(ctx context.Context) ([]domain.Doctor, error) {
	r.listAllCalls++
	if r.listAllFn == nil {
		panic("ListAll not configured")
	}
	return r.listAllFn(ctx)
}

func TestGetByID_SecondCallIsACacheHit(t *testing.T) {
	repo := &countingRepo{
		getByIDFn: func(ctx context.Context, doctorID int64) (domain.Doctor, error) {
			return domain.Doctor{ID: doctorID, Name: "Grey", Specialization: "Cardiology", Contact: "x100"}, nil
		},
	}
	dir := NewDirectory(repo, time.Second)

	first, err := dir.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	second, err := dir.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}

	if first != second {
		t.Fatalf("cached value differs: %+v vs %+v", first, second)
	}
	if repo.getByIDCalls != 1 {
		t.Fatalf("datastore reads = %d, want 1", repo.getByIDCalls)
	}
}

func TestGetByID_NotFoundIsNotCached(t *testing.T) {
	repo := &countingRepo{
		getByIDFn: func(ctx context.Context, doctorID int64) (domain.Doctor, error) {
			return domain.Doctor{}, store.ErrNotFound
		},
	}
	dir := NewDirectory(repo, time.Second)

	for i := 0; i < 2; i++ {
		_, err := dir.GetByID(context.Background(), 404)
		if !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("error = %v, want %v", err, store.ErrNotFound)
		}
	}
	if repo.getByIDCalls != 2 {
		t.Fatalf("datastore reads = %d, want 2 (misses must not populate the cache)", repo.getByIDCalls)
	}
}

func TestAllSorted_TwoLevelStableOrder(t *testing.T) {
	repo := &countingRepo{
		listAllFn: func(ctx context.Context) ([]domain.Doctor, error) {
			return []domain.Doctor{
				{ID: 1, Name: "Bob", Specialization: "Cardiology"},
				{ID: 2, Name: "Alice", Specialization: "Cardiology"},
				{ID: 3, Name: "Zed", Specialization: "Neurology"},
			}, nil
		},
	}
	dir := NewDirectory(repo, time.Second)

	out, err := dir.AllSorted(context.Background())
	if err != nil {
		t.Fatalf("AllSorted error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
	wantNames := []string{"Alice", "Bob", "Zed"}
	for i, name := range wantNames {
		if out[i].Name != name {
			t.Fatalf("out[%d].Name = %q, want %q", i, out[i].Name, name)
		}
	}
}

func TestAllSorted_DuplicatePairsKeepRetrievalOrder(t *testing.T) {
	repo := &countingRepo{
		listAllFn: func(ctx context.Context) ([]domain.Doctor, error) {
			return []domain.Doctor{
				{ID: 10, Name: "Kim", Specialization: "Oncology"},
				{ID: 11, Name: "Kim", Specialization: "Oncology"},
				{ID: 12, Name: "Kim", Specialization: "Oncology"},
			}, nil
		},
	}
	dir := NewDirectory(repo, time.Second)

	out, err := dir.AllSorted(context.Background())
	if err != nil {
		t.Fatalf("AllSorted error: %v", err)
	}
	for i, want := range []int64{10, 11, 12} {
		if out[i].ID != want {
			t.Fatalf("out[%d].ID = %d, want %d", i, out[i].ID, want)
		}
	}
}

func TestAllSorted_PropagatesStoreErrors(t *testing.T) {
	wantErr := &store.ConnectionError{Err: errors.New("dial refused")}
	repo := &countingRepo{
		listAllFn: func(ctx context.Context) ([]domain.Doctor, error) {
			return nil, wantErr
		},
	}
	dir := NewDirectory(repo, time.Second)

	_, err := dir.AllSorted(context.Background())
	var cErr *store.ConnectionError
	if !errors.As(err, &cErr) {
		t.Fatalf("error type = %T, want *store.ConnectionError", err)
	}
}
