package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"medbook/backend/internal/domain"
	"medbook/backend/internal/store"
)

type DoctorRepo struct {
	db *bun.DB
}

func NewDoctorRepo(db *bun.DB) *DoctorRepo {
	return &DoctorRepo{db: db}
}

func (r *DoctorRepo) GetByID(ctx context.Context, doctorID int64) (domain.Doctor, error) {
	var m domain.Doctor
	err := r.db.NewSelect().
		Model(&m).
		Where("doctor_id = ?", doctorID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Doctor{}, store.ErrNotFound
		}
		return domain.Doctor{}, classifyError(err)
	}
	return m, nil
}

func (r *DoctorRepo) ListAll(ctx context.Context) ([]domain.Doctor, error) {
	var rows []domain.Doctor
	err := r.db.NewSelect().
		Model(&rows).
		Scan(ctx)
	if err != nil {
		return nil, classifyError(err)
	}
	return rows, nil
}
