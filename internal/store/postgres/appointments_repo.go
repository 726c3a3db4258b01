package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"medbook/backend/internal/domain"
	"medbook/backend/internal/store"
)

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

// Book inserts the appointment inside a transaction and scans back the
// generated id. If the insert fails or the id cannot be retrieved, the
// transaction rolls back and no partial row remains visible. The
// connection returns to the pool in its default mode on every path.
func (r *AppointmentRepo) Book(ctx context.Context, patientID, doctorID int64, date, timeOfDay string) (domain.Appointment, error) {
	m := domain.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      timeOfDay,
		Status:    domain.StatusBooked,
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewInsert().Model(&m).Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return errors.New("insert affected no rows")
		}
		if m.ID == 0 {
			return errors.New("generated appointment id not returned")
		}
		return nil
	})
	if err != nil {
		return domain.Appointment{}, classifyError(err)
	}
	return m, nil
}

func (r *AppointmentRepo) ListBookedForPatient(ctx context.Context, patientID int64) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	err := r.db.NewSelect().
		Model(&rows).
		Where("patient_id = ?", patientID).
		Where("status = ?", domain.StatusBooked).
		Scan(ctx)
	if err != nil {
		return nil, classifyError(err)
	}
	return rows, nil
}

func (r *AppointmentRepo) ListForDoctorOn(ctx context.Context, doctorID int64, date string) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	err := r.db.NewSelect().
		Model(&rows).
		Where("doctor_id = ?", doctorID).
		Where("appointment_date = ?", date).
		Where("status = ?", domain.StatusBooked).
		OrderExpr("appointment_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, classifyError(err)
	}
	return rows, nil
}

// UpdateStatus carries the expected prior state in the statement itself
// so the guard and the write are atomic. Zero rows affected reports
// false without an error: either no such row, or the row was not in the
// expected state.
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, appointmentID int64, from, to domain.Status) (bool, error) {
	res, err := r.db.NewUpdate().
		Model((*domain.Appointment)(nil)).
		Set("status = ?", to).
		Where("appointment_id = ?", appointmentID).
		Where("status = ?", from).
		Exec(ctx)
	if err != nil {
		return false, classifyError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, classifyError(err)
	}
	return affected > 0, nil
}

func (r *AppointmentRepo) Cancel(ctx context.Context, appointmentID int64) (bool, error) {
	return r.UpdateStatus(ctx, appointmentID, domain.StatusBooked, domain.StatusCancelled)
}

func (r *AppointmentRepo) CountByStatus(ctx context.Context, doctorID int64, date string, status domain.Status) (int, error) {
	q := r.db.NewSelect().
		Model((*domain.Appointment)(nil)).
		Where("doctor_id = ?", doctorID).
		Where("appointment_date = ?", date)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, classifyError(err)
	}
	return count, nil
}

func (r *AppointmentRepo) NextForDoctor(ctx context.Context, doctorID int64, date string) (domain.Appointment, error) {
	var m domain.Appointment
	err := r.db.NewSelect().
		Model(&m).
		Where("doctor_id = ?", doctorID).
		Where("appointment_date = ?", date).
		Where("status = ?", domain.StatusBooked).
		OrderExpr("appointment_time ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, classifyError(err)
	}
	return m, nil
}
