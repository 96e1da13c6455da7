package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, rental_code, user_id, scooter_id, start_time, end_time, start_latitude, start_longitude, end_latitude, end_longitude, status, duration_minutes, distance_km, base_fee, per_minute_rate, total_cost, rating, feedback, cancel_reason, created_on, updated_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (rental_code, user_id, scooter_id, start_time, start_latitude, start_longitude, status, base_fee, per_minute_rate, total_cost, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return q(ctx, r.db).QueryRowContext(ctx, query,
		rt.RentalCode, rt.UserID, rt.ScooterID, rt.StartTime, rt.StartLatitude, rt.StartLongitude,
		rt.Status, rt.BaseFee, rt.PerMinuteRate, rt.TotalCost, now, now,
	).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals WHERE id = $1`, rentalColumns)
	return scanRentalRow(q(ctx, r.db).QueryRowContext(ctx, query, id))
}

func (r *rentalRepository) GetByCode(ctx context.Context, code string) (*domain.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals WHERE rental_code = $1`, rentalColumns)
	return scanRentalRow(q(ctx, r.db).QueryRowContext(ctx, query, code))
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET scooter_id=$1, end_time=$2, end_latitude=$3, end_longitude=$4, status=$5, duration_minutes=$6, distance_km=$7, total_cost=$8, rating=$9, feedback=$10, cancel_reason=$11, updated_on=$12 WHERE id=$13`
	res, err := q(ctx, r.db).ExecContext(ctx, query,
		rt.ScooterID, rt.EndTime, rt.EndLatitude, rt.EndLongitude, rt.Status, rt.DurationMinutes,
		rt.DistanceKm, rt.TotalCost, rt.Rating, rt.Feedback, rt.CancelReason, time.Now(), rt.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: rental %d", domain.ErrNotFound, rt.ID)
	}
	return nil
}

func (r *rentalRepository) FindActiveByUser(ctx context.Context, userID int32) (*domain.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals WHERE user_id = $1 AND status = $2`, rentalColumns)
	rt, err := scanRentalRow(q(ctx, r.db).QueryRowContext(ctx, query, userID, domain.RentalStatusActive))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return rt, err
}

func (r *rentalRepository) FindActiveByScooter(ctx context.Context, scooterID int32) (*domain.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals WHERE scooter_id = $1 AND status = $2`, rentalColumns)
	rt, err := scanRentalRow(q(ctx, r.db).QueryRowContext(ctx, query, scooterID, domain.RentalStatusActive))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return rt, err
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	where := `WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		where += ` AND status = $2`
		args = append(args, status)
	}

	var count int32
	if err := q(ctx, r.db).QueryRowContext(ctx, `SELECT count(*) FROM rentals `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM rentals %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d`,
		rentalColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := q(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rentals, err := scanRentals(rows)
	return rentals, count, err
}

func (r *rentalRepository) ListActiveStartedBefore(ctx context.Context, cutoff time.Time) ([]domain.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals WHERE status = $1 AND start_time < $2`, rentalColumns)
	rows, err := q(ctx, r.db).QueryContext(ctx, query, domain.RentalStatusActive, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRentals(rows)
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus, limit int32) ([]domain.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals WHERE status = $1 ORDER BY start_time LIMIT $2`, rentalColumns)
	rows, err := q(ctx, r.db).QueryContext(ctx, query, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRentals(rows)
}

func (r *rentalRepository) DetachScooter(ctx context.Context, scooterID int32) error {
	_, err := q(ctx, r.db).ExecContext(ctx,
		`UPDATE rentals SET scooter_id = NULL, updated_on = $1 WHERE scooter_id = $2`, time.Now(), scooterID)
	return err
}

func scanRentalRow(row *sql.Row) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.RentalCode, &rt.UserID, &rt.ScooterID, &rt.StartTime, &rt.EndTime,
		&rt.StartLatitude, &rt.StartLongitude, &rt.EndLatitude, &rt.EndLongitude, &rt.Status,
		&rt.DurationMinutes, &rt.DistanceKm, &rt.BaseFee, &rt.PerMinuteRate, &rt.TotalCost,
		&rt.Rating, &rt.Feedback, &rt.CancelReason, &rt.CreatedOn, &rt.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: rental", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func scanRentals(rows *sql.Rows) ([]domain.Rental, error) {
	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.RentalCode, &rt.UserID, &rt.ScooterID, &rt.StartTime, &rt.EndTime,
			&rt.StartLatitude, &rt.StartLongitude, &rt.EndLatitude, &rt.EndLongitude, &rt.Status,
			&rt.DurationMinutes, &rt.DistanceKm, &rt.BaseFee, &rt.PerMinuteRate, &rt.TotalCost,
			&rt.Rating, &rt.Feedback, &rt.CancelReason, &rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}
