package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/geo"
	"scootrapid-backend/internal/repository"
)

type scooterRepository struct {
	db *sql.DB
}

func NewScooterRepository(db *sql.DB) repository.ScooterRepository {
	return &scooterRepository{db: db}
}

const scooterColumns = `id, identifier, qr_code, model, brand, license_plate, latitude, longitude, address, status, battery_level, max_speed, range_km, provider_id, created_on, updated_on, last_maintenance`

func (r *scooterRepository) Create(ctx context.Context, sc *domain.Scooter) error {
	query := `INSERT INTO scooters (identifier, qr_code, model, brand, license_plate, latitude, longitude, address, status, battery_level, max_speed, range_km, provider_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	now := time.Now()
	return q(ctx, r.db).QueryRowContext(ctx, query,
		sc.Identifier, sc.QRCode, sc.Model, sc.Brand, sc.LicensePlate, sc.Latitude, sc.Longitude, sc.Address,
		sc.Status, sc.BatteryLevel, sc.MaxSpeed, sc.RangeKm, sc.ProviderID, now, now,
	).Scan(&sc.ID)
}

func (r *scooterRepository) GetByID(ctx context.Context, id int32) (*domain.Scooter, error) {
	query := fmt.Sprintf(`SELECT %s FROM scooters WHERE id = $1`, scooterColumns)
	return scanScooterRow(q(ctx, r.db).QueryRowContext(ctx, query, id))
}

func (r *scooterRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.Scooter, error) {
	query := fmt.Sprintf(`SELECT %s FROM scooters WHERE identifier = $1`, scooterColumns)
	return scanScooterRow(q(ctx, r.db).QueryRowContext(ctx, query, identifier))
}

func (r *scooterRepository) Update(ctx context.Context, sc *domain.Scooter) error {
	query := `UPDATE scooters SET identifier=$1, license_plate=$2, model=$3, brand=$4, latitude=$5, longitude=$6, address=$7, status=$8, battery_level=$9, max_speed=$10, range_km=$11, last_maintenance=$12, updated_on=$13 WHERE id=$14`
	res, err := q(ctx, r.db).ExecContext(ctx, query,
		sc.Identifier, sc.LicensePlate, sc.Model, sc.Brand, sc.Latitude, sc.Longitude, sc.Address,
		sc.Status, sc.BatteryLevel, sc.MaxSpeed, sc.RangeKm, sc.LastMaintenance, time.Now(), sc.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: scooter %d", domain.ErrNotFound, sc.ID)
	}
	return nil
}

func (r *scooterRepository) Delete(ctx context.Context, id int32) error {
	res, err := q(ctx, r.db).ExecContext(ctx, `DELETE FROM scooters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: scooter %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *scooterRepository) ListByProvider(ctx context.Context, providerID int32, page, pageSize int32) ([]domain.Scooter, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := q(ctx, r.db).QueryRowContext(ctx, `SELECT count(*) FROM scooters WHERE provider_id = $1`, providerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM scooters WHERE provider_id = $1 ORDER BY identifier LIMIT $2 OFFSET $3`, scooterColumns)
	rows, err := q(ctx, r.db).QueryContext(ctx, query, providerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	scooters, err := scanScooters(rows)
	return scooters, count, err
}

func (r *scooterRepository) ListAvailable(ctx context.Context, limit int32) ([]domain.Scooter, error) {
	query := fmt.Sprintf(`SELECT %s FROM scooters WHERE status = $1 AND battery_level > $2 LIMIT $3`, scooterColumns)
	rows, err := q(ctx, r.db).QueryContext(ctx, query, domain.ScooterStatusAvailable, domain.MinRentableBattery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScooters(rows)
}

func (r *scooterRepository) ListAvailableInBox(ctx context.Context, box geo.BoundingBox, limit int32) ([]domain.Scooter, error) {
	query := fmt.Sprintf(`SELECT %s FROM scooters
	        WHERE status = $1
	          AND latitude BETWEEN $2 AND $3
	          AND longitude BETWEEN $4 AND $5
	        LIMIT $6`, scooterColumns)
	rows, err := q(ctx, r.db).QueryContext(ctx, query,
		domain.ScooterStatusAvailable, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScooters(rows)
}

func (r *scooterRepository) ListNeedingMaintenance(ctx context.Context, now time.Time, limit int32) ([]domain.Scooter, error) {
	serviceCutoff := now.Add(-domain.MaintenanceIntervalDays * 24 * time.Hour)
	query := fmt.Sprintf(`SELECT %s FROM scooters
	        WHERE status != $1
	          AND (battery_level < $2 OR last_maintenance < $3)
	        ORDER BY battery_level LIMIT $4`, scooterColumns)
	rows, err := q(ctx, r.db).QueryContext(ctx, query,
		domain.ScooterStatusOffline, domain.LowBatteryThreshold, serviceCutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScooters(rows)
}

func scanScooterRow(row *sql.Row) (*domain.Scooter, error) {
	sc := &domain.Scooter{}
	err := row.Scan(&sc.ID, &sc.Identifier, &sc.QRCode, &sc.Model, &sc.Brand, &sc.LicensePlate,
		&sc.Latitude, &sc.Longitude, &sc.Address, &sc.Status, &sc.BatteryLevel, &sc.MaxSpeed,
		&sc.RangeKm, &sc.ProviderID, &sc.CreatedOn, &sc.UpdatedOn, &sc.LastMaintenance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: scooter", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func scanScooters(rows *sql.Rows) ([]domain.Scooter, error) {
	var scooters []domain.Scooter
	for rows.Next() {
		var sc domain.Scooter
		if err := rows.Scan(&sc.ID, &sc.Identifier, &sc.QRCode, &sc.Model, &sc.Brand, &sc.LicensePlate,
			&sc.Latitude, &sc.Longitude, &sc.Address, &sc.Status, &sc.BatteryLevel, &sc.MaxSpeed,
			&sc.RangeKm, &sc.ProviderID, &sc.CreatedOn, &sc.UpdatedOn, &sc.LastMaintenance); err != nil {
			return nil, err
		}
		scooters = append(scooters, sc)
	}
	return scooters, rows.Err()
}
