package domain

import (
	"fmt"
	"time"
)

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
	RentalStatusOverdue   RentalStatus = "overdue"
)

type Rental struct {
	ID         int32  `json:"id"`
	RentalCode string `json:"rental_code"`
	UserID     int32  `json:"user_id"`
	// ScooterID is nil once the scooter has been deleted; the rental
	// record and its rating stay operable without it.
	ScooterID *int32 `json:"scooter_id"`

	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	StartLatitude  float64  `json:"start_latitude"`
	StartLongitude float64  `json:"start_longitude"`
	EndLatitude    *float64 `json:"end_latitude,omitempty"`
	EndLongitude   *float64 `json:"end_longitude,omitempty"`

	Status RentalStatus `json:"status"`

	// DurationMinutes is derived and cached when the rental reaches a
	// terminal state.
	DurationMinutes *int32   `json:"duration_minutes,omitempty"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`

	// Rate snapshot captured at creation. Later changes to the
	// engine-wide defaults never touch existing rentals.
	BaseFee       float64 `json:"base_fee"`
	PerMinuteRate float64 `json:"per_minute_rate"`
	TotalCost     float64 `json:"total_cost"`

	Rating       *int32 `json:"rating,omitempty"`
	Feedback     string `json:"feedback,omitempty"`
	CancelReason string `json:"cancel_reason,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// NewRental builds a rental for the given user and scooter with the
// rate snapshot taken from the caller's pricing configuration.
func NewRental(userID, scooterID int32, startLat, startLon, baseFee, perMinuteRate float64, now time.Time) *Rental {
	sid := scooterID
	return &Rental{
		RentalCode:     fmt.Sprintf("RNT-%s-%d", now.UTC().Format("20060102150405"), userID),
		UserID:         userID,
		ScooterID:      &sid,
		StartTime:      now,
		StartLatitude:  startLat,
		StartLongitude: startLon,
		Status:         RentalStatusPending,
		BaseFee:        baseFee,
		PerMinuteRate:  perMinuteRate,
	}
}

// Duration returns the rental duration in whole minutes, using the
// cached value when the rental has ended and wall-clock time otherwise.
func (r *Rental) Duration(now time.Time) int32 {
	if r.DurationMinutes != nil {
		return *r.DurationMinutes
	}
	end := now
	if r.EndTime != nil {
		end = *r.EndTime
	}
	if end.Before(r.StartTime) {
		return 0
	}
	return int32(end.Sub(r.StartTime).Minutes())
}

// Cost returns base fee plus the per-minute charge. For a rental that
// is still running the elapsed wall-clock time is used as an estimate.
func (r *Rental) Cost(now time.Time) float64 {
	return r.BaseFee + float64(r.Duration(now))*r.PerMinuteRate
}

// IsTerminal reports whether no further lifecycle transitions apply.
func (r *Rental) IsTerminal() bool {
	return r.Status == RentalStatusCompleted || r.Status == RentalStatusCancelled
}

// CanFinish reports whether end or cancel may be applied. An overdue
// rental is still finishable; overdue only flags elapsed time.
func (r *Rental) CanFinish() bool {
	return r.Status == RentalStatusActive || r.Status == RentalStatusOverdue
}
