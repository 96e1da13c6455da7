package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ScooterStatus string

const (
	ScooterStatusAvailable   ScooterStatus = "available"
	ScooterStatusInUse       ScooterStatus = "in_use"
	ScooterStatusMaintenance ScooterStatus = "maintenance"
	ScooterStatusOffline     ScooterStatus = "offline"
)

// Valid reports whether s is one of the four allowed operational states.
func (s ScooterStatus) Valid() bool {
	switch s {
	case ScooterStatusAvailable, ScooterStatusInUse, ScooterStatusMaintenance, ScooterStatusOffline:
		return true
	}
	return false
}

// MinRentableBattery is the battery percentage a scooter must exceed to be rented.
const MinRentableBattery = 15

// LowBatteryThreshold is the battery percentage below which a scooter
// is flagged for maintenance.
const LowBatteryThreshold = 20

// MaintenanceIntervalDays is the service interval after which a scooter
// is reported as due for maintenance.
const MaintenanceIntervalDays = 30

type Scooter struct {
	ID              int32         `json:"id"`
	Identifier      string        `json:"identifier"`
	QRCode          string        `json:"qr_code,omitempty"`
	Model           string        `json:"model"`
	Brand           string        `json:"brand"`
	LicensePlate    string        `json:"license_plate,omitempty"`
	Latitude        float64       `json:"latitude"`
	Longitude       float64       `json:"longitude"`
	Address         string        `json:"address,omitempty"`
	Status          ScooterStatus `json:"status"`
	BatteryLevel    int32         `json:"battery_level"`
	MaxSpeed        int32         `json:"max_speed"`
	RangeKm         int32         `json:"range_km"`
	ProviderID      int32         `json:"provider_id"`
	CreatedOn       time.Time     `json:"created_on"`
	UpdatedOn       time.Time     `json:"updated_on"`
	LastMaintenance *time.Time    `json:"last_maintenance,omitempty"`
}

// NewScooter builds a scooter with the upper-cased identifier and a
// freshly generated QR payload. Battery defaults to full.
func NewScooter(identifier, model, brand string, lat, lon float64, providerID int32) *Scooter {
	id := strings.ToUpper(identifier)
	return &Scooter{
		Identifier:   id,
		QRCode:       fmt.Sprintf("SR-%s-%s", id, uuid.NewString()),
		Model:        model,
		Brand:        brand,
		Latitude:     lat,
		Longitude:    lon,
		Status:       ScooterStatusAvailable,
		BatteryLevel: 100,
		MaxSpeed:     25,
		RangeKm:      30,
		ProviderID:   providerID,
	}
}

// IsRentable reports whether the scooter can be handed out right now.
func (s *Scooter) IsRentable() bool {
	return s.Status == ScooterStatusAvailable && s.BatteryLevel > MinRentableBattery
}

// NeedsMaintenance reports whether the scooter should be pulled for
// service: battery below 20%, or more than the service interval since
// the last recorded maintenance.
func (s *Scooter) NeedsMaintenance(now time.Time) bool {
	if s.BatteryLevel < LowBatteryThreshold {
		return true
	}
	if s.LastMaintenance != nil {
		return now.Sub(*s.LastMaintenance) > MaintenanceIntervalDays*24*time.Hour
	}
	return false
}
