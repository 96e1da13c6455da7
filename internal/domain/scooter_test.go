package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewScooter(t *testing.T) {
	sc := NewScooter("sr-0042", "Mi Pro 2", "Xiaomi", 47.3769, 8.5417, 3)

	assert.Equal(t, "SR-0042", sc.Identifier)
	assert.True(t, strings.HasPrefix(sc.QRCode, "SR-SR-0042-"))
	assert.Equal(t, ScooterStatusAvailable, sc.Status)
	assert.Equal(t, int32(100), sc.BatteryLevel)
	assert.Equal(t, int32(3), sc.ProviderID)
}

func TestScooter_IsRentable(t *testing.T) {
	sc := &Scooter{Status: ScooterStatusAvailable, BatteryLevel: 80}
	assert.True(t, sc.IsRentable())

	t.Run("battery at the floor is not rentable", func(t *testing.T) {
		sc := &Scooter{Status: ScooterStatusAvailable, BatteryLevel: MinRentableBattery}
		assert.False(t, sc.IsRentable())
	})

	t.Run("one above the floor is rentable", func(t *testing.T) {
		sc := &Scooter{Status: ScooterStatusAvailable, BatteryLevel: MinRentableBattery + 1}
		assert.True(t, sc.IsRentable())
	})

	t.Run("non-available statuses are never rentable", func(t *testing.T) {
		for _, status := range []ScooterStatus{ScooterStatusInUse, ScooterStatusMaintenance, ScooterStatusOffline} {
			sc := &Scooter{Status: status, BatteryLevel: 100}
			assert.False(t, sc.IsRentable(), "status %s", status)
		}
	})
}

func TestScooter_NeedsMaintenance(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	recent := now.Add(-24 * time.Hour)
	stale := now.Add(-31 * 24 * time.Hour)

	t.Run("low battery", func(t *testing.T) {
		sc := &Scooter{BatteryLevel: LowBatteryThreshold - 1, LastMaintenance: &recent}
		assert.True(t, sc.NeedsMaintenance(now))
	})

	t.Run("battery at threshold is fine", func(t *testing.T) {
		sc := &Scooter{BatteryLevel: LowBatteryThreshold, LastMaintenance: &recent}
		assert.False(t, sc.NeedsMaintenance(now))
	})

	t.Run("overdue service interval", func(t *testing.T) {
		sc := &Scooter{BatteryLevel: 90, LastMaintenance: &stale}
		assert.True(t, sc.NeedsMaintenance(now))
	})

	t.Run("never serviced relies on battery alone", func(t *testing.T) {
		sc := &Scooter{BatteryLevel: 90}
		assert.False(t, sc.NeedsMaintenance(now))
	})
}

func TestScooterStatus_Valid(t *testing.T) {
	assert.True(t, ScooterStatusAvailable.Valid())
	assert.True(t, ScooterStatusOffline.Valid())
	assert.False(t, ScooterStatus("broken").Valid())
	assert.False(t, ScooterStatus("").Valid())
}
