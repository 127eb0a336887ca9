package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/openwater/charterapi/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	// a single pooled connection keeps the in-memory database shared across
	// goroutines and serializes concurrent transactions
	db.DB().SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&types.Operator{}, &types.Vessel{}, &types.Tour{},
		&types.ScheduledTour{}, &types.Booking{}).Error)
	t.Cleanup(func() { db.Close() })
	return db
}

type fixtures struct {
	op       types.Operator
	blueFin  types.Vessel // capacity 6
	explorer types.Vessel // capacity 12
	whales   types.Tour   // 180 minutes
	fishing  types.Tour   // 240 minutes
	sunset   types.Tour   // 60 minutes
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()

	fx := fixtures{
		op: types.Operator{
			Name:  "Campbell River Charters",
			Slug:  "campbell-river-charters",
			Email: "info@campbellrivercharters.com",
		},
	}
	require.NoError(t, db.Create(&fx.op).Error)

	fx.blueFin = types.Vessel{OperatorID: fx.op.ID, Name: "The Blue Fin", Class: types.FishingBoat, Capacity: 6}
	fx.explorer = types.Vessel{OperatorID: fx.op.ID, Name: "Sea Explorer", Class: types.CoveredVessel, Capacity: 12}
	require.NoError(t, db.Create(&fx.blueFin).Error)
	require.NoError(t, db.Create(&fx.explorer).Error)

	fx.whales = types.Tour{OperatorID: fx.op.ID, Title: "3-Hour Whale Watching Adventure",
		Price: decimal.NewFromFloat(89.99), DurationInMinutes: 180}
	fx.fishing = types.Tour{OperatorID: fx.op.ID, Title: "Salmon Fishing Charter",
		Price: decimal.NewFromFloat(150.00), DurationInMinutes: 240}
	fx.sunset = types.Tour{OperatorID: fx.op.ID, Title: "Sunset Wildlife Cruise",
		Price: decimal.NewFromFloat(65.00), DurationInMinutes: 60}
	require.NoError(t, db.Create(&fx.whales).Error)
	require.NoError(t, db.Create(&fx.fishing).Error)
	require.NoError(t, db.Create(&fx.sunset).Error)

	return fx
}

// tomorrowAt returns a strictly-future timestamp at a fixed clock time.
func tomorrowAt(hour, min int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, 1)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.UTC)
}

func mustSchedule(t *testing.T, db *gorm.DB, operatorID string, tour types.Tour, vessel types.Vessel, start time.Time) types.ScheduledTour {
	t.Helper()
	st, err := CreateScheduledTour(db, operatorID, ScheduleRequest{
		TourID: tour.ID, VesselID: vessel.ID, StartTime: start,
	})
	require.NoError(t, err)
	return *st
}

var bookingSeq int

func mustBook(t *testing.T, db *gorm.DB, scheduledTourID string, seats int) types.Booking {
	t.Helper()
	bookingSeq++
	b := types.Booking{
		ScheduledTourID: scheduledTourID,
		PassengerCount:  seats,
		CustomerName:    fmt.Sprintf("Passenger %d", bookingSeq),
		CustomerEmail:   fmt.Sprintf("passenger%d@example.com", bookingSeq),
		Confirmation:    fmt.Sprintf("CONF-%d", bookingSeq),
	}
	require.NoError(t, db.Create(&b).Error)
	return b
}
