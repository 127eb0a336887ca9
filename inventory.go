package main

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/openwater/charterapi/types"
)

// BookedSeats sums passenger counts over every booking of a departure. The
// total is re-aggregated from the booking rows on each call rather than kept
// as a counter, and must run on the same transaction as any decision that
// depends on it.
func BookedSeats(tx *gorm.DB, scheduledTourID string) (int, error) {
	var out struct{ Total int }
	err := tx.Model(&types.Booking{}).
		Where("scheduled_tour_id = ?", scheduledTourID).
		Select("COALESCE(SUM(passenger_count), 0) AS total").
		Scan(&out).Error
	if err != nil {
		return 0, err
	}
	return out.Total, nil
}

// GetAvailability derives the seat inventory of a departure. The vessel must
// be preloaded. A negative remainder means the oversell invariant was already
// broken and is surfaced as an error, never clamped.
func GetAvailability(tx *gorm.DB, st *types.ScheduledTour) (*types.Availability, error) {
	booked, err := BookedSeats(tx, st.ID)
	if err != nil {
		return nil, err
	}

	available := st.Vessel.Capacity - booked
	if available < 0 {
		return nil, fmt.Errorf("departure %s has %d booked seats against capacity %d", st.ID, booked, st.Vessel.Capacity)
	}

	return &types.Availability{
		TotalCapacity:  st.Vessel.Capacity,
		BookedSeats:    booked,
		AvailableSeats: available,
		IsFullyBooked:  available <= 0,
	}, nil
}

// MaxFutureBookedSeats reports the largest booked-seat total among a vessel's
// future departures. Completed departures never constrain a capacity change.
func MaxFutureBookedSeats(tx *gorm.DB, vesselID string) (int, error) {
	var out struct{ Seats int }
	err := tx.Raw(`
		SELECT COALESCE(MAX(total), 0) AS seats FROM (
			SELECT SUM(b.passenger_count) AS total
			FROM bookings b
			JOIN scheduled_tours s ON s.id = b.scheduled_tour_id
			WHERE s.vessel_id = ? AND s.start_time >= ?
			GROUP BY s.id
		) sums`, vesselID, time.Now()).Scan(&out).Error
	if err != nil {
		return 0, err
	}
	return out.Seats, nil
}
