package types

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "startTime: Start time must be in the future", ErrPastStartTime().Error())
	assert.Equal(t, "Scheduled tour not found", (&NotFoundError{Entity: "Scheduled tour"}).Error())
	assert.Equal(t, "Not enough seats available. Requested: 3, Available: 2", ErrNotEnoughSeats(3, 2).Error())
	assert.Equal(t, `Cannot change vessel: 8 seats already booked, but new vessel "The Blue Fin" only has 6 seats`,
		ErrVesselTooSmall(8, "The Blue Fin", 6).Error())
	assert.Equal(t, "Cannot reduce capacity below 8 seats due to existing bookings",
		ErrCapacityBelowBooked(8, 5).Error())
	assert.Equal(t, "Cannot delete scheduled tour: 2 booking(s) with 7 passenger(s) exist. Please cancel all bookings first.",
		ErrDepartureHasBookings(2, 7).Error())
	assert.Equal(t, "This tour has 3 scheduled instance(s) and cannot be deleted. Please remove all scheduled tours first.",
		ErrTourHasDepartures(3).Error())
	assert.Equal(t, "This vessel has 1 scheduled tour(s) and cannot be deleted. Please remove all scheduled tours first.",
		ErrVesselHasDepartures(1).Error())
}

func TestConflictErrorWindow(t *testing.T) {
	start := time.Date(2026, 7, 14, 13, 0, 0, 0, time.UTC)
	err := &ConflictError{
		VesselName: "Sea Explorer",
		TourTitle:  "Salmon Fishing Charter",
		Start:      start,
		End:        start.Add(4 * time.Hour),
	}
	assert.Equal(t,
		`Vessel conflict: Sea Explorer is already scheduled for "Salmon Fishing Charter" from 2026-07-14T13:00:00Z to 2026-07-14T17:00:00Z`,
		err.Error())
}

func TestErrorsMatchAsTargets(t *testing.T) {
	wrapped := fmt.Errorf("saving departure: %w", ErrNotEnoughSeats(4, 1))

	var capErr *CapacityError
	assert.True(t, errors.As(wrapped, &capErr))
	assert.Equal(t, 4, capErr.Requested)
	assert.Equal(t, 1, capErr.Available)

	var nf *NotFoundError
	assert.False(t, errors.As(wrapped, &nf))
}
