package types

import (
	"fmt"
	"time"
)

// ValidationError rejects malformed input before storage is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// ErrPastStartTime is the rejection for departures scheduled at or before now.
func ErrPastStartTime() *ValidationError {
	return &ValidationError{Field: "startTime", Reason: "Start time must be in the future"}
}

// NotFoundError means a referenced entity does not exist for this operator.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// CapacityError rejects a write that would oversell a vessel or strand
// passengers already booked on it.
type CapacityError struct {
	Requested int
	Available int
	message   string
}

func (e *CapacityError) Error() string {
	return e.message
}

func ErrNotEnoughSeats(requested, available int) *CapacityError {
	return &CapacityError{
		Requested: requested,
		Available: available,
		message:   fmt.Sprintf("Not enough seats available. Requested: %d, Available: %d", requested, available),
	}
}

func ErrVesselTooSmall(booked int, vesselName string, capacity int) *CapacityError {
	return &CapacityError{
		Requested: booked,
		Available: capacity,
		message:   fmt.Sprintf("Cannot change vessel: %d seats already booked, but new vessel %q only has %d seats", booked, vesselName, capacity),
	}
}

func ErrCapacityBelowBooked(maxBooked, newCapacity int) *CapacityError {
	return &CapacityError{
		Requested: maxBooked,
		Available: newCapacity,
		message:   fmt.Sprintf("Cannot reduce capacity below %d seats due to existing bookings", maxBooked),
	}
}

// ConflictError reports a departure window colliding with an existing one on
// the same vessel.
type ConflictError struct {
	VesselName string
	TourTitle  string
	Start      time.Time
	End        time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Vessel conflict: %s is already scheduled for %q from %s to %s",
		e.VesselName, e.TourTitle, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// DeleteBlockedError refuses a delete while dependent records exist.
type DeleteBlockedError struct {
	Bookings   int
	Passengers int
	Scheduled  int
	message    string
}

func (e *DeleteBlockedError) Error() string {
	return e.message
}

func ErrDepartureHasBookings(bookings, passengers int) *DeleteBlockedError {
	return &DeleteBlockedError{
		Bookings:   bookings,
		Passengers: passengers,
		message:    fmt.Sprintf("Cannot delete scheduled tour: %d booking(s) with %d passenger(s) exist. Please cancel all bookings first.", bookings, passengers),
	}
}

func ErrTourHasDepartures(count int) *DeleteBlockedError {
	return &DeleteBlockedError{
		Scheduled: count,
		message:   fmt.Sprintf("This tour has %d scheduled instance(s) and cannot be deleted. Please remove all scheduled tours first.", count),
	}
}

func ErrVesselHasDepartures(count int) *DeleteBlockedError {
	return &DeleteBlockedError{
		Scheduled: count,
		message:   fmt.Sprintf("This vessel has %d scheduled tour(s) and cannot be deleted. Please remove all scheduled tours first.", count),
	}
}
