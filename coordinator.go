package main

import (
	"time"

	"github.com/jinzhu/gorm"
	"github.com/lithammer/shortuuid/v3"
	"github.com/openwater/charterapi/types"
)

// ScheduleRequest creates one departure.
type ScheduleRequest struct {
	TourID    string    `json:"tourId" binding:"required"`
	VesselID  string    `json:"vesselId" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
}

// ScheduleUpdate carries any subset of a departure's mutable fields.
type ScheduleUpdate struct {
	TourID    *string    `json:"tourId"`
	VesselID  *string    `json:"vesselId"`
	StartTime *time.Time `json:"startTime"`
}

// BookingRequest reserves seats on a departure.
type BookingRequest struct {
	PassengerCount int    `json:"passengerCount" binding:"required"`
	CustomerName   string `json:"customerName" binding:"required"`
	CustomerEmail  string `json:"customerEmail" binding:"required,email"`
}

// forUpdate adds a row lock on dialects that support it. The sqlite dialect
// used by the tests serializes writers on its own.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialect().GetName() == "postgres" {
		return tx.Set("gorm:query_option", "FOR UPDATE")
	}
	return tx
}

// CreateScheduledTour schedules a departure after verifying the start time is
// in the future, the tour and vessel belong to the operator, and the vessel is
// free for the whole window. The check and the insert run in one transaction
// with the vessel row locked so concurrent schedule writes serialize.
func CreateScheduledTour(db *gorm.DB, operatorID string, req ScheduleRequest) (*types.ScheduledTour, error) {
	if !req.StartTime.After(time.Now()) {
		return nil, types.ErrPastStartTime()
	}

	var created types.ScheduledTour
	err := db.Transaction(func(tx *gorm.DB) error {
		var tour types.Tour
		if err := tx.Where("id = ? AND operator_id = ?", req.TourID, operatorID).First(&tour).Error; err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return &types.NotFoundError{Entity: "Tour"}
			}
			return err
		}

		var vessel types.Vessel
		if err := forUpdate(tx).Where("id = ? AND operator_id = ?", req.VesselID, operatorID).First(&vessel).Error; err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return &types.NotFoundError{Entity: "Vessel"}
			}
			return err
		}

		conflict, err := FindScheduleConflict(tx, vessel.ID, req.StartTime, tour.DurationInMinutes, "")
		if err != nil {
			return err
		}
		if conflict != nil {
			return &types.ConflictError{
				VesselName: vessel.Name,
				TourTitle:  conflict.Tour.Title,
				Start:      conflict.StartTime,
				End:        conflict.EndTime(),
			}
		}

		created = types.ScheduledTour{TourID: tour.ID, VesselID: vessel.ID, StartTime: req.StartTime.UTC()}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		created.Tour = tour
		created.Vessel = vessel
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateScheduledTour applies a partial change to a departure. Moving it to a
// smaller vessel must still fit every passenger already booked, a new start
// must be in the future, and any change to vessel, start, or duration re-runs
// the overlap check against the rest of that vessel's schedule.
func UpdateScheduledTour(db *gorm.DB, operatorID, id string, req ScheduleUpdate) (*types.ScheduledTour, error) {
	var updated types.ScheduledTour
	err := db.Transaction(func(tx *gorm.DB) error {
		var st types.ScheduledTour
		err := forUpdate(tx).Preload("Tour").Preload("Vessel").Preload("Bookings").
			Where("id = ?", id).First(&st).Error
		if err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return &types.NotFoundError{Entity: "Scheduled tour"}
			}
			return err
		}
		if st.Tour.OperatorID != operatorID {
			return &types.NotFoundError{Entity: "Scheduled tour"}
		}

		booked := 0
		for _, b := range st.Bookings {
			booked += b.PassengerCount
		}

		tour := st.Tour
		start := st.StartTime
		vesselChanged := false
		timeChanged := false

		// Lock the current vessel row even when the vessel is not changing.
		// Every schedule write on a vessel serializes on that row, so two
		// updates moving departures of the same vessel cannot both pass the
		// overlap check against stale windows.
		var vessel types.Vessel
		if err := forUpdate(tx).Where("id = ?", st.VesselID).First(&vessel).Error; err != nil {
			return err
		}

		if req.TourID != nil && *req.TourID != st.TourID {
			if err := tx.Where("id = ? AND operator_id = ?", *req.TourID, operatorID).First(&tour).Error; err != nil {
				if gorm.IsRecordNotFoundError(err) {
					return &types.NotFoundError{Entity: "Tour"}
				}
				return err
			}
		}

		if req.VesselID != nil && *req.VesselID != st.VesselID {
			if err := forUpdate(tx).Where("id = ? AND operator_id = ?", *req.VesselID, operatorID).First(&vessel).Error; err != nil {
				if gorm.IsRecordNotFoundError(err) {
					return &types.NotFoundError{Entity: "Vessel"}
				}
				return err
			}
			if booked > vessel.Capacity {
				return types.ErrVesselTooSmall(booked, vessel.Name, vessel.Capacity)
			}
			vesselChanged = true
		}

		if req.StartTime != nil {
			if !req.StartTime.After(time.Now()) {
				return types.ErrPastStartTime()
			}
			start = req.StartTime.UTC()
			timeChanged = !start.Equal(st.StartTime)
		}

		if vesselChanged || timeChanged || tour.DurationInMinutes != st.Tour.DurationInMinutes {
			conflict, err := FindScheduleConflict(tx, vessel.ID, start, tour.DurationInMinutes, st.ID)
			if err != nil {
				return err
			}
			if conflict != nil {
				return &types.ConflictError{
					VesselName: vessel.Name,
					TourTitle:  conflict.Tour.Title,
					Start:      conflict.StartTime,
					End:        conflict.EndTime(),
				}
			}
		}

		err = tx.Model(&types.ScheduledTour{}).Where("id = ?", st.ID).
			Updates(map[string]interface{}{
				"tour_id":    tour.ID,
				"vessel_id":  vessel.ID,
				"start_time": start,
			}).Error
		if err != nil {
			return err
		}

		st.TourID = tour.ID
		st.VesselID = vessel.ID
		st.StartTime = start
		st.Tour = tour
		st.Vessel = vessel
		updated = st
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteScheduledTour removes a departure with no bookings. Deletion is
// blocked, not cascaded, while any booking exists. The removed record is
// returned for the response payload.
func DeleteScheduledTour(db *gorm.DB, operatorID, id string) (*types.ScheduledTour, error) {
	var deleted types.ScheduledTour
	err := db.Transaction(func(tx *gorm.DB) error {
		var st types.ScheduledTour
		err := forUpdate(tx).Preload("Tour").Preload("Bookings").
			Where("id = ?", id).First(&st).Error
		if err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return &types.NotFoundError{Entity: "Scheduled tour"}
			}
			return err
		}
		if st.Tour.OperatorID != operatorID {
			return &types.NotFoundError{Entity: "Scheduled tour"}
		}

		if len(st.Bookings) > 0 {
			passengers := 0
			for _, b := range st.Bookings {
				passengers += b.PassengerCount
			}
			return types.ErrDepartureHasBookings(len(st.Bookings), passengers)
		}

		deleted = st
		return tx.Where("id = ?", st.ID).Delete(&types.ScheduledTour{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// ReserveSeats books seats on a departure. The departure and vessel rows are
// locked for the duration of the read-check-write so concurrent reservations
// and capacity edits serialize and the booked total can never pass the
// vessel's capacity.
func ReserveSeats(db *gorm.DB, operatorID, scheduledTourID string, req BookingRequest) (*types.Booking, *types.Inventory, error) {
	if req.PassengerCount <= 0 {
		return nil, nil, &types.ValidationError{Field: "passengerCount", Reason: "Passenger count must be a positive integer"}
	}
	if req.CustomerName == "" {
		return nil, nil, &types.ValidationError{Field: "customerName", Reason: "Customer name is required"}
	}
	if req.CustomerEmail == "" {
		return nil, nil, &types.ValidationError{Field: "customerEmail", Reason: "Valid email address is required"}
	}

	var booking types.Booking
	var inventory types.Inventory
	err := db.Transaction(func(tx *gorm.DB) error {
		var st types.ScheduledTour
		err := forUpdate(tx).Preload("Tour").Preload("Vessel").
			Where("id = ?", scheduledTourID).First(&st).Error
		if err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return &types.NotFoundError{Entity: "Scheduled tour"}
			}
			return err
		}
		if st.Tour.OperatorID != operatorID {
			return &types.NotFoundError{Entity: "Scheduled tour"}
		}

		// Re-read the vessel under lock. Capacity edits hold the same row, so
		// a reservation can never count seats against a capacity that a
		// concurrent shrink is about to commit.
		var vessel types.Vessel
		if err := forUpdate(tx).Where("id = ?", st.VesselID).First(&vessel).Error; err != nil {
			return err
		}
		st.Vessel = vessel

		avail, err := GetAvailability(tx, &st)
		if err != nil {
			return err
		}
		if req.PassengerCount > avail.AvailableSeats {
			return types.ErrNotEnoughSeats(req.PassengerCount, avail.AvailableSeats)
		}

		booking = types.Booking{
			ScheduledTourID: st.ID,
			PassengerCount:  req.PassengerCount,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			Confirmation:    shortuuid.New(),
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		inventory = types.Inventory{
			SeatsRemaining: avail.AvailableSeats - req.PassengerCount,
			TotalCapacity:  avail.TotalCapacity,
			SeatsBooked:    avail.BookedSeats + req.PassengerCount,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &booking, &inventory, nil
}
