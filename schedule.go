package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/openwater/charterapi/types"
)

func addScheduleRoutes(router *gin.RouterGroup, db *gorm.DB) {
	router.GET("/schedules", GetSchedules(db))
	router.POST("/schedules", CreateSchedule(db))
	router.GET("/schedules/:schedid", GetSchedule(db))
	router.PUT("/schedules/:schedid", UpdateSchedule(db))
	router.DELETE("/schedules/:schedid", DeleteSchedule(db))
	router.GET("/schedules/:schedid/link", GetBookingLink(db))
	router.GET("/schedules/:schedid/bookings", GetScheduleBookings(db))
	router.GET("/schedules/:schedid/manifest", GetManifest(db))
}

// scheduledTourView pairs a departure with its derived seat inventory.
type scheduledTourView struct {
	types.ScheduledTour
	Availability types.Availability `json:"availability"`
}

func withAvailability(db *gorm.DB, st *types.ScheduledTour) (*scheduledTourView, error) {
	avail, err := GetAvailability(db, st)
	if err != nil {
		return nil, err
	}
	return &scheduledTourView{ScheduledTour: *st, Availability: *avail}, nil
}

// loadDeparture fetches a departure with tour and vessel, scoped to the
// operator through the owning tour.
func loadDeparture(db *gorm.DB, operatorID, id string) (*types.ScheduledTour, error) {
	var st types.ScheduledTour
	err := db.Preload("Tour").Preload("Vessel").Where("id = ?", id).First(&st).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, &types.NotFoundError{Entity: "Scheduled tour"}
		}
		return nil, err
	}
	if st.Tour.OperatorID != operatorID {
		return nil, &types.NotFoundError{Entity: "Scheduled tour"}
	}
	return &st, nil
}

func GetSchedules(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Preload("Tour").Preload("Vessel").
			Joins("JOIN tours ON tours.id = scheduled_tours.tour_id").
			Where("tours.operator_id = ?", c.Param("operatorid")).
			Order("scheduled_tours.start_time asc")

		if from := c.Query("startDate"); from != "" {
			q = q.Where("scheduled_tours.start_time >= ?", from)
		}
		if to := c.Query("endDate"); to != "" {
			q = q.Where("scheduled_tours.start_time <= ?", to)
		}
		if vid := c.Query("vesselId"); vid != "" {
			q = q.Where("scheduled_tours.vessel_id = ?", vid)
		}
		if tid := c.Query("tourId"); tid != "" {
			q = q.Where("scheduled_tours.tour_id = ?", tid)
		}

		var departures []types.ScheduledTour
		if err := q.Find(&departures).Error; err != nil {
			writeError(c, err)
			return
		}

		views := make([]scheduledTourView, 0, len(departures))
		for i := range departures {
			view, err := withAvailability(db, &departures[i])
			if err != nil {
				writeError(c, err)
				return
			}
			views = append(views, *view)
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": views})
	}
}

func GetSchedule(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := loadDeparture(db, c.Param("operatorid"), c.Param("schedid"))
		if err != nil {
			writeError(c, err)
			return
		}
		view, err := withAvailability(db, st)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": view})
	}
}

func CreateSchedule(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "message": err.Error()})
			return
		}

		st, err := CreateScheduledTour(db, c.Param("operatorid"), req)
		if err != nil {
			observeScheduleRejected(err)
			writeError(c, err)
			return
		}

		view := scheduledTourView{
			ScheduledTour: *st,
			Availability: types.Availability{
				TotalCapacity:  st.Vessel.Capacity,
				AvailableSeats: st.Vessel.Capacity,
			},
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": view})
	}
}

func UpdateSchedule(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScheduleUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "message": err.Error()})
			return
		}

		st, err := UpdateScheduledTour(db, c.Param("operatorid"), c.Param("schedid"), req)
		if err != nil {
			observeScheduleRejected(err)
			writeError(c, err)
			return
		}

		view, err := withAvailability(db, st)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": view})
	}
}

func DeleteSchedule(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := DeleteScheduledTour(db, c.Param("operatorid"), c.Param("schedid"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Scheduled tour deleted successfully",
			"data":    gin.H{"deletedTour": st.Tour.Title, "startTime": st.StartTime},
		})
	}
}

func GetScheduleBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := loadDeparture(db, c.Param("operatorid"), c.Param("schedid"))
		if err != nil {
			writeError(c, err)
			return
		}

		var bookings []types.Booking
		err = db.Order("created_at asc").Find(&bookings, "scheduled_tour_id = ?", st.ID).Error
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": bookings})
	}
}

// GetBookingLink builds the shareable public booking URL for a departure from
// the operator's slug.
func GetBookingLink(db *gorm.DB) gin.HandlerFunc {
	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}

	return func(c *gin.Context) {
		st, err := loadDeparture(db, c.Param("operatorid"), c.Param("schedid"))
		if err != nil {
			writeError(c, err)
			return
		}

		var op types.Operator
		if err := db.Where("id = ?", c.Param("operatorid")).First(&op).Error; err != nil {
			writeError(c, err)
			return
		}

		url := fmt.Sprintf("%s/api/book/%s/%s", base, op.Slug, st.ID)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"url":          url,
			"shareText":    fmt.Sprintf("Book your spot on %q - %s", st.Tour.Title, url),
			"emailSubject": "Book Your Marine Tour: " + st.Tour.Title,
			"emailBody": fmt.Sprintf("Hi there!\n\nI'd like to invite you to join me on an amazing marine tour experience.\n\n"+
				"Tour: %s\n\nYou can book your spot here: %s\n\nLooking forward to an incredible adventure together!\n\nBest regards",
				st.Tour.Title, url),
		}})
	}
}
