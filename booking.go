package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/openwater/charterapi/types"
)

func addBookingRoutes(router *gin.RouterGroup, db *gorm.DB) {
	router.GET("/book/:slug/:schedid", GetPublicDeparture(db))
	router.POST("/book/:slug/:schedid", CreateBooking(db))
	router.GET("/pass/:confirmation", GetBoardingPass(db))
}

func operatorBySlug(db *gorm.DB, slug string) (*types.Operator, error) {
	var op types.Operator
	if err := db.Where("slug = ?", slug).First(&op).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, &types.NotFoundError{Entity: "Operator"}
		}
		return nil, err
	}
	return &op, nil
}

// GetPublicDeparture serves the booking page data: the departure, its tour and
// vessel, and live availability.
func GetPublicDeparture(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		op, err := operatorBySlug(db, c.Param("slug"))
		if err != nil {
			writeError(c, err)
			return
		}

		st, err := loadDeparture(db, op.ID, c.Param("schedid"))
		if err != nil {
			writeError(c, err)
			return
		}

		view, err := withAvailability(db, st)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"operator": op, "scheduledTour": view}})
	}
}

func CreateBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "message": err.Error()})
			return
		}

		op, err := operatorBySlug(db, c.Param("slug"))
		if err != nil {
			writeError(c, err)
			return
		}

		booking, inventory, err := ReserveSeats(db, op.ID, c.Param("schedid"), req)
		if err != nil {
			observeBookingRejected(err)
			writeError(c, err)
			return
		}
		observeBookingAccepted(booking.PassengerCount)

		st, err := loadDeparture(db, op.ID, booking.ScheduledTourID)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{
			"booking": gin.H{
				"id":             booking.ID,
				"confirmation":   booking.Confirmation,
				"passengerCount": booking.PassengerCount,
				"customerName":   booking.CustomerName,
				"customerEmail":  booking.CustomerEmail,
				"createdAt":      booking.CreatedAt,
				"scheduledTour": gin.H{
					"id":        st.ID,
					"startTime": st.StartTime,
					"tour": gin.H{
						"title":             st.Tour.Title,
						"price":             st.Tour.Price,
						"durationInMinutes": st.Tour.DurationInMinutes,
					},
					"vessel": gin.H{
						"name":     st.Vessel.Name,
						"capacity": st.Vessel.Capacity,
					},
				},
			},
			"inventory": inventory,
		}})
	}
}
