package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/openwater/charterapi/types"
)

func addVesselRoutes(router *gin.RouterGroup, db *gorm.DB) {
	router.GET("/vessels", GetVessels(db))
	router.POST("/vessels", CreateVessel(db))
	router.PUT("/vessels/:vesselid", UpdateVessel(db))
	router.DELETE("/vessels/:vesselid", DeleteVessel(db))
}

type vesselRequest struct {
	Name     string            `json:"name" binding:"required,max=100"`
	Class    types.VesselClass `json:"type" binding:"required"`
	Capacity int               `json:"capacity" binding:"required,min=1,max=100"`
}

func GetVessels(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vessels []types.Vessel
		err := db.Order("name asc").Find(&vessels, "operator_id = ?", c.Param("operatorid")).Error
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": vessels})
	}
}

func CreateVessel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req vesselRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "message": err.Error()})
			return
		}
		if !req.Class.Valid() {
			writeError(c, &types.ValidationError{Field: "type", Reason: "Please select a valid vessel type"})
			return
		}

		opID := c.Param("operatorid")
		if nameTaken(db, opID, req.Name, "") {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Vessel name already exists",
				"message": "Another vessel with this name already exists in your fleet"})
			return
		}

		vessel := types.Vessel{
			OperatorID: opID,
			Name:       req.Name,
			Class:      req.Class,
			Capacity:   req.Capacity,
		}
		if err := db.Create(&vessel).Error; err != nil {
			// a concurrent create with the same name loses on the unique index
			if nameTaken(db, opID, req.Name, "") {
				c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Vessel name already exists",
					"message": "Another vessel with this name already exists in your fleet"})
				return
			}
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": vessel})
	}
}

func nameTaken(db *gorm.DB, operatorID, name, excludeID string) bool {
	var count int
	q := db.Model(&types.Vessel{}).Where("operator_id = ? AND name = ?", operatorID, name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	q.Count(&count)
	return count > 0
}

// UpdateVessel edits a vessel. Shrinking capacity is refused when any future
// departure already has more seats booked than the new ceiling; completed
// departures don't count.
func UpdateVessel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req vesselRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "message": err.Error()})
			return
		}
		if !req.Class.Valid() {
			writeError(c, &types.ValidationError{Field: "type", Reason: "Please select a valid vessel type"})
			return
		}

		opID := c.Param("operatorid")
		if nameTaken(db, opID, req.Name, c.Param("vesselid")) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Vessel name already exists",
				"message": "Another vessel with this name already exists in your fleet"})
			return
		}

		var updated types.Vessel
		err := db.Transaction(func(tx *gorm.DB) error {
			var vessel types.Vessel
			err := forUpdate(tx).Where("id = ? AND operator_id = ?", c.Param("vesselid"), opID).First(&vessel).Error
			if err != nil {
				if gorm.IsRecordNotFoundError(err) {
					return &types.NotFoundError{Entity: "Vessel"}
				}
				return err
			}

			if req.Capacity < vessel.Capacity {
				maxBooked, err := MaxFutureBookedSeats(tx, vessel.ID)
				if err != nil {
					return err
				}
				if req.Capacity < maxBooked {
					return types.ErrCapacityBelowBooked(maxBooked, req.Capacity)
				}
			}

			vessel.Name = req.Name
			vessel.Class = req.Class
			vessel.Capacity = req.Capacity
			if err := tx.Save(&vessel).Error; err != nil {
				return err
			}
			updated = vessel
			return nil
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
	}
}

func DeleteVessel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		opID := c.Param("operatorid")

		var vessel types.Vessel
		err := db.Where("id = ? AND operator_id = ?", c.Param("vesselid"), opID).First(&vessel).Error
		if err != nil {
			if gorm.IsRecordNotFoundError(err) {
				writeError(c, &types.NotFoundError{Entity: "Vessel"})
			} else {
				writeError(c, err)
			}
			return
		}

		var scheduled int
		if err := db.Model(&types.ScheduledTour{}).Where("vessel_id = ?", vessel.ID).Count(&scheduled).Error; err != nil {
			writeError(c, err)
			return
		}
		if scheduled > 0 {
			writeError(c, types.ErrVesselHasDepartures(scheduled))
			return
		}

		if err := db.Delete(&vessel).Error; err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Vessel deleted successfully"})
	}
}
