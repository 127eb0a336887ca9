package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/openwater/charterapi/types"
	"github.com/shopspring/decimal"
)

func addTourRoutes(router *gin.RouterGroup, db *gorm.DB) {
	router.GET("/tours", GetTours(db))
	router.POST("/tours", CreateTour(db))
	router.PUT("/tours/:tourid", UpdateTour(db))
	router.DELETE("/tours/:tourid", DeleteTour(db))
}

type tourRequest struct {
	Title             string          `json:"title" binding:"required,max=200"`
	Description       string          `json:"description" binding:"max=1000"`
	Price             decimal.Decimal `json:"price"`
	DurationInMinutes int             `json:"durationInMinutes" binding:"required,min=30,max=1440"`
}

func (r *tourRequest) validate() error {
	if r.Price.IsNegative() {
		return &types.ValidationError{Field: "price", Reason: "Price must not be negative"}
	}
	return nil
}

func titleTaken(db *gorm.DB, operatorID, title, excludeID string) bool {
	var count int
	q := db.Model(&types.Tour{}).Where("operator_id = ? AND title = ?", operatorID, title)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	q.Count(&count)
	return count > 0
}

func GetTours(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tours []types.Tour
		err := db.Order("title asc").Find(&tours, "operator_id = ?", c.Param("operatorid")).Error
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": tours})
	}
}

func CreateTour(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tourRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "message": err.Error()})
			return
		}
		if err := req.validate(); err != nil {
			writeError(c, err)
			return
		}

		opID := c.Param("operatorid")
		if titleTaken(db, opID, req.Title, "") {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Tour title already exists",
				"message": "Another tour with this title already exists in your catalog"})
			return
		}

		tour := types.Tour{
			OperatorID:        opID,
			Title:             req.Title,
			Description:       req.Description,
			Price:             req.Price,
			DurationInMinutes: req.DurationInMinutes,
		}
		if err := db.Create(&tour).Error; err != nil {
			// a concurrent create with the same title loses on the unique index
			if titleTaken(db, opID, req.Title, "") {
				c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Tour title already exists",
					"message": "Another tour with this title already exists in your catalog"})
				return
			}
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": tour})
	}
}

func UpdateTour(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tourRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "message": err.Error()})
			return
		}
		if err := req.validate(); err != nil {
			writeError(c, err)
			return
		}

		opID := c.Param("operatorid")
		var tour types.Tour
		err := db.Where("id = ? AND operator_id = ?", c.Param("tourid"), opID).First(&tour).Error
		if err != nil {
			if gorm.IsRecordNotFoundError(err) {
				writeError(c, &types.NotFoundError{Entity: "Tour"})
			} else {
				writeError(c, err)
			}
			return
		}

		if titleTaken(db, opID, req.Title, tour.ID) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Tour title already exists",
				"message": "Another tour with this title already exists in your catalog"})
			return
		}

		tour.Title = req.Title
		tour.Description = req.Description
		tour.Price = req.Price
		tour.DurationInMinutes = req.DurationInMinutes
		if err := db.Save(&tour).Error; err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": tour})
	}
}

func DeleteTour(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tour types.Tour
		err := db.Where("id = ? AND operator_id = ?", c.Param("tourid"), c.Param("operatorid")).First(&tour).Error
		if err != nil {
			if gorm.IsRecordNotFoundError(err) {
				writeError(c, &types.NotFoundError{Entity: "Tour"})
			} else {
				writeError(c, err)
			}
			return
		}

		var scheduled int
		if err := db.Model(&types.ScheduledTour{}).Where("tour_id = ?", tour.ID).Count(&scheduled).Error; err != nil {
			writeError(c, err)
			return
		}
		if scheduled > 0 {
			writeError(c, types.ErrTourHasDepartures(scheduled))
			return
		}

		if err := db.Delete(&tour).Error; err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Tour deleted successfully"})
	}
}
