package main

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/openwater/charterapi/types"
)

func addOperatorRoutes(router *gin.RouterGroup, db *gorm.DB) {
	router.GET("/operators", GetOperators(db))
	router.POST("/operators", CreateOperator(db))
	router.GET("/operators/:operatorid", GetOperator(db))
	router.PUT("/operators/:operatorid", UpdateOperator(db))
	router.DELETE("/operators/:operatorid", DeleteOperator(db))
}

var slugStrip = regexp.MustCompile(`[^\w\s-]`)
var slugSeparators = regexp.MustCompile(`[\s_-]+`)

func slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// uniqueSlug derives a slug from the name and suffixes a counter until it is
// globally unique. excludeID keeps an operator's own slug out of the check
// when renaming.
func uniqueSlug(db *gorm.DB, name, excludeID string) (string, error) {
	base := slugify(name)
	if base == "" {
		base = "operator"
	}

	candidate := base
	for n := 1; ; n++ {
		var count int
		q := db.Model(&types.Operator{}).Where("slug = ?", candidate)
		if excludeID != "" {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

type operatorRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func CreateOperator(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req operatorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "message": err.Error()})
			return
		}

		var count int
		if err := db.Model(&types.Operator{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
			writeError(c, err)
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Email already exists",
				"message": "An operator with this email already exists"})
			return
		}

		slug, err := uniqueSlug(db, req.Name, "")
		if err != nil {
			writeError(c, err)
			return
		}

		op := types.Operator{
			Name:    req.Name,
			Slug:    slug,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		}
		if err := db.Create(&op).Error; err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": op})
	}
}

func GetOperators(db *gorm.DB) gin.HandlerFunc {
	type operatorView struct {
		types.Operator
		VesselCount int `json:"vesselCount"`
		TourCount   int `json:"tourCount"`
	}

	return func(c *gin.Context) {
		var ops []types.Operator
		if err := db.Order("created_at desc").Find(&ops).Error; err != nil {
			writeError(c, err)
			return
		}

		views := make([]operatorView, 0, len(ops))
		for _, op := range ops {
			v := operatorView{Operator: op}
			if err := db.Model(&types.Vessel{}).Where("operator_id = ?", op.ID).Count(&v.VesselCount).Error; err != nil {
				writeError(c, err)
				return
			}
			if err := db.Model(&types.Tour{}).Where("operator_id = ?", op.ID).Count(&v.TourCount).Error; err != nil {
				writeError(c, err)
				return
			}
			views = append(views, v)
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": views})
	}
}

func GetOperator(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var op types.Operator
		if err := db.Where("id = ?", c.Param("operatorid")).First(&op).Error; err != nil {
			if gorm.IsRecordNotFoundError(err) {
				writeError(c, &types.NotFoundError{Entity: "Operator"})
			} else {
				writeError(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": op})
	}
}

func UpdateOperator(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req operatorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "message": err.Error()})
			return
		}

		var op types.Operator
		if err := db.Where("id = ?", c.Param("operatorid")).First(&op).Error; err != nil {
			if gorm.IsRecordNotFoundError(err) {
				writeError(c, &types.NotFoundError{Entity: "Operator"})
			} else {
				writeError(c, err)
			}
			return
		}

		var count int
		if err := db.Model(&types.Operator{}).Where("email = ? AND id <> ?", req.Email, op.ID).Count(&count).Error; err != nil {
			writeError(c, err)
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Email already exists",
				"message": "An operator with this email already exists"})
			return
		}

		// the slug only changes when the name does
		if req.Name != op.Name {
			slug, err := uniqueSlug(db, req.Name, op.ID)
			if err != nil {
				writeError(c, err)
				return
			}
			op.Slug = slug
		}

		op.Name = req.Name
		op.Email = req.Email
		op.Phone = req.Phone
		op.Address = req.Address
		if err := db.Save(&op).Error; err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": op})
	}
}

// DeleteOperator removes an operator and everything it owns, bookings
// included, in one transaction.
func DeleteOperator(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		opID := c.Param("operatorid")

		var op types.Operator
		if err := db.Where("id = ?", opID).First(&op).Error; err != nil {
			if gorm.IsRecordNotFoundError(err) {
				writeError(c, &types.NotFoundError{Entity: "Operator"})
			} else {
				writeError(c, err)
			}
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			tourIDs := tx.Model(&types.Tour{}).Where("operator_id = ?", opID).Select("id").QueryExpr()
			stIDs := tx.Model(&types.ScheduledTour{}).Where("tour_id IN (?)", tourIDs).Select("id").QueryExpr()

			if err := tx.Where("scheduled_tour_id IN (?)", stIDs).Delete(&types.Booking{}).Error; err != nil {
				return err
			}
			if err := tx.Where("tour_id IN (?)", tourIDs).Delete(&types.ScheduledTour{}).Error; err != nil {
				return err
			}
			if err := tx.Where("operator_id = ?", opID).Delete(&types.Tour{}).Error; err != nil {
				return err
			}
			if err := tx.Where("operator_id = ?", opID).Delete(&types.Vessel{}).Error; err != nil {
				return err
			}
			return tx.Where("id = ?", opID).Delete(&types.Operator{}).Error
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Operator deleted successfully"})
	}
}
