package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openwater/charterapi/types"
)

// writeError maps a business error to its HTTP response. Anything outside the
// typed taxonomy is logged and reported as a 500 with no internal detail.
func writeError(c *gin.Context, err error) {
	var (
		validation *types.ValidationError
		notFound   *types.NotFoundError
		capacity   *types.CapacityError
		conflict   *types.ConflictError
		blocked    *types.DeleteBlockedError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "message": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Resource not found", "message": err.Error()})
	case errors.As(err, &capacity):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Capacity exceeded", "message": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Scheduling conflict", "message": err.Error()})
	case errors.As(err, &blocked):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Cannot delete", "message": err.Error()})
	default:
		log.Println("internal error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error", "message": "An unexpected error occurred"})
	}
}
