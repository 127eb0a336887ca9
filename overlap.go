package main

import (
	"time"

	"github.com/jinzhu/gorm"
	"github.com/openwater/charterapi/types"
)

// FindScheduleConflict reports the first departure on a vessel whose window
// collides with [start, start+duration). Candidates are fetched per vessel and
// the authoritative half-open interval test runs in memory, so back-to-back
// departures that touch at an endpoint are never conflicts. excludeID skips
// the departure being updated, if any.
func FindScheduleConflict(tx *gorm.DB, vesselID string, start time.Time, durationMinutes int, excludeID string) (*types.ScheduledTour, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	q := tx.Preload("Tour").Where("vessel_id = ?", vesselID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var existing []types.ScheduledTour
	if err := q.Find(&existing).Error; err != nil {
		return nil, err
	}

	for i := range existing {
		other := &existing[i]
		if start.Before(other.EndTime()) && end.After(other.StartTime) {
			return other, nil
		}
	}
	return nil, nil
}
