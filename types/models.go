package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

// Operator is the tenant boundary: it owns vessels, tours and their schedules.
type Operator struct {
	ID        string    `json:"id" gorm:"type:varchar;primary_key"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug" gorm:"type:varchar;unique_index;not null"`
	Email     string    `json:"email" gorm:"type:varchar;unique_index;not null"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Vessels   []Vessel  `json:"-"`
	Tours     []Tour    `json:"-"`
}

func (o *Operator) BeforeCreate(scope *gorm.Scope) error {
	if o.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// VesselClass enumerates the kinds of craft an operator runs.
type VesselClass string

const (
	FishingBoat   VesselClass = "FISHING_BOAT"
	Zodiac        VesselClass = "ZODIAC"
	CoveredVessel VesselClass = "COVERED_VESSEL"
)

func (c VesselClass) Valid() bool {
	switch c {
	case FishingBoat, Zodiac, CoveredVessel:
		return true
	}
	return false
}

// Vessel is a physical craft with a fixed passenger ceiling.
type Vessel struct {
	ID         string      `json:"id" gorm:"type:varchar;primary_key"`
	OperatorID string      `json:"operatorId" gorm:"type:varchar;not null;index;unique_index:uix_vessels_operator_name"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"-"`
	Name       string      `json:"name" gorm:"unique_index:uix_vessels_operator_name"`
	Class      VesselClass `json:"type" gorm:"type:varchar"`
	Capacity   int         `json:"capacity"`
}

func (v *Vessel) BeforeCreate(scope *gorm.Scope) error {
	if v.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// Tour is a bookable product template, not bound to a date.
type Tour struct {
	ID                string          `json:"id" gorm:"type:varchar;primary_key"`
	OperatorID        string          `json:"operatorId" gorm:"type:varchar;not null;index;unique_index:uix_tours_operator_title"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"-"`
	Title             string          `json:"title" gorm:"unique_index:uix_tours_operator_title"`
	Description       string          `json:"description,omitempty"`
	Price             decimal.Decimal `json:"price" gorm:"type:numeric(10,2)"`
	DurationInMinutes int             `json:"durationInMinutes"`
}

func (t *Tour) BeforeCreate(scope *gorm.Scope) error {
	if t.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// ScheduledTour is one concrete departure: a Tour on a Vessel at a start time.
// Its window is the half-open interval [StartTime, EndTime).
type ScheduledTour struct {
	ID        string    `json:"id" gorm:"type:varchar;primary_key"`
	TourID    string    `json:"tourId" gorm:"type:varchar;not null;index"`
	VesselID  string    `json:"vesselId" gorm:"type:varchar;not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
	StartTime time.Time `json:"startTime"`
	Tour      Tour      `json:"tour,omitempty"`
	Vessel    Vessel    `json:"vessel,omitempty"`
	Bookings  []Booking `json:"-"`
}

func (s *ScheduledTour) BeforeCreate(scope *gorm.Scope) error {
	if s.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// EndTime reports when the departure window closes. Tour must be preloaded.
func (s *ScheduledTour) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.Tour.DurationInMinutes) * time.Minute)
}

// Booking reserves N seats on a departure. Bookings are immutable once created.
type Booking struct {
	ID              string    `json:"id" gorm:"type:varchar;primary_key"`
	ScheduledTourID string    `json:"scheduledTourId" gorm:"type:varchar;not null;index"`
	CreatedAt       time.Time `json:"createdAt"`
	PassengerCount  int       `json:"passengerCount"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	Confirmation    string    `json:"confirmation" gorm:"type:varchar"`
}

func (b *Booking) BeforeCreate(scope *gorm.Scope) error {
	if b.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// Availability is the derived seat inventory of a departure.
type Availability struct {
	TotalCapacity  int  `json:"totalCapacity"`
	BookedSeats    int  `json:"bookedSeats"`
	AvailableSeats int  `json:"availableSeats"`
	IsFullyBooked  bool `json:"isFullyBooked"`
}

// Inventory is the post-booking counts returned with a new booking.
type Inventory struct {
	SeatsRemaining int `json:"seatsRemaining"`
	TotalCapacity  int `json:"totalCapacity"`
	SeatsBooked    int `json:"seatsBooked"`
}
