package main

import (
	"log"
	"os"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/shopspring/decimal"

	"github.com/openwater/charterapi/types"
)

// Loads a demo dataset: one operator, two vessels, three tours, and a week of
// departures. Safe to run against an empty database only.
func main() {
	URI := os.Getenv("DATABASE_URL")
	if URI == "" {
		log.Fatal("must set $DATABASE_URL")
	}

	db, err := gorm.Open("postgres", URI)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	db.AutoMigrate(&types.Operator{}, &types.Vessel{}, &types.Tour{}, &types.ScheduledTour{}, &types.Booking{})

	operator := types.Operator{
		Name:    "Campbell River Charters",
		Slug:    "campbell-river-charters",
		Email:   "info@campbellrivercharters.com",
		Phone:   "+1 (250) 555-0123",
		Address: "123 Harbour Way, Campbell River, BC V9W 2H1",
	}
	if err := db.Create(&operator).Error; err != nil {
		log.Fatal(err)
	}
	log.Println("created operator:", operator.Name)

	blueFin := types.Vessel{OperatorID: operator.ID, Name: "The Blue Fin", Class: types.FishingBoat, Capacity: 6}
	seaExplorer := types.Vessel{OperatorID: operator.ID, Name: "Sea Explorer", Class: types.CoveredVessel, Capacity: 12}
	for _, v := range []*types.Vessel{&blueFin, &seaExplorer} {
		if err := db.Create(v).Error; err != nil {
			log.Fatal(err)
		}
	}
	log.Println("created vessels:", blueFin.Name, "&", seaExplorer.Name)

	whaleWatching := types.Tour{
		OperatorID:        operator.ID,
		Title:             "3-Hour Whale Watching Adventure",
		Description:       "Experience the magnificent orcas and humpback whales in their natural habitat.",
		Price:             decimal.NewFromFloat(89.99),
		DurationInMinutes: 180,
	}
	fishingCharter := types.Tour{
		OperatorID:        operator.ID,
		Title:             "Salmon Fishing Charter",
		Description:       "An unforgettable salmon fishing experience. All equipment provided.",
		Price:             decimal.NewFromFloat(150.00),
		DurationInMinutes: 240,
	}
	sunsetCruise := types.Tour{
		OperatorID:        operator.ID,
		Title:             "Sunset Wildlife Cruise",
		Description:       "Spot seals, eagles, and other local wildlife at sunset. Light refreshments included.",
		Price:             decimal.NewFromFloat(65.00),
		DurationInMinutes: 120,
	}
	for _, t := range []*types.Tour{&whaleWatching, &fishingCharter, &sunsetCruise} {
		if err := db.Create(t).Error; err != nil {
			log.Fatal(err)
		}
	}
	log.Println("created tours")

	now := time.Now()
	for day := 1; day <= 7; day++ {
		date := now.AddDate(0, 0, day)
		at := func(hour, min int) time.Time {
			return time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, time.UTC)
		}

		departures := []types.ScheduledTour{
			{TourID: whaleWatching.ID, VesselID: blueFin.ID, StartTime: at(9, 0)},
			{TourID: fishingCharter.ID, VesselID: seaExplorer.ID, StartTime: at(13, 0)},
			{TourID: sunsetCruise.ID, VesselID: seaExplorer.ID, StartTime: at(18, 30)},
		}
		for i := range departures {
			if err := db.Create(&departures[i]).Error; err != nil {
				log.Fatal(err)
			}
		}
	}
	log.Println("created a week of departures")
}
