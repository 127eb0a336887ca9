package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"

	"github.com/openwater/charterapi/types"
)

func newRouter(db *gorm.DB) *gin.Engine {
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(config))
	router.Use(metricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	addOperatorRoutes(api, db)
	addBookingRoutes(api, db)

	op := api.Group("/op/:operatorid")
	addVesselRoutes(op, db)
	addTourRoutes(op, db)
	addScheduleRoutes(op, db)

	return router
}

func main() {
	godotenv.Load()

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

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	newRouter(db).Run(":" + port)
}
