package main

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openwater/charterapi/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "charterapi_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "charterapi_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	bookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "charterapi_bookings_created_total",
		Help: "Count of accepted bookings",
	})

	seatsBooked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "charterapi_seats_booked_total",
		Help: "Total seats reserved across accepted bookings",
	})

	bookingRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "charterapi_booking_rejections_total",
		Help: "Count of rejected booking attempts by reason",
	}, []string{"reason"})

	scheduleRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "charterapi_schedule_rejections_total",
		Help: "Count of rejected schedule writes by reason",
	}, []string{"reason"})
)

func rejectionReason(err error) string {
	var (
		validation *types.ValidationError
		notFound   *types.NotFoundError
		capacity   *types.CapacityError
		conflict   *types.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		return "validation"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &capacity):
		return "capacity"
	case errors.As(err, &conflict):
		return "conflict"
	}
	return "internal"
}

func observeBookingAccepted(seats int) {
	bookingsCreated.Inc()
	seatsBooked.Add(float64(seats))
}

func observeBookingRejected(err error) {
	bookingRejections.WithLabelValues(rejectionReason(err)).Inc()
}

func observeScheduleRejected(err error) {
	scheduleRejections.WithLabelValues(rejectionReason(err)).Inc()
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
