package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/jung-kurt/gofpdf"
	"github.com/openwater/charterapi/types"
	"github.com/skip2/go-qrcode"
)

const passHeight = 65
const left = 5
const spaceBetween = 15

func drawBoardingPass(f *gofpdf.Fpdf, op *types.Operator, st *types.ScheduledTour, b *types.Booking, qrname string) {
	var opt gofpdf.ImageOptions
	opt.ImageType = "png"

	_, _, mtop, mbottom := f.GetMargins()
	starty := f.GetY() - mtop + 10
	_, pageh := f.GetPageSize()

	if starty+passHeight > pageh-mbottom {
		f.AddPage()
		starty = f.GetY()
	}

	f.SetFillColor(11, 57, 84)
	f.SetDrawColor(11, 57, 84)
	f.Rect(left, starty, 205, passHeight, "D")
	f.SetX(left)
	f.SetFont("Courier", "B", 18)
	f.SetTextColor(255, 255, 255)
	f.CellFormat(205, 7, op.Name, "B", 1, "C", true, 0, "")

	f.SetTextColor(0, 0, 0)
	f.SetFont("Courier", "B", 16)
	f.SetX(left)
	f.Cell(40, 7, "Boarding Pass")
	f.SetX(-63)
	f.Cell(50, 7, fmt.Sprintf("%d Seat(s)", b.PassengerCount))

	f.Ln(-1)
	f.SetFont("Courier", "B", 16)
	f.SetTextColor(11, 57, 84)
	f.SetX(left)
	f.Cell(40, 7, st.Vessel.Name)
	f.SetTextColor(0, 0, 0)

	f.Ln(-1)
	f.SetFont("Courier", "B", 14)
	f.SetX(left)
	f.Cell(40, 7, "Tour:")
	f.SetFont("Courier", "", 14)
	f.Cell(100, 7, st.Tour.Title)

	f.Ln(-1)
	f.SetX(left)
	f.SetFont("Courier", "B", 14)
	f.Cell(40, 7, "Departs:")
	f.SetFont("Courier", "", 14)
	f.Cell(100, 7, st.StartTime.Format("Mon Jan 2 2006 15:04"))

	f.Ln(15)
	f.SetX(left)
	f.SetFont("Courier", "B", 14)
	f.Cell(40, 7, "Booked By:")
	f.SetFont("Courier", "", 14)
	f.Cell(50, 7, b.CustomerName)

	f.Ln(20)
	f.SetFont("Courier", "I", 8)
	f.Cell(40, 8, b.Confirmation)

	f.ImageOptions(qrname, 205-40, starty+18, 40, 0, false, opt, 0, "")

	f.SetXY(0, starty+passHeight+spaceBetween)
}

func generatePass(op *types.Operator, st *types.ScheduledTour, b *types.Booking, w io.Writer) error {
	var opt gofpdf.ImageOptions
	opt.ImageType = "png"

	pdf := gofpdf.New("P", "mm", "Letter", ".")
	pdf.SetTitle("Boarding Pass", false)
	pdf.AddPage()

	data, err := qrcode.Encode(b.Confirmation, qrcode.High, 50)
	if err != nil {
		return err
	}
	pdf.RegisterImageOptionsReader(b.Confirmation, opt, bytes.NewReader(data))
	drawBoardingPass(pdf, op, st, b, b.Confirmation)

	return pdf.Output(w)
}

// GetBoardingPass renders the QR boarding pass for a booking, looked up by its
// confirmation code.
func GetBoardingPass(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var booking types.Booking
		err := db.Where("confirmation = ?", c.Param("confirmation")).First(&booking).Error
		if err != nil {
			if gorm.IsRecordNotFoundError(err) {
				writeError(c, &types.NotFoundError{Entity: "Booking"})
			} else {
				writeError(c, err)
			}
			return
		}

		var st types.ScheduledTour
		err = db.Preload("Tour").Preload("Vessel").Where("id = ?", booking.ScheduledTourID).First(&st).Error
		if err != nil {
			writeError(c, err)
			return
		}

		var op types.Operator
		if err := db.Where("id = ?", st.Tour.OperatorID).First(&op).Error; err != nil {
			writeError(c, err)
			return
		}

		c.Status(http.StatusOK)
		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", `attachment; filename="boardingpass_`+booking.Confirmation+`.pdf"`)
		if err := generatePass(&op, &st, &booking, c.Writer); err != nil {
			writeError(c, err)
		}
	}
}

func generateManifest(st *types.ScheduledTour, avail *types.Availability, bookings []types.Booking, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "Letter", ".")
	pdf.SetTitle("Passenger Manifest", false)
	pdf.AddPage()

	pdf.SetFont("Courier", "B", 18)
	pdf.Cell(0, 10, "Passenger Manifest")
	pdf.Ln(12)

	pdf.SetFont("Courier", "B", 12)
	pdf.Cell(40, 7, "Tour:")
	pdf.SetFont("Courier", "", 12)
	pdf.Cell(0, 7, st.Tour.Title)
	pdf.Ln(-1)

	pdf.SetFont("Courier", "B", 12)
	pdf.Cell(40, 7, "Vessel:")
	pdf.SetFont("Courier", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("%s (capacity %d)", st.Vessel.Name, st.Vessel.Capacity))
	pdf.Ln(-1)

	pdf.SetFont("Courier", "B", 12)
	pdf.Cell(40, 7, "Window:")
	pdf.SetFont("Courier", "", 12)
	pdf.Cell(0, 7, st.StartTime.Format(time.RFC1123)+" - "+st.EndTime().Format("15:04"))
	pdf.Ln(-1)

	pdf.SetFont("Courier", "B", 12)
	pdf.Cell(40, 7, "Seats:")
	pdf.SetFont("Courier", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("%d booked, %d open", avail.BookedSeats, avail.AvailableSeats))
	pdf.Ln(12)

	pdf.SetFont("Courier", "B", 11)
	pdf.CellFormat(70, 8, "Passenger", "1", 0, "L", false, 0, "")
	pdf.CellFormat(70, 8, "Email", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Seats", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Confirmation", "1", 1, "L", false, 0, "")

	pdf.SetFont("Courier", "", 10)
	for _, b := range bookings {
		pdf.CellFormat(70, 8, b.CustomerName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 8, b.CustomerEmail, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", b.PassengerCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, b.Confirmation, "1", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}

// GetManifest renders the crew's passenger manifest for a departure.
func GetManifest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := loadDeparture(db, c.Param("operatorid"), c.Param("schedid"))
		if err != nil {
			writeError(c, err)
			return
		}

		avail, err := GetAvailability(db, st)
		if err != nil {
			writeError(c, err)
			return
		}

		var bookings []types.Booking
		err = db.Order("created_at asc").Find(&bookings, "scheduled_tour_id = ?", st.ID).Error
		if err != nil {
			writeError(c, err)
			return
		}

		c.Status(http.StatusOK)
		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", `attachment; filename="manifest_`+st.ID+`.pdf"`)
		if err := generateManifest(st, avail, bookings, c.Writer); err != nil {
			writeError(c, err)
		}
	}
}
