package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"boat-rental-server/models"
	"boat-rental-server/storage"
	"boat-rental-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateBookingInput struct {
	BoatID             uint                  `json:"boatID" validate:"required"`
	StartDate          string                `json:"startDate" validate:"required"`
	EndDate            string                `json:"endDate" validate:"required"`
	Extras             []models.BookingExtra `json:"extras"`
	CancellationPolicy string                `json:"cancellationPolicy"`
	CheckInTime        string                `json:"checkInTime"`
	CheckOutTime       string                `json:"checkOutTime"`
}

var errDatesUnavailable = errors.New("selected dates are not available")

// CreateBooking reserves a boat for an inclusive date range. The overlap check,
// the booking insert and the ledger append run in one transaction with the boat
// row locked, so two concurrent requests for colliding ranges cannot both pass
// a stale read: exactly one commits, the other fails with a conflict and leaves
// no partial state behind.
func CreateBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid start date format.", ctx)
		return
	}
	endDate, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid end date format.", ctx)
		return
	}
	if endDate.Before(startDate) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "End date must not be before start date.", ctx)
		return
	}
	if input.CancellationPolicy != "" && !slices.Contains(models.CancellationPolicies, input.CancellationPolicy) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid cancellation policy.", ctx)
		return
	}

	var renter models.User
	if err := storage.DB.First(&renter, userID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var booking models.Booking
	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the boat row: ledger mutations for one boat are serialized here.
		var boat models.Boat
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&boat, input.BoatID).Error; err != nil {
			return err
		}

		var ledger []models.BoatAvailability
		if err := tx.Where("boat_id = ?", boat.ID).Find(&ledger).Error; err != nil {
			return err
		}
		for i := range ledger {
			if ledger[i].Overlaps(startDate, endDate) {
				return errDatesUnavailable
			}
		}

		var owner models.User
		if err := tx.First(&owner, boat.OwnerID).Error; err != nil {
			return err
		}

		days := int(endDate.Sub(startDate).Hours()/24) + 1
		basePrice := boat.ReferencePrice * float64(days)
		extrasPrice := 0.0
		for _, extra := range input.Extras {
			extrasPrice += extra.Price
		}
		extrasJSON, _ := json.Marshal(input.Extras)

		booking = models.Booking{
			RenterID:           userID,
			BoatID:             boat.ID,
			StartDate:          startDate,
			EndDate:            endDate,
			BasePrice:          basePrice,
			ExtrasPrice:        extrasPrice,
			TotalPrice:         basePrice + extrasPrice,
			Extras:             datatypes.JSON(extrasJSON),
			RenterEmail:        renter.Email,
			RenterPhone:        renter.Phone,
			OwnerEmail:         owner.Email,
			OwnerPhone:         owner.Phone,
			CancellationPolicy: input.CancellationPolicy,
			CheckInTime:        input.CheckInTime,
			CheckOutTime:       input.CheckOutTime,
			Status:             models.BookingStatusPending,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		entry := models.BoatAvailability{
			BoatID:    boat.ID,
			StartDate: startDate,
			EndDate:   endDate,
			IsBooked:  true,
		}
		return tx.Create(&entry).Error
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		if errors.Is(txErr, errDatesUnavailable) {
			utils.CreateError(iris.StatusConflict, "Conflict", "Selected dates are not available.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	notification := models.Notification{
		UserID: userID,
		Type:   "booking_confirmed",
		Title:  "Booking Confirmed",
		Message: fmt.Sprintf("Your booking from %s to %s has been created.",
			booking.StartDate.Format("January 2, 2006"),
			booking.EndDate.Format("January 2, 2006")),
		RefType: "booking",
		RefID:   booking.ID,
	}
	storage.DB.Create(&notification)

	utils.Audit(ctx, "booking.create", "booking", booking.ID, nil, booking)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": "Booking created successfully", "booking": &booking})
}

// GetMyRentals lists the caller's bookings as a renter.
func GetMyRentals(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var bookings []models.Booking
	if err := storage.DB.Where("renter_id = ?", userID).
		Preload("Boat").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

// GetMyBoatBookings lists bookings made against boats the caller owns.
func GetMyBoatBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var bookings []models.Booking
	if err := storage.DB.
		Joins("JOIN boats ON bookings.boat_id = boats.id").
		Where("boats.owner_id = ?", userID).
		Preload("Boat").
		Preload("Renter").
		Order("bookings.created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

// CancelBooking moves a Pending booking to Cancelled. Whether the booked date
// range is released back to the boat's ledger is a product policy, toggled with
// RELEASE_DATES_ON_CANCEL (default: the range stays blocked, as the legacy
// behavior had it).
func CancelBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	bookingID := ctx.Params().GetUintDefault("id", 0)
	if bookingID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid booking ID.", ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	var boat models.Boat
	if err := storage.DB.First(&boat, booking.BoatID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Renter or boat owner may cancel, nobody else.
	if booking.RenterID != userID && boat.OwnerID != userID {
		utils.CreateForbidden(ctx)
		return
	}

	if booking.Status != models.BookingStatusPending {
		utils.CreateError(iris.StatusBadRequest, "Invalid State", "Only pending bookings can be cancelled.", ctx)
		return
	}

	before := booking

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
			return err
		}
		if releaseDatesOnCancel() {
			return tx.Where("boat_id = ? AND start_date = ? AND end_date = ? AND is_booked = ?",
				booking.BoatID, booking.StartDate, booking.EndDate, true).
				Delete(&models.BoatAvailability{}).Error
		}
		return nil
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	notification := models.Notification{
		UserID:  booking.RenterID,
		Type:    "booking_cancelled",
		Title:   "Booking Cancelled",
		Message: fmt.Sprintf("Booking #%d has been cancelled.", booking.ID),
		RefType: "booking",
		RefID:   booking.ID,
	}
	storage.DB.Create(&notification)

	utils.Audit(ctx, "booking.cancel", "booking", booking.ID, before, booking)

	ctx.JSON(iris.Map{"message": "Booking cancelled successfully"})
}

func releaseDatesOnCancel() bool {
	return os.Getenv("RELEASE_DATES_ON_CANCEL") == "true"
}
