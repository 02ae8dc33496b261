package main

import (
	"errors"
	"log"
	"net/http"
	"time"
	"vrb/src/common"
	"vrb/src/db"
	"vrb/src/models"
	"vrb/src/types"
	"vrb/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// respondHoldError maps engine outcomes onto guest-safe responses.
// Business outcomes keep their detail; anything else is generic.
func respondHoldError(ctx *gin.Context, err error) {
	if uerr := common.IsUnavailableError(err); uerr != nil {
		ctx.JSON(http.StatusOK, types.AvailabilityResponse{
			Available:        false,
			Reason:           types.REASON_UNAVAILABLE_DATES,
			UnavailableDates: uerr.Dates,
		})
		return
	}
	if merr := common.IsMinimumStayError(err); merr != nil {
		ctx.JSON(http.StatusOK, types.AvailabilityResponse{
			Available:           false,
			Reason:              types.REASON_MINIMUM_STAY,
			MinimumStayRequired: merr.Required,
		})
		return
	}
	if perr := common.IsMissingPriceDataError(err); perr != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "pricing unavailable for the requested dates"})
		return
	}
	if errors.Is(err, common.ErrCapacityExceeded) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "party size exceeds property capacity"})
		return
	}
	if errors.Is(err, common.ErrConcurrencyConflict) {
		ctx.JSON(http.StatusConflict, gin.H{"error": "please retry your booking"})
		return
	}
	if errors.Is(err, common.ErrPropertyNotBookable) || errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	log.Printf("Could not complete request: %s\n", err.Error())
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
}

func guestBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkIn, err := utils.ParseDate(body.CheckIn)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkOut, err := utils.ParseDate(body.CheckOut)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.CreateHold(availabilityChecker, common.HoldInput{
				PropertyID:  body.PropertyID,
				CheckIn:     checkIn,
				CheckOut:    checkOut,
				Guests:      body.Guests,
				GuestName:   body.GuestName,
				GuestEmail:  body.GuestEmail,
				HoldMinutes: body.HoldMinutes,
				PayInFull:   body.PayInFull,
			}, time.Now().UTC())
			if err != nil {
				respondHoldError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{
				"id":              booking.ID,
				"reference":       booking.Reference,
				"status":          booking.Status,
				"hold_expires_at": booking.HoldExpiresAt,
				"pricing":         booking.PricingSnapshot,
			})
		}).
		GET("/bookings/ref/:reference", func(ctx *gin.Context) {
			var params struct {
				Reference string `uri:"reference" binding:"required,uuid"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			ref, _ := uuid.Parse(params.Reference)
			db := db.GetDb()
			var booking models.Booking
			if err := db.
				Model(&models.Booking{}).
				Where(&models.Booking{Reference: ref}).
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"reference":       booking.Reference,
				"status":          booking.Status,
				"check_in":        utils.FormatDate(booking.CheckIn),
				"check_out":       utils.FormatDate(booking.CheckOut),
				"hold_expires_at": booking.HoldExpiresAt,
				"pricing":         booking.PricingSnapshot,
			})
		})
	return g
}

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			hostId := ctx.GetUint("id")
			db := db.GetDb()
			var bookings []models.Booking
			err := db.Transaction(func(tx *gorm.DB) error {
				err := tx.
					Model(&models.Booking{}).
					Joins("Property").
					Where("\"Property\".host_id = ?", hostId).
					Find(&bookings).
					Error
				if err != nil {
					return err
				}
				return nil
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var booking models.Booking
			if err := db.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				Preload("Property").
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.CancelBooking(params.ID)
			if err != nil {
				if errors.Is(err, common.ErrExpiredHold) {
					ctx.JSON(http.StatusConflict, gin.H{"error": "booking can no longer be canceled"})
					return
				}
				log.Printf("Could not complete request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"id": booking.ID, "status": booking.Status}})
		}).
		PUT("/bookings/:id/extend", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body struct {
				Minutes int `json:"minutes" binding:"required,min=5,max=1440"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.ExtendHold(params.ID, body.Minutes, time.Now().UTC())
			if err != nil {
				if errors.Is(err, common.ErrExpiredHold) {
					ctx.JSON(http.StatusConflict, gin.H{"error": "hold is no longer active"})
					return
				}
				log.Printf("Could not complete request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{
				"id":              booking.ID,
				"status":          booking.Status,
				"hold_expires_at": booking.HoldExpiresAt,
			}})
		})
	return g
}
