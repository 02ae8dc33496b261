package main

import (
	"errors"
	"log"
	"net/http"
	"time"
	"vrb/src/common"
	"vrb/src/middlewares"
	"vrb/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// paymentWebhookRoute is the payment processor boundary. Delivery and
// signature verification live with the processor integration upstream;
// here a shared secret gates the call and the event is applied at most
// once per payment ref.
func paymentWebhookRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/webhook/payments",
		middlewares.SharedSecret("x-webhook-secret", "PAYMENT_WEBHOOK_SECRET"),
		func(ctx *gin.Context) {
			var body types.PaymentEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, replayed, err := common.ApplyPaymentEvent(
				body.BookingID,
				body.PaymentRef,
				types.PaymentOutcome(body.Outcome),
				time.Now().UTC(),
			)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
					return
				}
				if errors.Is(err, common.ErrExpiredHold) {
					// Hold expired before the payment landed; the
					// processor side owns the refund.
					ctx.JSON(http.StatusConflict, gin.H{"error": "hold has already been released"})
					return
				}
				log.Printf("Error applying payment event %s: %s\n", body.PaymentRef, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"booking_id": booking.ID,
				"status":     booking.Status,
				"replayed":   replayed,
			})
		})
	return apiv1
}
