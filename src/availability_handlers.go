package main

import (
	"encoding/json"
	"log"
	"net/http"
	"vrb/src/common"
	"vrb/src/db"
	"vrb/src/lib"
	"vrb/src/models"
	"vrb/src/types"
	"vrb/src/utils"

	"github.com/gin-gonic/gin"
)

func availabilityHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/properties/:id/availability", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var query types.AvailabilityQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkIn, err := utils.ParseDate(query.CheckIn)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkOut, err := utils.ParseDate(query.CheckOut)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			db := db.GetDb()
			var property models.Property
			if err := db.
				Model(&models.Property{}).
				Where(&models.Property{ID: params.ID, Status: types.PROPERTY_ACTIVE}).
				First(&property).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
				return
			}
			if query.Guests > property.MaxGuests {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "party size exceeds property capacity"})
				return
			}

			version := lib.CalendarVersion(property.ID)
			cacheKey := lib.QuoteCacheKey(property.ID, version, query.CheckIn, query.CheckOut, query.Guests)
			if cached := lib.GetCachedQuote(cacheKey); cached != "" {
				ctx.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
				return
			}

			eval, err := availabilityChecker.Check(db, property.ID, checkIn, checkOut, query.Guests)
			if err != nil {
				if perr := common.IsMissingPriceDataError(err); perr != nil {
					log.Printf("Missing price data: %s\n", perr.Error())
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "pricing unavailable for the requested dates"})
					return
				}
				log.Printf("Availability check failed: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}

			var resp types.AvailabilityResponse
			if eval.OK {
				quote := common.ComputeQuote(eval.DailyRates, property.CleaningFeeCents, property.DiscountTiers, property.Currency, query.Guests)
				resp = types.AvailabilityResponse{Available: true, Pricing: &quote}
			} else {
				resp = types.AvailabilityResponse{
					Available:           false,
					Reason:              eval.Reason,
					UnavailableDates:    eval.UnavailableDates,
					MinimumStayRequired: eval.MinimumStayRequired,
				}
			}
			body, err := json.Marshal(&resp)
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			lib.SetCachedQuote(cacheKey, string(body))
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", body)
		})
	return g
}
