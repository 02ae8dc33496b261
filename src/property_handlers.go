package main

import (
	"io"
	"log"
	"net/http"
	"time"
	"vrb/src/common"
	"vrb/src/config"
	"vrb/src/db"
	"vrb/src/models"
	"vrb/src/types"
	"vrb/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func propertyHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/properties", func(ctx *gin.Context) {
			hostId := ctx.GetUint("id")
			db := db.GetDb()
			var properties []models.Property
			if err := db.
				Model(&models.Property{}).
				Where(&models.Property{HostID: hostId}).
				Find(&properties).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": properties, "count": len(properties)})
		}).
		GET("/properties/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var property models.Property
			if err := db.
				Model(&models.Property{}).
				Where(&models.Property{ID: params.ID}).
				Preload("SeasonalRules").
				Preload("DateOverrides").
				First(&property).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": property})
		}).
		POST("/properties", func(ctx *gin.Context) {
			var body types.CreatePropertyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			hostId := ctx.GetUint("id")
			status := types.PROPERTY_DRAFT
			if body.Publish {
				status = types.PROPERTY_ACTIVE
			}
			var tenantId *uuid.UUID
			if tid, err := uuid.Parse(ctx.GetString("tenant_id")); err == nil {
				tenantId = &tid
			}
			property := models.Property{
				Slug:               slug.Make(body.Name),
				Name:               body.Name,
				Description:        &body.Description,
				Location:           body.Location,
				Status:             status,
				Currency:           body.Currency,
				BasePriceCents:     body.BasePriceCents,
				BaseOccupancy:      body.BaseOccupancy,
				MaxGuests:          body.MaxGuests,
				ExtraGuestFeeCents: body.ExtraGuestFeeCents,
				CleaningFeeCents:   body.CleaningFeeCents,
				MinimumStay:        body.MinimumStay,
				WeekendDays:        body.WeekendDays,
				WeekendMultiplier:  body.WeekendMultiplier,
				DiscountTiers:      body.DiscountTiers,
				HostID:             hostId,
				TenantID:           tenantId,
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&property).Error
			}); err != nil {
				log.Printf("Could not create property: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": property})
		}).
		PATCH("/properties/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdatePropertyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.Name != nil {
				updates["name"] = *body.Name
			}
			if body.Description != nil {
				updates["description"] = *body.Description
			}
			if body.Location != nil {
				updates["location"] = *body.Location
			}
			if body.BasePriceCents != nil {
				updates["base_price_cents"] = *body.BasePriceCents
			}
			if body.ExtraGuestFeeCents != nil {
				updates["extra_guest_fee_cents"] = *body.ExtraGuestFeeCents
			}
			if body.CleaningFeeCents != nil {
				updates["cleaning_fee_cents"] = *body.CleaningFeeCents
			}
			if body.MinimumStay != nil {
				updates["minimum_stay"] = *body.MinimumStay
			}
			if body.WeekendDays != nil {
				updates["weekend_days"] = *body.WeekendDays
			}
			if body.WeekendMultiplier != nil {
				updates["weekend_multiplier"] = *body.WeekendMultiplier
			}
			if body.DiscountTiers != nil {
				updates["discount_tiers"] = *body.DiscountTiers
			}
			if body.Status != nil {
				updates["status"] = *body.Status
			}
			db := db.GetDb()
			if err := db.
				Model(&models.Property{}).
				Where(&models.Property{ID: params.ID}).
				Updates(updates).
				Error; err != nil {
				log.Printf("Could not update property %d: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/properties/:id/calendar/generate", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			// Body is optional; an absent one means the default horizon.
			var body types.GenerateCalendarRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil && err != io.EOF {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			months := body.Months
			if months == 0 {
				months = config.DEFAULT_CALENDAR_MONTHS
			}
			generated, err := common.GenerateCalendars(params.ID, months, time.Now().UTC())
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"months": generated})
		})
	return g
}

func pricingRuleHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/properties/:id/seasonal-rules", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateSeasonalRuleRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			startDate, err := utils.ParseDate(body.StartDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			endDate, err := utils.ParseDate(body.EndDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			enabled := true
			if body.Enabled != nil {
				enabled = *body.Enabled
			}
			rule := models.SeasonalRule{
				PropertyID:  params.ID,
				Name:        body.Name,
				StartDate:   startDate,
				EndDate:     endDate,
				Multiplier:  body.Multiplier,
				MinimumStay: body.MinimumStay,
				Enabled:     enabled,
			}
			db := db.GetDb()
			if err := db.Create(&rule).Error; err != nil {
				log.Printf("Could not create seasonal rule: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": rule})
		}).
		DELETE("/properties/:id/seasonal-rules/:ruleId", func(ctx *gin.Context) {
			var params struct {
				ID     uint `uri:"id" binding:"required"`
				RuleID uint `uri:"ruleId" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			if err := db.
				Where(&models.SeasonalRule{ID: params.RuleID, PropertyID: params.ID}).
				Delete(&models.SeasonalRule{}).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/properties/:id/date-overrides", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateDateOverrideRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			date, err := utils.ParseDate(body.Date)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			available := true
			if body.Available != nil {
				available = *body.Available
			}
			override := models.DateOverride{
				PropertyID:  params.ID,
				Date:        date,
				PriceCents:  body.PriceCents,
				Available:   available,
				MinimumStay: body.MinimumStay,
				FlatRate:    body.FlatRate,
			}
			db := db.GetDb()
			if err := db.Create(&override).Error; err != nil {
				log.Printf("Could not create date override: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": override})
		}).
		DELETE("/properties/:id/date-overrides/:overrideId", func(ctx *gin.Context) {
			var params struct {
				ID         uint `uri:"id" binding:"required"`
				OverrideID uint `uri:"overrideId" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			if err := db.
				Where(&models.DateOverride{ID: params.OverrideID, PropertyID: params.ID}).
				Delete(&models.DateOverride{}).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
