package models

import (
	"time"
	"vrb/src/types"
)

type DateOverride struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	PropertyID  uint      `gorm:"uniqueIndex:idx_property_date" json:"property_id,omitempty"`
	Date        time.Time `gorm:"uniqueIndex:idx_property_date" json:"date"`
	PriceCents  *int64    `json:"price_cents,omitempty"`
	Available   bool      `gorm:"default:true" json:"available"`
	MinimumStay int       `gorm:"default:1" json:"minimum_stay,omitempty"`
	FlatRate    bool      `json:"flat_rate,omitempty"`

	Property Property `json:"-"`

	types.Timestamps
}
