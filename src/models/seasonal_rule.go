package models

import (
	"time"
	"vrb/src/types"
)

type SeasonalRule struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	PropertyID  uint      `gorm:"index" json:"property_id,omitempty"`
	Name        string    `json:"name,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Multiplier  float64   `gorm:"default:1" json:"multiplier"`
	MinimumStay int       `gorm:"default:1" json:"minimum_stay,omitempty"`
	Enabled     bool      `gorm:"default:true" json:"enabled"`

	Property Property `json:"-"`

	types.Timestamps
}

// Covers reports whether the rule applies on the given date. Both rule
// bounds are inclusive.
func (r *SeasonalRule) Covers(date time.Time) bool {
	if !r.Enabled {
		return false
	}
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}
