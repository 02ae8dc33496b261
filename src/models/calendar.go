package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strconv"
	"time"
	"vrb/src/types"
)

// DayRecord is the smallest priced unit: one property, one date.
// BookingID is set while a non-canceled booking claims the night and is
// what release checks before flipping Available back on.
type DayRecord struct {
	PriceCents        int64             `json:"price_cents"`
	PricesByOccupancy map[string]int64  `json:"prices_by_occupancy"`
	Available         bool              `json:"available"`
	MinimumStay       int               `json:"minimum_stay"`
	PriceSource       types.PriceSource `json:"price_source"`
	BookingID         *uint             `json:"booking_id,omitempty"`
}

// DayMap maps day-of-month ("1".."31") to its record. Keys are strings
// because the map lives in a jsonb column.
type DayMap map[string]DayRecord

func (a DayMap) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *DayMap) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a DayMap) Day(d int) (DayRecord, bool) {
	rec, ok := a[strconv.Itoa(d)]
	return rec, ok
}

func (a DayMap) SetDay(d int, rec DayRecord) {
	a[strconv.Itoa(d)] = rec
}

type PriceCalendarMonth struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	PropertyID uint   `gorm:"uniqueIndex:idx_property_month" json:"property_id"`
	Year       int    `gorm:"uniqueIndex:idx_property_month" json:"year"`
	Month      int    `gorm:"uniqueIndex:idx_property_month" json:"month"`
	Days       DayMap `gorm:"type:jsonb" json:"days"`

	Property Property `json:"-"`

	types.Timestamps
}

func (m *PriceCalendarMonth) DaysInMonth() int {
	return time.Date(m.Year, time.Month(m.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
