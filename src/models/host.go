package models

import (
	"vrb/src/types"

	"github.com/google/uuid"
)

type Host struct {
	ID       uint       `gorm:"primarykey" json:"id"`
	Email    string     `gorm:"uniqueIndex" json:"email,omitempty"`
	Name     string     `json:"name,omitempty"`
	Role     string     `gorm:"default:'host'" json:"role,omitempty"`
	TenantID *uuid.UUID `gorm:"type:uuid" json:"-"`

	Properties []Property `gorm:"foreignKey:host_id" json:"properties,omitempty"`

	types.Timestamps
}
