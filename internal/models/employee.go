package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	UserID       *uuid.UUID `gorm:"type:char(36);uniqueIndex" json:"userId,omitempty"`
	User         *User      `gorm:"foreignKey:UserID" json:"-"`
	FullName     string     `gorm:"size:255;not null" json:"fullName"`
	EmployeeCode string     `gorm:"uniqueIndex;size:50;not null" json:"employeeCode"`
	Department   string     `gorm:"size:120" json:"department,omitempty"`
	Position     string     `gorm:"size:120" json:"position,omitempty"`
	Phone        string     `gorm:"size:50" json:"phone,omitempty"`
	HireDate     *time.Time `gorm:"type:date" json:"hireDate,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
