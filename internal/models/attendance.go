package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceRecord is immutable once created; there is no update or delete
// path for it anywhere in the system.
type AttendanceRecord struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID     uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_attendance_employee_date" json:"employeeId"`
	Employee       *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
	AttendanceDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_date" json:"attendanceDate"`
	CheckInTime    time.Time `gorm:"not null" json:"checkInTime"`
	PhotoURL       string    `gorm:"size:2048" json:"photoUrl,omitempty"`
	Notes          string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (a *AttendanceRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
