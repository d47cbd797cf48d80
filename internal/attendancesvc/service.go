package attendancesvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/apperror"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/db"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/models"
)

const oncePerDayMessage = "Hanya dapat melakukan absen 1 kali sehari."

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(database *gorm.DB) *Service {
	return &Service{db: database, now: time.Now}
}

type CreateAttendanceInput struct {
	PhotoURL string `json:"photoUrl"`
	Notes    string `json:"notes,omitempty"`
}

type EmployeeIdentity struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"fullName"`
	EmployeeCode string    `json:"employeeCode"`
	Email        string    `json:"email,omitempty"`
}

type AttendanceDTO struct {
	ID             uuid.UUID         `json:"id"`
	EmployeeID     uuid.UUID         `json:"employeeId"`
	AttendanceDate time.Time         `json:"attendanceDate"`
	CheckInTime    time.Time         `json:"checkInTime"`
	PhotoURL       string            `json:"photoUrl,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	Employee       *EmployeeIdentity `json:"employee,omitempty"`
}

// Create records one check-in for the employee's current calendar day. The
// read-check gives the friendly failure; the composite unique index on
// (employee_id, attendance_date) is what actually closes the race when two
// submissions arrive together.
func (s *Service) Create(ctx context.Context, employeeID string, input CreateAttendanceInput) (AttendanceDTO, error) {
	parsed, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceDTO{}, apperror.New(apperror.CodeNotFound, "Employee not found")
	}
	if strings.TrimSpace(input.PhotoURL) == "" {
		return AttendanceDTO{}, apperror.New(apperror.CodeValidation, "photoUrl is required")
	}

	var employee models.Employee
	if err := s.db.WithContext(ctx).First(&employee, "id = ?", parsed).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceDTO{}, apperror.New(apperror.CodeNotFound, "Employee not found")
		}
		return AttendanceDTO{}, fmt.Errorf("load employee: %w", err)
	}

	checkIn := s.now()
	today := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, checkIn.Location())

	var existing models.AttendanceRecord
	err = s.db.WithContext(ctx).
		Where("employee_id = ? AND attendance_date = ?", parsed, today).
		First(&existing).Error
	if err == nil {
		return AttendanceDTO{}, apperror.New(apperror.CodeValidation, oncePerDayMessage)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceDTO{}, fmt.Errorf("check attendance: %w", err)
	}

	record := models.AttendanceRecord{
		EmployeeID:     parsed,
		AttendanceDate: today,
		CheckInTime:    checkIn,
		PhotoURL:       input.PhotoURL,
		Notes:          input.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if db.IsDuplicate(err) {
			return AttendanceDTO{}, apperror.New(apperror.CodeValidation, oncePerDayMessage)
		}
		return AttendanceDTO{}, fmt.Errorf("create attendance: %w", err)
	}

	return toDTO(record), nil
}

func (s *Service) FindAll(ctx context.Context) ([]AttendanceDTO, error) {
	var records []models.AttendanceRecord
	if err := s.db.WithContext(ctx).
		Preload("Employee").Preload("Employee.User").
		Order("check_in_time desc").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}

	result := make([]AttendanceDTO, 0, len(records))
	for _, record := range records {
		result = append(result, toDTO(record))
	}
	return result, nil
}

func (s *Service) FindByEmployee(ctx context.Context, employeeID string) ([]AttendanceDTO, error) {
	parsed, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, apperror.New(apperror.CodeNotFound, "Employee not found")
	}

	var records []models.AttendanceRecord
	if err := s.db.WithContext(ctx).
		Where("employee_id = ?", parsed).
		Order("check_in_time desc").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}

	result := make([]AttendanceDTO, 0, len(records))
	for _, record := range records {
		result = append(result, toDTO(record))
	}
	return result, nil
}

func (s *Service) FindOne(ctx context.Context, id string) (AttendanceDTO, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return AttendanceDTO{}, apperror.New(apperror.CodeNotFound, "Attendance record not found")
	}

	var record models.AttendanceRecord
	if err := s.db.WithContext(ctx).
		Preload("Employee").Preload("Employee.User").
		First(&record, "id = ?", parsed).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceDTO{}, apperror.New(apperror.CodeNotFound, "Attendance record not found")
		}
		return AttendanceDTO{}, fmt.Errorf("load attendance: %w", err)
	}

	return toDTO(record), nil
}

func toDTO(record models.AttendanceRecord) AttendanceDTO {
	dto := AttendanceDTO{
		ID:             record.ID,
		EmployeeID:     record.EmployeeID,
		AttendanceDate: record.AttendanceDate,
		CheckInTime:    record.CheckInTime,
		PhotoURL:       record.PhotoURL,
		Notes:          record.Notes,
		CreatedAt:      record.CreatedAt,
	}
	if record.Employee != nil {
		identity := EmployeeIdentity{
			ID:           record.Employee.ID,
			FullName:     record.Employee.FullName,
			EmployeeCode: record.Employee.EmployeeCode,
		}
		if record.Employee.User != nil {
			identity.Email = record.Employee.User.Email
		}
		dto.Employee = &identity
	}
	return dto
}
