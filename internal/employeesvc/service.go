package employeesvc

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
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/utils"
)

const hireDateLayout = "2006-01-02"

type Service struct {
	db *gorm.DB
}

func NewService(database *gorm.DB) *Service {
	return &Service{db: database}
}

type CreateEmployeeInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"fullName"`
	EmployeeCode string `json:"employeeCode"`
	Department   string `json:"department,omitempty"`
	Position     string `json:"position,omitempty"`
	Phone        string `json:"phone,omitempty"`
	HireDate     string `json:"hireDate,omitempty"`
	IsActive     *bool  `json:"isActive,omitempty"`
}

type UpdateEmployeeInput struct {
	Email        *string `json:"email,omitempty"`
	Password     *string `json:"password,omitempty"`
	FullName     *string `json:"fullName,omitempty"`
	EmployeeCode *string `json:"employeeCode,omitempty"`
	Department   *string `json:"department,omitempty"`
	Position     *string `json:"position,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	HireDate     *string `json:"hireDate,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// EmployeeDTO is an employee merged with its user's email.
type EmployeeDTO struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	FullName     string     `json:"fullName"`
	EmployeeCode string     `json:"employeeCode"`
	Department   string     `json:"department,omitempty"`
	Position     string     `json:"position,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	HireDate     *time.Time `json:"hireDate,omitempty"`
	IsActive     bool       `json:"isActive"`
	Email        string     `json:"email,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Create provisions the user and the employee as one aggregate; both writes
// happen in a single transaction so a failed employee insert never leaves an
// orphan user behind.
func (s *Service) Create(ctx context.Context, input CreateEmployeeInput) (EmployeeDTO, error) {
	if err := validateCreate(input); err != nil {
		return EmployeeDTO{}, err
	}

	hireDate, err := parseHireDate(input.HireDate)
	if err != nil {
		return EmployeeDTO{}, err
	}

	var created EmployeeDTO
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existingUser models.User
		if err := tx.Where("email = ?", input.Email).First(&existingUser).Error; err == nil {
			return apperror.New(apperror.CodeConflict, "Email already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check email: %w", err)
		}

		var existingEmployee models.Employee
		if err := tx.Where("employee_code = ?", input.EmployeeCode).First(&existingEmployee).Error; err == nil {
			return apperror.New(apperror.CodeConflict, "Employee code already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check employee code: %w", err)
		}

		passwordHash, err := utils.HashPassword(input.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		user := models.User{
			Email:        input.Email,
			PasswordHash: passwordHash,
			Role:         models.RoleEmployee,
		}
		if err := tx.Create(&user).Error; err != nil {
			if db.IsDuplicate(err) {
				return apperror.New(apperror.CodeConflict, "Email already exists")
			}
			return fmt.Errorf("create user: %w", err)
		}

		isActive := true
		if input.IsActive != nil {
			isActive = *input.IsActive
		}
		employee := models.Employee{
			UserID:       &user.ID,
			FullName:     input.FullName,
			EmployeeCode: input.EmployeeCode,
			Department:   input.Department,
			Position:     input.Position,
			Phone:        input.Phone,
			HireDate:     hireDate,
			IsActive:     isActive,
		}
		if err := tx.Create(&employee).Error; err != nil {
			if db.IsDuplicate(err) {
				return apperror.New(apperror.CodeConflict, "Employee code already exists")
			}
			return fmt.Errorf("create employee: %w", err)
		}

		created = toDTO(employee, user.Email)
		return nil
	})
	if err != nil {
		return EmployeeDTO{}, err
	}
	return created, nil
}

func (s *Service) FindAll(ctx context.Context) ([]EmployeeDTO, error) {
	var employees []models.Employee
	if err := s.db.WithContext(ctx).Preload("User").Order("created_at desc").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	result := make([]EmployeeDTO, 0, len(employees))
	for _, employee := range employees {
		email := ""
		if employee.User != nil {
			email = employee.User.Email
		}
		result = append(result, toDTO(employee, email))
	}
	return result, nil
}

func (s *Service) FindOne(ctx context.Context, id string) (EmployeeDTO, error) {
	employee, err := s.load(ctx, s.db, id)
	if err != nil {
		return EmployeeDTO{}, err
	}
	email := ""
	if employee.User != nil {
		email = employee.User.Email
	}
	return toDTO(employee, email), nil
}

// Update applies user-side changes (email, re-hashed password) and
// employee-side changes in one transaction.
func (s *Service) Update(ctx context.Context, id string, input UpdateEmployeeInput) (EmployeeDTO, error) {
	var updated EmployeeDTO
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		employee, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}

		if input.Email != nil && (employee.User == nil || *input.Email != employee.User.Email) {
			var existing models.User
			err := tx.Where("email = ?", *input.Email).First(&existing).Error
			if err == nil && (employee.UserID == nil || existing.ID != *employee.UserID) {
				return apperror.New(apperror.CodeConflict, "Email already exists")
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("check email: %w", err)
			}
		}

		if input.EmployeeCode != nil && *input.EmployeeCode != employee.EmployeeCode {
			var existing models.Employee
			err := tx.Where("employee_code = ?", *input.EmployeeCode).First(&existing).Error
			if err == nil && existing.ID != employee.ID {
				return apperror.New(apperror.CodeConflict, "Employee code already exists")
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("check employee code: %w", err)
			}
		}

		if employee.User != nil {
			if input.Email != nil {
				employee.User.Email = *input.Email
			}
			if input.Password != nil {
				passwordHash, err := utils.HashPassword(*input.Password)
				if err != nil {
					return fmt.Errorf("hash password: %w", err)
				}
				employee.User.PasswordHash = passwordHash
			}
			if err := tx.Save(employee.User).Error; err != nil {
				if db.IsDuplicate(err) {
					return apperror.New(apperror.CodeConflict, "Email already exists")
				}
				return fmt.Errorf("update user: %w", err)
			}
		}

		if input.FullName != nil {
			employee.FullName = *input.FullName
		}
		if input.EmployeeCode != nil {
			employee.EmployeeCode = *input.EmployeeCode
		}
		if input.Department != nil {
			employee.Department = *input.Department
		}
		if input.Position != nil {
			employee.Position = *input.Position
		}
		if input.Phone != nil {
			employee.Phone = *input.Phone
		}
		if input.HireDate != nil {
			hireDate, err := parseHireDate(*input.HireDate)
			if err != nil {
				return err
			}
			employee.HireDate = hireDate
		}
		if input.IsActive != nil {
			employee.IsActive = *input.IsActive
		}

		// The user row was saved above; keep the association out of this save.
		if err := tx.Omit("User").Save(&employee).Error; err != nil {
			if db.IsDuplicate(err) {
				return apperror.New(apperror.CodeConflict, "Employee code already exists")
			}
			return fmt.Errorf("update employee: %w", err)
		}

		email := ""
		if employee.User != nil {
			email = employee.User.Email
		}
		updated = toDTO(employee, email)
		return nil
	})
	if err != nil {
		return EmployeeDTO{}, err
	}
	return updated, nil
}

// Remove deletes the linked user (if any) and the employee together.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		employee, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}

		if employee.User != nil {
			if err := tx.Delete(employee.User).Error; err != nil {
				return fmt.Errorf("delete user: %w", err)
			}
		}
		if err := tx.Delete(&models.Employee{}, "id = ?", employee.ID).Error; err != nil {
			return fmt.Errorf("delete employee: %w", err)
		}
		return nil
	})
}

func (s *Service) load(ctx context.Context, tx *gorm.DB, id string) (models.Employee, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return models.Employee{}, apperror.New(apperror.CodeNotFound, "Employee not found")
	}

	var employee models.Employee
	if err := tx.WithContext(ctx).Preload("User").First(&employee, "id = ?", parsed).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Employee{}, apperror.New(apperror.CodeNotFound, "Employee not found")
		}
		return models.Employee{}, fmt.Errorf("load employee: %w", err)
	}
	return employee, nil
}

func validateCreate(input CreateEmployeeInput) error {
	missing := []string{}
	if strings.TrimSpace(input.Email) == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(input.FullName) == "" {
		missing = append(missing, "fullName")
	}
	if strings.TrimSpace(input.EmployeeCode) == "" {
		missing = append(missing, "employeeCode")
	}
	if len(missing) > 0 {
		return apperror.New(apperror.CodeValidation, "missing required fields: "+strings.Join(missing, ", "))
	}
	return nil
}

func parseHireDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(hireDateLayout, value)
	if err != nil {
		return nil, apperror.New(apperror.CodeValidation, "invalid hireDate")
	}
	return &parsed, nil
}

func toDTO(employee models.Employee, email string) EmployeeDTO {
	return EmployeeDTO{
		ID:           employee.ID,
		UserID:       employee.UserID,
		FullName:     employee.FullName,
		EmployeeCode: employee.EmployeeCode,
		Department:   employee.Department,
		Position:     employee.Position,
		Phone:        employee.Phone,
		HireDate:     employee.HireDate,
		IsActive:     employee.IsActive,
		Email:        email,
		CreatedAt:    employee.CreatedAt,
		UpdatedAt:    employee.UpdatedAt,
	}
}
