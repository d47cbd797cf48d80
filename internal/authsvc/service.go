package authsvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/apperror"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/models"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/utils"
)

type Service struct {
	db             *gorm.DB
	jwtSecret      string
	expiresMinutes int
}

func NewService(db *gorm.DB, jwtSecret string, expiresMinutes int) *Service {
	return &Service{
		db:             db,
		jwtSecret:      jwtSecret,
		expiresMinutes: expiresMinutes,
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProjection is the client-safe subset of a user; it never carries the
// password hash.
type UserProjection struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	EmployeeID *uuid.UUID `json:"employeeId,omitempty"`
}

type LoginResult struct {
	AccessToken string         `json:"access_token"`
	User        UserProjection `json:"user"`
}

// Login fails with the same message for an unknown email and a wrong
// password; callers must not learn which one it was.
func (s *Service) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResult{}, apperror.New(apperror.CodeUnauthorized, "Invalid credentials")
		}
		return LoginResult{}, fmt.Errorf("load user: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, input.Password) {
		return LoginResult{}, apperror.New(apperror.CodeUnauthorized, "Invalid credentials")
	}

	employeeID, err := s.employeeIDFor(ctx, user.ID)
	if err != nil {
		return LoginResult{}, err
	}

	employeeClaim := ""
	if employeeID != nil {
		employeeClaim = employeeID.String()
	}
	token, err := utils.GenerateAccessToken(user.ID.String(), user.Email, user.Role, employeeClaim, s.jwtSecret, s.expiresMinutes)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign token: %w", err)
	}

	return LoginResult{
		AccessToken: token,
		User: UserProjection{
			ID:         user.ID,
			Email:      user.Email,
			Role:       user.Role,
			EmployeeID: employeeID,
		},
	}, nil
}

// ValidateUser resolves a user id to its public projection. Unlike Login it
// does not fail on a miss: an unknown id yields a nil projection and callers
// treat that as unauthenticated.
func (s *Service) ValidateUser(ctx context.Context, userID string) (*UserProjection, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	employeeID, err := s.employeeIDFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &UserProjection{
		ID:         user.ID,
		Email:      user.Email,
		Role:       user.Role,
		EmployeeID: employeeID,
	}, nil
}

func (s *Service) employeeIDFor(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load employee: %w", err)
	}
	return &employee.ID, nil
}
