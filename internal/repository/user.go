package repository

import (
	"context"
	"errors"
	"strings"

	"documo/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user and organization account
// operations.
type UserRepository interface {
	CreateWithOrganization(ctx context.Context, email, password, organizationName string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	MarkEmailVerified(ctx context.Context, userID uint) error
	UpdatePassword(ctx context.Context, userID uint, newPassword string) error
	CheckPassword(user *models.User, password string) bool
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithOrganization provisions a tenant and its first user in one
// transaction. The organization name doubles as the uniqueness key, so two
// signups cannot share a tenant by accident.
func (r *userRepository) CreateWithOrganization(ctx context.Context, email, password, organizationName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	organizationName = strings.TrimSpace(organizationName)
	if email == "" || password == "" || organizationName == "" {
		return nil, models.NewValidationError("Email, password and organization name are required")
	}
	if len(password) < 8 {
		return nil, models.NewValidationError("Password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var user *models.User
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org := models.Organization{Name: organizationName}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		u := models.User{
			Email:          email,
			Password:       string(hashed),
			OrganizationID: org.ID,
		}
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		u.Organization = &org
		user = &u
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewValidationError("Email or organization name already in use")
		}
		return nil, models.NewOperationError("Failed to create account", err)
	}
	return user, nil
}

// GetByEmail looks a user up by normalized email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", email)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByID loads a user with their organization.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Organization").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// MarkEmailVerified stamps email_verified_at once; re-verifying is a no-op.
func (r *userRepository) MarkEmailVerified(ctx context.Context, userID uint) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND email_verified_at IS NULL", userID).
		Update("email_verified_at", gorm.Expr("CURRENT_TIMESTAMP"))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	return nil
}

// UpdatePassword rehashes and stores the new password.
func (r *userRepository) UpdatePassword(ctx context.Context, userID uint, newPassword string) error {
	if len(newPassword) < 8 {
		return models.NewValidationError("Password must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("password", string(hashed))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", userID)
	}
	return nil
}

// CheckPassword compares a candidate password against the stored hash.
func (r *userRepository) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
