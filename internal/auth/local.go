package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/db/models"
)

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate checks username and password of an active user.
func (p *LocalProvider) Authenticate(username, password string) (*models.User, error) {
	user, err := p.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

// CreateUser creates a new active local user.
func (p *LocalProvider) CreateUser(username, email, password, firstName, lastName string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	var existing models.User

	err := p.db.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		return nil, ErrUserNameOrEmailExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := models.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Active:    true,
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
	}

	if err := p.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// SetActive enables or disables a user account.
func (p *LocalProvider) SetActive(userID uint64, active bool) error {
	result := p.db.Model(&models.User{}).Where("id = ?", userID).Update("active", active)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// DeleteUser removes the account of userID. The store cascades the delete to
// the token, the contacts and the contact groups of the user and their memberships.
func (p *LocalProvider) DeleteUser(userID uint64) error {
	result := p.db.Delete(&models.User{}, userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// CountUsers returns the number of accounts.
func (p *LocalProvider) CountUsers() (int64, error) {
	var n int64
	err := p.db.Model(&models.User{}).Count(&n).Error

	return n, err
}

// GetUserByID retrieves a user by ID.
func (p *LocalProvider) GetUserByID(userID uint64) (*models.User, error) {
	var user models.User

	err := p.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (p *LocalProvider) GetUserByUsername(username string) (*models.User, error) {
	var user models.User

	err := p.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}
