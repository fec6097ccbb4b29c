package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/address-book/address-book/internal/db/models"
	"github.com/address-book/address-book/internal/uniuri"
)

// Service issues and resolves API tokens.
type Service struct {
	db    *gorm.DB
	Local *LocalProvider
}

// NewService creates a new token service.
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:    db,
		Local: NewLocalProvider(db),
	}
}

// GenerateTokenKey returns a random hex key of models.TokenKeyLength characters.
func GenerateTokenKey() (string, error) {
	return uniuri.Hex(models.TokenKeyLength) //nolint:wrapcheck
}

// Login checks the credentials and returns the token of the user, creating it on first use.
func (s *Service) Login(username, password string) (*models.Token, error) {
	user, err := s.Local.Authenticate(username, password)
	if err != nil {
		return nil, err
	}

	return s.IssueToken(user.ID)
}

// IssueToken returns the token of userID, creating it if the user has none yet.
func (s *Service) IssueToken(userID uint64) (*models.Token, error) {
	key, err := GenerateTokenKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// one token per user, a concurrent login may have created it already
	token := models.Token{Key: key, UserID: userID}

	err = s.db.Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&token).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	var stored models.Token
	if err = s.db.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	return &stored, nil
}

// UserForToken resolves the active user owning key.
func (s *Service) UserForToken(key string) (*models.User, error) {
	if len(key) != models.TokenKeyLength {
		return nil, ErrInvalidToken
	}

	var token models.Token

	err := s.db.Preload("User").Where(&models.Token{Key: key}).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query token: %w", err)
	}

	if !token.User.Active {
		return nil, ErrUserAccountDisabled
	}

	return &token.User, nil
}

// RevokeToken deletes the token of userID, a new one is issued on the next login.
func (s *Service) RevokeToken(userID uint64) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.Token{}).Error
}
