package addressbook

import (
	"context"

	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/db/controller/contactgroup"
)

// SearchService finds contact groups by name.
type SearchService struct {
	db *gorm.DB
}

// NewSearchService creates a SearchService on top of db.
func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// Search returns the groups of userID whose name contains name, ignoring case.
// An empty name returns all groups of the user.
func (s *SearchService) Search(ctx context.Context, userID uint64, name string) ([]ContactGroup, error) {
	db := s.db.WithContext(ctx)

	groups, err := contactgroup.Search(db, userID, name)
	if err != nil {
		return nil, err
	}

	return groupViews(db, groups)
}
