package models

import "time"

// TokenKeyLength is the length of a hex encoded API token key.
const TokenKeyLength = 40

// Token is the API token of a user. A user has at most one token.
type Token struct {
	// Key is the secret sent as "Authorization: Token <key>".
	Key string `gorm:"primaryKey;size:40"`
	// UserID is the owner of the token.
	UserID uint64 `gorm:"uniqueIndex;not null"`
	// User is the associated user.
	// When a user is deleted, the token is removed as well (CASCADE).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the token was issued (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the Token model.
func (Token) TableName() string {
	return "tokens"
}
