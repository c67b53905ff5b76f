package models

import (
	"time"
)

// RefreshToken tracks an issued refresh token so it can be blacklisted.
// BlacklistedAt is set once the token has been logged out or rotated.
type RefreshToken struct {
	ID             uint       `gorm:"primaryKey;autoIncrement"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UserID         uint       `gorm:"not null;index"`
	User           User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	JTI            string     `gorm:"column:jti;size:64;uniqueIndex;not null"`
	Token          string     `gorm:"type:text;not null"`
	ExpirationDate time.Time  `gorm:"not null"`
	BlacklistedAt  *time.Time `gorm:"index"`
}

// Blacklisted reports whether the token may no longer be used.
func (t *RefreshToken) Blacklisted() bool {
	return t.BlacklistedAt != nil
}
