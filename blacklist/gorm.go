package blacklist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/snap-point/social-api/models"
	"gorm.io/gorm"
)

// GormBlacklist stores blacklist state on models.RefreshToken rows.
type GormBlacklist struct {
	DB *gorm.DB
}

func NewGormBlacklist(db *gorm.DB) *GormBlacklist {
	return &GormBlacklist{DB: db}
}

func (b *GormBlacklist) Blacklist(ctx context.Context, jti string, _ time.Time) error {
	result := b.DB.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("jti = ? AND blacklisted_at IS NULL", jti).
		Update("blacklisted_at", time.Now().UTC())
	if result.Error != nil {
		return fmt.Errorf("blacklist token: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	blacklisted, err := b.IsBlacklisted(ctx, jti)
	if err != nil {
		return err
	}
	if blacklisted {
		return ErrBlacklisted
	}
	return ErrNotOutstanding
}

func (b *GormBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	var token models.RefreshToken
	err := b.DB.WithContext(ctx).Select("id", "blacklisted_at").Where("jti = ?", jti).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrNotOutstanding
	}
	if err != nil {
		return false, fmt.Errorf("lookup token: %w", err)
	}
	return token.Blacklisted(), nil
}
