package repositories

import (
	"context"
	"time"

	"crossroads-renthub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates the session token store.
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByTokenHash looks up a token by its hash. Revoked tokens are
// returned too; the auth service tells a replayed rotation apart from
// an unknown token.
func (r *refreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// GetByUserID returns all live tokens belonging to a user.
func (r *refreshTokenRepository) GetByUserID(ctx context.Context, userID uint) ([]*models.RefreshToken, error) {
	var tokens []*models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// markRevoked stamps revoked_at on every token the query matches.
func (r *refreshTokenRepository) markRevoked(ctx context.Context, query string, args ...interface{}) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where(query, args...).
		Update("revoked_at", &now).Error
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, id uint) error {
	return r.markRevoked(ctx, "id = ?", id)
}

func (r *refreshTokenRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	return r.markRevoked(ctx, "token_hash = ?", tokenHash)
}

// RevokeAllByUserID ends every live session for a user. Called on
// logout-all and after a password change.
func (r *refreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return r.markRevoked(ctx, "user_id = ? AND revoked_at IS NULL", userID)
}

// DeleteExpired removes tokens past their expiry. Run from the nightly
// cleanup job.
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.RefreshToken{}).Error
}

// CountActiveByUserID counts unexpired, unrevoked tokens for a user.
func (r *refreshTokenRepository) CountActiveByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, time.Now()).
		Count(&count).Error
	return count, err
}
