package repositories

import (
	"context"

	"crossroads-renthub/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PasswordResetRepository handles password reset data access
type PasswordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

// Upsert stores the reset code and link for a user, one row per user
func (r *PasswordResetRepository) Upsert(ctx context.Context, reset *models.PasswordReset) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "link", "updated_at"}),
		}).
		Create(reset).Error
}

// GetByLinkAndCode gets a reset entry matching both the link and the code
func (r *PasswordResetRepository) GetByLinkAndCode(ctx context.Context, link string, code int) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := r.db.WithContext(ctx).
		Where("link = ? AND code = ?", link, code).
		First(&reset).Error
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

// DeleteByUserID removes a user's reset entry after a successful reset
func (r *PasswordResetRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.PasswordReset{}).Error
}
