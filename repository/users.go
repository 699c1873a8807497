package repository

import (
	"context"
	"errors"

	"foliocms/models"

	"gorm.io/gorm"
)

// Users adds the credential lookup the admin console needs on top of the
// generic user repository.
type Users struct {
	db *gorm.DB
}

// NewUsers creates the admin-facing user lookup.
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// FindByEmail returns the user with the given email, or nil when no user
// matches.
func (r *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}
