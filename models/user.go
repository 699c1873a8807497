// Package models contains the GORM data structures for the content platform.
package models

import (
	"encoding/json"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// HashPassword derives the bcrypt hash stored in place of a plaintext
// password. Every write path that accepts a password goes through it, so a
// password is hashed exactly once regardless of what it looks like.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// User represents an account that owns projects, blogs and services.
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"unique;not null" json:"username"`
	Email       string     `gorm:"unique;not null" json:"email"`
	Password    string     `gorm:"not null" json:"password,omitempty"`
	FirstName   string     `json:"firstName,omitempty"`
	LastName    string     `json:"lastName,omitempty"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	Bio         string     `json:"bio,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	SocialLinks StringList `gorm:"type:text" json:"socialLinks"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (u User) GetID() uint { return u.ID }

// MarshalJSON keeps the password write-only: it is accepted on input but
// never serialized back to the client.
func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	a := alias(u)
	a.Password = ""
	return json.Marshal(a)
}

// BeforeDelete rejects deletion of a user that still owns content. Owned
// records keep a hard reference to their user, so removing the owner first
// would leave them dangling.
func (u *User) BeforeDelete(tx *gorm.DB) error {
	for _, owned := range []any{&Project{}, &Blog{}, &Service{}} {
		var count int64
		if err := tx.Model(owned).Where("user_id = ?", u.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return NewConflictError("user still owns content and cannot be deleted")
		}
	}
	return nil
}
