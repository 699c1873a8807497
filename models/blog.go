package models

import (
	"time"

	"gorm.io/gorm"
)

// Blog publication states.
const (
	BlogStatusDraft     = "Draft"
	BlogStatusPublished = "Published"
)

// Blog is a rich-text article owned by a user.
type Blog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null" json:"userId"`
	Title      string         `gorm:"not null" json:"title"`
	Content    string         `gorm:"not null" json:"content"`
	Status     string         `gorm:"not null;default:Draft" json:"status"`
	Cover      string         `json:"cover,omitempty"`
	User       User           `gorm:"foreignKey:UserID" json:"user"`
	Tags       []Tag          `gorm:"many2many:blog_tags" json:"tags"`
	Categories []Category     `gorm:"many2many:blog_categories" json:"categories"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b Blog) GetID() uint { return b.ID }
