package models

import (
	"time"

	"gorm.io/gorm"
)

// Service is a billable offering owned by a user.
type Service struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null" json:"userId"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"not null" json:"description"`
	Cover       string         `json:"cover,omitempty"`
	Price       float64        `gorm:"not null" json:"price"`
	Duration    int            `gorm:"not null" json:"duration"`
	User        User           `gorm:"foreignKey:UserID" json:"user"`
	Tags        []Tag          `gorm:"many2many:service_tags" json:"tags"`
	Categories  []Category     `gorm:"many2many:service_categories" json:"categories"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s Service) GetID() uint { return s.ID }
