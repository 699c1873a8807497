package models

import (
	"time"

	"gorm.io/gorm"
)

// Project is a portfolio project owned by a user.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null" json:"userId"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"not null" json:"description"`
	ImageUrls   StringList     `gorm:"type:text" json:"imageUrls"`
	Links       StringList     `gorm:"type:text" json:"links"`
	User        User           `gorm:"foreignKey:UserID" json:"user"`
	Tags        []Tag          `gorm:"many2many:project_tags" json:"tags"`
	Categories  []Category     `gorm:"many2many:project_categories" json:"categories"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p Project) GetID() uint { return p.ID }
