package models

// Tag is a free-form label attached to projects, blogs and services.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

func (t Tag) GetID() uint { return t.ID }
