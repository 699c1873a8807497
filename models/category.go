package models

// Category groups projects, blogs and services by topic.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description,omitempty"`
}

func (c Category) GetID() uint { return c.ID }
