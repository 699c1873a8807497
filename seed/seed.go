// Package seed populates a fresh database with demo content.
package seed

import (
	"foliocms/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Run inserts the demo user and a small set of content records. It is a
// no-op when users already exist.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Msg("seed skipped, users already present")
		return nil
	}

	password, err := models.HashPassword("change-me-on-first-login")
	if err != nil {
		return err
	}

	admin := models.User{
		Username:    "admin",
		Email:       "admin@foliocms.local",
		Password:    password,
		FirstName:   "Site",
		LastName:    "Admin",
		Bio:         "Default administrator account",
		SocialLinks: models.StringList{"https://github.com/foliocms"},
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	tags := []models.Tag{{Name: "go"}, {Name: "web"}, {Name: "design"}}
	if err := db.Create(&tags).Error; err != nil {
		return err
	}

	categories := []models.Category{
		{Name: "Engineering", Description: "Technical work"},
		{Name: "Writing", Description: "Articles and essays"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	project := models.Project{
		UserID:      admin.ID,
		Title:       "Portfolio site",
		Description: "The site this API serves",
		ImageUrls:   models.StringList{"https://example.com/screenshot.png"},
		Links:       models.StringList{"https://example.com"},
		Tags:        []models.Tag{tags[0], tags[1]},
		Categories:  []models.Category{categories[0]},
	}
	if err := db.Create(&project).Error; err != nil {
		return err
	}

	blog := models.Blog{
		UserID:     admin.ID,
		Title:      "Hello, world",
		Content:    "First post on the new platform.",
		Status:     models.BlogStatusPublished,
		Tags:       []models.Tag{tags[1]},
		Categories: []models.Category{categories[1]},
	}
	if err := db.Create(&blog).Error; err != nil {
		return err
	}

	service := models.Service{
		UserID:      admin.ID,
		Title:       "Consulting",
		Description: "One-hour consulting session",
		Price:       150,
		Duration:    60,
		Tags:        []models.Tag{tags[0]},
		Categories:  []models.Category{categories[0]},
	}
	if err := db.Create(&service).Error; err != nil {
		return err
	}

	log.Info().Msg("seed completed")
	return nil
}
