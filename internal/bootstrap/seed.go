package bootstrap

import (
	"context"
	"log"
	"os"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/service"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.FriendUser{},
		&model.UserRating{},
		&model.Genre{},
		&model.Game{},
		&model.News{},
		&model.Guide{},
		&model.Review{},
		&model.ForumTopic{},
		&model.ForumPost{},
		&model.Comment{},
		&model.Like{},
		&model.Notification{},
	)
}

// SeedGenres inserts the default genre set, skipping slugs that already exist.
func SeedGenres(db *gorm.DB) error {
	defaults := []model.Genre{
		{Name: "Action", Slug: "action"},
		{Name: "Adventure", Slug: "adventure"},
		{Name: "RPG", Slug: "rpg"},
		{Name: "Strategy", Slug: "strategy"},
		{Name: "Shooter", Slug: "shooter"},
		{Name: "Sports", Slug: "sports"},
		{Name: "Racing", Slug: "racing"},
		{Name: "Simulation", Slug: "simulation"},
		{Name: "Horror", Slug: "horror"},
		{Name: "Indie", Slug: "indie"},
	}

	for _, genre := range defaults {
		var count int64
		if err := db.Model(&model.Genre{}).
			Where("slug = ?", genre.Slug).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&genre).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedAdminUser creates a development superuser from ADMIN_* environment
// variables. Intended for development environments only.
func SeedAdminUser(ctx context.Context, db *gorm.DB, authService service.AuthService) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@gamehub.local"
	}
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin12345"
	}

	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("admin user already exists, skipping seed")
		return nil
	}

	_, err := authService.CreateSuperuser(ctx, dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, true, true)
	if err != nil {
		return err
	}

	log.Printf("seeded admin user %s", email)
	return nil
}
