package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/caraban-app/caraban-api/internal/db/models"
)

// SeedDemo loads a demo host and a few campsites for local development.
// It is a no-op when campsites already exist.
func SeedDemo(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Campsite{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Info().Int64("campsites", count).Msg("database already seeded, skipping")
		return nil
	}

	email := "host@example.com"
	host := models.User{
		ExternalUID: "demo-host",
		Email:       &email,
		Name:        "Demo Host",
		Role:        models.RoleHost,
	}

	if err := db.Create(&host).Error; err != nil {
		return err
	}

	sites := []models.Campsite{
		{
			Name:          "Solbaram Camp",
			Description:   "Quiet pine forest camp with wide pitches.",
			Location:      "Chuncheon, Gangwon",
			PricePerNight: 65000,
			HostID:        &host.ID,
		},
		{
			Name:          "Starlight Glamping",
			Description:   "Glamping tents with a clear night sky view.",
			Location:      "Gapyeong, Gyeonggi",
			PricePerNight: 90000,
			HostID:        &host.ID,
		},
		{
			Name:          "Wave Sound Auto Camp",
			Description:   "Auto camping ground a short walk from the beach.",
			Location:      "Gijang, Busan",
			PricePerNight: 75000,
			HostID:        &host.ID,
		},
	}

	if err := db.Create(&sites).Error; err != nil {
		return err
	}

	log.Info().Int("campsites", len(sites)).Msg("demo data seeded")

	return nil
}
