package user

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/caraban-app/caraban-api/internal/db/models"
)

// PromoteFirstListing applies the first-listing-created policy: a user on the
// default tier who has just created a campsite becomes a host. Hosts and
// admins pass through unchanged, so the promotion happens at most once.
func (s *Service) PromoteFirstListing(ctx context.Context, u *models.User) error {
	if u.Role != models.RoleUser {
		return nil
	}

	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", u.ID).
		Update("role", models.RoleHost).Error
	if err != nil {
		return fmt.Errorf("failed to promote user %d to host: %w", u.ID, err)
	}

	u.Role = models.RoleHost

	log.Info().Uint64("user_id", u.ID).Msg("user promoted to host after first listing")

	return nil
}
