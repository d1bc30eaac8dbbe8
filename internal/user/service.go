// Package user implements identity reconciliation and the role promotion
// policy on top of the users table.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/caraban-app/caraban-api/internal/db/models"
)

// ErrEmptyExternalUID is returned when reconciliation is attempted without an
// external identity key.
var ErrEmptyExternalUID = errors.New("external uid cannot be empty")

const whereExternalUID = "external_uid = ?"

// Service provides identity reconciliation and role promotion.
type Service struct {
	db *gorm.DB
}

// NewService creates a new user service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Reconcile maps a verified external identity to exactly one local user.
//
// A missing row is created with the candidate profile fields; an existing row
// gets empty email/name backfilled but non-empty fields are never
// overwritten. Creation is insert-first: a concurrent first login racing on
// the same externalUID loses with a uniqueness violation and re-reads the
// winner's row, so at most one user exists per external identity key.
func (s *Service) Reconcile(ctx context.Context, externalUID, email, name string) (*models.User, error) {
	if externalUID == "" {
		return nil, ErrEmptyExternalUID
	}

	var u models.User

	err := s.db.WithContext(ctx).Where(whereExternalUID, externalUID).First(&u).Error

	switch {
	case err == nil:
		return s.backfill(ctx, &u, email, name)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	u = models.User{
		ExternalUID: externalUID,
		Name:        displayName(externalUID, email, name),
		Role:        models.RoleUser,
	}

	if email != "" {
		u.Email = &email
	}

	err = s.db.WithContext(ctx).Create(&u).Error
	if err == nil {
		return &u, nil
	}

	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Lost the create race: another request inserted the same externalUID
	// first. Re-read the winner and merge into it instead.
	log.Debug().Str("external_uid", externalUID).Msg("user create raced, re-reading existing row")

	var existing models.User
	if errRead := s.db.WithContext(ctx).Where(whereExternalUID, externalUID).First(&existing).Error; errRead != nil {
		// The conflict came from another unique column (e.g. email), not
		// from the identity key. Surface the original violation.
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.backfill(ctx, &existing, email, name)
}

// backfill fills empty email/name from the candidates. Set fields stay as
// they are; this is merge-on-read-if-empty, not a profile sync.
func (s *Service) backfill(ctx context.Context, u *models.User, email, name string) (*models.User, error) {
	updates := map[string]any{}

	if (u.Email == nil || *u.Email == "") && email != "" {
		u.Email = &email
		updates["email"] = email
	}

	if u.Name == "" && name != "" {
		u.Name = name
		updates["name"] = name
	}

	if len(updates) == 0 {
		return u, nil
	}

	if err := s.db.WithContext(ctx).Model(u).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to backfill user profile: %w", err)
	}

	return u, nil
}

// displayName synthesizes a name for a new account: the candidate name, the
// email local-part, or a provider-derived placeholder.
func displayName(externalUID, email, name string) string {
	if name != "" {
		return name
	}

	if email != "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			return email[:at]
		}
	}

	if id, ok := strings.CutPrefix(externalUID, "kakao:"); ok {
		return "kakao-user-" + id
	}

	return "camper"
}
