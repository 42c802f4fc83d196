package repository

import (
	"context"
	"time"

	"github.com/talentio/profilehub/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository handles profile persistence. Upsert-by-identity is the
// single point of contention between concurrent builds; atomicity comes
// from the database's conflict handling, not from locks here.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *ProfileRepository: repository instance bound to db.
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert creates or updates a profile keyed by identity. The original
// creation timestamp is preserved on update; last-updated always advances.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - profile: profile to create or update.
// Returns:
//   - error: non-nil if the upsert fails.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	profile.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "profession", "email", "phone", "location",
			"bio", "skills", "links", "portfolio", "updated_at",
		}),
	}).Create(profile).Error
}

// GetByID retrieves a profile by its identity.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: profile identity.
// Returns:
//   - *domain.Profile: profile record if found.
//   - error: gorm.ErrRecordNotFound when absent, other errors on failure.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// List returns profile summaries, most recently updated first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.ProfileSummary: summary projections.
//   - error: non-nil if the query fails.
func (r *ProfileRepository) List(ctx context.Context) ([]domain.ProfileSummary, error) {
	var summaries []domain.ProfileSummary
	err := r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Select("id", "name", "profession", "updated_at").
		Order("updated_at DESC").
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Delete removes a profile by identity.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: profile identity.
// Returns:
//   - error: non-nil if the delete fails.
func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Profile{}, "id = ?", id).Error
}
