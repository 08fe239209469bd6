package repository

import (
	"context"
	"errors"

	"golang-stock-digest/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines the interface for interacting with user profiles.
type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*entity.UserProfile, error)
	FindScheduled(ctx context.Context, day, from, to string) ([]entity.UserProfile, error)
	Upsert(ctx context.Context, profile *entity.UserProfile) error
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

type profileRepository struct {
	db *gorm.DB
}

// FindByID returns the profile with id, or nil when none exists.
func (r *profileRepository) FindByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	var profile entity.UserProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindScheduled returns active profiles due on day with a schedule time in
// [from, to) and at least one ticker.
func (r *profileRepository) FindScheduled(ctx context.Context, day, from, to string) ([]entity.UserProfile, error) {
	var profiles []entity.UserProfile
	err := r.db.WithContext(ctx).
		Where("schedule_days @> ARRAY[?]::text[]", day).
		Where("schedule_time >= ? AND schedule_time < ?", from, to).
		Where("cardinality(tickers) > 0").
		Where("emails_paused = ?", false).
		Order("schedule_time asc, id asc").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Upsert inserts the profile or replaces the mutable columns of an existing one.
func (r *profileRepository) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email",
			"tickers",
			"schedule_frequency",
			"schedule_time",
			"schedule_days",
			"timezone",
			"emails_paused",
			"updated_at",
		}),
	}).Create(profile).Error
}
