package repository

import (
	"context"
	"errors"
	"time"

	"golang-stock-digest/internal/entity"

	"gorm.io/gorm"
)

// DigestRepository defines the interface for interacting with sent digests.
type DigestRepository interface {
	Create(ctx context.Context, digest *entity.Digest) error
	LastSentAt(ctx context.Context, userID string) (*time.Time, error)
	FindRecent(ctx context.Context, userID string, limit int) ([]entity.Digest, error)
}

// NewDigestRepository creates a new instance of DigestRepository.
func NewDigestRepository(db *gorm.DB) DigestRepository {
	return &digestRepository{
		db: db,
	}
}

type digestRepository struct {
	db *gorm.DB
}

// Create saves a new digest to the database.
func (r *digestRepository) Create(ctx context.Context, digest *entity.Digest) error {
	return r.db.WithContext(ctx).Create(digest).Error
}

// LastSentAt returns when the user's latest digest was sent, or nil if the
// user never received one.
func (r *digestRepository) LastSentAt(ctx context.Context, userID string) (*time.Time, error) {
	var digest entity.Digest
	err := r.db.WithContext(ctx).
		Select("sent_at").
		Where("user_id = ?", userID).
		Order("sent_at desc").
		First(&digest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	sentAt := digest.SentAt
	return &sentAt, nil
}

// FindRecent returns the user's latest digests, newest first.
func (r *digestRepository) FindRecent(ctx context.Context, userID string, limit int) ([]entity.Digest, error) {
	var digests []entity.Digest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sent_at desc").
		Limit(limit).
		Find(&digests).Error
	if err != nil {
		return nil, err
	}
	return digests, nil
}
