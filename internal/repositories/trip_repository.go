package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "tripflow/internal/models/db_models"
)

type TripRepository interface {
	Create(ctx context.Context, trip *dbm.Trip) error
	GetByID(ctx context.Context, id string) (*dbm.Trip, error)
	ListByAccount(ctx context.Context, accountID string, page, pageSize int) ([]dbm.Trip, error)
	Update(ctx context.Context, trip *dbm.Trip) error
	Delete(ctx context.Context, id uuid.UUID) error

	ReplaceDays(ctx context.Context, tripID uuid.UUID, days []dbm.TripDay) error
	AddMember(ctx context.Context, member *dbm.TripMember) error
	GetMember(ctx context.Context, tripID, accountID string) (*dbm.TripMember, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(ctx context.Context, trip *dbm.Trip) error {
	// Days and destinations ride along through the association.
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *tripRepository) GetByID(ctx context.Context, id string) (*dbm.Trip, error) {
	var trip dbm.Trip
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_number ASC")
		}).
		Preload("Members").
		Preload("Members.Account").
		Preload("Destinations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&trip, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &trip, nil
}

func (r *tripRepository) ListByAccount(ctx context.Context, accountID string, page, pageSize int) ([]dbm.Trip, error) {
	var trips []dbm.Trip
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN trip_members ON trip_members.trip_id = trips.id AND trip_members.account_id = ? AND trip_members.deleted_at IS NULL", accountID).
		Where("trips.owner_id = ? OR trip_members.account_id IS NOT NULL", accountID).
		Order("trips.start_date DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&trips).Error

	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) Update(ctx context.Context, trip *dbm.Trip) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Omit("Days", "Members", "Destinations", "POIs", "Accommodations").Save(trip)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *tripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&dbm.Trip{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// ReplaceDays swaps the materialized day rows after a date-range change.
// Old rows go away hard so day numbers never collide with soft-deleted ones.
func (r *tripRepository) ReplaceDays(ctx context.Context, tripID uuid.UUID, days []dbm.TripDay) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("trip_id = ?", tripID).Delete(&dbm.TripDay{}).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		return tx.Create(&days).Error
	})
}

func (r *tripRepository) AddMember(ctx context.Context, member *dbm.TripMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *tripRepository) GetMember(ctx context.Context, tripID, accountID string) (*dbm.TripMember, error) {
	var member dbm.TripMember
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND account_id = ?", tripID, accountID).
		First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &member, nil
}
