package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tripflow/internal/models/db_models"
)

type AccommodationRepository interface {
	Upsert(ctx context.Context, acc *db_models.Accommodation) error
	ListByTrip(ctx context.Context, tripID string) ([]db_models.Accommodation, error)
	DeleteByDay(ctx context.Context, tripID uuid.UUID, dayNumber int) error
}

type accommodationRepository struct {
	db *gorm.DB
}

func NewAccommodationRepository(db *gorm.DB) AccommodationRepository {
	return &accommodationRepository{db: db}
}

// Upsert keeps one accommodation per trip day: an existing row for the
// same day is updated in place.
func (r *accommodationRepository) Upsert(ctx context.Context, acc *db_models.Accommodation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing db_models.Accommodation
		err := tx.Where("trip_id = ? AND day_number = ?", acc.TripID, acc.DayNumber).
			First(&existing).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(acc).Error
			}
			return err
		}

		existing.Name = acc.Name
		existing.Address = acc.Address
		existing.Latitude = acc.Latitude
		existing.Longitude = acc.Longitude
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*acc = existing
		return nil
	})
}

func (r *accommodationRepository) ListByTrip(ctx context.Context, tripID string) ([]db_models.Accommodation, error) {
	var accs []db_models.Accommodation
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("day_number ASC").
		Find(&accs).Error

	if err != nil {
		return nil, err
	}
	return accs, nil
}

func (r *accommodationRepository) DeleteByDay(ctx context.Context, tripID uuid.UUID, dayNumber int) error {
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND day_number = ?", tripID, dayNumber).
		Delete(&db_models.Accommodation{}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
