package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tripflow/internal/models/db_models"
)

// POIScheduleUpdate is one scheduler placement flushed back onto a row.
type POIScheduleUpdate struct {
	POIID         uuid.UUID
	ScheduledDate time.Time
	DayOrder      int
}

type POIRepository interface {
	Create(ctx context.Context, poi *db_models.POI) (uuid.UUID, error)
	Update(ctx context.Context, poi *db_models.POI) error
	Delete(ctx context.Context, tripID, id uuid.UUID) error

	GetByID(ctx context.Context, tripID, id string) (*db_models.POI, error)
	ListByTrip(ctx context.Context, tripID string) ([]db_models.POI, error)

	ApplySchedule(ctx context.Context, tripID uuid.UUID, updates []POIScheduleUpdate) error
	ClearSchedule(ctx context.Context, tripID uuid.UUID) error
}

type poiRepository struct {
	db *gorm.DB
}

func NewPOIRepository(db *gorm.DB) POIRepository {
	return &poiRepository{db: db}
}

func (r *poiRepository) Create(ctx context.Context, poi *db_models.POI) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(poi).Error; err != nil {
		return uuid.Nil, err
	}
	return poi.ID, nil
}

func (r *poiRepository) Update(ctx context.Context, poi *db_models.POI) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Save(poi)
		if result.Error != nil {
			return fmt.Errorf("failed to update POI: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *poiRepository) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Delete(&db_models.POI{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (r *poiRepository) GetByID(ctx context.Context, tripID, id string) (*db_models.POI, error) {
	var poi db_models.POI
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		First(&poi, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &poi, nil
}

func (r *poiRepository) ListByTrip(ctx context.Context, tripID string) ([]db_models.POI, error) {
	var pois []db_models.POI
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at ASC").
		Find(&pois).Error

	if err != nil {
		return nil, err
	}
	return pois, nil
}

// ApplySchedule wipes the trip's previous placements and writes the new
// ones in the same transaction, so readers never see a half-applied run.
func (r *poiRepository) ApplySchedule(ctx context.Context, tripID uuid.UUID, updates []POIScheduleUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&db_models.POI{}).
			Where("trip_id = ?", tripID).
			Updates(map[string]interface{}{"scheduled_date": nil, "day_order": nil}).Error
		if err != nil {
			return err
		}

		for _, u := range updates {
			err := tx.Model(&db_models.POI{}).
				Where("trip_id = ? AND id = ?", tripID, u.POIID).
				Updates(map[string]interface{}{
					"scheduled_date": u.ScheduledDate,
					"day_order":      u.DayOrder,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *poiRepository) ClearSchedule(ctx context.Context, tripID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.POI{}).
		Where("trip_id = ?", tripID).
		Updates(map[string]interface{}{"scheduled_date": nil, "day_order": nil}).Error
}
