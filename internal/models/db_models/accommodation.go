package db_models

import "github.com/google/uuid"

type Accommodation struct {
	BaseModel
	TripID    uuid.UUID `gorm:"index;uniqueIndex:idx_trip_day_accommodation"`
	DayNumber int       `gorm:"uniqueIndex:idx_trip_day_accommodation"`
	Name      string
	Address   string
	Latitude  *float64
	Longitude *float64
}
