package db_models

import "github.com/google/uuid"

type Destination struct {
	BaseModel
	TripID    uuid.UUID `gorm:"index"`
	Name      string
	Country   string
	Latitude  *float64
	Longitude *float64
	Position  int
}
