package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type POI struct {
	BaseModel
	TripID  uuid.UUID `gorm:"index"`
	Name    string
	Address string
	Notes   string

	// Coordinates stay nil until the place is geocoded or picked on a map.
	Latitude  *float64
	Longitude *float64

	Category             string
	Tags                 pq.StringArray `gorm:"type:text[]"`
	VisitDurationMinutes int

	IsAnchored   bool
	AnchoredDate *time.Time
	AnchoredTime string // "15:04" or empty

	// Filled by the scheduler, cleared when the POI is edited.
	ScheduledDate *time.Time
	DayOrder      *int
}
