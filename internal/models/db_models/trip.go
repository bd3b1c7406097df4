package db_models

import (
	"time"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripStatusDraft     TripStatus = "draft"
	TripStatusScheduled TripStatus = "scheduled"
	TripStatusArchived  TripStatus = "archived"
)

type MemberRole string

const (
	MemberRoleEditor MemberRole = "editor"
	MemberRoleViewer MemberRole = "viewer"
)

type Trip struct {
	BaseModel
	OwnerID   uuid.UUID `gorm:"index"`
	Title     string
	Status    TripStatus `gorm:"default:draft"`
	StartDate time.Time
	EndDate   time.Time

	// Scheduling defaults, overridable per request.
	TransportProfile        string  `gorm:"default:foot-walking"`
	MaxFoodPerDay           int     `gorm:"default:2"`
	MaxHoursPerDay          float64 `gorm:"default:8"`
	ClusterThresholdMinutes float64 `gorm:"default:15"`

	Days           []TripDay
	Members        []TripMember
	Destinations   []Destination
	POIs           []POI
	Accommodations []Accommodation
}

type TripDay struct {
	BaseModel
	TripID    uuid.UUID `gorm:"index"`
	Date      time.Time
	DayNumber int
}

type TripMember struct {
	BaseModel
	TripID    uuid.UUID `gorm:"uniqueIndex:idx_trip_account"`
	AccountID uuid.UUID `gorm:"uniqueIndex:idx_trip_account"`
	Role      MemberRole

	Account Account `gorm:"foreignKey:AccountID"`
}
