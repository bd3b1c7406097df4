package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"time"
)

// PoiEmbedding is a row of the global place catalog used for suggestions.
// Keyed by the upstream catalog id, not by BaseModel.
type PoiEmbedding struct {
	PoiID       string `gorm:"primaryKey;column:poi_id"`
	Name        string
	Description string
	City        string
	Country     string
	Category    string
	Tags        pq.StringArray `gorm:"type:text[]"`

	Latitude             float64
	Longitude            float64
	VisitDurationMinutes int

	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}
