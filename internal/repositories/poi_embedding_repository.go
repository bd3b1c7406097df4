package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"tripflow/internal/models/db_models"
)

// CatalogMatch is a catalog row plus its cosine similarity to the query.
type CatalogMatch struct {
	db_models.PoiEmbedding
	Similarity float64
}

type PoiEmbeddingRepository interface {
	SearchByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]CatalogMatch, error)
	GetByIDs(ctx context.Context, ids []string) ([]db_models.PoiEmbedding, error)
	Create(ctx context.Context, row *db_models.PoiEmbedding) error
	Count(ctx context.Context) (int64, error)
}

type poiEmbeddingRepository struct {
	db *gorm.DB
}

func NewPoiEmbeddingRepository(db *gorm.DB) PoiEmbeddingRepository {
	return &poiEmbeddingRepository{
		db: db,
	}
}

func (p *poiEmbeddingRepository) SearchByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]CatalogMatch, error) {
	var results []CatalogMatch

	query := `
        SELECT *, (1 - (embedding <=> $1)) AS similarity
        FROM poi_embeddings
        WHERE (1 - (embedding <=> $1)) > 0.3  -- drop rows the query barely relates to
        ORDER BY embedding <=> $1
        LIMIT $2
    `

	err := p.db.WithContext(ctx).Raw(query, vector.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (p *poiEmbeddingRepository) GetByIDs(ctx context.Context, ids []string) ([]db_models.PoiEmbedding, error) {
	var rows []db_models.PoiEmbedding
	err := p.db.WithContext(ctx).
		Where("poi_id IN ?", ids).
		Find(&rows).Error

	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (p *poiEmbeddingRepository) Create(ctx context.Context, row *db_models.PoiEmbedding) error {
	return p.db.WithContext(ctx).Create(row).Error
}

func (p *poiEmbeddingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := p.db.WithContext(ctx).Model(&db_models.PoiEmbedding{}).Count(&n).Error
	return n, err
}
