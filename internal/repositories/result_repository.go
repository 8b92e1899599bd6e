package repositories

import (
	"context"

	"gorm.io/gorm"
	"questflow/internal/models/db_models"
)

type ResultRepositoryInterface interface {
	CreateResult(ctx context.Context, result *db_models.SurveyResult) error
	CountBySurvey(ctx context.Context) ([]db_models.ResultCount, error)
}

type ResultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) CreateResult(ctx context.Context, result *db_models.SurveyResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *ResultRepository) CountBySurvey(ctx context.Context) ([]db_models.ResultCount, error) {
	var counts []db_models.ResultCount
	err := r.db.WithContext(ctx).
		Model(&db_models.SurveyResult{}).
		Select("survey_key, count(*) as total, max(created_at) as last_at").
		Group("survey_key").
		Order("survey_key").
		Scan(&counts).Error
	return counts, err
}
