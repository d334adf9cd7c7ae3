package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"resume-analyzer/internal/models"
)

type AnalysisRepository interface {
	Create(record *models.AnalysisRecord) error
	Recent(limit int) ([]models.AnalysisRecord, error)
	Stats() (*AnalysisStats, error)
}

// AnalysisStats aggregates the whole analysis history.
type AnalysisStats struct {
	TotalAnalyses        int64
	AverageATSScore      float64
	AverageTopSimilarity float64
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Create implements AnalysisRepository.
func (r *analysisRepository) Create(record *models.AnalysisRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create analysis record: %w", err)
	}

	return nil
}

// Recent implements AnalysisRepository.
func (r *analysisRepository) Recent(limit int) ([]models.AnalysisRecord, error) {
	var records []models.AnalysisRecord
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list recent analyses: %w", err)
	}

	return records, nil
}

// Stats implements AnalysisRepository.
func (r *analysisRepository) Stats() (*AnalysisStats, error) {
	var stats AnalysisStats

	if err := r.db.Model(&models.AnalysisRecord{}).Count(&stats.TotalAnalyses).Error; err != nil {
		return nil, fmt.Errorf("failed to count analyses: %w", err)
	}

	if stats.TotalAnalyses == 0 {
		return &stats, nil
	}

	row := r.db.Model(&models.AnalysisRecord{}).
		Select("AVG(ats_score), AVG(COALESCE(top_similarity, 0))").
		Row()
	if err := row.Scan(&stats.AverageATSScore, &stats.AverageTopSimilarity); err != nil {
		return nil, fmt.Errorf("failed to aggregate analyses: %w", err)
	}

	return &stats, nil
}
