package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"intersight/api/internal/models"
)

type CandidateRepository interface {
	Create(record *models.CandidateRecord) error
	UpdateFeedback(id uint, feedbackHTML string) error
	FindByFilename(cvFilename string) (*models.CandidateRecord, error)
	FindRecent(limit int) ([]models.CandidateRecord, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Create implements CandidateRepository.
func (r *candidateRepository) Create(record *models.CandidateRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create candidate record: %w", err)
	}
	return nil
}

// UpdateFeedback implements CandidateRepository.
func (r *candidateRepository) UpdateFeedback(id uint, feedbackHTML string) error {
	result := r.db.Model(&models.CandidateRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"feedback_email_html": feedbackHTML,
			"updated_at":          time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update feedback: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate record not found")
	}

	return nil
}

// FindByFilename implements CandidateRepository.
func (r *candidateRepository) FindByFilename(cvFilename string) (*models.CandidateRecord, error) {
	var record models.CandidateRecord
	if err := r.db.Where("cv_filename = ?", cvFilename).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("candidate record not found")
		}
		return nil, fmt.Errorf("failed to find candidate record: %w", err)
	}
	return &record, nil
}

// FindRecent implements CandidateRepository.
func (r *candidateRepository) FindRecent(limit int) ([]models.CandidateRecord, error) {
	var records []models.CandidateRecord
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find candidate records: %w", err)
	}

	return records, nil
}
