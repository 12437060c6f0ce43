package repositories

import (
	"dashen/internal/models"

	"gorm.io/gorm"
)

// DecisionRepository defines read operations on the append-only decision
// log. Writes happen inside the workflow engine's transaction, never here.
type DecisionRepository interface {
	FindByReference(ref string) ([]models.Decision, error)
	FindMemberVotes(ref string) ([]models.Decision, error)
	FindMemberVote(ref string, userID uint) (*models.Decision, error)
	FindLatestFinal(ref string) (*models.Decision, error)
	ExistsForUser(ref string, userID uint) (bool, error)
}

type decisionRepository struct {
	db *gorm.DB
}

func NewDecisionRepository(db *gorm.DB) DecisionRepository {
	return &decisionRepository{db: db}
}

func (r *decisionRepository) FindByReference(ref string) ([]models.Decision, error) {
	var decisions []models.Decision
	err := r.db.Where("application_reference_number = ?", ref).
		Order("created_at ASC").Find(&decisions).Error
	return decisions, err
}

func (r *decisionRepository) FindMemberVotes(ref string) ([]models.Decision, error) {
	var decisions []models.Decision
	err := r.db.Where("application_reference_number = ? AND member = ?", ref, true).
		Order("created_at ASC").Find(&decisions).Error
	return decisions, err
}

func (r *decisionRepository) FindMemberVote(ref string, userID uint) (*models.Decision, error) {
	var decision models.Decision
	err := r.db.Where("application_reference_number = ? AND user_id = ? AND member = ?", ref, userID, true).
		First(&decision).Error
	if err != nil {
		return nil, err
	}
	return &decision, nil
}

func (r *decisionRepository) FindLatestFinal(ref string) (*models.Decision, error) {
	var decision models.Decision
	err := r.db.Where("application_reference_number = ? AND member = ?", ref, false).
		Order("created_at DESC").First(&decision).Error
	if err != nil {
		return nil, err
	}
	return &decision, nil
}

// ExistsForUser reports whether this member already voted on ref. Only
// member rows count; committee rows never block a later decision.
func (r *decisionRepository) ExistsForUser(ref string, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Decision{}).
		Where("application_reference_number = ? AND user_id = ? AND member = ?", ref, userID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
