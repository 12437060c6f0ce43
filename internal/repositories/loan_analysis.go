package repositories

import (
	"errors"

	"dashen/internal/models"

	"gorm.io/gorm"
)

var ErrAnalysisNotFound = errors.New("loan analysis not found")

// LoanAnalysisRepository defines database operations on analysis records.
type LoanAnalysisRepository interface {
	Create(analysis *models.LoanAnalysis) error
	FindByReference(ref string) (*models.LoanAnalysis, error)
	Update(analysis *models.LoanAnalysis) error
}

type loanAnalysisRepository struct {
	db *gorm.DB
}

func NewLoanAnalysisRepository(db *gorm.DB) LoanAnalysisRepository {
	return &loanAnalysisRepository{db: db}
}

func (r *loanAnalysisRepository) Create(analysis *models.LoanAnalysis) error {
	return r.db.Create(analysis).Error
}

func (r *loanAnalysisRepository) FindByReference(ref string) (*models.LoanAnalysis, error) {
	var analysis models.LoanAnalysis
	err := r.db.Where("application_reference_number = ?", ref).First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return &analysis, nil
}

func (r *loanAnalysisRepository) Update(analysis *models.LoanAnalysis) error {
	return r.db.Save(analysis).Error
}
