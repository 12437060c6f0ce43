// Package analysis manages LoanAnalysis records: lazily created on first
// write, merged additively by successive roles and scored by supervisors.
package analysis

import (
	"context"
	"errors"

	"dashen/internal/models"
	"dashen/internal/repositories"
	"dashen/internal/services/scoring"
)

var (
	ErrNoReference     = errors.New("application reference number is required")
	ErrUnknownCustomer = errors.New("no application exists for this reference")
)

type Service struct {
	analyses  repositories.LoanAnalysisRepository
	customers repositories.CustomerRepository
}

func NewService(analyses repositories.LoanAnalysisRepository, customers repositories.CustomerRepository) *Service {
	return &Service{analyses: analyses, customers: customers}
}

// UpsertInput carries the analyst-editable fields. Empty strings mean "not
// provided" and never erase stored values; the record grows additively as
// roles take their turns.
type UpsertInput struct {
	FinancialProfileURL   string `json:"financialProfileUrl"`
	PESTELAnalysisURL     string `json:"pestelAnalysisUrl"`
	SWOTAnalysisURL       string `json:"swotAnalysisUrl"`
	RiskAnalysisURL       string `json:"riskAnalysisUrl"`
	ESGAssessmentURL      string `json:"esgAssessmentUrl"`
	FinancialNeedURL      string `json:"financialNeedUrl"`
	AnalystConclusion     string `json:"analystConclusion"`
	AnalystRecommendation string `json:"analystRecommendation"`
	RMRecommendation      string `json:"rmRecommendation"`
}

// ReviewInput carries the supervisor's scores, notes and decision.
type ReviewInput struct {
	ApplicationReferenceNumber string   `json:"applicationReferenceNumber"`
	FinancialScore             *float64 `json:"financialScore"`
	MarketScore                *float64 `json:"marketScore"`
	ManagementScore            *float64 `json:"managementScore"`
	RiskScore                  *float64 `json:"riskScore"`
	ESGScore                   *float64 `json:"esgScore"`
	SupervisorNotes            string   `json:"supervisorNotes"`
	Decision                   string   `json:"decision"`
}

// Get returns the analysis record for ref.
func (s *Service) Get(ctx context.Context, ref string) (*models.LoanAnalysis, error) {
	if ref == "" {
		return nil, ErrNoReference
	}
	return s.analyses.FindByReference(ref)
}

// Upsert merges the provided fields into the analysis record for ref,
// creating the record if this is the first write.
func (s *Service) Upsert(ctx context.Context, ref string, input UpsertInput) (*models.LoanAnalysis, error) {
	record, err := s.getOrCreate(ref)
	if err != nil {
		return nil, err
	}

	merge(&record.FinancialProfileURL, input.FinancialProfileURL)
	merge(&record.PESTELAnalysisURL, input.PESTELAnalysisURL)
	merge(&record.SWOTAnalysisURL, input.SWOTAnalysisURL)
	merge(&record.RiskAnalysisURL, input.RiskAnalysisURL)
	merge(&record.ESGAssessmentURL, input.ESGAssessmentURL)
	merge(&record.FinancialNeedURL, input.FinancialNeedURL)
	merge(&record.AnalystConclusion, input.AnalystConclusion)
	merge(&record.AnalystRecommendation, input.AnalystRecommendation)
	merge(&record.RMRecommendation, input.RMRecommendation)

	if err := s.analyses.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Review applies the supervisor's scores and notes. Each provided score is
// clamped to [0,100] and the overall score is recomputed as the mean of
// the five categories, missing ones counting as zero.
func (s *Service) Review(ctx context.Context, input ReviewInput) (*models.LoanAnalysis, error) {
	record, err := s.getOrCreate(input.ApplicationReferenceNumber)
	if err != nil {
		return nil, err
	}

	applyScore(&record.FinancialScore, input.FinancialScore)
	applyScore(&record.MarketScore, input.MarketScore)
	applyScore(&record.ManagementScore, input.ManagementScore)
	applyScore(&record.RiskScore, input.RiskScore)
	applyScore(&record.ESGScore, input.ESGScore)
	record.OverallScore = scoring.Overall(record.Scores())

	merge(&record.SupervisorNotes, input.SupervisorNotes)
	merge(&record.Decision, input.Decision)

	if err := s.analyses.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) getOrCreate(ref string) (*models.LoanAnalysis, error) {
	if ref == "" {
		return nil, ErrNoReference
	}
	record, err := s.analyses.FindByReference(ref)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, repositories.ErrAnalysisNotFound) {
		return nil, err
	}

	// Lazy create on first write, but only for a real application.
	if _, err := s.customers.GetByReference(ref); err != nil {
		return nil, ErrUnknownCustomer
	}
	record = &models.LoanAnalysis{ApplicationReferenceNumber: ref}
	if err := s.analyses.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

func merge(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func applyScore(dst **float64, src *float64) {
	if src != nil {
		clamped := scoring.Clamp(*src)
		*dst = &clamped
	}
}
