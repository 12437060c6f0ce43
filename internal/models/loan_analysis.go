package models

import "gorm.io/gorm"

// LoanAnalysis is the mutable bundle of analyst documents, scores and
// narrative attached to an application reference. It is created lazily the
// first time any analyst or supervisor writes to it, mutated additively by
// successive roles and never deleted.
type LoanAnalysis struct {
	gorm.Model
	ApplicationReferenceNumber string `gorm:"uniqueIndex;not null" json:"applicationReferenceNumber"`

	// Analysis artifacts, one URL per document.
	FinancialProfileURL string `json:"financialProfileUrl"`
	PESTELAnalysisURL   string `json:"pestelAnalysisUrl"`
	SWOTAnalysisURL     string `json:"swotAnalysisUrl"`
	RiskAnalysisURL     string `json:"riskAnalysisUrl"`
	ESGAssessmentURL    string `json:"esgAssessmentUrl"`
	FinancialNeedURL    string `json:"financialNeedUrl"`

	// Narrative fields
	AnalystConclusion     string `json:"analystConclusion"`
	AnalystRecommendation string `json:"analystRecommendation"`
	RMRecommendation      string `json:"rmRecommendation"`
	SupervisorNotes       string `json:"supervisorNotes"`

	// Supervisor scores, each 0-100. Nil means not yet scored and counts
	// as zero in the overall mean.
	FinancialScore  *float64 `json:"financialScore"`
	MarketScore     *float64 `json:"marketScore"`
	ManagementScore *float64 `json:"managementScore"`
	RiskScore       *float64 `json:"riskScore"`
	ESGScore        *float64 `json:"esgScore"`
	OverallScore    float64  `json:"overallScore"`

	// Supervisor-level decision, independent of committee Decision rows.
	Decision string `json:"decision"`
}

// Scores returns the five category scores in registry order.
func (a *LoanAnalysis) Scores() []*float64 {
	return []*float64{a.FinancialScore, a.MarketScore, a.ManagementScore, a.RiskScore, a.ESGScore}
}
