package analysis

import (
	"context"
	"testing"

	"dashen/internal/models"
	"dashen/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAnalysisRepo struct {
	mock.Mock
}

type MockCustomerRepo struct {
	mock.Mock
}

const ref = "DASHEN-202608-0042"

func fp(v float64) *float64 { return &v }

func TestGetRequiresReference(t *testing.T) {
	s := NewService(new(MockAnalysisRepo), new(MockCustomerRepo))
	_, err := s.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoReference)
}

func TestUpsertMergesAdditively(t *testing.T) {
	analyses := new(MockAnalysisRepo)
	customers := new(MockCustomerRepo)

	existing := &models.LoanAnalysis{
		ApplicationReferenceNumber: ref,
		FinancialProfileURL:        "https://docs/financial-v1.pdf",
		AnalystConclusion:          "Initial read looks sound",
	}
	analyses.On("FindByReference", ref).Return(existing, nil)
	analyses.On("Update", existing).Return(nil)

	s := NewService(analyses, customers)
	got, err := s.Upsert(context.Background(), ref, UpsertInput{
		SWOTAnalysisURL:  "https://docs/swot.pdf",
		RMRecommendation: "Proceed with conditions",
	})

	assert.NoError(t, err)
	// New fields land, untouched fields survive.
	assert.Equal(t, "https://docs/swot.pdf", got.SWOTAnalysisURL)
	assert.Equal(t, "Proceed with conditions", got.RMRecommendation)
	assert.Equal(t, "https://docs/financial-v1.pdf", got.FinancialProfileURL)
	assert.Equal(t, "Initial read looks sound", got.AnalystConclusion)
	analyses.AssertExpectations(t)
}

func TestUpsertEmptyInputErasesNothing(t *testing.T) {
	analyses := new(MockAnalysisRepo)
	customers := new(MockCustomerRepo)

	existing := &models.LoanAnalysis{
		ApplicationReferenceNumber: ref,
		RiskAnalysisURL:            "https://docs/risk.pdf",
		AnalystRecommendation:      "Approve",
	}
	analyses.On("FindByReference", ref).Return(existing, nil)
	analyses.On("Update", existing).Return(nil)

	s := NewService(analyses, customers)
	got, err := s.Upsert(context.Background(), ref, UpsertInput{})

	assert.NoError(t, err)
	assert.Equal(t, "https://docs/risk.pdf", got.RiskAnalysisURL)
	assert.Equal(t, "Approve", got.AnalystRecommendation)
}

func TestUpsertCreatesLazily(t *testing.T) {
	analyses := new(MockAnalysisRepo)
	customers := new(MockCustomerRepo)

	analyses.On("FindByReference", ref).Return(nil, repositories.ErrAnalysisNotFound)
	customers.On("GetByReference", ref).Return(&models.Customer{}, nil)
	analyses.On("Create", mock.AnythingOfType("*models.LoanAnalysis")).Return(nil)
	analyses.On("Update", mock.AnythingOfType("*models.LoanAnalysis")).Return(nil)

	s := NewService(analyses, customers)
	got, err := s.Upsert(context.Background(), ref, UpsertInput{AnalystConclusion: "First pass"})

	assert.NoError(t, err)
	assert.Equal(t, ref, got.ApplicationReferenceNumber)
	assert.Equal(t, "First pass", got.AnalystConclusion)
	analyses.AssertExpectations(t)
	customers.AssertExpectations(t)
}

func TestUpsertUnknownCustomer(t *testing.T) {
	analyses := new(MockAnalysisRepo)
	customers := new(MockCustomerRepo)

	analyses.On("FindByReference", ref).Return(nil, repositories.ErrAnalysisNotFound)
	customers.On("GetByReference", ref).Return(nil, repositories.ErrCustomerNotFound)

	s := NewService(analyses, customers)
	_, err := s.Upsert(context.Background(), ref, UpsertInput{AnalystConclusion: "x"})

	assert.ErrorIs(t, err, ErrUnknownCustomer)
	analyses.AssertNotCalled(t, "Create", mock.Anything)
}

func TestReviewClampsAndScores(t *testing.T) {
	analyses := new(MockAnalysisRepo)
	customers := new(MockCustomerRepo)

	existing := &models.LoanAnalysis{ApplicationReferenceNumber: ref}
	analyses.On("FindByReference", ref).Return(existing, nil)
	analyses.On("Update", existing).Return(nil)

	s := NewService(analyses, customers)
	got, err := s.Review(context.Background(), ReviewInput{
		ApplicationReferenceNumber: ref,
		FinancialScore:             fp(150), // clamps to 100
		MarketScore:                fp(-10), // clamps to 0
		ManagementScore:            fp(80),
		RiskScore:                  fp(70),
		// ESGScore unset, counts as zero
		SupervisorNotes: "Solid fundamentals, thin ESG evidence",
		Decision:        models.DecisionApproved,
	})

	assert.NoError(t, err)
	assert.Equal(t, 100.0, *got.FinancialScore)
	assert.Equal(t, 0.0, *got.MarketScore)
	assert.Nil(t, got.ESGScore)
	assert.InDelta(t, 50.0, got.OverallScore, 1e-9) // (100+0+80+70+0)/5
	assert.Equal(t, "Solid fundamentals, thin ESG evidence", got.SupervisorNotes)
	assert.Equal(t, models.DecisionApproved, got.Decision)
}

func TestReviewPreservesEarlierScores(t *testing.T) {
	analyses := new(MockAnalysisRepo)
	customers := new(MockCustomerRepo)

	existing := &models.LoanAnalysis{
		ApplicationReferenceNumber: ref,
		FinancialScore:             fp(90),
		MarketScore:                fp(60),
	}
	analyses.On("FindByReference", ref).Return(existing, nil)
	analyses.On("Update", existing).Return(nil)

	s := NewService(analyses, customers)
	got, err := s.Review(context.Background(), ReviewInput{
		ApplicationReferenceNumber: ref,
		RiskScore:                  fp(50),
	})

	assert.NoError(t, err)
	assert.Equal(t, 90.0, *got.FinancialScore)
	assert.Equal(t, 60.0, *got.MarketScore)
	assert.Equal(t, 50.0, *got.RiskScore)
	assert.InDelta(t, 40.0, got.OverallScore, 1e-9) // (90+60+0+50+0)/5
}

// LoanAnalysisRepository mock methods

func (m *MockAnalysisRepo) Create(analysis *models.LoanAnalysis) error {
	args := m.Called(analysis)
	return args.Error(0)
}

func (m *MockAnalysisRepo) FindByReference(ref string) (*models.LoanAnalysis, error) {
	args := m.Called(ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoanAnalysis), args.Error(1)
}

func (m *MockAnalysisRepo) Update(analysis *models.LoanAnalysis) error {
	args := m.Called(analysis)
	return args.Error(0)
}

// CustomerRepository mock methods

func (m *MockCustomerRepo) Create(customer *models.Customer) error {
	args := m.Called(customer)
	return args.Error(0)
}

func (m *MockCustomerRepo) GetByID(id uint) (*models.Customer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepo) GetByReference(ref string) (*models.Customer, error) {
	args := m.Called(ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepo) Update(customer *models.Customer) error {
	args := m.Called(customer)
	return args.Error(0)
}

func (m *MockCustomerRepo) ListByStatus(status string, offset, limit int) ([]models.Customer, int64, error) {
	args := m.Called(status, offset, limit)
	return args.Get(0).([]models.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepo) ListByManager(managerID uint, offset, limit int) ([]models.Customer, int64, error) {
	args := m.Called(managerID, offset, limit)
	return args.Get(0).([]models.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepo) List(offset, limit int) ([]models.Customer, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]models.Customer), args.Get(1).(int64), args.Error(2)
}
