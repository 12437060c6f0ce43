package intake

import (
	"context"
	"strings"
	"testing"

	"dashen/internal/models"
	"dashen/internal/services/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCustomerRepo struct {
	mock.Mock
}

func rmClaims(id uint) *models.UserClaims {
	return &models.UserClaims{UserID: id, Name: "RM", Role: models.RoleRelationshipManager}
}

func validApplication() *models.Customer {
	return &models.Customer{
		FirstName:   "Abebe",
		LastName:    "Kebede",
		Email:       "abebe@example.com",
		Phone:       "+251911223344",
		LoanType:    "TERM_LOAN",
		LoanAmount:  500000,
		LoanPeriod:  24,
		LoanPurpose: "Working capital",
	}
}

func TestCreate(t *testing.T) {
	t.Run("stamps workflow defaults", func(t *testing.T) {
		customers := new(MockCustomerRepo)
		customers.On("Create", mock.AnythingOfType("*models.Customer")).Return(nil)
		s := NewService(nil, customers, nil)

		input := validApplication()
		input.ID = 42                              // client-supplied IDs are ignored
		input.ApplicationStatus = status.Approved  // so are workflow fields
		input.Version = 9

		got, err := s.Create(context.Background(), rmClaims(5), input)
		assert.NoError(t, err)
		assert.Equal(t, uint(0), got.ID)
		assert.Equal(t, status.Pending, got.ApplicationStatus)
		assert.Nil(t, got.ApplicationReferenceNumber)
		assert.Equal(t, 1, got.Version)
		assert.Equal(t, uint(5), got.RelationshipManagerID)
		assert.True(t, strings.HasPrefix(got.CustomerNumber, "CUST-"))
		assert.Len(t, got.CustomerNumber, 13)
		customers.AssertExpectations(t)
	})

	t.Run("rejects invalid application", func(t *testing.T) {
		customers := new(MockCustomerRepo)
		s := NewService(nil, customers, nil)

		input := validApplication()
		input.LoanAmount = 50000

		_, err := s.Create(context.Background(), rmClaims(5), input)
		assert.ErrorIs(t, err, ErrValidation)

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "loanAmount")
		customers.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("rejects another manager's application", func(t *testing.T) {
		customers := new(MockCustomerRepo)
		existing := validApplication()
		existing.RelationshipManagerID = 99
		existing.ApplicationStatus = status.Pending
		customers.On("GetByID", uint(1)).Return(existing, nil)

		s := NewService(nil, customers, nil)
		_, err := s.Update(context.Background(), rmClaims(5), 1, validApplication())
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("rejects edits after submission", func(t *testing.T) {
		customers := new(MockCustomerRepo)
		existing := validApplication()
		existing.RelationshipManagerID = 5
		existing.ApplicationStatus = status.UnderReview
		customers.On("GetByID", uint(1)).Return(existing, nil)

		s := NewService(nil, customers, nil)
		_, err := s.Update(context.Background(), rmClaims(5), 1, validApplication())
		assert.ErrorIs(t, err, ErrNotEditable)
	})

	t.Run("copies editable fields only", func(t *testing.T) {
		customers := new(MockCustomerRepo)
		existing := validApplication()
		existing.RelationshipManagerID = 5
		existing.ApplicationStatus = status.Pending
		existing.CustomerNumber = "CUST-AAAA1111"
		customers.On("GetByID", uint(1)).Return(existing, nil)
		customers.On("Update", existing).Return(nil)

		input := validApplication()
		input.LoanAmount = 900000
		input.BusinessName = "Blue Nile Trading"
		input.ApplicationStatus = status.Approved // must be ignored

		s := NewService(nil, customers, nil)
		got, err := s.Update(context.Background(), rmClaims(5), 1, input)
		assert.NoError(t, err)
		assert.Equal(t, 900000.0, got.LoanAmount)
		assert.Equal(t, "Blue Nile Trading", got.BusinessName)
		assert.Equal(t, status.Pending, got.ApplicationStatus)
		assert.Equal(t, "CUST-AAAA1111", got.CustomerNumber)
		customers.AssertExpectations(t)
	})
}

func TestSubmitAlreadySubmitted(t *testing.T) {
	customers := new(MockCustomerRepo)
	ref := "DASHEN-202608-0042"
	existing := validApplication()
	existing.RelationshipManagerID = 5
	existing.ApplicationReferenceNumber = &ref
	existing.ApplicationStatus = status.UnderReview
	customers.On("GetByID", uint(1)).Return(existing, nil)

	s := NewService(nil, customers, nil)
	_, err := s.Submit(context.Background(), rmClaims(5), 1)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestGet(t *testing.T) {
	customers := new(MockCustomerRepo)
	existing := validApplication()
	existing.RelationshipManagerID = 99
	customers.On("GetByID", uint(1)).Return(existing, nil)
	s := NewService(nil, customers, nil)

	t.Run("managers see only their own", func(t *testing.T) {
		_, err := s.Get(rmClaims(5), 1)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("reviewers see everything", func(t *testing.T) {
		analyst := &models.UserClaims{UserID: 7, Role: models.RoleCreditAnalyst}
		got, err := s.Get(analyst, 1)
		assert.NoError(t, err)
		assert.Equal(t, existing, got)
	})
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
