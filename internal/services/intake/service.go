// Package intake implements relationship manager intake: creating customer
// applications, editing them while they are still pending and submitting
// them into review, which assigns the application reference number.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"dashen/internal/models"
	"dashen/internal/repositories"
	"dashen/internal/repositories/cache"
	"dashen/internal/services/refnum"
	"dashen/internal/services/status"
	"dashen/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service errors
var (
	ErrNotOwner         = errors.New("application belongs to another relationship manager")
	ErrNotEditable      = errors.New("application can only be edited while pending")
	ErrAlreadySubmitted = errors.New("application has already been submitted")
	ErrValidation       = errors.New("application failed validation")
	ErrRefExhausted     = errors.New("could not assign a unique reference number")
)

// The random 4-digit suffix can collide within a month; the unique index
// catches it and we retry with a fresh suffix.
const maxRefAttempts = 5

type Service struct {
	db        *gorm.DB
	customers repositories.CustomerRepository
	cache     *cache.CacheService
}

func NewService(db *gorm.DB, customers repositories.CustomerRepository, cacheSvc *cache.CacheService) *Service {
	return &Service{db: db, customers: customers, cache: cacheSvc}
}

// ValidationError wraps the field errors of a rejected application.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for field, msg := range e.Fields {
		return fmt.Sprintf("%s: %s", field, msg)
	}
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Create registers a new customer application in PENDING for the acting
// relationship manager.
func (s *Service) Create(ctx context.Context, actor *models.UserClaims, customer *models.Customer) (*models.Customer, error) {
	v := validation.New()
	v.Application(customer)
	if !v.Valid() {
		return nil, &ValidationError{Fields: v.Errors}
	}

	customer.ID = 0
	customer.CustomerNumber = newCustomerNumber()
	customer.ApplicationReferenceNumber = nil
	customer.ApplicationStatus = status.Pending
	customer.DecisionReason = ""
	customer.Version = 1
	customer.RelationshipManagerID = actor.UserID

	if err := s.customers.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Update edits an application that is still PENDING and owned by actor.
// Workflow fields are never writable here.
func (s *Service) Update(ctx context.Context, actor *models.UserClaims, id uint, input *models.Customer) (*models.Customer, error) {
	customer, err := s.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer.RelationshipManagerID != actor.UserID {
		return nil, ErrNotOwner
	}
	if customer.ApplicationStatus != status.Pending {
		return nil, ErrNotEditable
	}

	v := validation.New()
	v.Application(input)
	if !v.Valid() {
		return nil, &ValidationError{Fields: v.Errors}
	}

	customer.FirstName = input.FirstName
	customer.MiddleName = input.MiddleName
	customer.LastName = input.LastName
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.City = input.City
	customer.BusinessName = input.BusinessName
	customer.BusinessDescription = input.BusinessDescription
	customer.DateOfEstablishment = input.DateOfEstablishment
	customer.MonthlyIncome = input.MonthlyIncome
	customer.AnnualRevenue = input.AnnualRevenue
	customer.IDDocumentURL = input.IDDocumentURL
	customer.BusinessLicenseURL = input.BusinessLicenseURL
	customer.FinancialStatementURL = input.FinancialStatementURL
	customer.LoanType = input.LoanType
	customer.LoanAmount = input.LoanAmount
	customer.LoanPeriod = input.LoanPeriod
	customer.LoanPurpose = input.LoanPurpose
	customer.RepaymentMode = input.RepaymentMode

	if err := s.customers.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Submit assigns the application reference number and moves the
// application from PENDING to UNDER_REVIEW. The reference is assigned
// exactly once; the conditional update makes a double submit a no-op
// failure rather than a second reference.
func (s *Service) Submit(ctx context.Context, actor *models.UserClaims, id uint) (*models.Customer, error) {
	customer, err := s.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer.RelationshipManagerID != actor.UserID {
		return nil, ErrNotOwner
	}
	if customer.ApplicationReferenceNumber != nil {
		return nil, ErrAlreadySubmitted
	}
	if !status.Allowed(actor.Role, customer.ApplicationStatus, status.UnderReview) {
		return nil, ErrNotEditable
	}

	for attempt := 0; attempt < maxRefAttempts; attempt++ {
		ref, err := refnum.Generate(time.Now())
		if err != nil {
			return nil, err
		}

		res := s.db.WithContext(ctx).Model(&models.Customer{}).
			Where("id = ? AND application_status = ? AND application_reference_number IS NULL", id, status.Pending).
			Updates(map[string]interface{}{
				"application_reference_number": ref,
				"application_status":           status.UnderReview,
				"version":                      gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				continue // reference collision, roll a new suffix
			}
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrAlreadySubmitted
		}

		customer.ApplicationReferenceNumber = &ref
		customer.ApplicationStatus = status.UnderReview
		customer.Version++
		if s.cache != nil {
			if err := s.cache.InvalidateCustomer(ctx, customer); err != nil {
				log.Printf("failed to invalidate customer cache %d: %v", customer.ID, err)
			}
		}
		return customer, nil
	}
	return nil, ErrRefExhausted
}

// Get returns one application, restricted to the owning manager unless the
// actor is a reviewer or admin.
func (s *Service) Get(actor *models.UserClaims, id uint) (*models.Customer, error) {
	customer, err := s.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleRelationshipManager && customer.RelationshipManagerID != actor.UserID {
		return nil, ErrNotOwner
	}
	return customer, nil
}

// ListOwn returns the acting manager's applications.
func (s *Service) ListOwn(actor *models.UserClaims, offset, limit int) ([]models.Customer, int64, error) {
	return s.customers.ListByManager(actor.UserID, offset, limit)
}

func newCustomerNumber() string {
	return "CUST-" + strings.ToUpper(uuid.NewString()[:8])
}
