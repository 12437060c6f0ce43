package repositories

import (
	"errors"

	"dashen/internal/models"
)

var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository defines database operations on customer/application rows.
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id uint) (*models.Customer, error)
	GetByReference(ref string) (*models.Customer, error)
	Update(customer *models.Customer) error

	// ListByStatus returns a page of the queue for one status.
	ListByStatus(status string, offset, limit int) ([]models.Customer, int64, error)

	// ListByManager returns a relationship manager's own customers.
	ListByManager(managerID uint, offset, limit int) ([]models.Customer, int64, error)

	// List returns all customers, newest first.
	List(offset, limit int) ([]models.Customer, int64, error)
}
