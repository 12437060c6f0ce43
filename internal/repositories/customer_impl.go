package repositories

import (
	"context"
	"errors"
	"log"

	"dashen/internal/models"
	"dashen/internal/repositories/cache"

	"gorm.io/gorm"
)

type customerRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(db *gorm.DB, cache *cache.CacheService) CustomerRepository {
	return &customerRepository{db: db, cache: cache}
}

func (r *customerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepository) GetByID(id uint) (*models.Customer, error) {
	key := r.cache.GenerateKey("customer", "id", id)
	if customer, err := r.cache.GetCustomer(context.Background(), key); err == nil {
		return customer, nil
	}

	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if err := r.cache.CacheCustomer(context.Background(), &customer); err != nil {
		log.Printf("failed to cache customer %d: %v", customer.ID, err)
	}
	return &customer, nil
}

func (r *customerRepository) GetByReference(ref string) (*models.Customer, error) {
	key := r.cache.GenerateKey("customer", "ref", ref)
	if customer, err := r.cache.GetCustomer(context.Background(), key); err == nil {
		return customer, nil
	}

	var customer models.Customer
	if err := r.db.Where("application_reference_number = ?", ref).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if err := r.cache.CacheCustomer(context.Background(), &customer); err != nil {
		log.Printf("failed to cache customer %d: %v", customer.ID, err)
	}
	return &customer, nil
}

func (r *customerRepository) Update(customer *models.Customer) error {
	if err := r.db.Save(customer).Error; err != nil {
		return err
	}
	if err := r.cache.InvalidateCustomer(context.Background(), customer); err != nil {
		log.Printf("failed to invalidate customer cache %d: %v", customer.ID, err)
	}
	return nil
}

func (r *customerRepository) ListByStatus(status string, offset, limit int) ([]models.Customer, int64, error) {
	ctx := context.Background()
	if page, err := r.cache.GetQueue(ctx, status, offset, limit); err == nil {
		return page.Customers, page.Total, nil
	}

	var customers []models.Customer
	var total int64
	q := r.db.Model(&models.Customer{}).Where("application_status = ?", status)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Offset(offset).Limit(limit).Order("updated_at ASC").Find(&customers).Error; err != nil {
		return nil, 0, err
	}

	page := &cache.QueuePage{Customers: customers, Total: total}
	if err := r.cache.CacheQueue(ctx, status, offset, limit, page); err != nil {
		log.Printf("failed to cache queue %s: %v", status, err)
	}
	return customers, total, nil
}

func (r *customerRepository) ListByManager(managerID uint, offset, limit int) ([]models.Customer, int64, error) {
	var customers []models.Customer
	var total int64
	q := r.db.Model(&models.Customer{}).Where("relationship_manager_id = ?", managerID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Offset(offset).Limit(limit).Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *customerRepository) List(offset, limit int) ([]models.Customer, int64, error) {
	var customers []models.Customer
	var total int64
	if err := r.db.Model(&models.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}
