package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crm/internal/model"
	"crm/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityPreviewLimit caps the activities embedded in a customer detail response.
const ActivityPreviewLimit = 5

// --- Customer DTOs ---

type CreateCustomerRequest struct {
	CompanyName   string `json:"companyName" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	CustomerType  string `json:"customerType" binding:"omitempty,customer_type"`
	Email         string `json:"email"`
	City          string `json:"city"`
	District      string `json:"district"`
	Address       string `json:"address"`
	ContactPerson string `json:"contactPerson"`
	Notes         string `json:"notes"`
	// Force skips duplicate detection after the client has seen the warning.
	Force bool `json:"force"`
}

type UpdateCustomerRequest struct {
	CompanyName   *string `json:"companyName"`
	Phone         *string `json:"phone"`
	CustomerType  *string `json:"customerType" binding:"omitempty,customer_type"`
	Email         *string `json:"email"`
	City          *string `json:"city"`
	District      *string `json:"district"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contactPerson"`
	Notes         *string `json:"notes"`
	IsActive      *bool   `json:"isActive"`
}

type ListCustomersQuery struct {
	Search string `form:"search"`
	Type   string `form:"type"`
}

type CustomerResponse struct {
	ID            uuid.UUID          `json:"id"`
	CompanyName   string             `json:"companyName"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email"`
	City          string             `json:"city"`
	District      string             `json:"district"`
	Address       string             `json:"address"`
	ContactPerson string             `json:"contactPerson"`
	Notes         string             `json:"notes"`
	CustomerType  model.CustomerType `json:"customerType"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// CustomerDetailResponse is a customer with its most recent activities, newest first.
type CustomerDetailResponse struct {
	CustomerResponse
	Activities []ActivityResponse `json:"activities"`
}

// --- Interface ---

type CustomerService interface {
	ListCustomers(ctx context.Context, query ListCustomersQuery) ([]CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (CustomerDetailResponse, error)
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (CustomerResponse, error)
	UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) (CustomerResponse, error)
}

// --- Implementation ---

type customerService struct {
	customerRepo repository.CustomerRepository
	txManager    repository.TransactionManager
	events       EventPublisher
	now          func() time.Time
}

func NewCustomerService(customerRepo repository.CustomerRepository, txManager repository.TransactionManager, events EventPublisher) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		txManager:    txManager,
		events:       publisherOrNoop(events),
		now:          utcNow,
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func (s *customerService) ListCustomers(ctx context.Context, query ListCustomersQuery) ([]CustomerResponse, error) {
	filter := repository.CustomerFilter{Search: strings.TrimSpace(query.Search)}
	// Unknown types are ignored rather than rejected.
	if t, ok := model.ParseCustomerType(query.Type); ok {
		filter.Type = t
	}

	customers, err := s.customerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}

	res := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		res = append(res, toCustomerResponse(c))
	}
	return res, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (CustomerDetailResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return CustomerDetailResponse{}, notFound("customer")
	}

	customer, err := s.customerRepo.FindByIDWithActivities(ctx, uid, ActivityPreviewLimit)
	if err != nil {
		return CustomerDetailResponse{}, translateLookupErr("customer", err)
	}

	activities := make([]ActivityResponse, 0, len(customer.Activities))
	for _, a := range customer.Activities {
		activities = append(activities, toActivityResponse(a))
	}

	return CustomerDetailResponse{
		CustomerResponse: toCustomerResponse(*customer),
		Activities:       activities,
	}, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (CustomerResponse, error) {
	companyName := strings.TrimSpace(req.CompanyName)
	phone := strings.TrimSpace(req.Phone)
	if companyName == "" || phone == "" {
		return CustomerResponse{}, newValidationError("company name and phone are required")
	}

	customerType := model.DefaultCustomerType
	if req.CustomerType != "" {
		t, ok := model.ParseCustomerType(req.CustomerType)
		if !ok {
			return CustomerResponse{}, invalidCustomerType(req.CustomerType)
		}
		customerType = t
	}

	if !req.Force {
		existing, err := s.customerRepo.FindDuplicate(ctx, companyName, phone)
		if err != nil {
			return CustomerResponse{}, fmt.Errorf("failed to check duplicates: %w", err)
		}
		if existing != nil {
			return CustomerResponse{}, &DuplicateError{Existing: toCustomerResponse(*existing)}
		}
	}

	now := s.now()
	customer := &model.Customer{
		CompanyName:   companyName,
		Phone:         phone,
		Email:         strings.TrimSpace(req.Email),
		City:          strings.TrimSpace(req.City),
		District:      strings.TrimSpace(req.District),
		Address:       req.Address,
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		Notes:         req.Notes,
		CustomerType:  customerType,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return CustomerResponse{}, fmt.Errorf("failed to create customer: %w", err)
	}

	res := toCustomerResponse(*customer)
	s.events.Publish(EventCustomerCreated, res)
	return res, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (CustomerResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return CustomerResponse{}, notFound("customer")
	}

	var customerType *model.CustomerType
	if req.CustomerType != nil {
		t, ok := model.ParseCustomerType(*req.CustomerType)
		if !ok {
			return CustomerResponse{}, invalidCustomerType(*req.CustomerType)
		}
		customerType = &t
	}
	if req.CompanyName != nil && strings.TrimSpace(*req.CompanyName) == "" {
		return CustomerResponse{}, newValidationError("company name cannot be empty")
	}
	if req.Phone != nil && strings.TrimSpace(*req.Phone) == "" {
		return CustomerResponse{}, newValidationError("phone cannot be empty")
	}

	var customer *model.Customer
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		found, err := s.customerRepo.FindByID(txCtx, uid)
		if err != nil {
			return translateLookupErr("customer", err)
		}

		applyCustomerUpdate(found, req)
		if customerType != nil {
			found.CustomerType = *customerType
		}
		found.UpdatedAt = s.now()

		if err := s.customerRepo.Update(txCtx, found); err != nil {
			return fmt.Errorf("failed to update customer: %w", err)
		}
		customer = found
		return nil
	})
	if err != nil {
		return CustomerResponse{}, err
	}

	res := toCustomerResponse(*customer)
	s.events.Publish(EventCustomerUpdated, res)
	return res, nil
}

// DeleteCustomer deactivates the customer. Repeating it on an inactive customer succeeds.
func (s *customerService) DeleteCustomer(ctx context.Context, id string) (CustomerResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return CustomerResponse{}, notFound("customer")
	}

	var customer *model.Customer
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		found, err := s.customerRepo.FindByID(txCtx, uid)
		if err != nil {
			return translateLookupErr("customer", err)
		}

		found.IsActive = false
		found.UpdatedAt = s.now()
		if err := s.customerRepo.Update(txCtx, found); err != nil {
			return fmt.Errorf("failed to deactivate customer: %w", err)
		}
		customer = found
		return nil
	})
	if err != nil {
		return CustomerResponse{}, err
	}

	res := toCustomerResponse(*customer)
	s.events.Publish(EventCustomerDeleted, res)
	return res, nil
}

// --- Helpers ---

func applyCustomerUpdate(c *model.Customer, req UpdateCustomerRequest) {
	if req.CompanyName != nil {
		c.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		c.Email = strings.TrimSpace(*req.Email)
	}
	if req.City != nil {
		c.City = strings.TrimSpace(*req.City)
	}
	if req.District != nil {
		c.District = strings.TrimSpace(*req.District)
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.ContactPerson != nil {
		c.ContactPerson = strings.TrimSpace(*req.ContactPerson)
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
}

func invalidCustomerType(value string) error {
	return newValidationError("customerType %q is not one of the supported customer types", value)
}

func translateLookupErr(entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity)
	}
	return fmt.Errorf("failed to fetch %s: %w", entity, err)
}

// --- Response mappers ---

func toCustomerResponse(c model.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		CompanyName:   c.CompanyName,
		Phone:         c.Phone,
		Email:         c.Email,
		City:          c.City,
		District:      c.District,
		Address:       c.Address,
		ContactPerson: c.ContactPerson,
		Notes:         c.Notes,
		CustomerType:  c.CustomerType,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
