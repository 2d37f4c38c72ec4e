package repository

import (
	"context"
	"strings"

	"crm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerFilter narrows a customer listing. Zero values mean "no restriction",
// except IncludeInactive which must be set to see soft-deleted customers.
type CustomerFilter struct {
	Search          string
	Type            model.CustomerType
	IncludeInactive bool
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	FindByIDWithActivities(ctx context.Context, id uuid.UUID, limit int) (*model.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]model.Customer, error)
	// FindDuplicate returns the newest customer, active or not, whose company name equals
	// companyName ignoring case or whose phone contains phone. It returns nil when none match.
	FindDuplicate(ctx context.Context, companyName, phone string) (*model.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return GetDB(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	return GetDB(ctx, r.db).Omit("Activities").Save(customer).Error
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := GetDB(ctx, r.db).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindByIDWithActivities(ctx context.Context, id uuid.UUID, limit int) (*model.Customer, error) {
	var customer model.Customer
	err := GetDB(ctx, r.db).
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(limit)
		}).
		First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, filter CustomerFilter) ([]model.Customer, error) {
	customers := make([]model.Customer, 0)

	query := GetDB(ctx, r.db).Model(&model.Customer{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Type != "" {
		query = query.Where("customer_type = ?", filter.Type)
	}
	if filter.Search != "" {
		namePattern := "%" + escapeLike(model.FoldSearch(filter.Search)) + "%"
		phonePattern := "%" + escapeLike(filter.Search) + "%"
		query = query.Where("(company_name_search LIKE ? ESCAPE '\\' OR phone LIKE ? ESCAPE '\\')", namePattern, phonePattern)
	}

	if err := query.Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customerRepository) FindDuplicate(ctx context.Context, companyName, phone string) (*model.Customer, error) {
	var matches []model.Customer

	err := GetDB(ctx, r.db).
		Where("company_name_search = ? OR phone LIKE ? ESCAPE '\\'", model.FoldSearch(companyName), "%"+escapeLike(phone)+"%").
		Order("created_at DESC").
		Limit(1).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using '\' as escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
