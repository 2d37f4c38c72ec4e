package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerType classifies a customer account.
type CustomerType string

// CustomerType enum constants
const (
	CustomerTypeDealer            CustomerType = "DEALER"
	CustomerTypeAuthorizedService CustomerType = "AUTHORIZED_SERVICE"
	CustomerTypeActive            CustomerType = "ACTIVE"
	CustomerTypePotential         CustomerType = "POTENTIAL"
	CustomerTypeCorporateEndUser  CustomerType = "CORPORATE_END_USER"
	CustomerTypeProjectCustomer   CustomerType = "PROJECT_CUSTOMER"
	CustomerTypeIndividual        CustomerType = "INDIVIDUAL"
	CustomerTypeExportDistributor CustomerType = "EXPORT_DISTRIBUTOR"
	CustomerTypeExportProject     CustomerType = "EXPORT_PROJECT"
)

// DefaultCustomerType is assigned when a customer is created without a type.
const DefaultCustomerType = CustomerTypePotential

var customerTypes = []CustomerType{
	CustomerTypeDealer,
	CustomerTypeAuthorizedService,
	CustomerTypeActive,
	CustomerTypePotential,
	CustomerTypeCorporateEndUser,
	CustomerTypeProjectCustomer,
	CustomerTypeIndividual,
	CustomerTypeExportDistributor,
	CustomerTypeExportProject,
}

// CustomerTypes returns every customer type in display order.
func CustomerTypes() []CustomerType {
	out := make([]CustomerType, len(customerTypes))
	copy(out, customerTypes)
	return out
}

// Valid reports whether t is a member of the closed customer type set.
func (t CustomerType) Valid() bool {
	for _, ct := range customerTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// ParseCustomerType converts a client supplied string into a CustomerType.
func ParseCustomerType(s string) (CustomerType, bool) {
	t := CustomerType(s)
	return t, t.Valid()
}

// Customer is a company or individual tracked as a sales prospect or account.
// Customers are never removed; IsActive=false marks a soft-deleted record.
type Customer struct {
	ID                uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName       string       `gorm:"type:varchar(255);not null;index" json:"companyName"`
	// CompanyNameSearch is CompanyName passed through FoldSearch; maintained by BeforeSave.
	CompanyNameSearch string       `gorm:"type:varchar(255);not null;default:'';index" json:"-"`
	Phone             string       `gorm:"type:varchar(50);not null;index" json:"phone"`
	Email             string       `gorm:"type:varchar(255)" json:"email"`
	City              string       `gorm:"type:varchar(100)" json:"city"`
	District          string       `gorm:"type:varchar(100)" json:"district"`
	Address           string       `gorm:"type:text" json:"address"`
	ContactPerson     string       `gorm:"type:varchar(255)" json:"contactPerson"`
	Notes             string       `gorm:"type:text" json:"notes"`
	CustomerType      CustomerType `gorm:"type:varchar(30);not null;default:'POTENTIAL';index" json:"customerType"`
	IsActive          bool         `gorm:"not null;default:true;index" json:"isActive"`
	Activities        []Activity   `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt         time.Time    `gorm:"autoCreateTime:false;index" json:"createdAt"`
	UpdatedAt         time.Time    `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// BeforeSave refreshes the folded name used by search and duplicate lookups.
func (c *Customer) BeforeSave(_ *gorm.DB) error {
	c.CompanyNameSearch = FoldSearch(c.CompanyName)
	return nil
}

// BeforeCreate assigns the identifier so every supported dialect gets the same UUIDs.
func (c *Customer) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
