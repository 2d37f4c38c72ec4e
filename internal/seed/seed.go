// Package seed loads a small demo data set for local development.
package seed

import (
	"context"
	"fmt"

	"crm/internal/model"
	"crm/internal/service"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const salesRep = "Sales Rep 1"

var customers = []service.CreateCustomerRequest{
	{
		CompanyName:   "KlimaPlus Ltd",
		Phone:         "05321112233",
		Email:         "info@klimaplus.com",
		City:          "Istanbul",
		CustomerType:  string(model.CustomerTypeDealer),
		ContactPerson: "Ahmet Yilmaz",
	},
	{
		CompanyName:   "Ege Sogutma AS",
		Phone:         "02324445566",
		Email:         "satis@egesogutma.com",
		City:          "Izmir",
		CustomerType:  string(model.CustomerTypeAuthorizedService),
		ContactPerson: "Mehmet Demir",
	},
	{
		CompanyName:   "Mega Project Insaat",
		Phone:         "02123334455",
		City:          "Istanbul",
		CustomerType:  string(model.CustomerTypeProjectCustomer),
		ContactPerson: "Ayse Kara",
		Notes:         "Buyuk proje potansiyeli",
	},
	{
		CompanyName:  "Antalya Otelcilik",
		Phone:        "02425556677",
		City:         "Antalya",
		CustomerType: string(model.CustomerTypeCorporateEndUser),
	},
	{
		CompanyName:  "Bireysel Musteri Ali",
		Phone:        "05051234567",
		City:         "Ankara",
		CustomerType: string(model.CustomerTypeIndividual),
	},
	{
		CompanyName:  "Global Export GMBH",
		Phone:        "+49123456789",
		Email:        "import@global.de",
		City:         "Berlin",
		CustomerType: string(model.CustomerTypeExportDistributor),
	},
}

// Result counts what Load created.
type Result struct {
	Customers  int
	Activities int
}

// Purge removes every activity and customer.
func Purge(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Activity{}).Error; err != nil {
			return fmt.Errorf("failed to purge activities: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Customer{}).Error; err != nil {
			return fmt.Errorf("failed to purge customers: %w", err)
		}
		return nil
	})
}

// Load creates the demo customers, each with an intro call. Every other
// customer also gets a quote.
func Load(ctx context.Context, logger zerolog.Logger, customerSvc service.CustomerService, activitySvc service.ActivityService) (Result, error) {
	var res Result

	for i, req := range customers {
		req.Force = true
		customer, err := customerSvc.CreateCustomer(ctx, req)
		if err != nil {
			return res, fmt.Errorf("seed customer %s: %w", req.CompanyName, err)
		}
		res.Customers++
		logger.Info().Str("company", customer.CompanyName).Msg("created customer")

		activities := []service.CreateActivityRequest{{
			Type:        string(model.ActivityTypeIntroCall),
			Title:       "Ilk Gorusme",
			Description: "Genel tanisma ve urun tanitimi yapildi.",
			CreatedBy:   salesRep,
		}}
		if i%2 == 0 {
			activities = append(activities, service.CreateActivityRequest{
				Type:        string(model.ActivityTypeQuoteSent),
				Title:       "Teklif Gonderildi",
				Description: "VRF sistem icin on teklif paylasildi.",
				CreatedBy:   salesRep,
			})
		}

		for _, a := range activities {
			if _, err := activitySvc.CreateActivity(ctx, customer.ID.String(), a); err != nil {
				return res, fmt.Errorf("seed activity for %s: %w", req.CompanyName, err)
			}
			res.Activities++
		}
	}

	return res, nil
}
