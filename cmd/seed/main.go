package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"crm/internal/config"
	"crm/internal/database"
	"crm/internal/logging"
	"crm/internal/repository"
	"crm/internal/seed"
	"crm/internal/service"
)

const seedTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logging.NewLogger(config.Config{})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger := logging.NewLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	err = run(ctx, logger, cfg)
	cancel()
	if err != nil {
		logger.Error().Err(err).Msg("seeding failed")
		os.Exit(1)
	}
}

// run replaces the contents of the configured database with the demo data set.
func run(ctx context.Context, logger zerolog.Logger, cfg config.Config) (err error) {
	db, err := database.NewConnection(cfg.Database, logging.GormLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			logger.Error().Err(closeErr).Msg("failed to close database")
			if err == nil {
				err = closeErr
			}
		}
	}()

	logger.Info().Msg("seeding data")
	if err := seed.Purge(ctx, db); err != nil {
		return err
	}

	txManager := repository.NewTransactionManager(db)
	customerRepo := repository.NewCustomerRepository(db)
	customerSvc := service.NewCustomerService(customerRepo, txManager, nil)
	activitySvc := service.NewActivityService(repository.NewActivityRepository(db), customerRepo, txManager, nil)

	res, err := seed.Load(ctx, logger, customerSvc, activitySvc)
	if err != nil {
		return err
	}
	logger.Info().Int("customers", res.Customers).Int("activities", res.Activities).Msg("seeding finished")
	return nil
}
