package routes

import (
	"context"
	"fmt"

	"brcargo_cotacoes/internal/adapter/persistence/gormrepo"
	"brcargo_cotacoes/internal/adapter/persistence/memory"
	"brcargo_cotacoes/internal/adapter/persistence/repository"
	"brcargo_cotacoes/internal/infrastructure/config"
	"brcargo_cotacoes/internal/infrastructure/database"
	"brcargo_cotacoes/internal/usecase"
	"brcargo_cotacoes/internal/usecase/interfaces"
)

// storage groups the repositories of one backend. sequence is the backend's
// own day counter, used unless Redis numbering is configured.
type storage struct {
	quotes        interfaces.IQuoteRepository
	sequence      interfaces.IQuoteSequence
	users         interfaces.IUserRepository
	companies     interfaces.ICompanyRepository
	notifications interfaces.INotificationRepository
	close         func() error
}

func openStorage(ctx context.Context, cfg config.Configuration) (storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		quotes := memory.NewQuoteStore()
		return storage{
			quotes:        quotes,
			sequence:      quotes,
			users:         memory.NewUserStore(),
			companies:     memory.NewCompanyStore(),
			notifications: memory.NewNotificationStore(),
			close:         func() error { return nil },
		}, nil

	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return storage{}, fmt.Errorf("failed to create dynamodb client: %w", err)
		}
		tables := repository.Tables{
			Quotes:        cfg.DynamoDB.QuotesTable,
			History:       cfg.DynamoDB.HistoryTable,
			Numbers:       cfg.DynamoDB.NumbersTable,
			Counters:      cfg.DynamoDB.CountersTable,
			Users:         cfg.DynamoDB.UsersTable,
			Companies:     cfg.DynamoDB.CompaniesTable,
			Notifications: cfg.DynamoDB.NotificationsTable,
		}
		quotes := repository.NewQuoteDynamoRepository(ddb, tables)
		return storage{
			quotes:        quotes,
			sequence:      repository.NewQuoteDynamoSequence(ddb, tables, usecase.NewStoreQuoteSequence(quotes)),
			users:         repository.NewUserDynamoRepository(ddb, tables),
			companies:     repository.NewCompanyDynamoRepository(ddb, tables),
			notifications: repository.NewNotificationDynamoRepository(ddb, tables),
			close:         func() error { return nil },
		}, nil

	case config.StoragePostgres:
		db, err := gormrepo.OpenPostgres(gormrepo.Config{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return storage{}, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return storage{}, err
		}
		if cfg.Postgres.AutoMigrate {
			if err := gormrepo.AutoMigrate(db); err != nil {
				_ = sqlDB.Close()
				return storage{}, fmt.Errorf("failed to migrate database: %w", err)
			}
		}
		quotes := gormrepo.NewQuoteGormRepository(db)
		return storage{
			quotes:        quotes,
			sequence:      usecase.NewStoreQuoteSequence(quotes),
			users:         gormrepo.NewUserGormRepository(db),
			companies:     gormrepo.NewCompanyGormRepository(db),
			notifications: gormrepo.NewNotificationGormRepository(db),
			close:         sqlDB.Close,
		}, nil
	}
	return storage{}, fmt.Errorf("unknown storage driver %q", cfg.Storage)
}
