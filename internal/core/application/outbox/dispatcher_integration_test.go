package outbox_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "ecofleet/internal/adapters/out/postgres"
	"ecofleet/internal/adapters/out/postgres/outboxrepo"
	"ecofleet/internal/core/application/outbox"
	"ecofleet/internal/core/domain/events"
	"ecofleet/internal/core/domain/model/kernel"
	outboxmsg "ecofleet/internal/core/domain/model/outbox"
	"ecofleet/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type gormOutboxUoWFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f gormOutboxUoWFactory) Create() outbox.OutboxUoW {
	return f.factory.CreateGorm()
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.PublishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, evt ports.PublishedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

// DispatcherIntegrationTestSuite runs whole passes against a real PostgreSQL.
type DispatcherIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *outboxrepo.GormOutboxRepository
	publisher *recordingPublisher
	sut       *outbox.Dispatcher
}

func (suite *DispatcherIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(&outboxrepo.OutboxMessageDTO{}))
	suite.db = db
	suite.repo = outboxrepo.NewGormOutboxRepository(db)
}

func (suite *DispatcherIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE outbox_messages").Error)

	registry := events.NewFleetRegistry()
	suite.publisher = &recordingPublisher{}
	suite.sut = outbox.NewDispatcher(
		gormOutboxUoWFactory{factory: postgres_adapter.NewGormUnitOfWorkFactory(suite.db, registry)},
		registry,
		suite.publisher,
		outbox.Config{BatchSize: 20},
		zap.NewNop(),
	)
}

func (suite *DispatcherIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DispatcherIntegrationTestSuite) seed(messages ...*outboxmsg.Message) {
	suite.Require().NoError(suite.repo.Add(context.Background(), messages))
}

func (suite *DispatcherIntegrationTestSuite) pending() int64 {
	var n int64
	err := suite.db.Model(&outboxrepo.OutboxMessageDTO{}).Where("processed_on IS NULL").Count(&n).Error
	suite.Require().NoError(err)
	return n
}

func (suite *DispatcherIntegrationTestSuite) TestProcessPass_TakesOldestBatchInOrder() {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// Seeded newest first so insertion order differs from occurrence order.
	seeded := make([]*outboxmsg.Message, 25)
	for i := 24; i >= 0; i-- {
		seeded[i] = suspendedMessage(suite.T(), start.Add(time.Duration(i)*2*time.Minute))
		suite.seed(seeded[i])
	}

	result, err := suite.sut.ProcessPass(ctx)
	suite.Require().NoError(err)
	suite.Equal(outbox.PassResult{Claimed: 20, Published: 20}, result)
	suite.Equal(int64(5), suite.pending())

	suite.Require().Len(suite.publisher.events, 20)
	for i, evt := range suite.publisher.events {
		suite.Equal(seeded[i].ID(), evt.MessageID)
	}

	for _, m := range seeded[20:] {
		stored, err := suite.repo.Get(ctx, m.ID())
		suite.Require().NoError(err)
		suite.True(stored.IsPending())
	}

	result, err = suite.sut.ProcessPass(ctx)
	suite.Require().NoError(err)
	suite.Equal(outbox.PassResult{Claimed: 5, Published: 5}, result)
	suite.Zero(suite.pending())
}

func (suite *DispatcherIntegrationTestSuite) TestProcessPass_UnknownTypeIsDeadLettered() {
	ctx := context.Background()
	m, err := outboxmsg.NewMessage(kernel.NewUUID(), "fleet.unknown_event", `{"x":1}`, time.Now().UTC())
	suite.Require().NoError(err)
	suite.seed(m)

	result, err := suite.sut.ProcessPass(ctx)
	suite.Require().NoError(err)
	suite.Equal(outbox.PassResult{Claimed: 1, Failed: 1}, result)
	suite.Empty(suite.publisher.events)

	stored, err := suite.repo.Get(ctx, m.ID())
	suite.Require().NoError(err)
	suite.NotNil(stored.ProcessedOn())
	suite.Require().NotNil(stored.Error())
	suite.Contains(*stored.Error(), "fleet.unknown_event")

	result, err = suite.sut.ProcessPass(ctx)
	suite.Require().NoError(err)
	suite.Zero(result.Claimed)
}

func TestDispatcherIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherIntegrationTestSuite))
}
