package outboxrepo_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ecofleet/internal/adapters/out/postgres/outboxrepo"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/domain/model/outbox"
	"ecofleet/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	base      time.Time
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&outboxrepo.OutboxMessageDTO{}))
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE outbox_messages").Error)
	suite.base = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// seed inserts n pending messages, the i-th occurring i minutes after base,
// in reverse so insertion order differs from occurrence order.
func (suite *OutboxRepositoryIntegrationTestSuite) seed(n int) []*outbox.Message {
	messages := make([]*outbox.Message, n)
	for i := n - 1; i >= 0; i-- {
		m, err := outbox.NewMessage(
			kernel.NewUUID(),
			"driver.suspended.v1",
			fmt.Sprintf(`{"seq":%d}`, i),
			suite.base.Add(time.Duration(i)*time.Minute),
		)
		suite.Require().NoError(err)
		messages[i] = m
	}

	repo := outboxrepo.NewGormOutboxRepository(suite.db)
	suite.Require().NoError(repo.Add(context.Background(), messages))
	return messages
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestClaimPending_OldestFirstUpToLimit() {
	ctx := context.Background()
	seeded := suite.seed(5)

	claimed, err := outboxrepo.NewGormOutboxRepository(suite.db).ClaimPending(ctx, 3)

	suite.Require().NoError(err)
	suite.Require().Len(claimed, 3)
	for i, m := range claimed {
		suite.True(m.ID().IsEqual(seeded[i].ID()))
		suite.True(m.OccurredOn().Equal(seeded[i].OccurredOn()))
		suite.True(m.IsPending())
	}
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestClaimPending_SkipsProcessedRows() {
	ctx := context.Background()
	seeded := suite.seed(3)
	repo := outboxrepo.NewGormOutboxRepository(suite.db)

	seeded[0].MarkDelivered(suite.base.Add(time.Hour))
	seeded[1].MarkFailed(suite.base.Add(time.Hour), errors.New("broker down"))
	suite.Require().NoError(repo.SaveOutcome(ctx, seeded[:2]))

	claimed, err := repo.ClaimPending(ctx, 10)

	suite.Require().NoError(err)
	suite.Require().Len(claimed, 1)
	suite.True(claimed[0].ID().IsEqual(seeded[2].ID()))
}

// Two open transactions never receive the same row.
func (suite *OutboxRepositoryIntegrationTestSuite) TestClaimPending_ConcurrentClaimsAreDisjoint() {
	ctx := context.Background()
	suite.seed(6)

	first := suite.db.Begin()
	suite.Require().NoError(first.Error)
	defer first.Rollback()
	second := suite.db.Begin()
	suite.Require().NoError(second.Error)
	defer second.Rollback()

	a, err := outboxrepo.NewGormOutboxRepository(first).ClaimPending(ctx, 4)
	suite.Require().NoError(err)
	b, err := outboxrepo.NewGormOutboxRepository(second).ClaimPending(ctx, 4)
	suite.Require().NoError(err)

	suite.Len(a, 4)
	suite.Len(b, 2)

	seen := make(map[string]bool)
	for _, m := range append(a, b...) {
		suite.False(seen[m.ID().String()], "row %s claimed twice", m.ID())
		seen[m.ID().String()] = true
	}
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestSaveOutcome_PersistsError() {
	ctx := context.Background()
	seeded := suite.seed(1)
	repo := outboxrepo.NewGormOutboxRepository(suite.db)

	at := suite.base.Add(2 * time.Hour)
	seeded[0].MarkFailed(at, errors.New("unknown event type"))
	suite.Require().NoError(repo.SaveOutcome(ctx, seeded))

	stored, err := repo.Get(ctx, seeded[0].ID())
	suite.Require().NoError(err)
	suite.False(stored.IsPending())
	suite.Require().NotNil(stored.ProcessedOn())
	suite.True(stored.ProcessedOn().Equal(at))
	suite.Require().NotNil(stored.Error())
	suite.Contains(*stored.Error(), "unknown event type")
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestSaveOutcome_UnknownMessage() {
	m, err := outbox.NewMessage(kernel.NewUUID(), "driver.suspended.v1", "{}", suite.base)
	suite.Require().NoError(err)
	m.MarkDelivered(suite.base)

	err = outboxrepo.NewGormOutboxRepository(suite.db).SaveOutcome(context.Background(), []*outbox.Message{m})

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := outboxrepo.NewGormOutboxRepository(suite.db).Get(context.Background(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOutboxRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}
