package cmd

import (
	"context"
	"database/sql"
	"fmt"

	httpin "ecofleet/internal/adapters/in/http"
	"ecofleet/internal/adapters/out/notifier"
	"ecofleet/internal/adapters/out/postgres"
	"ecofleet/internal/adapters/out/postgres/assignmentrepo"
	"ecofleet/internal/adapters/out/postgres/driverrepo"
	"ecofleet/internal/adapters/out/postgres/eventstore"
	"ecofleet/internal/adapters/out/postgres/orderrepo"
	"ecofleet/internal/adapters/out/postgres/outboxrepo"
	"ecofleet/internal/adapters/out/postgres/vehiclerepo"
	"ecofleet/internal/core/application/notifications"
	"ecofleet/internal/core/application/outbox"
	"ecofleet/internal/core/application/usecases/commands"
	"ecofleet/internal/core/application/usecases/queries"
	"ecofleet/internal/core/domain/events"
	"ecofleet/internal/core/ports"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	registry   *events.Registry
	uowFactory *postgres.GormUnitOfWorkFactory
	eventStore *eventstore.OrderEventStore
	logger     *zap.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, sqlDB *sql.DB, logger *zap.Logger) CompositionRoot {
	registry := events.NewFleetRegistry()

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		registry:   registry,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, registry),
		eventStore: eventstore.NewOrderEventStore(sqlDB, eventstore.Postgres, registry),
		logger:     logger,
	}
}

func (c *CompositionRoot) Registry() *events.Registry {
	return c.registry
}

// Migrate creates the snapshot tables, the outbox and the event stream table.
func (c *CompositionRoot) Migrate(ctx context.Context) error {
	if err := c.gormDB.WithContext(ctx).AutoMigrate(
		&driverrepo.DriverDTO{},
		&vehiclerepo.VehicleDTO{},
		&orderrepo.OrderDTO{},
		&assignmentrepo.AssignmentDTO{},
		&outboxrepo.OutboxMessageDTO{},
	); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}
	if err := c.eventStore.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate event store: %w", err)
	}
	return nil
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fleetUoWFactory() commands.FleetUoWFactory {
	return FuncFleetUoWFactory(func() commands.FleetUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// eventSourcedOrders reports whether ORDER_STORE selects the event stream.
func (c *CompositionRoot) eventSourcedOrders() bool {
	return c.cfg.OrderStore == OrderStoreEventStore
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	return commands.NewCreateDriverCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateSuspendDriverCommandHandler() commands.SuspendDriverCommandHandler {
	return commands.NewSuspendDriverCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateReinstateDriverCommandHandler() commands.ReinstateDriverCommandHandler {
	return commands.NewReinstateDriverCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateDeleteDriverCommandHandler() commands.DeleteDriverCommandHandler {
	return commands.NewDeleteDriverCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateCreateVehicleCommandHandler() commands.CreateVehicleCommandHandler {
	return commands.NewCreateVehicleCommandHandler(c.fleetUoWFactory())
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.fleetUoWFactory())
}

func (c *CompositionRoot) CreateUnassignDriverCommandHandler() commands.UnassignDriverCommandHandler {
	return commands.NewUnassignDriverCommandHandler(c.fleetUoWFactory())
}

func (c *CompositionRoot) CreateStartMaintenanceCommandHandler() commands.StartMaintenanceCommandHandler {
	return commands.NewStartMaintenanceCommandHandler(c.fleetUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	if c.eventSourcedOrders() {
		return commands.NewEventSourcedCreateOrderCommandHandler(c.eventStore)
	}
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	if c.eventSourcedOrders() {
		return commands.NewEventSourcedChangeOrderStatusCommandHandler(c.eventStore)
	}
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderPriceCommandHandler() commands.UpdateOrderPriceCommandHandler {
	if c.eventSourcedOrders() {
		return commands.NewEventSourcedUpdateOrderPriceCommandHandler(c.eventStore)
	}
	return commands.NewUpdateOrderPriceCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCreateAssignmentCommandHandler() commands.CreateAssignmentCommandHandler {
	return commands.NewCreateAssignmentCommandHandler(c.assignmentUoWFactory())
}

func (c *CompositionRoot) CreateSetAssignmentActiveCommandHandler() commands.SetAssignmentActiveCommandHandler {
	return commands.NewSetAssignmentActiveCommandHandler(c.assignmentUoWFactory())
}

func (c *CompositionRoot) CreateGetAllDriversQueryHandler() queries.GetAllDriversQueryHandler {
	return queries.NewGetAllDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetFailedOutboxMessagesQueryHandler() queries.GetFailedOutboxMessagesQueryHandler {
	return queries.NewGetFailedOutboxMessagesQueryHandler(c.gormDB)
}

// HTTPRouter builds the API with every handler wired in.
func (c *CompositionRoot) HTTPRouter(ctx context.Context) (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateDriver:    c.CreateCreateDriverCommandHandler(),
		SuspendDriver:   c.CreateSuspendDriverCommandHandler(),
		ReinstateDriver: c.CreateReinstateDriverCommandHandler(),
		DeleteDriver:    c.CreateDeleteDriverCommandHandler(),

		CreateVehicle:    c.CreateCreateVehicleCommandHandler(),
		AssignDriver:     c.CreateAssignDriverCommandHandler(),
		UnassignDriver:   c.CreateUnassignDriverCommandHandler(),
		StartMaintenance: c.CreateStartMaintenanceCommandHandler(),

		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus: c.CreateChangeOrderStatusCommandHandler(),
		UpdateOrderPrice:  c.CreateUpdateOrderPriceCommandHandler(),

		CreateAssignment:    c.CreateCreateAssignmentCommandHandler(),
		SetAssignmentActive: c.CreateSetAssignmentActiveCommandHandler(),

		GetAllDrivers:           c.CreateGetAllDriversQueryHandler(),
		GetFailedOutboxMessages: c.CreateGetFailedOutboxMessagesQueryHandler(),
	}, c.logger)

	return httpin.NewRouter(ctx, server, httpin.RouterConfig{
		RateLimit: c.cfg.HTTPRateLimit,
		RateBurst: c.cfg.HTTPRateBurst,
	}, c.logger)
}

// CreateOutboxDispatcher builds the dispatcher draining outbox_messages into
// publisher.
func (c *CompositionRoot) CreateOutboxDispatcher(publisher ports.EventPublisher) *outbox.Dispatcher {
	f := FuncOutboxUoWFactory(func() outbox.OutboxUoW {
		return c.uowFactory.Create()
	})

	return outbox.NewDispatcher(f, c.registry, publisher, outbox.Config{
		BatchSize:       c.cfg.OutboxBatchSize,
		PublishTimeout:  c.cfg.OutboxPublishTimeout,
		PublishAttempts: c.cfg.OutboxPublishAttempts,
	}, c.logger)
}

func (c *CompositionRoot) CreateDriverNotificationHandler(
	processed ports.ProcessedMessageStore,
	log ports.NotificationLog,
) *notifications.DriverNotificationHandler {
	return notifications.NewDriverNotificationHandler(processed, notifier.NewLogSender(c.logger), log, c.logger)
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncFleetUoWFactory func() commands.FleetUoW

func (f FuncFleetUoWFactory) Create() commands.FleetUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncOutboxUoWFactory func() outbox.OutboxUoW

func (f FuncOutboxUoWFactory) Create() outbox.OutboxUoW {
	return f()
}
