package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ecofleet/internal/core/application/usecases/commands"
	"ecofleet/internal/core/application/usecases/queries"
	"ecofleet/internal/core/domain/model/driver"
	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/generated/servers"
	"ecofleet/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"
)

type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers lists the use cases the API exposes. Every field must be set.
type Handlers struct {
	CreateDriver    CommandHandler[commands.CreateDriverCommand]
	SuspendDriver   CommandHandler[commands.SuspendDriverCommand]
	ReinstateDriver CommandHandler[commands.ReinstateDriverCommand]
	DeleteDriver    CommandHandler[commands.DeleteDriverCommand]

	CreateVehicle    CommandHandler[commands.CreateVehicleCommand]
	AssignDriver     CommandHandler[commands.AssignDriverCommand]
	UnassignDriver   CommandHandler[commands.UnassignDriverCommand]
	StartMaintenance CommandHandler[commands.StartMaintenanceCommand]

	CreateOrder       CommandHandler[commands.CreateOrderCommand]
	ChangeOrderStatus CommandHandler[commands.ChangeOrderStatusCommand]
	UpdateOrderPrice  CommandHandler[commands.UpdateOrderPriceCommand]

	CreateAssignment    CommandHandler[commands.CreateAssignmentCommand]
	SetAssignmentActive CommandHandler[commands.SetAssignmentActiveCommand]

	GetAllDrivers QueryHandler[
		queries.GetAllDriversQuery, []queries.GetAllDriversQueryResponse,
	]
	GetFailedOutboxMessages QueryHandler[
		queries.GetFailedOutboxMessagesQuery, []queries.GetFailedOutboxMessagesQueryResponse,
	]
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *zap.Logger
	newID    func() kernel.UUID
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With(zap.String("component", "http")),
		newID:    kernel.NewUUID,
	}
}

// GetDrivers handles GET /api/v1/drivers.
func (s *Server) GetDrivers(ctx echo.Context, params servers.GetDriversParams) error {
	var status *driver.Status
	if params.Status != nil {
		parsed, err := driver.ParseStatus(string(*params.Status))
		if err != nil {
			return s.fail(ctx, err)
		}
		status = &parsed
	}

	query, err := queries.NewGetAllDriversQuery(status)
	if err != nil {
		return s.fail(ctx, err)
	}

	drivers, err := s.handlers.GetAllDrivers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Driver, len(drivers))
	for i, d := range drivers {
		response[i] = servers.Driver{
			Id:        d.ID.Bytes(),
			FirstName: d.FirstName,
			LastName:  d.LastName,
			License:   d.License,
			Email:     d.Email,
			Phone:     d.Phone,
			Status:    servers.DriverStatus(d.Status.String()),
		}
		if d.DateOfBirth != nil {
			response[i].DateOfBirth = &openapi_types.Date{Time: *d.DateOfBirth}
		}
		if d.VehicleID != nil {
			vehicleID := d.VehicleID.Bytes()
			response[i].VehicleId = &vehicleID
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateDriver handles POST /api/v1/drivers.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body servers.CreateDriverJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	name, nameErr := kernel.NewPersonName(body.FirstName, body.LastName)
	license, licenseErr := kernel.NewLicense(body.License)
	email, emailErr := kernel.NewEmail(string(body.Email))

	var phone *kernel.Phone
	var phoneErr error
	if body.Phone != nil {
		var p kernel.Phone
		if p, phoneErr = kernel.NewPhone(*body.Phone); phoneErr == nil {
			phone = &p
		}
	}
	if err := errors.Join(nameErr, licenseErr, emailErr, phoneErr); err != nil {
		return s.fail(ctx, err)
	}

	var dateOfBirth *time.Time
	if body.DateOfBirth != nil {
		dateOfBirth = &body.DateOfBirth.Time
	}

	driverID := s.newID()
	cmd, err := commands.NewCreateDriverCommand(driverID, name, license, email, phone, dateOfBirth)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: driverID.Bytes()})
}

// DeleteDriver handles DELETE /api/v1/drivers/{driverId}.
func (s *Server) DeleteDriver(ctx echo.Context, driverID servers.DriverId) error {
	id, err := kernel.UUIDFromBytes(driverID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDeleteDriverCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.noContent(ctx, s.handlers.DeleteDriver.Handle(ctx.Request().Context(), cmd))
}

// SuspendDriver handles POST /api/v1/drivers/{driverId}/suspend.
func (s *Server) SuspendDriver(ctx echo.Context, driverID servers.DriverId) error {
	id, err := kernel.UUIDFromBytes(driverID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewSuspendDriverCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.noContent(ctx, s.handlers.SuspendDriver.Handle(ctx.Request().Context(), cmd))
}

// ReinstateDriver handles POST /api/v1/drivers/{driverId}/reinstate.
func (s *Server) ReinstateDriver(ctx echo.Context, driverID servers.DriverId) error {
	id, err := kernel.UUIDFromBytes(driverID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewReinstateDriverCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.noContent(ctx, s.handlers.ReinstateDriver.Handle(ctx.Request().Context(), cmd))
}

// CreateVehicle handles POST /api/v1/vehicles.
func (s *Server) CreateVehicle(ctx echo.Context) error {
	var body servers.CreateVehicleJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	plate, plateErr := kernel.NewPlate(body.Plate)
	location, locationErr := kernel.NewGeoLocation(body.Location.Latitude, body.Location.Longitude)

	var driverID *kernel.UUID
	var driverErr error
	if body.DriverId != nil {
		var id kernel.UUID
		if id, driverErr = kernel.UUIDFromBytes(body.DriverId[:]); driverErr == nil {
			driverID = &id
		}
	}
	if err := errors.Join(plateErr, locationErr, driverErr); err != nil {
		return s.fail(ctx, err)
	}

	vehicleID := s.newID()
	cmd, err := commands.NewCreateVehicleCommand(vehicleID, plate, location, driverID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateVehicle.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: vehicleID.Bytes()})
}

// AssignDriver handles POST /api/v1/vehicles/{vehicleId}/driver.
func (s *Server) AssignDriver(ctx echo.Context, vehicleID servers.VehicleId) error {
	var body servers.AssignDriverJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	vID, vehicleErr := kernel.UUIDFromBytes(vehicleID[:])
	dID, driverErr := kernel.UUIDFromBytes(body.DriverId[:])
	if err := errors.Join(vehicleErr, driverErr); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAssignDriverCommand(vID, dID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.noContent(ctx, s.handlers.AssignDriver.Handle(ctx.Request().Context(), cmd))
}

// UnassignDriver handles DELETE /api/v1/vehicles/{vehicleId}/driver.
func (s *Server) UnassignDriver(ctx echo.Context, vehicleID servers.VehicleId) error {
	id, err := kernel.UUIDFromBytes(vehicleID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewUnassignDriverCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.noContent(ctx, s.handlers.UnassignDriver.Handle(ctx.Request().Context(), cmd))
}

// StartVehicleMaintenance handles POST /api/v1/vehicles/{vehicleId}/maintenance.
func (s *Server) StartVehicleMaintenance(ctx echo.Context, vehicleID servers.VehicleId) error {
	id, err := kernel.UUIDFromBytes(vehicleID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewStartMaintenanceCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.noContent(ctx, s.handlers.StartMaintenance.Handle(ctx.Request().Context(), cmd))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	driverID, driverErr := kernel.UUIDFromBytes(body.DriverId[:])
	pickup, pickupErr := kernel.NewGeoLocation(body.Pickup.Latitude, body.Pickup.Longitude)
	dropoff, dropoffErr := kernel.NewGeoLocation(body.Dropoff.Latitude, body.Dropoff.Longitude)
	if err := errors.Join(driverErr, pickupErr, dropoffErr); err != nil {
		return s.fail(ctx, err)
	}

	orderID := s.newID()
	cmd, err := commands.NewCreateOrderCommand(orderID, driverID, pickup, dropoff, body.Price)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: orderID.Bytes()})
}

// ChangeOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.ChangeOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewChangeOrderStatusCommand(id, string(body.Action))
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.noContent(ctx, s.handlers.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd))
}

// UpdateOrderPrice handles PUT /api/v1/orders/{orderId}/price.
func (s *Server) UpdateOrderPrice(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.UpdateOrderPriceJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewUpdateOrderPriceCommand(id, body.Price)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.noContent(ctx, s.handlers.UpdateOrderPrice.Handle(ctx.Request().Context(), cmd))
}

// CreateAssignment handles POST /api/v1/assignments.
func (s *Server) CreateAssignment(ctx echo.Context) error {
	var body servers.CreateAssignmentJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	managerID, managerErr := kernel.UUIDFromBytes(body.ManagerId[:])
	driverID, driverErr := kernel.UUIDFromBytes(body.DriverId[:])
	if err := errors.Join(managerErr, driverErr); err != nil {
		return s.fail(ctx, err)
	}

	assignmentID := s.newID()
	cmd, err := commands.NewCreateAssignmentCommand(assignmentID, managerID, driverID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateAssignment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: assignmentID.Bytes()})
}

// SetAssignmentActive handles PUT /api/v1/assignments/{assignmentId}/active.
func (s *Server) SetAssignmentActive(ctx echo.Context, assignmentID openapi_types.UUID) error {
	var body servers.SetAssignmentActiveJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.invalidBody(ctx)
	}

	id, err := kernel.UUIDFromBytes(assignmentID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewSetAssignmentActiveCommand(id, body.Active)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.noContent(ctx, s.handlers.SetAssignmentActive.Handle(ctx.Request().Context(), cmd))
}

// GetFailedOutboxMessages handles GET /api/v1/outbox/failed.
func (s *Server) GetFailedOutboxMessages(ctx echo.Context, params servers.GetFailedOutboxMessagesParams) error {
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
		if limit == 0 {
			return s.fail(ctx, errs.NewValueIsOutOfRangeError("limit", limit, 1, queries.MaxFailedMessagesLimit))
		}
	}

	query, err := queries.NewGetFailedOutboxMessagesQuery(limit)
	if err != nil {
		return s.fail(ctx, err)
	}

	messages, err := s.handlers.GetFailedOutboxMessages.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.FailedOutboxMessage, len(messages))
	for i, m := range messages {
		response[i] = servers.FailedOutboxMessage{
			Id:          m.ID.Bytes(),
			Type:        m.Type,
			Content:     m.Content,
			OccurredOn:  m.OccurredOn,
			ProcessedOn: m.ProcessedOn,
			Error:       m.Error,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) noContent(ctx echo.Context, err error) error {
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) invalidBody(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}

// fail writes err as an Error body. Anything that is not a known domain
// error is logged and hidden behind a 500.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error("Request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("route", ctx.Path()),
			zap.Error(err),
		)
		message = "Internal server error"
	}

	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrDomainRuleViolated),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
