// Package http exposes the planning board over a REST API plus a websocket
// endpoint for the live board feed. Handlers translate requests into
// commands and queries; all business rules live below this layer.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"planboard/internal/adapters/in/ws"
	"planboard/internal/core/application/usecases/commands"
	"planboard/internal/core/application/usecases/queries"
	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/order"
	"planboard/internal/locks"
	"planboard/internal/pkg/errs"
)

const (
	headerUserID           = "X-User-Id"
	headerUserName         = "X-User-Name"
	headerIntegrationToken = "X-Integration-Token"
)

// unassignedCentre is the path segment addressing the pool of orders not
// assigned to any work centre.
const unassignedCentre = "unassigned"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	startMoveHandler        commands.StartMoveCommandHandler
	commitMoveHandler       commands.CommitMoveCommandHandler
	endMoveHandler          commands.EndMoveCommandHandler
	changeStatusHandler     commands.ChangeStatusCommandHandler
	reorderQueueHandler     commands.ReorderQueueCommandHandler
	createOrderHandler      commands.CreateOrderCommandHandler
	deleteOrderHandler      commands.DeleteOrderCommandHandler
	createWorkCentreHandler commands.CreateWorkCentreCommandHandler
	deleteWorkCentreHandler commands.DeleteWorkCentreCommandHandler

	// Query handlers
	getBoardHandler       queries.GetBoardQueryHandler
	getWorkCentresHandler queries.GetWorkCentresQueryHandler
	getOrdersHandler      queries.GetOrdersQueryHandler

	hub *ws.Hub

	// integrationToken authorizes trusted callers to bypass the lock
	// check on move commits. Empty disables the bypass entirely.
	integrationToken string
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	startMoveHandler commands.StartMoveCommandHandler,
	commitMoveHandler commands.CommitMoveCommandHandler,
	endMoveHandler commands.EndMoveCommandHandler,
	changeStatusHandler commands.ChangeStatusCommandHandler,
	reorderQueueHandler commands.ReorderQueueCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	createWorkCentreHandler commands.CreateWorkCentreCommandHandler,
	deleteWorkCentreHandler commands.DeleteWorkCentreCommandHandler,
	getBoardHandler queries.GetBoardQueryHandler,
	getWorkCentresHandler queries.GetWorkCentresQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	hub *ws.Hub,
	integrationToken string,
) *Server {
	return &Server{
		startMoveHandler:        startMoveHandler,
		commitMoveHandler:       commitMoveHandler,
		endMoveHandler:          endMoveHandler,
		changeStatusHandler:     changeStatusHandler,
		reorderQueueHandler:     reorderQueueHandler,
		createOrderHandler:      createOrderHandler,
		deleteOrderHandler:      deleteOrderHandler,
		createWorkCentreHandler: createWorkCentreHandler,
		deleteWorkCentreHandler: deleteWorkCentreHandler,
		getBoardHandler:         getBoardHandler,
		getWorkCentresHandler:   getWorkCentresHandler,
		getOrdersHandler:        getOrdersHandler,
		hub:                     hub,
		integrationToken:        integrationToken,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/board", s.GetBoard)
	api.GET("/presence", s.GetPresence)

	api.GET("/work-centres", s.GetWorkCentres)
	api.POST("/work-centres", s.CreateWorkCentre)
	api.DELETE("/work-centres/:id", s.DeleteWorkCentre)
	api.PUT("/work-centres/:id/order", s.ReorderQueue)

	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.DELETE("/orders/:id", s.DeleteOrder)
	api.POST("/orders/:id/move/start", s.StartMove)
	api.POST("/orders/:id/move", s.CommitMove)
	api.POST("/orders/:id/move/end", s.EndMove)
	api.POST("/orders/:id/status", s.ChangeStatus)

	e.GET("/ws", s.ServeBoardFeed)
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LockResponse describes a granted or observed edit lock.
type LockResponse struct {
	OrderID        string    `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	UserID         string    `json:"user_id"`
	DisplayName    string    `json:"display_name"`
	AcquiredAt     time.Time `json:"acquired_at"`
	TimeoutSeconds int       `json:"timeout_seconds"`
}

// CommitMoveRequest is the body of POST /orders/:id/move. A null
// work_centre_id targets the unassigned pool; a null position appends.
type CommitMoveRequest struct {
	WorkCentreID *string `json:"work_centre_id"`
	Position     *int    `json:"position"`
	Reason       string  `json:"reason"`
}

// MoveResponse reports a committed move.
type MoveResponse struct {
	OrderID         string  `json:"order_id"`
	WorkCentreID    *string `json:"work_centre_id"`
	Position        int     `json:"position"`
	CapacityWarning bool    `json:"capacity_warning"`
}

// EndMoveRequest is the body of POST /orders/:id/move/end. Completed false
// signals a cancelled drag with no move committed.
type EndMoveRequest struct {
	Completed bool `json:"completed"`
}

// ChangeStatusRequest is the body of POST /orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// ReorderQueueRequest is the body of PUT /work-centres/:id/order. The list
// must name every order currently in the queue exactly once.
type ReorderQueueRequest struct {
	OrderIDs []string `json:"order_ids"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	Number       string  `json:"number"`
	Priority     string  `json:"priority"`
	DueDate      string  `json:"due_date"`
	WorkCentreID *string `json:"work_centre_id"`
}

// CreateWorkCentreRequest is the body of POST /work-centres. Capacity zero
// means unlimited.
type CreateWorkCentreRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// BoardOrder is one order card in board and list responses.
type BoardOrder struct {
	ID           string     `json:"id"`
	Number       string     `json:"number"`
	Position     int        `json:"position"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	DueDate      string     `json:"due_date"`
	WorkCentreID *string    `json:"work_centre_id,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// BoardWorkCentre is one column of the board with its ordered queue.
type BoardWorkCentre struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Capacity int          `json:"capacity"`
	IsActive bool         `json:"is_active"`
	Orders   []BoardOrder `json:"orders"`
}

// BoardResponse is the full board snapshot.
type BoardResponse struct {
	WorkCentres []BoardWorkCentre `json:"work_centres"`
	Unassigned  []BoardOrder      `json:"unassigned"`
}

// WorkCentreResponse is one work centre row with its live queue depth.
type WorkCentreResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Capacity   int    `json:"capacity"`
	IsActive   bool   `json:"is_active"`
	QueueDepth int    `json:"queue_depth"`
}

type identity struct {
	userID      kernel.UUID
	displayName string
}

// resolveIdentity extracts the acting user from request headers. Every
// mutating endpoint requires both headers; auth proper sits in front of this
// service.
func resolveIdentity(ctx echo.Context) (identity, error) {
	rawID := ctx.Request().Header.Get(headerUserID)
	name := ctx.Request().Header.Get(headerUserName)
	if rawID == "" || name == "" {
		return identity{}, errors.New("X-User-Id and X-User-Name headers are required")
	}

	userID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return identity{}, errors.New("X-User-Id is not a valid uuid")
	}

	return identity{userID: userID, displayName: name}, nil
}

func (s *Server) isTrusted(ctx echo.Context) bool {
	token := ctx.Request().Header.Get(headerIntegrationToken)
	return s.integrationToken != "" && token == s.integrationToken
}

// centreIDFromPath parses a work centre path segment; "unassigned" maps to
// nil.
func centreIDFromPath(raw string) (*kernel.UUID, error) {
	if raw == unassignedCentre {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// errorStatus maps application and domain errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, locks.ErrOrderLocked):
		return http.StatusLocked
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderIsTerminal),
		errors.Is(err, commands.ErrOrderNumberTaken),
		errors.Is(err, commands.ErrWorkCentreNameTaken),
		errors.Is(err, commands.ErrWorkCentreNotEmpty),
		errors.Is(err, commands.ErrWorkCentreInactive),
		errors.Is(err, errs.ErrObjectStillReferenced):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrMembershipMismatch),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func businessError(ctx echo.Context, err error) error {
	code := errorStatus(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// GetBoard handles GET /api/v1/board - the full board snapshot.
func (s *Server) GetBoard(ctx echo.Context) error {
	board, err := s.getBoardHandler.Handle(ctx.Request().Context(), queries.NewGetBoardQuery())
	if err != nil {
		return businessError(ctx, err)
	}

	response := BoardResponse{
		WorkCentres: make([]BoardWorkCentre, len(board.WorkCentres)),
		Unassigned:  boardOrders(board.Unassigned),
	}
	for i, centre := range board.WorkCentres {
		response.WorkCentres[i] = BoardWorkCentre{
			ID:       centre.ID.String(),
			Name:     centre.Name,
			Capacity: centre.Capacity,
			IsActive: centre.IsActive,
			Orders:   boardOrders(centre.Orders),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func boardOrders(orders []queries.BoardOrderResponse) []BoardOrder {
	response := make([]BoardOrder, len(orders))
	for i, row := range orders {
		response[i] = BoardOrder{
			ID:          row.ID.String(),
			Number:      row.Number,
			Position:    row.Position,
			Status:      row.Status,
			Priority:    row.Priority,
			DueDate:     row.DueDate.Format("2006-01-02"),
			CompletedAt: row.CompletedAt,
		}
	}
	return response
}

// GetWorkCentres handles GET /api/v1/work-centres - all centres with queue
// depths.
func (s *Server) GetWorkCentres(ctx echo.Context) error {
	centres, err := s.getWorkCentresHandler.Handle(ctx.Request().Context(), queries.NewGetWorkCentresQuery())
	if err != nil {
		return businessError(ctx, err)
	}

	response := make([]WorkCentreResponse, len(centres))
	for i, centre := range centres {
		response[i] = WorkCentreResponse{
			ID:         centre.ID.String(),
			Name:       centre.Name,
			Capacity:   centre.Capacity,
			IsActive:   centre.IsActive,
			QueueDepth: centre.QueueDepth,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrders handles GET /api/v1/orders - lists orders, optionally filtered by
// the status query parameter.
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetOrdersQuery(ctx.QueryParam("status")))
	if err != nil {
		return businessError(ctx, err)
	}

	response := make([]BoardOrder, len(orders))
	for i, row := range orders {
		var centre *string
		if row.WorkCentreID != nil {
			value := row.WorkCentreID.String()
			centre = &value
		}
		response[i] = BoardOrder{
			ID:           row.ID.String(),
			Number:       row.Number,
			Position:     row.Position,
			Status:       row.Status,
			Priority:     row.Priority,
			DueDate:      row.DueDate.Format("2006-01-02"),
			WorkCentreID: centre,
			CompletedAt:  row.CompletedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPresence handles GET /api/v1/presence - who is watching the board.
func (s *Server) GetPresence(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.hub.Presence())
}

// StartMove handles POST /api/v1/orders/:id/move/start - acquires the edit
// lock and announces it.
func (s *Server) StartMove(ctx echo.Context) error {
	actor, err := resolveIdentity(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "order id is not a valid uuid")
	}

	cmd, err := commands.NewStartMoveCommand(orderID, actor.userID, actor.displayName)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	lock, err := s.startMoveHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, LockResponse{
		OrderID:        lock.OrderID.String(),
		OrderNumber:    lock.OrderNumber,
		UserID:         lock.UserID.String(),
		DisplayName:    lock.DisplayName,
		AcquiredAt:     lock.AcquiredAt,
		TimeoutSeconds: int(locks.DefaultTimeout / time.Second),
	})
}

// CommitMove handles POST /api/v1/orders/:id/move - commits the move while
// the caller holds the lock. Trusted integrations may bypass the lock check
// with the integration token.
func (s *Server) CommitMove(ctx echo.Context) error {
	actor, err := resolveIdentity(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "order id is not a valid uuid")
	}

	var request CommitMoveRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var workCentreID *kernel.UUID
	if request.WorkCentreID != nil {
		id, parseErr := kernel.UUIDFromString(*request.WorkCentreID)
		if parseErr != nil {
			return badRequest(ctx, "work_centre_id is not a valid uuid")
		}
		workCentreID = &id
	}

	cmd, err := commands.NewCommitMoveCommand(
		orderID,
		workCentreID,
		request.Position,
		actor.userID,
		actor.displayName,
		request.Reason,
		s.isTrusted(ctx),
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.commitMoveHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err)
	}

	var centre *string
	if result.Order.WorkCentre() != nil {
		value := result.Order.WorkCentre().String()
		centre = &value
	}

	return ctx.JSON(http.StatusOK, MoveResponse{
		OrderID:         result.Order.ID().String(),
		WorkCentreID:    centre,
		Position:        result.Order.Position(),
		CapacityWarning: result.CapacityWarning,
	})
}

// EndMove handles POST /api/v1/orders/:id/move/end - releases the caller's
// lock. Releasing a lock that is absent or held by someone else is a no-op.
func (s *Server) EndMove(ctx echo.Context) error {
	actor, err := resolveIdentity(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "order id is not a valid uuid")
	}

	var request EndMoveRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewEndMoveCommand(orderID, actor.userID, request.Completed)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	released, err := s.endMoveHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]bool{"released": released})
}

// ChangeStatus handles POST /api/v1/orders/:id/status - drives the order
// status state machine.
func (s *Server) ChangeStatus(ctx echo.Context) error {
	actor, err := resolveIdentity(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "order id is not a valid uuid")
	}

	var request ChangeStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	newStatus, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "unknown status: "+request.Status)
	}

	cmd, err := commands.NewChangeStatusCommand(orderID, newStatus, actor.userID, actor.displayName, request.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return businessError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReorderQueue handles PUT /api/v1/work-centres/:id/order - replaces the
// full ordering of one queue. The path id "unassigned" targets the
// unassigned pool.
func (s *Server) ReorderQueue(ctx echo.Context) error {
	actor, err := resolveIdentity(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	workCentreID, err := centreIDFromPath(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "work centre id is not a valid uuid")
	}

	var request ReorderQueueRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderedIDs := make([]kernel.UUID, 0, len(request.OrderIDs))
	for _, raw := range request.OrderIDs {
		id, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return badRequest(ctx, "order id is not a valid uuid: "+raw)
		}
		orderedIDs = append(orderedIDs, id)
	}

	cmd, err := commands.NewReorderQueueCommand(workCentreID, orderedIDs, actor.userID, actor.displayName)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.reorderQueueHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return businessError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateOrder handles POST /api/v1/orders - creates an order, optionally
// appended to a work centre queue.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := resolveIdentity(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	priority, err := order.PriorityFromString(request.Priority)
	if err != nil {
		return badRequest(ctx, "unknown priority: "+request.Priority)
	}

	dueDate, err := time.Parse("2006-01-02", request.DueDate)
	if err != nil {
		return badRequest(ctx, "due_date must be formatted as YYYY-MM-DD")
	}

	var workCentreID *kernel.UUID
	if request.WorkCentreID != nil {
		id, parseErr := kernel.UUIDFromString(*request.WorkCentreID)
		if parseErr != nil {
			return badRequest(ctx, "work_centre_id is not a valid uuid")
		}
		workCentreID = &id
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		request.Number,
		priority,
		dueDate,
		workCentreID,
		actor.userID,
		actor.displayName,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// DeleteOrder handles DELETE /api/v1/orders/:id. Deleting an order locked by
// another user is refused.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	actor, err := resolveIdentity(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "order id is not a valid uuid")
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, actor.userID, actor.displayName)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return businessError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateWorkCentre handles POST /api/v1/work-centres.
func (s *Server) CreateWorkCentre(ctx echo.Context) error {
	if _, err := resolveIdentity(ctx); err != nil {
		return badRequest(ctx, err.Error())
	}

	var request CreateWorkCentreRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	workCentreID := kernel.NewUUID()
	cmd, err := commands.NewCreateWorkCentreCommand(workCentreID, request.Name, request.Capacity)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createWorkCentreHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": workCentreID.String()})
}

// DeleteWorkCentre handles DELETE /api/v1/work-centres/:id. A centre with
// queued orders cannot be deleted.
func (s *Server) DeleteWorkCentre(ctx echo.Context) error {
	if _, err := resolveIdentity(ctx); err != nil {
		return badRequest(ctx, err.Error())
	}

	workCentreID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "work centre id is not a valid uuid")
	}

	cmd, err := commands.NewDeleteWorkCentreCommand(workCentreID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.deleteWorkCentreHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return businessError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ServeBoardFeed handles GET /ws - upgrades to the live board feed. Identity
// comes from headers or, for browser websocket clients that cannot set
// headers, from query parameters.
func (s *Server) ServeBoardFeed(ctx echo.Context) error {
	rawID := ctx.Request().Header.Get(headerUserID)
	name := ctx.Request().Header.Get(headerUserName)
	if rawID == "" {
		rawID = ctx.QueryParam("user_id")
	}
	if name == "" {
		name = ctx.QueryParam("user_name")
	}
	if rawID == "" || name == "" {
		return badRequest(ctx, "viewer identity is required")
	}

	userID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return badRequest(ctx, "user id is not a valid uuid")
	}

	return ws.Serve(s.hub, ctx.Response(), ctx.Request(), userID, name)
}
