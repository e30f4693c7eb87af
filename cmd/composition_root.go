package cmd

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"planboard/internal/adapters/in/ws"
	"planboard/internal/adapters/out/postgres"
	"planboard/internal/core/application/usecases/commands"
	"planboard/internal/core/application/usecases/queries"
	"planboard/internal/core/ports"
	"planboard/internal/jobs"
	"planboard/internal/locks"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	lockTable  *locks.Table
	hub        *ws.Hub
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	// Lock expiry must reach viewers, and the hub's join snapshot reads the
	// lock table; the callback closes over the hub variable to break the
	// construction cycle. No lock can expire before both exist.
	var hub *ws.Hub
	lockTable := locks.NewTable(locks.WithExpiryCallback(func(expired locks.Lock) {
		hub.OrderUnlocked(expired.OrderID, expired.OrderNumber)
	}))
	hub = ws.NewHub(lockTable, logger)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		lockTable:  lockTable,
		hub:        hub,
		logger:     logger,
	}
}

// Hub returns the websocket hub; the caller owns its Run lifecycle.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

// LockTable returns the in-memory edit lock table.
func (c *CompositionRoot) LockTable() *locks.Table {
	return c.lockTable
}

// EventPublisher returns the fan-out boundary all handlers publish through.
func (c *CompositionRoot) EventPublisher() ports.EventPublisher {
	return c.hub
}

func (c *CompositionRoot) CreateStartMoveCommandHandler() commands.StartMoveCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartMoveCommandHandler(f, c.lockTable, c.hub)
}

func (c *CompositionRoot) CreateCommitMoveCommandHandler() commands.CommitMoveCommandHandler {
	var f commands.BoardUoWFactory = FuncBoardUoWFactory(func() commands.BoardUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCommitMoveCommandHandler(f, c.lockTable, c.hub)
}

func (c *CompositionRoot) CreateEndMoveCommandHandler() commands.EndMoveCommandHandler {
	return commands.NewEndMoveCommandHandler(c.lockTable, c.hub)
}

func (c *CompositionRoot) CreateChangeStatusCommandHandler() commands.ChangeStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeStatusCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateReorderQueueCommandHandler() commands.ReorderQueueCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReorderQueueCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.BoardUoWFactory = FuncBoardUoWFactory(func() commands.BoardUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f, c.lockTable, c.hub)
}

func (c *CompositionRoot) CreateCreateWorkCentreCommandHandler() commands.CreateWorkCentreCommandHandler {
	var f commands.WorkCentreUoWFactory = FuncWorkCentreUoWFactory(func() commands.WorkCentreUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateWorkCentreCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateDeleteWorkCentreCommandHandler() commands.DeleteWorkCentreCommandHandler {
	var f commands.WorkCentreUoWFactory = FuncWorkCentreUoWFactory(func() commands.WorkCentreUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteWorkCentreCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateMarkOverdueOrdersCommandHandler() commands.MarkOverdueOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkOverdueOrdersCommandHandler(f, c.hub, time.Now)
}

func (c *CompositionRoot) CreateGetBoardQueryHandler() queries.GetBoardQueryHandler {
	return queries.NewGetBoardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWorkCentresQueryHandler() queries.GetWorkCentresQueryHandler {
	return queries.NewGetWorkCentresQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.lockTable, c.CreateMarkOverdueOrdersCommandHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncWorkCentreUoWFactory func() commands.WorkCentreUoW

func (f FuncWorkCentreUoWFactory) Create() commands.WorkCentreUoW {
	return f()
}

type FuncBoardUoWFactory func() commands.BoardUoW

func (f FuncBoardUoWFactory) Create() commands.BoardUoW {
	return f()
}
