package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"planboard/internal/adapters/out/postgres/orderrepo"
	"planboard/internal/adapters/out/postgres/workcentrerepo"
	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/core/domain/model/order"
	"planboard/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite exercises the repository against a real
// PostgreSQL container, with particular attention to the batch position write
// that keeps queues contiguous.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&workcentrerepo.WorkCentreDTO{}, &orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, work_centres").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// newCentreID inserts a work centre row so the foreign key on orders accepts
// references to it, and returns its identifier.
func (suite *OrderRepositoryIntegrationTestSuite) newCentreID() kernel.UUID {
	id := kernel.NewUUID()
	dto := workcentrerepo.WorkCentreDTO{
		ID:       id.Bytes(),
		Name:     "Centre " + id.String(),
		Capacity: 0,
		IsActive: true,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(number string, workCentreID *kernel.UUID, position int) *order.Order {
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	o, err := order.NewOrder(kernel.NewUUID(), number, order.PriorityNormal, due)
	suite.Require().NoError(err)
	suite.Require().NoError(o.MoveTo(workCentreID, position))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) seedQueue(workCentreID *kernel.UUID, numbers ...string) []*order.Order {
	ctx := context.Background()
	orders := make([]*order.Order, 0, len(numbers))
	for i, number := range numbers {
		o := suite.newOrder(number, workCentreID, i)
		suite.Require().NoError(suite.repository.Add(ctx, o))
		orders = append(orders, o)
	}
	return orders
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	workCentreID := suite.newCentreID()

	added := suite.newOrder("MO-001", &workCentreID, 0)
	suite.Require().NoError(suite.repository.Add(ctx, added))

	loaded, err := suite.repository.Get(ctx, added.ID())
	suite.Require().NoError(err)

	suite.Equal("MO-001", loaded.Number())
	suite.Equal(order.NotStarted, loaded.Status())
	suite.Equal(order.PriorityNormal, loaded.Priority())
	suite.Require().NotNil(loaded.WorkCentre())
	suite.True(loaded.WorkCentre().IsEqual(workCentreID))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber() {
	ctx := context.Background()
	suite.seedQueue(nil, "MO-001", "MO-002")

	loaded, err := suite.repository.GetByNumber(ctx, "MO-002")
	suite.Require().NoError(err)
	suite.Equal("MO-002", loaded.Number())

	_, err = suite.repository.GetByNumber(ctx, "MO-404")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsClearedWorkCentre() {
	ctx := context.Background()
	workCentreID := suite.newCentreID()

	o := suite.seedQueue(&workCentreID, "MO-001")[0]

	// back to the unassigned pool at position 0: both are zero values and
	// must still be written
	suite.Require().NoError(o.MoveTo(nil, 0))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Nil(loaded.WorkCentre())
	suite.Equal(0, loaded.Position())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetQueue_SortedByPosition() {
	ctx := context.Background()
	workCentreID := suite.newCentreID()
	suite.seedQueue(&workCentreID, "MO-001", "MO-002", "MO-003")

	queue, err := suite.repository.GetQueue(ctx, &workCentreID)
	suite.Require().NoError(err)
	suite.Require().Len(queue, 3)

	for i, queued := range queue {
		suite.Equal(i, queued.Position())
	}
	suite.Equal("MO-001", queue[0].Number())
	suite.Equal("MO-003", queue[2].Number())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetQueue_UnassignedPool() {
	ctx := context.Background()
	workCentreID := suite.newCentreID()
	suite.seedQueue(&workCentreID, "MO-001")
	suite.seedQueue(nil, "MO-100", "MO-101")

	pool, err := suite.repository.GetQueue(ctx, nil)
	suite.Require().NoError(err)
	suite.Require().Len(pool, 2)
	suite.Equal("MO-100", pool[0].Number())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSaveQueuePositions_Renumbers() {
	ctx := context.Background()
	workCentreID := suite.newCentreID()
	orders := suite.seedQueue(&workCentreID, "MO-001", "MO-002", "MO-003")

	// reverse the queue
	reversed := []kernel.UUID{orders[2].ID(), orders[1].ID(), orders[0].ID()}
	suite.Require().NoError(suite.repository.SaveQueuePositions(ctx, &workCentreID, reversed))

	queue, err := suite.repository.GetQueue(ctx, &workCentreID)
	suite.Require().NoError(err)
	suite.Require().Len(queue, 3)

	suite.Equal("MO-003", queue[0].Number())
	suite.Equal("MO-002", queue[1].Number())
	suite.Equal("MO-001", queue[2].Number())
	for i, queued := range queue {
		suite.Equal(i, queued.Position())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSaveQueuePositions_MovesMembership() {
	ctx := context.Background()
	sourceID := suite.newCentreID()
	destID := suite.newCentreID()

	sourceOrders := suite.seedQueue(&sourceID, "MO-001", "MO-002")
	destOrders := suite.seedQueue(&destID, "MO-100")

	// move MO-001 to the destination queue's end: renumber both queues
	moving := sourceOrders[0]
	suite.Require().NoError(suite.repository.SaveQueuePositions(ctx, &sourceID, []kernel.UUID{sourceOrders[1].ID()}))
	suite.Require().NoError(suite.repository.SaveQueuePositions(ctx, &destID, []kernel.UUID{destOrders[0].ID(), moving.ID()}))

	source, err := suite.repository.GetQueue(ctx, &sourceID)
	suite.Require().NoError(err)
	suite.Require().Len(source, 1)
	suite.Equal("MO-002", source[0].Number())
	suite.Equal(0, source[0].Position())

	dest, err := suite.repository.GetQueue(ctx, &destID)
	suite.Require().NoError(err)
	suite.Require().Len(dest, 2)
	suite.Equal("MO-100", dest[0].Number())
	suite.Equal("MO-001", dest[1].Number())
	suite.Equal(1, dest[1].Position())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSaveQueuePositions_UnknownIDFails() {
	ctx := context.Background()
	workCentreID := suite.newCentreID()
	orders := suite.seedQueue(&workCentreID, "MO-001")

	err := suite.repository.SaveQueuePositions(ctx, &workCentreID, []kernel.UUID{orders[0].ID(), kernel.NewUUID()})
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountInQueue() {
	ctx := context.Background()
	workCentreID := suite.newCentreID()
	suite.seedQueue(&workCentreID, "MO-001", "MO-002")
	suite.seedQueue(nil, "MO-100")

	count, err := suite.repository.CountInQueue(ctx, &workCentreID)
	suite.Require().NoError(err)
	suite.Equal(2, count)

	count, err = suite.repository.CountInQueue(ctx, nil)
	suite.Require().NoError(err)
	suite.Equal(1, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestExistsInWorkCentre() {
	ctx := context.Background()
	occupied := suite.newCentreID()
	empty := kernel.NewUUID()
	suite.seedQueue(&occupied, "MO-001")

	exists, err := suite.repository.ExistsInWorkCentre(ctx, occupied)
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.repository.ExistsInWorkCentre(ctx, empty)
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	orders := suite.seedQueue(nil, "MO-001")

	suite.Require().NoError(suite.repository.Delete(ctx, orders[0].ID()))

	_, err := suite.repository.Get(ctx, orders[0].ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	suite.ErrorIs(suite.repository.Delete(ctx, orders[0].ID()), errs.ErrObjectNotFound)
}

// Deleting a work centre while an order still references it must fail at the
// database even when the caller's emptiness check passed; the constraint is
// the last line against a concurrent move into the queue.
func (suite *OrderRepositoryIntegrationTestSuite) TestWorkCentreDeleteBlockedWhileReferenced() {
	ctx := context.Background()
	centreID := suite.newCentreID()
	orders := suite.seedQueue(&centreID, "MO-001")

	centreRepo := workcentrerepo.NewGormWorkCentreRepository(suite.db, suite.tracker)

	err := centreRepo.Delete(ctx, centreID)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectStillReferenced)

	// the centre survives the rejected delete
	_, err = centreRepo.Get(ctx, centreID)
	suite.Require().NoError(err)

	// draining the queue makes the delete acceptable
	suite.Require().NoError(suite.repository.Delete(ctx, orders[0].ID()))
	suite.Require().NoError(centreRepo.Delete(ctx, centreID))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetOverdueCandidates() {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	late, err := order.NewOrder(kernel.NewUUID(), "MO-001", order.PriorityNormal,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Require().NoError(late.ChangeStatus(order.InProgress))
	suite.Require().NoError(suite.repository.Add(ctx, late))

	// past due but not started: not a candidate
	idle, err := order.NewOrder(kernel.NewUUID(), "MO-002", order.PriorityNormal,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, idle))

	// in progress but not yet due
	onTime, err := order.NewOrder(kernel.NewUUID(), "MO-003", order.PriorityNormal,
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Require().NoError(onTime.ChangeStatus(order.InProgress))
	suite.Require().NoError(suite.repository.Add(ctx, onTime))

	candidates, err := suite.repository.GetOverdueCandidates(ctx, now)
	suite.Require().NoError(err)
	suite.Require().Len(candidates, 1)
	suite.Equal("MO-001", candidates[0].Number())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
