package commands_test

import (
	"testing"

	"planboard/internal/core/application/usecases/commands"
	"planboard/internal/core/domain/model/kernel"
	"planboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateWorkCentreCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	workCentreID := kernel.NewUUID()

	cmd, err := commands.NewCreateWorkCentreCommand(workCentreID, "Milling", 5)
	require.NoError(t, err)

	wcRepo := new(MockWorkCentreRepository)
	uow := new(MockWorkCentreUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("WorkCentreRepository").Return(wcRepo)

	wcRepo.On("GetByName", ctx, "Milling").
		Return(nil, errs.NewObjectNotFoundError("workCentre", "Milling")).Once()
	wcRepo.On("Add", ctx, mock.AnythingOfType("*workcentre.WorkCentre")).Return(nil).Once()

	factory := new(MockWorkCentreUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("BroadcastToRoom", "work_centre_created", mock.Anything).Once()

	h := commands.NewCreateWorkCentreCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	wcRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateWorkCentreCommandHandler_Handle_DuplicateName(t *testing.T) {
	ctx := t.Context()
	existingID := kernel.NewUUID()

	cmd, err := commands.NewCreateWorkCentreCommand(kernel.NewUUID(), "Welding", 5)
	require.NoError(t, err)

	wcRepo := new(MockWorkCentreRepository)
	uow := new(MockWorkCentreUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("WorkCentreRepository").Return(wcRepo)

	// a centre named "Welding" is already on the board
	wcRepo.On("GetByName", ctx, "Welding").Return(activeCentre(t, existingID, 0), nil).Once()

	factory := new(MockWorkCentreUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewCreateWorkCentreCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrWorkCentreNameTaken)

	wcRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "BroadcastToRoom", mock.Anything, mock.Anything)
}
