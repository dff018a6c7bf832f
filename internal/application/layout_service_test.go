package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/layout"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/venue"
)

// === Test helper ===
type layoutDeps struct {
	seatRepo   *MockSeatRepository
	tableRepo  *MockTableRepository
	configRepo *MockConfigurationRepository
	service    *LayoutService
}

func newLayoutDeps() *layoutDeps {
	seatRepo := new(MockSeatRepository)
	tableRepo := new(MockTableRepository)
	configRepo := new(MockConfigurationRepository)

	service := NewLayoutService(seatRepo, tableRepo, configRepo)

	return &layoutDeps{
		seatRepo:   seatRepo,
		tableRepo:  tableRepo,
		configRepo: configRepo,
		service:    service,
	}
}

// === Tests ===

func TestLayoutService_CreateSeat(t *testing.T) {
	t.Run("作成成功", func(t *testing.T) {
		deps := newLayoutDeps()
		ctx := context.Background()

		deps.configRepo.On("GetByID", ctx, "config-1").Return(testConfiguration(false), nil)
		deps.seatRepo.On("GetByID", ctx, "seat-a").
			Return(&layout.Seat{ID: "seat-a", VenueConfigID: "config-1", Name: "A-1"}, nil)
		deps.seatRepo.On("Create", ctx, mock.AnythingOfType("*layout.Seat")).Return(nil)

		result, err := deps.service.CreateSeat(ctx, CreateSeatInput{
			VenueConfigID: "config-1",
			Name:          "A-2",
			SeatClass:     "GA",
			NextTo:        []string{"seat-a"},
		})

		require.NoError(t, err)
		assert.Equal(t, "A-2", result.Name)
		assert.Equal(t, []string{"seat-a"}, result.NextTo)
		deps.seatRepo.AssertExpectations(t)
	})

	t.Run("利用可能な構成は編集できない", func(t *testing.T) {
		deps := newLayoutDeps()
		ctx := context.Background()

		deps.configRepo.On("GetByID", ctx, "config-1").Return(testConfiguration(true), nil)

		result, err := deps.service.CreateSeat(ctx, CreateSeatInput{
			VenueConfigID: "config-1",
			Name:          "A-1",
			SeatClass:     "GA",
		})

		assert.ErrorIs(t, err, venue.ErrConfigurationStillAvailable)
		assert.Nil(t, result)
		deps.seatRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("別構成の座席への隣接指定は拒否", func(t *testing.T) {
		deps := newLayoutDeps()
		ctx := context.Background()

		deps.configRepo.On("GetByID", ctx, "config-1").Return(testConfiguration(false), nil)
		deps.seatRepo.On("GetByID", ctx, "seat-x").
			Return(&layout.Seat{ID: "seat-x", VenueConfigID: "config-other", Name: "Z-1"}, nil)

		result, err := deps.service.CreateSeat(ctx, CreateSeatInput{
			VenueConfigID: "config-1",
			Name:          "A-1",
			SeatClass:     "GA",
			NextTo:        []string{"seat-x"},
		})

		assert.ErrorIs(t, err, layout.ErrSeatNotInConfiguration)
		assert.Nil(t, result)
	})

	t.Run("別構成のテーブル指定は拒否", func(t *testing.T) {
		deps := newLayoutDeps()
		ctx := context.Background()

		tableID := "table-x"
		deps.configRepo.On("GetByID", ctx, "config-1").Return(testConfiguration(false), nil)
		deps.tableRepo.On("GetByID", ctx, "table-x").
			Return(&layout.Table{ID: "table-x", VenueConfigID: "config-other", MinSeats: 2, MaxSeats: 4}, nil)

		result, err := deps.service.CreateSeat(ctx, CreateSeatInput{
			VenueConfigID: "config-1",
			Name:          "A-1",
			SeatClass:     "GA",
			TableID:       &tableID,
		})

		assert.ErrorIs(t, err, layout.ErrTableNotInConfiguration)
		assert.Nil(t, result)
	})
}

func TestLayoutService_UpdateSeat(t *testing.T) {
	t.Run("更新成功", func(t *testing.T) {
		deps := newLayoutDeps()
		ctx := context.Background()

		seat := &layout.Seat{ID: "seat-1", VenueConfigID: "config-1", Name: "A-1", SeatClass: "GA"}
		deps.seatRepo.On("GetByID", ctx, "seat-1").Return(seat, nil)
		deps.configRepo.On("GetByID", ctx, "config-1").Return(testConfiguration(false), nil)
		deps.seatRepo.On("Update", ctx, seat).Return(nil)

		result, err := deps.service.UpdateSeat(ctx, UpdateSeatInput{
			ID:        "seat-1",
			Name:      "A-1改",
			SeatClass: "VIP",
		})

		require.NoError(t, err)
		assert.Equal(t, "A-1改", result.Name)
		assert.Equal(t, "VIP", result.SeatClass)
	})

	t.Run("自分自身への隣接指定は拒否", func(t *testing.T) {
		deps := newLayoutDeps()
		ctx := context.Background()

		seat := &layout.Seat{ID: "seat-1", VenueConfigID: "config-1", Name: "A-1", SeatClass: "GA"}
		deps.seatRepo.On("GetByID", ctx, "seat-1").Return(seat, nil)
		deps.configRepo.On("GetByID", ctx, "config-1").Return(testConfiguration(false), nil)

		result, err := deps.service.UpdateSeat(ctx, UpdateSeatInput{
			ID:        "seat-1",
			Name:      "A-1",
			SeatClass: "GA",
			NextTo:    []string{"seat-1"},
		})

		assert.ErrorIs(t, err, layout.ErrSeatNotInConfiguration)
		assert.Nil(t, result)
		deps.seatRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestLayoutService_DeleteSeat(t *testing.T) {
	deps := newLayoutDeps()
	ctx := context.Background()

	seat := &layout.Seat{ID: "seat-1", VenueConfigID: "config-1", Name: "A-1"}
	deps.seatRepo.On("GetByID", ctx, "seat-1").Return(seat, nil)
	deps.configRepo.On("GetByID", ctx, "config-1").Return(testConfiguration(false), nil)
	deps.seatRepo.On("Delete", ctx, "seat-1").Return(nil)

	err := deps.service.DeleteSeat(ctx, "seat-1")

	require.NoError(t, err)
	deps.seatRepo.AssertExpectations(t)
}

func TestLayoutService_CreateTable(t *testing.T) {
	t.Run("作成成功", func(t *testing.T) {
		deps := newLayoutDeps()
		ctx := context.Background()

		deps.configRepo.On("GetByID", ctx, "config-1").Return(testConfiguration(false), nil)
		deps.tableRepo.On("Create", ctx, mock.AnythingOfType("*layout.Table")).Return(nil)

		result, err := deps.service.CreateTable(ctx, CreateTableInput{
			VenueConfigID: "config-1",
			MinSeats:      2,
			MaxSeats:      6,
		})

		require.NoError(t, err)
		assert.Equal(t, 2, result.MinSeats)
		assert.Equal(t, 6, result.MaxSeats)
	})

	t.Run("最小席数が最大席数を超える場合は拒否", func(t *testing.T) {
		deps := newLayoutDeps()
		ctx := context.Background()

		deps.configRepo.On("GetByID", ctx, "config-1").Return(testConfiguration(false), nil)

		result, err := deps.service.CreateTable(ctx, CreateTableInput{
			VenueConfigID: "config-1",
			MinSeats:      8,
			MaxSeats:      4,
		})

		require.Error(t, err)
		assert.Nil(t, result)
		deps.tableRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLayoutService_DeleteTable(t *testing.T) {
	t.Run("削除成功", func(t *testing.T) {
		deps := newLayoutDeps()
		ctx := context.Background()

		table := &layout.Table{ID: "table-1", VenueConfigID: "config-1", MinSeats: 2, MaxSeats: 4}
		deps.tableRepo.On("GetByID", ctx, "table-1").Return(table, nil)
		deps.configRepo.On("GetByID", ctx, "config-1").Return(testConfiguration(false), nil)
		deps.seatRepo.On("GetByVenueConfigID", ctx, "config-1").
			Return([]*layout.Seat{{ID: "seat-1", VenueConfigID: "config-1", Name: "A-1"}}, nil)
		deps.tableRepo.On("Delete", ctx, "table-1").Return(nil)

		err := deps.service.DeleteTable(ctx, "table-1")

		require.NoError(t, err)
		deps.tableRepo.AssertExpectations(t)
	})

	t.Run("座席が参照している間は削除できない", func(t *testing.T) {
		deps := newLayoutDeps()
		ctx := context.Background()

		tableID := "table-1"
		table := &layout.Table{ID: "table-1", VenueConfigID: "config-1", MinSeats: 2, MaxSeats: 4}
		deps.tableRepo.On("GetByID", ctx, "table-1").Return(table, nil)
		deps.configRepo.On("GetByID", ctx, "config-1").Return(testConfiguration(false), nil)
		deps.seatRepo.On("GetByVenueConfigID", ctx, "config-1").
			Return([]*layout.Seat{{ID: "seat-1", VenueConfigID: "config-1", Name: "A-1", TableID: &tableID}}, nil)

		err := deps.service.DeleteTable(ctx, "table-1")

		assert.ErrorIs(t, err, layout.ErrTableInUse)
		deps.tableRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
