package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/event"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/inventory"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/layout"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/order"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/transaction"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/venue"
)

// === Mock implementations ===

// MockTxManager implements transaction.Manager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(transaction.Tx), args.Error(1)
}

// MockTx implements transaction.Tx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// newMockTxManager はコミット・ロールバックを許可するトランザクションを返す
func newMockTxManager() (*MockTxManager, *MockTx) {
	tx := new(MockTx)
	tx.On("Commit").Return(nil).Maybe()
	tx.On("Rollback").Return(nil).Maybe()
	tm := new(MockTxManager)
	tm.On("Begin", mock.Anything).Return(tx, nil).Maybe()
	return tm, tx
}

// MockOrderRepository implements order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*order.Order, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAbandoned(ctx context.Context, limit, offset int) ([]*order.Order, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetExpiredActive(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetReleasableByEventID(ctx context.Context, eventID string) ([]*order.Order, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, tx transaction.Tx, o *order.Order) error {
	args := m.Called(ctx, tx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) ExtendExpiry(ctx context.Context, tx transaction.Tx, id string, newExpiry, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, id, newExpiry, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) MarkAbandoned(ctx context.Context, tx transaction.Tx, id string, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, id, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) AddSeat(ctx context.Context, tx transaction.Tx, orderID, seatID string) error {
	args := m.Called(ctx, tx, orderID, seatID)
	return args.Error(0)
}

func (m *MockOrderRepository) RemoveSeat(ctx context.Context, tx transaction.Tx, orderID, seatID string) error {
	args := m.Called(ctx, tx, orderID, seatID)
	return args.Error(0)
}

func (m *MockOrderRepository) RemoveAllSeats(ctx context.Context, tx transaction.Tx, orderID string) error {
	args := m.Called(ctx, tx, orderID)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSeatStateRepository implements inventory.Repository
type MockSeatStateRepository struct {
	mock.Mock
}

func (m *MockSeatStateRepository) InitializeForEvent(ctx context.Context, tx transaction.Tx, eventID string, seatIDs []string) error {
	args := m.Called(ctx, tx, eventID, seatIDs)
	return args.Error(0)
}

func (m *MockSeatStateRepository) Get(ctx context.Context, eventID, seatID string) (*inventory.SeatState, error) {
	args := m.Called(ctx, eventID, seatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.SeatState), args.Error(1)
}

func (m *MockSeatStateRepository) GetByEventID(ctx context.Context, eventID string) ([]*inventory.SeatState, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.SeatState), args.Error(1)
}

func (m *MockSeatStateRepository) GetFreeSeatIDs(ctx context.Context, eventID string) ([]string, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSeatStateRepository) CountFree(ctx context.Context, eventID string) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockSeatStateRepository) Hold(ctx context.Context, tx transaction.Tx, eventID, seatID, orderID string) error {
	args := m.Called(ctx, tx, eventID, seatID, orderID)
	return args.Error(0)
}

func (m *MockSeatStateRepository) Reserve(ctx context.Context, tx transaction.Tx, eventID string, seatIDs []string, orderID string) error {
	args := m.Called(ctx, tx, eventID, seatIDs, orderID)
	return args.Error(0)
}

func (m *MockSeatStateRepository) Release(ctx context.Context, tx transaction.Tx, eventID, seatID, orderID string) error {
	args := m.Called(ctx, tx, eventID, seatID, orderID)
	return args.Error(0)
}

func (m *MockSeatStateRepository) ReleaseAll(ctx context.Context, tx transaction.Tx, eventID string, seatIDs []string, orderID string) error {
	args := m.Called(ctx, tx, eventID, seatIDs, orderID)
	return args.Error(0)
}

func (m *MockSeatStateRepository) DeleteForEvent(ctx context.Context, tx transaction.Tx, eventID string) error {
	args := m.Called(ctx, tx, eventID)
	return args.Error(0)
}

// MockSeatRepository implements layout.SeatRepository
type MockSeatRepository struct {
	mock.Mock
}

func (m *MockSeatRepository) Create(ctx context.Context, s *layout.Seat) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSeatRepository) GetByID(ctx context.Context, id string) (*layout.Seat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*layout.Seat), args.Error(1)
}

func (m *MockSeatRepository) GetByVenueConfigID(ctx context.Context, venueConfigID string) ([]*layout.Seat, error) {
	args := m.Called(ctx, venueConfigID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*layout.Seat), args.Error(1)
}

func (m *MockSeatRepository) GetByVenueConfigIDPaged(ctx context.Context, venueConfigID string, limit, offset int) ([]*layout.Seat, error) {
	args := m.Called(ctx, venueConfigID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*layout.Seat), args.Error(1)
}

func (m *MockSeatRepository) Update(ctx context.Context, s *layout.Seat) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSeatRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTableRepository implements layout.TableRepository
type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) Create(ctx context.Context, t *layout.Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTableRepository) GetByID(ctx context.Context, id string) (*layout.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*layout.Table), args.Error(1)
}

func (m *MockTableRepository) GetByVenueConfigID(ctx context.Context, venueConfigID string) ([]*layout.Table, error) {
	args := m.Called(ctx, venueConfigID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*layout.Table), args.Error(1)
}

func (m *MockTableRepository) Update(ctx context.Context, t *layout.Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTableRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventRepository implements event.Repository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, tx transaction.Tx, e *event.Event) error {
	args := m.Called(ctx, tx, e)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*event.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Event), args.Error(1)
}

func (m *MockEventRepository) ListOnSale(ctx context.Context, limit, offset int) ([]*event.Event, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*event.Event), args.Error(1)
}

func (m *MockEventRepository) CountByVenueConfigID(ctx context.Context, venueConfigID string) (int, error) {
	args := m.Called(ctx, venueConfigID)
	return args.Int(0), args.Error(1)
}

func (m *MockEventRepository) CountOnSaleByVenueConfigID(ctx context.Context, venueConfigID string) (int, error) {
	args := m.Called(ctx, venueConfigID)
	return args.Int(0), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, e *event.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, tx transaction.Tx, id string) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

// MockVenueRepository implements venue.Repository
type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) Create(ctx context.Context, v *venue.Venue) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVenueRepository) GetByID(ctx context.Context, id string) (*venue.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Venue), args.Error(1)
}

func (m *MockVenueRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*venue.Venue, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*venue.Venue), args.Error(1)
}

func (m *MockVenueRepository) Update(ctx context.Context, v *venue.Venue) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVenueRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockConfigurationRepository implements venue.ConfigurationRepository
type MockConfigurationRepository struct {
	mock.Mock
}

func (m *MockConfigurationRepository) Create(ctx context.Context, c *venue.Configuration) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConfigurationRepository) GetByID(ctx context.Context, id string) (*venue.Configuration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Configuration), args.Error(1)
}

func (m *MockConfigurationRepository) GetByVenueID(ctx context.Context, venueID string) ([]*venue.Configuration, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*venue.Configuration), args.Error(1)
}

func (m *MockConfigurationRepository) CountByVenueID(ctx context.Context, venueID string) (int, error) {
	args := m.Called(ctx, venueID)
	return args.Int(0), args.Error(1)
}

func (m *MockConfigurationRepository) Update(ctx context.Context, c *venue.Configuration) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConfigurationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
