package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sanosuguru/go-reserved-seating/internal/application"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/event"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/layout"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/order"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/venue"
)

// VenueServiceInterface は会場サービスのインターフェース
type VenueServiceInterface interface {
	CreateVenue(ctx context.Context, input application.CreateVenueInput) (*venue.Venue, error)
	GetVenue(ctx context.Context, id string) (*venue.Venue, error)
	GetAllVenuesByOwner(ctx context.Context, ownerID string) ([]*venue.Venue, error)
	UpdateVenue(ctx context.Context, input application.UpdateVenueInput) (*venue.Venue, error)
	DeleteVenue(ctx context.Context, id string) error
	CreateVenueConfiguration(ctx context.Context, input application.CreateVenueConfigurationInput) (*venue.Configuration, error)
	GetVenueConfiguration(ctx context.Context, id string) (*venue.Configuration, error)
	GetVenueConfigurations(ctx context.Context, venueID string) ([]*venue.Configuration, error)
	UpdateVenueConfiguration(ctx context.Context, input application.UpdateVenueConfigurationInput) (*venue.Configuration, error)
	UpdateVenueConfigurationAvailability(ctx context.Context, id string, available bool) (*venue.Configuration, error)
	DeleteVenueConfiguration(ctx context.Context, id string) error
}

// LayoutServiceInterface はレイアウトサービスのインターフェース
type LayoutServiceInterface interface {
	CreateSeat(ctx context.Context, input application.CreateSeatInput) (*layout.Seat, error)
	GetSeat(ctx context.Context, id string) (*layout.Seat, error)
	GetSeatsForConfiguration(ctx context.Context, venueConfigID string) ([]*layout.Seat, error)
	UpdateSeat(ctx context.Context, input application.UpdateSeatInput) (*layout.Seat, error)
	DeleteSeat(ctx context.Context, id string) error
	CreateTable(ctx context.Context, input application.CreateTableInput) (*layout.Table, error)
	GetTable(ctx context.Context, id string) (*layout.Table, error)
	GetTablesForConfiguration(ctx context.Context, venueConfigID string) ([]*layout.Table, error)
	UpdateTable(ctx context.Context, input application.UpdateTableInput) (*layout.Table, error)
	DeleteTable(ctx context.Context, id string) error
}

// EventServiceInterface はイベントサービスのインターフェース
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, input application.CreateEventInput) (*event.Event, error)
	GetEvent(ctx context.Context, id string) (*event.Event, error)
	GetAllEventsOnSale(ctx context.Context, page, perPage int) ([]*event.Event, error)
	UpdateEvent(ctx context.Context, input application.UpdateEventInput) (*event.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	GetSeatsAndTablesForEvent(ctx context.Context, eventID string, page, perPage int) (*application.EventLayout, error)
	CountFreeSeats(ctx context.Context, eventID string) (int, error)
}

// OrderServiceInterface は注文サービスのインターフェース
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, input application.CreateOrderInput) (*order.Order, error)
	GetOrder(ctx context.Context, orderID string) (*order.Order, error)
	GetOrderSummary(ctx context.Context, orderID string) (*application.OrderSummary, error)
	GetOrdersForUser(ctx context.Context, userID string, page, perPage int) ([]*order.Order, error)
	FindAbandonedOrders(ctx context.Context, page, perPage int) ([]*order.Order, error)
	ContinueOrder(ctx context.Context, orderID string, newExpiry time.Time) (*order.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
}

// HoldServiceInterface は座席の仮押さえ・確定・解放サービスのインターフェース
type HoldServiceInterface interface {
	AddSeatToOrder(ctx context.Context, orderID, seatID string) error
	CompleteOrder(ctx context.Context, orderID string) (*order.Order, error)
	CancelReservation(ctx context.Context, orderID, seatID string) error
	CancelEvent(ctx context.Context, eventID string) error
}

// AutoSelectServiceInterface は自動座席選択サービスのインターフェース
type AutoSelectServiceInterface interface {
	AutoSelect(ctx context.Context, input application.AutoSelectInput) ([]string, error)
}

// rawJSON は空の場合に省略されるレスポンス用ヘルパー
func rawJSON(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
