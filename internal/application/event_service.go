package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/event"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/inventory"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/layout"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/transaction"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/venue"
	redisinfra "github.com/sanosuguru/go-reserved-seating/internal/infrastructure/redis"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/logger"
)

// 空き座席数キャッシュの有効期間
const freeCountCacheTTL = 10 * time.Second

// EventService はイベントのライフサイクルと座席一覧の提供を担うサービス
type EventService struct {
	txManager  transaction.Manager
	eventRepo  event.Repository
	configRepo venue.ConfigurationRepository
	seatRepo   layout.SeatRepository
	tableRepo  layout.TableRepository
	stateRepo  inventory.Repository
	cache      *redisinfra.AvailabilityCache
}

func NewEventService(
	tm transaction.Manager,
	er event.Repository,
	cr venue.ConfigurationRepository,
	sr layout.SeatRepository,
	tr layout.TableRepository,
	ir inventory.Repository,
	cache *redisinfra.AvailabilityCache,
) *EventService {
	return &EventService{
		txManager: tm, eventRepo: er, configRepo: cr,
		seatRepo: sr, tableRepo: tr, stateRepo: ir, cache: cache,
	}
}

type CreateEventInput struct {
	OwnerID       string
	VenueConfigID string
	MaxPeople     int
}

// CreateEvent は新しいイベントを作成し、会場構成の全座席を free で初期化する
// 利用可能な会場構成に対してのみ作成できる
func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*event.Event, error) {
	c, err := s.configRepo.GetByID(ctx, input.VenueConfigID)
	if err != nil {
		return nil, err
	}
	if !c.Available {
		return nil, event.ErrConfigurationUnavailable
	}

	ev := event.NewEvent(input.OwnerID, input.VenueConfigID, input.MaxPeople)
	if err := ev.Validate(); err != nil {
		return nil, err
	}

	seats, err := s.seatRepo.GetByVenueConfigID(ctx, input.VenueConfigID)
	if err != nil {
		return nil, err
	}
	seatIDs := make([]string, 0, len(seats))
	for _, seat := range seats {
		seatIDs = append(seatIDs, seat.ID)
	}

	// イベント本体と座席状態の初期化は同一トランザクション
	// （初期化失敗時に座席状態のないイベントを残さない）
	err = transaction.Within(ctx, s.txManager, func(tx transaction.Tx) error {
		if err := s.eventRepo.Create(ctx, tx, ev); err != nil {
			return err
		}
		return s.stateRepo.InitializeForEvent(ctx, tx, ev.ID, seatIDs)
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// GetEvent はIDからイベントを取得する
func (s *EventService) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// GetAllEventsOnSale は販売中のイベントをページ単位で取得する
func (s *EventService) GetAllEventsOnSale(ctx context.Context, page, perPage int) ([]*event.Event, error) {
	limit, offset, err := pageBounds(page, perPage)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.ListOnSale(ctx, limit, offset)
}

type UpdateEventInput struct {
	ID        string
	MaxPeople int
	OnSale    bool
}

// UpdateEvent はイベントの収容人数・販売状態を更新する
// 販売停止はここでは座席を解放しない（一括解放は CancelEvent が担う）
func (s *EventService) UpdateEvent(ctx context.Context, input UpdateEventInput) (*event.Event, error) {
	ev, err := s.eventRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	ev.MaxPeople = input.MaxPeople
	ev.OnSale = input.OnSale
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Update(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// DeleteEvent はイベントと座席状態を削除する
// 販売中のイベントは先に CancelEvent で販売停止してから削除する
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	ev, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ev.OnSale {
		return event.ErrEventStillOnSale
	}
	err = transaction.Within(ctx, s.txManager, func(tx transaction.Tx) error {
		if err := s.stateRepo.DeleteForEvent(ctx, tx, id); err != nil {
			return err
		}
		return s.eventRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	if s.cache != nil {
		if cerr := s.cache.Invalidate(ctx, id); cerr != nil {
			logger.Warn("空き座席キャッシュの無効化に失敗", zap.String("event_id", id), zap.Error(cerr))
		}
	}
	return nil
}

// EventSeat はイベント視点の座席（レイアウト + 在庫状態）を表す
type EventSeat struct {
	Seat  *layout.Seat
	State inventory.State
}

// EventLayout はイベントの座席・テーブル一覧を表す
type EventLayout struct {
	Seats  []*EventSeat
	Tables []*layout.Table
}

// GetSeatsAndTablesForEvent はイベントの座席一覧をページ単位で在庫状態付きで返す
// テーブルはページに関わらず全件返す
func (s *EventService) GetSeatsAndTablesForEvent(ctx context.Context, eventID string, page, perPage int) (*EventLayout, error) {
	limit, offset, err := pageBounds(page, perPage)
	if err != nil {
		return nil, err
	}
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	seats, err := s.seatRepo.GetByVenueConfigIDPaged(ctx, ev.VenueConfigID, limit, offset)
	if err != nil {
		return nil, err
	}
	tables, err := s.tableRepo.GetByVenueConfigID(ctx, ev.VenueConfigID)
	if err != nil {
		return nil, err
	}

	states, err := s.stateRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]inventory.State, len(states))
	for _, st := range states {
		byID[st.SeatID] = st.State
	}

	result := &EventLayout{Seats: make([]*EventSeat, 0, len(seats)), Tables: tables}
	for _, seat := range seats {
		st, ok := byID[seat.ID]
		if !ok {
			// イベント作成後に追加された座席は販売対象外
			continue
		}
		result.Seats = append(result.Seats, &EventSeat{Seat: seat, State: st})
	}
	return result, nil
}

// CountFreeSeats はイベントの空き座席数を返す
// キャッシュヒット時はDBを参照しない
func (s *EventService) CountFreeSeats(ctx context.Context, eventID string) (int, error) {
	if s.cache != nil {
		count, err := s.cache.GetFreeCount(ctx, eventID)
		if err == nil {
			return count, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("空き座席キャッシュの取得に失敗", zap.String("event_id", eventID), zap.Error(err))
		}
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return 0, err
	}
	count, err := s.stateRepo.CountFree(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if cerr := s.cache.SetFreeCount(ctx, eventID, count, freeCountCacheTTL); cerr != nil {
			logger.Warn("空き座席キャッシュの保存に失敗", zap.String("event_id", eventID), zap.Error(cerr))
		}
	}
	return count, nil
}
