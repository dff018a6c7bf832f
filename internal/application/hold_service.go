package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/event"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/inventory"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/layout"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/order"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/transaction"
	redisinfra "github.com/sanosuguru/go-reserved-seating/internal/infrastructure/redis"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/clock"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/logger"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/metrics"
)

// HoldService は座席の仮押さえ・確定・解放を担うサービス
// (イベント, 座席) 単位の状態遷移はすべてここを経由する
type HoldService struct {
	txManager transaction.Manager
	orderRepo order.Repository
	stateRepo inventory.Repository
	seatRepo  layout.SeatRepository
	eventRepo event.Repository
	cache     *redisinfra.AvailabilityCache
	metrics   *metrics.Metrics
	clock     clock.Clock
}

func NewHoldService(
	tm transaction.Manager,
	or order.Repository,
	ir inventory.Repository,
	sr layout.SeatRepository,
	er event.Repository,
	cache *redisinfra.AvailabilityCache,
	m *metrics.Metrics,
	clk clock.Clock,
) *HoldService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &HoldService{
		txManager: tm, orderRepo: or, stateRepo: ir,
		seatRepo: sr, eventRepo: er, cache: cache, metrics: m, clock: clk,
	}
}

// AddSeatToOrder は座席を仮押さえして注文に追加する
// 同じ注文が既に保持している座席への再呼び出しは no-op 成功とする
// （クライアント契約: 仮押さえは冪等）
func (s *HoldService) AddSeatToOrder(ctx context.Context, orderID, seatID string) error {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := o.EnsureActive(s.clock.Now()); err != nil {
		return err
	}

	ev, err := s.eventRepo.GetByID(ctx, o.EventID)
	if err != nil {
		return fmt.Errorf("イベント取得に失敗: %w", err)
	}
	seat, err := s.seatRepo.GetByID(ctx, seatID)
	if err != nil {
		return err
	}
	if seat.VenueConfigID != ev.VenueConfigID {
		return layout.ErrSeatNotInConfiguration
	}

	// 冪等チェック: 自分が保持済みなら成功扱い
	st, err := s.stateRepo.Get(ctx, ev.ID, seatID)
	if err != nil {
		return err
	}
	if st.HeldBy(orderID) {
		return nil
	}

	err = transaction.Within(ctx, s.txManager, func(tx transaction.Tx) error {
		if err := s.stateRepo.Hold(ctx, tx, ev.ID, seatID, orderID); err != nil {
			return err
		}
		return s.orderRepo.AddSeat(ctx, tx, orderID, seatID)
	})
	if err != nil {
		s.countHold(errors.Is(err, inventory.ErrSeatUnavailable))
		return err
	}

	s.countHoldSuccess()
	s.invalidateCache(ctx, ev.ID)
	return nil
}

// CompleteOrder は注文の全仮押さえ座席を予約に昇格させて注文を完了する
// 全件成功か全件失敗（1席でも held でなければ中断しロールバック）
func (s *HoldService) CompleteOrder(ctx context.Context, orderID string) (*order.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Complete(s.clock.Now()); err != nil {
		return nil, err
	}

	err = transaction.Within(ctx, s.txManager, func(tx transaction.Tx) error {
		if err := s.stateRepo.Reserve(ctx, tx, o.EventID, o.HeldSeatIDs, o.ID); err != nil {
			return err
		}
		return s.orderRepo.Update(ctx, tx, o)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// CancelReservation は仮押さえ・予約済みの座席を解放して注文から外す
func (s *HoldService) CancelReservation(ctx context.Context, orderID, seatID string) error {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	err = transaction.Within(ctx, s.txManager, func(tx transaction.Tx) error {
		if err := s.stateRepo.Release(ctx, tx, o.EventID, seatID, orderID); err != nil {
			return err
		}
		return s.orderRepo.RemoveSeat(ctx, tx, orderID, seatID)
	})
	if err != nil {
		return err
	}

	s.invalidateCache(ctx, o.EventID)
	return nil
}

// CancelEvent はイベントをキャンセルし、全注文の座席を解放する
// 座席の解放は注文単位のトランザクションで行い、解放済み座席は無視する
// （回収処理や個別キャンセルと同時に走っても安全）
func (s *HoldService) CancelEvent(ctx context.Context, eventID string) error {
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	orders, err := s.orderRepo.GetReleasableByEventID(ctx, eventID)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	for _, o := range orders {
		o := o
		err := transaction.Within(ctx, s.txManager, func(tx transaction.Tx) error {
			if err := s.stateRepo.ReleaseAll(ctx, tx, eventID, o.HeldSeatIDs, o.ID); err != nil {
				return err
			}
			if err := o.Cancel(now); err != nil {
				// 競合でキャンセル済みになっていた場合はそのまま進める
				if errors.Is(err, order.ErrOrderAlreadyCancelled) {
					return nil
				}
				return err
			}
			if err := s.orderRepo.RemoveAllSeats(ctx, tx, o.ID); err != nil {
				return err
			}
			return s.orderRepo.Update(ctx, tx, o)
		})
		if err != nil {
			return fmt.Errorf("注文 %s の解放に失敗: %w", o.ID, err)
		}
	}

	ev.OnSale = false
	if err := s.eventRepo.Update(ctx, ev); err != nil {
		return err
	}

	logger.Info("イベントをキャンセル",
		zap.String("event_id", eventID),
		zap.Int("released_orders", len(orders)),
	)
	s.invalidateCache(ctx, eventID)
	return nil
}

func (s *HoldService) countHoldSuccess() {
	if s.metrics != nil {
		s.metrics.HoldsTotal.WithLabelValues("success").Inc()
	}
}

func (s *HoldService) countHold(unavailable bool) {
	if s.metrics == nil {
		return
	}
	if unavailable {
		s.metrics.HoldsTotal.WithLabelValues("unavailable").Inc()
	} else {
		s.metrics.HoldsTotal.WithLabelValues("error").Inc()
	}
}

func (s *HoldService) invalidateCache(ctx context.Context, eventID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, eventID); err != nil {
		logger.Warn("キャッシュ無効化エラー", zap.Error(err))
	}
}
