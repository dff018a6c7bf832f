package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/event"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/inventory"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/layout"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/order"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/transaction"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/clock"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/logger"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/metrics"
)

// OrderService は注文のライフサイクル管理を担うサービス
type OrderService struct {
	txManager transaction.Manager
	orderRepo order.Repository
	stateRepo inventory.Repository
	seatRepo  layout.SeatRepository
	eventRepo event.Repository
	metrics   *metrics.Metrics
	clock     clock.Clock
}

func NewOrderService(
	tm transaction.Manager,
	or order.Repository,
	ir inventory.Repository,
	sr layout.SeatRepository,
	er event.Repository,
	m *metrics.Metrics,
	clk clock.Clock,
) *OrderService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &OrderService{
		txManager: tm, orderRepo: or, stateRepo: ir,
		seatRepo: sr, eventRepo: er, metrics: m, clock: clk,
	}
}

type CreateOrderInput struct {
	UserID    string
	EventID   string
	ExpiresAt time.Time
}

// CreateOrder は販売中のイベントに対して新しい注文を作成する
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*order.Order, error) {
	ev, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	if !ev.OnSale {
		return nil, event.ErrEventNotOnSale
	}

	o := order.NewOrder(input.UserID, input.EventID, input.ExpiresAt)
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !input.ExpiresAt.After(s.clock.Now()) {
		return nil, order.ErrInvalidExpiry
	}
	if err := s.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// ContinueOrder は注文の有効期限を延長する
// 現在の期限より後ろへの延長のみ受け付ける
// 反映は status と expires_at を再確認する条件付き更新で行い、
// 読み取り後に回収が放棄した注文を上書きで復活させない
func (s *OrderService) ContinueOrder(ctx context.Context, orderID string, newExpiry time.Time) (*order.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if err := o.Extend(newExpiry, now); err != nil {
		return nil, err
	}

	var extended bool
	err = transaction.Within(ctx, s.txManager, func(tx transaction.Tx) error {
		ok, err := s.orderRepo.ExtendExpiry(ctx, tx, orderID, newExpiry, now)
		if err != nil {
			return err
		}
		extended = ok
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !extended {
		// 読み取り後に回収または完了が先に反映されていた
		return nil, order.ErrOrderExpired
	}
	return o, nil
}

// DeleteOrder は終了状態の注文を削除する
// 座席を保持したままの注文は削除できない（先に解放が必要）
func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := o.CanBeDeleted(); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, orderID)
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

// GetOrdersForUser はユーザーの注文一覧をページ単位で取得する
func (s *OrderService) GetOrdersForUser(ctx context.Context, userID string, page, perPage int) ([]*order.Order, error) {
	limit, offset, err := pageBounds(page, perPage)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByUserID(ctx, userID, limit, offset)
}

// FindAbandonedOrders は放棄済み注文を有効期限・ID順のページ単位で取得する
func (s *OrderService) FindAbandonedOrders(ctx context.Context, page, perPage int) ([]*order.Order, error) {
	limit, offset, err := pageBounds(page, perPage)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetAbandoned(ctx, limit, offset)
}

// OrderSummary は注文の概要（保持座席の詳細付き）
type OrderSummary struct {
	Order     *order.Order
	Seats     []*layout.Seat
	SeatCount int
}

// GetOrderSummary は注文の概要を座席詳細付きで取得する
func (s *OrderService) GetOrderSummary(ctx context.Context, orderID string) (*OrderSummary, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	seats := make([]*layout.Seat, 0, len(o.HeldSeatIDs))
	for _, seatID := range o.HeldSeatIDs {
		seat, err := s.seatRepo.GetByID(ctx, seatID)
		if err != nil {
			return nil, fmt.Errorf("座席 %s の取得に失敗: %w", seatID, err)
		}
		seats = append(seats, seat)
	}
	return &OrderSummary{Order: o, Seats: seats, SeatCount: len(seats)}, nil
}

// ReleaseExpiredOrders は期限切れの進行中注文を放棄し、座席を解放する
// 放棄の判定は注文ごとのトランザクション内で status と expires_at を
// 再確認する条件付き更新で行う（延長・完了が競り勝った注文は触らない）
func (s *OrderService) ReleaseExpiredOrders(ctx context.Context) (int, error) {
	now := s.clock.Now()
	expired, err := s.orderRepo.GetExpiredActive(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("期限切れ注文取得に失敗: %w", err)
	}

	count := 0
	for _, o := range expired {
		o := o
		abandoned := false
		err := transaction.Within(ctx, s.txManager, func(tx transaction.Tx) error {
			ok, err := s.orderRepo.MarkAbandoned(ctx, tx, o.ID, now)
			if err != nil {
				return err
			}
			if !ok {
				// 延長または完了が先に反映されていた
				return nil
			}
			if err := s.stateRepo.ReleaseAll(ctx, tx, o.EventID, o.HeldSeatIDs, o.ID); err != nil {
				return err
			}
			if err := s.orderRepo.RemoveAllSeats(ctx, tx, o.ID); err != nil {
				return err
			}
			abandoned = true
			return nil
		})
		if err != nil {
			logger.Error("期限切れ注文の解放に失敗",
				zap.String("order_id", o.ID),
				zap.Error(err),
			)
			continue
		}
		if abandoned {
			count++
		}
	}

	if s.metrics != nil && count > 0 {
		s.metrics.AbandonedOrdersTotal.Add(float64(count))
	}
	return count, nil
}
