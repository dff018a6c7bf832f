package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/event"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/inventory"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/layout"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/order"
	redisinfra "github.com/sanosuguru/go-reserved-seating/internal/infrastructure/redis"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/clock"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/logger"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/metrics"
)

// SeatHolder は座席の仮押さえ・解放のインターフェース
// （自動選択が HoldService を通して座席を取得するための抽象化）
type SeatHolder interface {
	AddSeatToOrder(ctx context.Context, orderID, seatID string) error
	CancelReservation(ctx context.Context, orderID, seatID string) error
}

// AutoSelectService はクラス優先付きの自動座席選択を担うサービス
type AutoSelectService struct {
	holder    SeatHolder
	orderRepo order.Repository
	stateRepo inventory.Repository
	seatRepo  layout.SeatRepository
	eventRepo event.Repository
	lock      *redisinfra.LockManager
	metrics   *metrics.Metrics
	clock     clock.Clock
}

// 候補取得競争に敗けた場合の再試行回数
const maxSelectAttempts = 3

func NewAutoSelectService(
	holder SeatHolder,
	or order.Repository,
	ir inventory.Repository,
	sr layout.SeatRepository,
	er event.Repository,
	lock *redisinfra.LockManager,
	m *metrics.Metrics,
	clk clock.Clock,
) *AutoSelectService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &AutoSelectService{
		holder: holder, orderRepo: or, stateRepo: ir,
		seatRepo: sr, eventRepo: er, lock: lock, metrics: m, clock: clk,
	}
}

type AutoSelectInput struct {
	OrderID             string
	NumSeats            int
	SeatClassPreference []string
}

// AutoSelect は空き座席から候補を選んで仮押さえし、注文に追加する
// 仮押さえに競り負けた場合は最新の空き状況で再試行し、
// 規定回数を超えると ErrInsufficientAvailability を返す
func (s *AutoSelectService) AutoSelect(ctx context.Context, input AutoSelectInput) ([]string, error) {
	if input.NumSeats < 1 {
		return nil, ErrInvalidNumSeats
	}

	o, err := s.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if err := o.EnsureActive(s.clock.Now()); err != nil {
		return nil, err
	}

	ev, err := s.eventRepo.GetByID(ctx, o.EventID)
	if err != nil {
		return nil, fmt.Errorf("イベント取得に失敗: %w", err)
	}
	seats, err := s.seatRepo.GetByVenueConfigID(ctx, ev.VenueConfigID)
	if err != nil {
		return nil, fmt.Errorf("座席取得に失敗: %w", err)
	}

	start := time.Now()
	for attempt := 0; attempt < maxSelectAttempts; attempt++ {
		freeIDs, err := s.stateRepo.GetFreeSeatIDs(ctx, ev.ID)
		if err != nil {
			return nil, fmt.Errorf("空き座席取得に失敗: %w", err)
		}
		free := make(map[string]struct{}, len(freeIDs))
		for _, id := range freeIDs {
			free[id] = struct{}{}
		}

		candidates, mode := selectCandidates(seats, free, input.NumSeats, input.SeatClassPreference)
		if candidates == nil {
			break
		}

		held, err := s.holdCandidates(ctx, ev.ID, input.OrderID, candidates)
		if err != nil {
			return nil, err
		}
		if held {
			s.observeSelect(mode, start)
			return candidates, nil
		}

		logger.Debug("自動選択が競合のため再試行",
			zap.String("order_id", input.OrderID),
			zap.Int("attempt", attempt+1),
		)
	}

	s.observeSelect("failed", start)
	return nil, ErrInsufficientAvailability
}

// holdCandidates は候補座席を順に仮押さえする
// 競合で1席でも取れなければ、この試行で取得済みの座席を解放して false を返す
func (s *AutoSelectService) holdCandidates(ctx context.Context, eventID, orderID string, candidates []string) (bool, error) {
	var lock *redisinfra.DistributedLock
	if s.lock != nil {
		var err error
		lock, err = s.lock.AcquireLockWithRetry(ctx, redisinfra.SeatLockKey(eventID, candidates), 10*time.Second, 3, 100*time.Millisecond)
		if err != nil {
			if errors.Is(err, redisinfra.ErrLockNotAcquired) {
				return false, nil
			}
			return false, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		defer lock.Release(ctx)
	}

	var acquired []string
	for _, seatID := range candidates {
		if err := s.holder.AddSeatToOrder(ctx, orderID, seatID); err != nil {
			s.releaseAcquired(ctx, orderID, acquired)
			if errors.Is(err, inventory.ErrSeatUnavailable) {
				return false, nil
			}
			return false, err
		}
		acquired = append(acquired, seatID)
	}
	return true, nil
}

func (s *AutoSelectService) releaseAcquired(ctx context.Context, orderID string, acquired []string) {
	for _, seatID := range acquired {
		if err := s.holder.CancelReservation(ctx, orderID, seatID); err != nil {
			logger.Warn("取得済み座席の解放に失敗",
				zap.String("order_id", orderID),
				zap.String("seat_id", seatID),
				zap.Error(err),
			)
		}
	}
}

func (s *AutoSelectService) observeSelect(result string, start time.Time) {
	if s.metrics != nil {
		s.metrics.AutoSelectDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	}
}
