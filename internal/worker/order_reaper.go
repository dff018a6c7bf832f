package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-reserved-seating/internal/pkg/logger"
)

// ExpiredOrderReleaser は期限切れ注文を解放するインターフェース
type ExpiredOrderReleaser interface {
	ReleaseExpiredOrders(ctx context.Context) (int, error)
}

// OrderReaper は期限切れ注文を定期的に回収するワーカー
// 注文の期限切れ判定と座席解放はサービス側の条件付き更新で行うため、
// 進行中の延長・完了と競合しても安全に動作する
type OrderReaper struct {
	orderService ExpiredOrderReleaser
	interval     time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
}

// NewOrderReaper は新しいリーパーを作成
func NewOrderReaper(os ExpiredOrderReleaser, interval time.Duration) *OrderReaper {
	return &OrderReaper{
		orderService: os,
		interval:     interval,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Start はリーパーを開始
func (r *OrderReaper) Start(ctx context.Context) {
	logger.Info("期限切れ注文リーパー開始",
		zap.Duration("interval", r.interval),
	)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer close(r.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("期限切れ注文リーパー停止（コンテキストキャンセル）")
			return
		case <-r.stopCh:
			logger.Info("期限切れ注文リーパー停止（シグナル受信）")
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

// Stop はリーパーを停止
func (r *OrderReaper) Stop() {
	close(r.stopCh)
	<-r.doneCh
}

// sweep は期限切れ注文を放棄済みにして座席を解放
func (r *OrderReaper) sweep(ctx context.Context) {
	log := logger.Get()
	log.Debug("期限切れ注文のスイープ開始")

	count, err := r.orderService.ReleaseExpiredOrders(ctx)
	if err != nil {
		log.Error("期限切れ注文のスイープ失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("期限切れ注文を解放", zap.Int("count", count))
	} else {
		log.Debug("期限切れ注文なし")
	}
}
