package order

import (
	"context"
	"time"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/transaction"
)

// Repository は注文リポジトリのインターフェース
type Repository interface {
	// Create は新しい注文を作成する
	Create(ctx context.Context, o *Order) error

	// GetByID はIDから注文を取得する（保持座席も読み込む）
	GetByID(ctx context.Context, id string) (*Order, error)

	// GetByUserID はユーザーの注文一覧を作成日時・ID順で取得する
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*Order, error)

	// GetAbandoned は放棄済み注文を有効期限・ID順で取得する
	GetAbandoned(ctx context.Context, limit, offset int) ([]*Order, error)

	// GetExpiredActive は期限切れの進行中注文を取得する
	GetExpiredActive(ctx context.Context, now time.Time) ([]*Order, error)

	// GetReleasableByEventID はイベントの進行中・完了済み注文を取得する
	// （イベントキャンセル時の一括解放対象）
	GetReleasableByEventID(ctx context.Context, eventID string) ([]*Order, error)

	// Update は注文を更新する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, o *Order) error

	// MarkAbandoned は進行中かつ期限切れの場合のみ注文を放棄済みにする
	// 条件を満たさなければ false を返す（延長・完了との競合時）
	MarkAbandoned(ctx context.Context, tx transaction.Tx, id string, now time.Time) (bool, error)

	// ExtendExpiry は進行中かつ未期限切れの場合のみ有効期限を延長する
	// 条件を満たさなければ false を返す（回収・完了との競合時）
	ExtendExpiry(ctx context.Context, tx transaction.Tx, id string, newExpiry, now time.Time) (bool, error)

	// AddSeat は注文に座席を関連付ける（トランザクション必須）
	AddSeat(ctx context.Context, tx transaction.Tx, orderID, seatID string) error

	// RemoveSeat は注文から座席の関連付けを外す（トランザクション必須）
	RemoveSeat(ctx context.Context, tx transaction.Tx, orderID, seatID string) error

	// RemoveAllSeats は注文の座席関連付けをすべて外す（トランザクション必須）
	RemoveAllSeats(ctx context.Context, tx transaction.Tx, orderID string) error

	// Delete は注文を削除する
	Delete(ctx context.Context, id string) error
}
