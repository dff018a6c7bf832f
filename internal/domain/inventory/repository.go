package inventory

import (
	"context"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/transaction"
)

// Repository は座席状態リポジトリのインターフェース
// 状態遷移はすべて条件付き更新で実装し、(イベント, 座席) 単位で
// 線形化可能であることを保証する
type Repository interface {
	// InitializeForEvent はイベントの全座席を free で初期化する（トランザクション必須）
	InitializeForEvent(ctx context.Context, tx transaction.Tx, eventID string, seatIDs []string) error

	// Get は (イベント, 座席) の状態を取得する
	Get(ctx context.Context, eventID, seatID string) (*SeatState, error)

	// GetByEventID はイベントの全座席状態を座席ID順で取得する
	GetByEventID(ctx context.Context, eventID string) ([]*SeatState, error)

	// GetFreeSeatIDs はイベントの空き座席IDをソート済みで取得する
	GetFreeSeatIDs(ctx context.Context, eventID string) ([]string, error)

	// CountFree はイベントの空き座席数を取得する
	CountFree(ctx context.Context, eventID string) (int, error)

	// Hold は free → held(orderID) の遷移を行う（トランザクション必須）
	// 空きでなければ ErrSeatUnavailable を返す
	Hold(ctx context.Context, tx transaction.Tx, eventID, seatID, orderID string) error

	// Reserve は held(orderID) → reserved(orderID) の遷移を全座席まとめて行う
	// 1席でも held(orderID) でなければ ErrInconsistentHoldState を返す
	// （トランザクション必須、全件成功か全件失敗）
	Reserve(ctx context.Context, tx transaction.Tx, eventID string, seatIDs []string, orderID string) error

	// Release は held/reserved(orderID) → free の遷移を行う（トランザクション必須）
	// 保持者が異なれば ErrSeatNotHeldByOrder を返す
	Release(ctx context.Context, tx transaction.Tx, eventID, seatID, orderID string) error

	// ReleaseAll は注文が保持する座席をまとめて解放する（トランザクション必須）
	// 既に解放済みの座席は無視する
	ReleaseAll(ctx context.Context, tx transaction.Tx, eventID string, seatIDs []string, orderID string) error

	// DeleteForEvent はイベントの座席状態をすべて削除する（トランザクション必須）
	DeleteForEvent(ctx context.Context, tx transaction.Tx, eventID string) error
}
