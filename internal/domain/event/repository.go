package event

import (
	"context"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/transaction"
)

// Repository はイベントリポジトリのインターフェース
type Repository interface {
	// Create は新しいイベントを作成する
	// 座席状態の初期化と同じトランザクションで実行する
	Create(ctx context.Context, tx transaction.Tx, e *Event) error

	// GetByID はIDからイベントを取得する
	GetByID(ctx context.Context, id string) (*Event, error)

	// ListOnSale は販売中のイベントを作成日時・ID順で取得する
	ListOnSale(ctx context.Context, limit, offset int) ([]*Event, error)

	// CountByVenueConfigID は会場構成を参照するイベント数を取得する
	CountByVenueConfigID(ctx context.Context, venueConfigID string) (int, error)

	// CountOnSaleByVenueConfigID は会場構成を参照する販売中イベント数を取得する
	CountOnSaleByVenueConfigID(ctx context.Context, venueConfigID string) (int, error)

	// Update はイベントを更新する
	Update(ctx context.Context, e *Event) error

	// Delete はイベントを削除する
	// 座席状態の削除と同じトランザクションで実行する
	Delete(ctx context.Context, tx transaction.Tx, id string) error
}
