package inventory

import "errors"

// Inventory ドメインのエラー定義
var (
	ErrStateNotFound         = errors.New("座席状態が見つかりません")
	ErrSeatUnavailable       = errors.New("座席は空いていません")
	ErrSeatNotHeldByOrder    = errors.New("座席はこの注文に保持されていません")
	ErrInconsistentHoldState = errors.New("仮押さえ状態が一致しないため処理を中止しました")
)
