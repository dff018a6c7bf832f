package order

import "errors"

// Order ドメインのエラー定義
var (
	ErrOrderNotFound         = errors.New("注文が見つかりません")
	ErrOrderExpired          = errors.New("注文の有効期限が切れています")
	ErrOrderAlreadyCompleted = errors.New("注文は既に完了しています")
	ErrOrderAlreadyCancelled = errors.New("注文は既にキャンセルされています")
	ErrOrderAbandoned        = errors.New("注文は放棄されています")
	ErrOrderStillActive      = errors.New("進行中の注文は削除できません")
	ErrOrderHasSeats         = errors.New("座席を保持している注文は削除できません")
	ErrNoSeatsHeld           = errors.New("注文に座席がありません")
	ErrInvalidExpiry         = errors.New("有効期限は現在の期限より後である必要があります")
	ErrUserIDRequired        = errors.New("ユーザーIDは必須です")
	ErrEventIDRequired       = errors.New("イベントIDは必須です")
	ErrExpiryRequired        = errors.New("有効期限は必須です")
)
