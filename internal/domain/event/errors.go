package event

import "errors"

// Event ドメインのエラー定義
var (
	ErrEventNotFound            = errors.New("イベントが見つかりません")
	ErrEventNotOnSale           = errors.New("イベントは販売中ではありません")
	ErrEventStillOnSale         = errors.New("販売中のイベントは先にキャンセルする必要があります")
	ErrOwnerIDRequired          = errors.New("オーナーIDは必須です")
	ErrVenueConfigIDRequired    = errors.New("会場構成IDは必須です")
	ErrInvalidMaxPeople         = errors.New("収容人数は1以上である必要があります")
	ErrConfigurationUnavailable = errors.New("利用不可の会場構成ではイベントを作成できません")
)
