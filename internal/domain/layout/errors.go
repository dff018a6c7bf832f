package layout

import "errors"

// Layout ドメインのエラー定義
var (
	ErrSeatNotFound            = errors.New("座席が見つかりません")
	ErrTableNotFound           = errors.New("テーブルが見つかりません")
	ErrVenueConfigIDRequired   = errors.New("会場構成IDは必須です")
	ErrSeatNameRequired        = errors.New("座席名は必須です")
	ErrSeatClassRequired       = errors.New("座席クラスは必須です")
	ErrInvalidTableSize        = errors.New("テーブルの座席数範囲が不正です")
	ErrInvalidGeometry         = errors.New("座席配置情報が不正なJSONです")
	ErrSeatNotInConfiguration  = errors.New("座席は指定された会場構成に属していません")
	ErrTableNotInConfiguration = errors.New("テーブルは指定された会場構成に属していません")
	ErrTableInUse              = errors.New("テーブルを参照している座席が存在します")
)
