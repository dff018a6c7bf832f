package venue

import "errors"

// Venue ドメインのエラー定義
var (
	ErrVenueNotFound               = errors.New("会場が見つかりません")
	ErrConfigurationNotFound       = errors.New("会場構成が見つかりません")
	ErrOwnerIDRequired             = errors.New("オーナーIDは必須です")
	ErrVenueIDRequired             = errors.New("会場IDは必須です")
	ErrVenueNameRequired           = errors.New("会場名は必須です")
	ErrConfigurationNameRequired   = errors.New("会場構成名は必須です")
	ErrInvalidMaxPeople            = errors.New("収容人数は1以上である必要があります")
	ErrVenueHasConfigurations      = errors.New("会場構成が残っているため会場を削除できません")
	ErrConfigurationStillAvailable = errors.New("会場構成が利用可能なままでは削除できません")
	ErrConfigurationInUse          = errors.New("会場構成を参照しているイベントが存在します")
)
