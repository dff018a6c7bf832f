package venue

import "context"

// Repository は会場リポジトリのインターフェース
type Repository interface {
	// Create は新しい会場を作成する
	Create(ctx context.Context, v *Venue) error

	// GetByID はIDから会場を取得する
	GetByID(ctx context.Context, id string) (*Venue, error)

	// GetByOwnerID はオーナーIDから会場一覧を取得する
	GetByOwnerID(ctx context.Context, ownerID string) ([]*Venue, error)

	// Update は会場を更新する
	Update(ctx context.Context, v *Venue) error

	// Delete は会場を削除する
	Delete(ctx context.Context, id string) error
}

// ConfigurationRepository は会場構成リポジトリのインターフェース
type ConfigurationRepository interface {
	// Create は新しい会場構成を作成する
	Create(ctx context.Context, c *Configuration) error

	// GetByID はIDから会場構成を取得する
	GetByID(ctx context.Context, id string) (*Configuration, error)

	// GetByVenueID は会場IDから会場構成一覧を取得する
	GetByVenueID(ctx context.Context, venueID string) ([]*Configuration, error)

	// CountByVenueID は会場に属する構成数を取得する
	CountByVenueID(ctx context.Context, venueID string) (int, error)

	// Update は会場構成を更新する
	Update(ctx context.Context, c *Configuration) error

	// Delete は会場構成を削除する
	Delete(ctx context.Context, id string) error
}
