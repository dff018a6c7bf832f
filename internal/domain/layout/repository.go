package layout

import "context"

// SeatRepository は座席リポジトリのインターフェース
type SeatRepository interface {
	// Create は新しい座席を作成する（隣接関係も対称に保存する）
	Create(ctx context.Context, s *Seat) error

	// GetByID はIDから座席を取得する
	GetByID(ctx context.Context, id string) (*Seat, error)

	// GetByVenueConfigID は会場構成に属する座席一覧を座席名順で取得する
	GetByVenueConfigID(ctx context.Context, venueConfigID string) ([]*Seat, error)

	// GetByVenueConfigIDPaged は会場構成に属する座席をページ単位で取得する
	GetByVenueConfigIDPaged(ctx context.Context, venueConfigID string, limit, offset int) ([]*Seat, error)

	// Update は座席を更新する（隣接関係は渡された内容で置き換える）
	Update(ctx context.Context, s *Seat) error

	// Delete は座席を削除する
	Delete(ctx context.Context, id string) error
}

// TableRepository はテーブルリポジトリのインターフェース
type TableRepository interface {
	// Create は新しいテーブルを作成する
	Create(ctx context.Context, t *Table) error

	// GetByID はIDからテーブルを取得する
	GetByID(ctx context.Context, id string) (*Table, error)

	// GetByVenueConfigID は会場構成に属するテーブル一覧を取得する
	GetByVenueConfigID(ctx context.Context, venueConfigID string) ([]*Table, error)

	// Update はテーブルを更新する
	Update(ctx context.Context, t *Table) error

	// Delete はテーブルを削除する
	Delete(ctx context.Context, id string) error
}
