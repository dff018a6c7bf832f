package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/layout"
)

type seatRow struct {
	ID            string          `db:"id"`
	VenueConfigID string          `db:"venue_config_id"`
	Name          string          `db:"name"`
	SeatClass     string          `db:"seat_class"`
	TableID       *string         `db:"table_id"`
	Geometry      json.RawMessage `db:"geometry"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (r *seatRow) toEntity(nextTo []string) *layout.Seat {
	return &layout.Seat{
		ID: r.ID, VenueConfigID: r.VenueConfigID, Name: r.Name,
		SeatClass: r.SeatClass, NextTo: nextTo, TableID: r.TableID,
		Geometry: r.Geometry, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type SeatRepository struct{ db *sqlx.DB }

func NewSeatRepository(db *sqlx.DB) *SeatRepository { return &SeatRepository{db: db} }

func (r *SeatRepository) Create(ctx context.Context, s *layout.Seat) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO seats (venue_config_id, name, seat_class, table_id, geometry, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, s.VenueConfigID, s.Name, s.SeatClass, s.TableID, nullableJSON(s.Geometry), s.CreatedAt, s.UpdatedAt).Scan(&s.ID); err != nil {
		return fmt.Errorf("座席作成に失敗: %w", err)
	}
	if err := r.replaceAdjacency(ctx, tx, s.ID, s.NextTo); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SeatRepository) GetByID(ctx context.Context, id string) (*layout.Seat, error) {
	var row seatRow
	query := `SELECT id, venue_config_id, name, seat_class, table_id, geometry, created_at, updated_at FROM seats WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, layout.ErrSeatNotFound
		}
		return nil, fmt.Errorf("座席取得に失敗: %w", err)
	}
	nextTo, err := r.getAdjacency(ctx, id)
	if err != nil {
		return nil, err
	}
	return row.toEntity(nextTo), nil
}

func (r *SeatRepository) GetByVenueConfigID(ctx context.Context, venueConfigID string) ([]*layout.Seat, error) {
	query := `SELECT id, venue_config_id, name, seat_class, table_id, geometry, created_at, updated_at FROM seats WHERE venue_config_id = $1 ORDER BY name, id`
	return r.selectSeats(ctx, query, venueConfigID)
}

func (r *SeatRepository) GetByVenueConfigIDPaged(ctx context.Context, venueConfigID string, limit, offset int) ([]*layout.Seat, error) {
	query := `SELECT id, venue_config_id, name, seat_class, table_id, geometry, created_at, updated_at FROM seats WHERE venue_config_id = $1 ORDER BY name, id LIMIT $2 OFFSET $3`
	return r.selectSeats(ctx, query, venueConfigID, limit, offset)
}

func (r *SeatRepository) selectSeats(ctx context.Context, query string, args ...interface{}) ([]*layout.Seat, error) {
	var rows []seatRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("座席一覧取得に失敗: %w", err)
	}
	if len(rows) == 0 {
		return []*layout.Seat{}, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	adjacency, err := r.getAdjacencyBulk(ctx, ids)
	if err != nil {
		return nil, err
	}

	seats := make([]*layout.Seat, len(rows))
	for i, row := range rows {
		seats[i] = row.toEntity(adjacency[row.ID])
	}
	return seats, nil
}

func (r *SeatRepository) Update(ctx context.Context, s *layout.Seat) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE seats SET name = $1, seat_class = $2, table_id = $3, geometry = $4, updated_at = NOW() WHERE id = $5`
	result, err := tx.ExecContext(ctx, query, s.Name, s.SeatClass, s.TableID, nullableJSON(s.Geometry), s.ID)
	if err != nil {
		return fmt.Errorf("座席更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return layout.ErrSeatNotFound
	}
	if err := r.replaceAdjacency(ctx, tx, s.ID, s.NextTo); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SeatRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM seats WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("座席削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return layout.ErrSeatNotFound
	}
	return nil
}

// replaceAdjacency は座席の隣接関係を両方向まとめて置き換える
func (r *SeatRepository) replaceAdjacency(ctx context.Context, tx *sqlx.Tx, seatID string, nextTo []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM seat_adjacency WHERE seat_id = $1 OR next_to_id = $1`, seatID); err != nil {
		return fmt.Errorf("隣接関係削除に失敗: %w", err)
	}
	for _, other := range nextTo {
		if other == seatID {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO seat_adjacency (seat_id, next_to_id) VALUES ($1, $2), ($2, $1) ON CONFLICT DO NOTHING`,
			seatID, other); err != nil {
			return fmt.Errorf("隣接関係保存に失敗: %w", err)
		}
	}
	return nil
}

func (r *SeatRepository) getAdjacency(ctx context.Context, seatID string) ([]string, error) {
	var nextTo []string
	if err := r.db.SelectContext(ctx, &nextTo, `SELECT next_to_id FROM seat_adjacency WHERE seat_id = $1 ORDER BY next_to_id`, seatID); err != nil {
		return nil, fmt.Errorf("隣接関係取得に失敗: %w", err)
	}
	return nextTo, nil
}

func (r *SeatRepository) getAdjacencyBulk(ctx context.Context, seatIDs []string) (map[string][]string, error) {
	type adjacencyRow struct {
		SeatID   string `db:"seat_id"`
		NextToID string `db:"next_to_id"`
	}
	var rows []adjacencyRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT seat_id, next_to_id FROM seat_adjacency WHERE seat_id = ANY($1) ORDER BY seat_id, next_to_id`, pq.Array(seatIDs)); err != nil {
		return nil, fmt.Errorf("隣接関係取得に失敗: %w", err)
	}
	adjacency := make(map[string][]string)
	for _, row := range rows {
		adjacency[row.SeatID] = append(adjacency[row.SeatID], row.NextToID)
	}
	return adjacency, nil
}

func nullableJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

var _ layout.SeatRepository = (*SeatRepository)(nil)

type tableRow struct {
	ID            string          `db:"id"`
	VenueConfigID string          `db:"venue_config_id"`
	MinSeats      int             `db:"min_seats"`
	MaxSeats      int             `db:"max_seats"`
	Geometry      json.RawMessage `db:"geometry"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (r *tableRow) toEntity() *layout.Table {
	return &layout.Table{
		ID: r.ID, VenueConfigID: r.VenueConfigID,
		MinSeats: r.MinSeats, MaxSeats: r.MaxSeats,
		Geometry: r.Geometry, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type TableRepository struct{ db *sqlx.DB }

func NewTableRepository(db *sqlx.DB) *TableRepository { return &TableRepository{db: db} }

func (r *TableRepository) Create(ctx context.Context, t *layout.Table) error {
	query := `INSERT INTO tables (venue_config_id, min_seats, max_seats, geometry, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, t.VenueConfigID, t.MinSeats, t.MaxSeats, nullableJSON(t.Geometry), t.CreatedAt, t.UpdatedAt).Scan(&t.ID); err != nil {
		return fmt.Errorf("テーブル作成に失敗: %w", err)
	}
	return nil
}

func (r *TableRepository) GetByID(ctx context.Context, id string) (*layout.Table, error) {
	var row tableRow
	query := `SELECT id, venue_config_id, min_seats, max_seats, geometry, created_at, updated_at FROM tables WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, layout.ErrTableNotFound
		}
		return nil, fmt.Errorf("テーブル取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *TableRepository) GetByVenueConfigID(ctx context.Context, venueConfigID string) ([]*layout.Table, error) {
	var rows []tableRow
	query := `SELECT id, venue_config_id, min_seats, max_seats, geometry, created_at, updated_at FROM tables WHERE venue_config_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query, venueConfigID); err != nil {
		return nil, fmt.Errorf("テーブル一覧取得に失敗: %w", err)
	}
	tables := make([]*layout.Table, len(rows))
	for i, row := range rows {
		tables[i] = row.toEntity()
	}
	return tables, nil
}

func (r *TableRepository) Update(ctx context.Context, t *layout.Table) error {
	query := `UPDATE tables SET min_seats = $1, max_seats = $2, geometry = $3, updated_at = NOW() WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, t.MinSeats, t.MaxSeats, nullableJSON(t.Geometry), t.ID)
	if err != nil {
		return fmt.Errorf("テーブル更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return layout.ErrTableNotFound
	}
	return nil
}

func (r *TableRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("テーブル削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return layout.ErrTableNotFound
	}
	return nil
}

var _ layout.TableRepository = (*TableRepository)(nil)
