package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/event"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/transaction"
)

type eventRow struct {
	ID            string    `db:"id"`
	OwnerID       string    `db:"owner_id"`
	VenueConfigID string    `db:"venue_config_id"`
	MaxPeople     int       `db:"max_people"`
	OnSale        bool      `db:"on_sale"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r *eventRow) toEntity() *event.Event {
	return &event.Event{
		ID: r.ID, OwnerID: r.OwnerID, VenueConfigID: r.VenueConfigID,
		MaxPeople: r.MaxPeople, OnSale: r.OnSale,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type EventRepository struct{ db *sqlx.DB }

func NewEventRepository(db *sqlx.DB) *EventRepository { return &EventRepository{db: db} }

func (r *EventRepository) Create(ctx context.Context, tx transaction.Tx, e *event.Event) error {
	sqlxTx := UnwrapTx(tx)
	query := `INSERT INTO events (owner_id, venue_config_id, max_people, on_sale, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := sqlxTx.QueryRowContext(ctx, query, e.OwnerID, e.VenueConfigID, e.MaxPeople, e.OnSale, e.CreatedAt, e.UpdatedAt).Scan(&e.ID); err != nil {
		return fmt.Errorf("イベント作成に失敗: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*event.Event, error) {
	var row eventRow
	query := `SELECT id, owner_id, venue_config_id, max_people, on_sale, created_at, updated_at FROM events WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("イベント取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *EventRepository) ListOnSale(ctx context.Context, limit, offset int) ([]*event.Event, error) {
	var rows []eventRow
	query := `SELECT id, owner_id, venue_config_id, max_people, on_sale, created_at, updated_at FROM events WHERE on_sale ORDER BY created_at, id LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("販売中イベント取得に失敗: %w", err)
	}
	events := make([]*event.Event, len(rows))
	for i, row := range rows {
		events[i] = row.toEntity()
	}
	return events, nil
}

func (r *EventRepository) CountByVenueConfigID(ctx context.Context, venueConfigID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM events WHERE venue_config_id = $1`, venueConfigID)
	return count, err
}

func (r *EventRepository) CountOnSaleByVenueConfigID(ctx context.Context, venueConfigID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM events WHERE venue_config_id = $1 AND on_sale`, venueConfigID)
	return count, err
}

func (r *EventRepository) Update(ctx context.Context, e *event.Event) error {
	query := `UPDATE events SET max_people = $1, on_sale = $2, updated_at = NOW() WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, e.MaxPeople, e.OnSale, e.ID)
	if err != nil {
		return fmt.Errorf("イベント更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

// Delete は座席状態の削除と同じトランザクション上で実行する
// （プール上で実行すると seat_states の外部キー検査が
// 未コミットの削除行を待ち続け、互いに解けないブロックになる）
func (r *EventRepository) Delete(ctx context.Context, tx transaction.Tx, id string) error {
	sqlxTx := UnwrapTx(tx)
	result, err := sqlxTx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("イベント削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

var _ event.Repository = (*EventRepository)(nil)
