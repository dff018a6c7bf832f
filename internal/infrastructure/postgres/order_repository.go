package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/order"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/transaction"
)

type orderRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	EventID   string    `db:"event_id"`
	Status    string    `db:"status"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *orderRow) toEntity(seatIDs []string) *order.Order {
	return &order.Order{
		ID: r.ID, UserID: r.UserID, EventID: r.EventID,
		Status: order.Status(r.Status), ExpiresAt: r.ExpiresAt,
		HeldSeatIDs: seatIDs, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

const orderColumns = `id, user_id, event_id, status, expires_at, created_at, updated_at`

type OrderRepository struct{ db *sqlx.DB }

func NewOrderRepository(db *sqlx.DB) *OrderRepository { return &OrderRepository{db: db} }

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	query := `INSERT INTO orders (user_id, event_id, status, expires_at, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, o.UserID, o.EventID, string(o.Status), o.ExpiresAt, o.CreatedAt, o.UpdatedAt).Scan(&o.ID); err != nil {
		return fmt.Errorf("注文作成に失敗: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	var row orderRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("注文取得に失敗: %w", err)
	}
	seatIDs, err := r.getSeatIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return row.toEntity(seatIDs), nil
}

func (r *OrderRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*order.Order, error) {
	var rows []orderRow
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("注文一覧取得に失敗: %w", err)
	}
	return r.toEntities(ctx, rows)
}

func (r *OrderRepository) GetAbandoned(ctx context.Context, limit, offset int) ([]*order.Order, error) {
	var rows []orderRow
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = 'abandoned' ORDER BY expires_at, id LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("放棄済み注文取得に失敗: %w", err)
	}
	return r.toEntities(ctx, rows)
}

func (r *OrderRepository) GetExpiredActive(ctx context.Context, now time.Time) ([]*order.Order, error) {
	var rows []orderRow
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = 'active' AND expires_at < $1 ORDER BY expires_at, id`
	if err := r.db.SelectContext(ctx, &rows, query, now); err != nil {
		return nil, fmt.Errorf("期限切れ注文取得に失敗: %w", err)
	}
	return r.toEntities(ctx, rows)
}

func (r *OrderRepository) GetReleasableByEventID(ctx context.Context, eventID string) ([]*order.Order, error) {
	var rows []orderRow
	query := `SELECT ` + orderColumns + ` FROM orders WHERE event_id = $1 AND status IN ('active', 'completed') ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("解放対象注文取得に失敗: %w", err)
	}
	return r.toEntities(ctx, rows)
}

func (r *OrderRepository) Update(ctx context.Context, tx transaction.Tx, o *order.Order) error {
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE orders SET status = $1, expires_at = $2, updated_at = $3 WHERE id = $4`
	result, err := sqlxTx.ExecContext(ctx, query, string(o.Status), o.ExpiresAt, o.UpdatedAt, o.ID)
	if err != nil {
		return fmt.Errorf("注文更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// MarkAbandoned は status と expires_at を同一の条件付き更新で再確認する
// 延長や完了が先に反映されていれば行は一致せず false を返す
// ExtendExpiry は進行中かつ未期限切れの注文の有効期限だけを条件付きで更新する
// （回収が先に放棄した注文を上書きで復活させないため、status と expires_at を
// WHERE 句で再確認する）
func (r *OrderRepository) ExtendExpiry(ctx context.Context, tx transaction.Tx, id string, newExpiry, now time.Time) (bool, error) {
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE orders SET expires_at = $1, updated_at = $2 WHERE id = $3 AND status = 'active' AND expires_at >= $2 AND expires_at < $1`
	result, err := sqlxTx.ExecContext(ctx, query, newExpiry, now, id)
	if err != nil {
		return false, fmt.Errorf("注文延長に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows == 1, nil
}

func (r *OrderRepository) MarkAbandoned(ctx context.Context, tx transaction.Tx, id string, now time.Time) (bool, error) {
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE orders SET status = 'abandoned', updated_at = $1 WHERE id = $2 AND status = 'active' AND expires_at < $1`
	result, err := sqlxTx.ExecContext(ctx, query, now, id)
	if err != nil {
		return false, fmt.Errorf("注文放棄に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows == 1, nil
}

func (r *OrderRepository) AddSeat(ctx context.Context, tx transaction.Tx, orderID, seatID string) error {
	sqlxTx := UnwrapTx(tx)
	if _, err := sqlxTx.ExecContext(ctx, `INSERT INTO order_seats (order_id, seat_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, orderID, seatID); err != nil {
		return fmt.Errorf("注文座席追加に失敗: %w", err)
	}
	return nil
}

func (r *OrderRepository) RemoveSeat(ctx context.Context, tx transaction.Tx, orderID, seatID string) error {
	sqlxTx := UnwrapTx(tx)
	if _, err := sqlxTx.ExecContext(ctx, `DELETE FROM order_seats WHERE order_id = $1 AND seat_id = $2`, orderID, seatID); err != nil {
		return fmt.Errorf("注文座席削除に失敗: %w", err)
	}
	return nil
}

func (r *OrderRepository) RemoveAllSeats(ctx context.Context, tx transaction.Tx, orderID string) error {
	sqlxTx := UnwrapTx(tx)
	if _, err := sqlxTx.ExecContext(ctx, `DELETE FROM order_seats WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("注文座席一括削除に失敗: %w", err)
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("注文削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) getSeatIDs(ctx context.Context, orderID string) ([]string, error) {
	var seatIDs []string
	if err := r.db.SelectContext(ctx, &seatIDs, `SELECT seat_id FROM order_seats WHERE order_id = $1 ORDER BY seat_id`, orderID); err != nil {
		return nil, fmt.Errorf("注文座席取得に失敗: %w", err)
	}
	return seatIDs, nil
}

func (r *OrderRepository) toEntities(ctx context.Context, rows []orderRow) ([]*order.Order, error) {
	result := make([]*order.Order, len(rows))
	for i, row := range rows {
		seatIDs, err := r.getSeatIDs(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		result[i] = row.toEntity(seatIDs)
	}
	return result, nil
}

var _ order.Repository = (*OrderRepository)(nil)
