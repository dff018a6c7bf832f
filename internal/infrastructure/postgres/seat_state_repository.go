package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/inventory"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/transaction"
)

type seatStateRow struct {
	EventID   string    `db:"event_id"`
	SeatID    string    `db:"seat_id"`
	State     string    `db:"state"`
	OrderID   *string   `db:"order_id"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *seatStateRow) toEntity() *inventory.SeatState {
	return &inventory.SeatState{
		EventID: r.EventID, SeatID: r.SeatID,
		State: inventory.State(r.State), OrderID: r.OrderID,
		UpdatedAt: r.UpdatedAt,
	}
}

// SeatStateRepository は seat_states テーブルへの条件付き更新で
// 座席単位の線形化可能な状態遷移を実装する
type SeatStateRepository struct{ db *sqlx.DB }

func NewSeatStateRepository(db *sqlx.DB) *SeatStateRepository {
	return &SeatStateRepository{db: db}
}

func (r *SeatStateRepository) InitializeForEvent(ctx context.Context, tx transaction.Tx, eventID string, seatIDs []string) error {
	sqlxTx := UnwrapTx(tx)
	for _, seatID := range seatIDs {
		if _, err := sqlxTx.ExecContext(ctx,
			`INSERT INTO seat_states (event_id, seat_id, state, updated_at) VALUES ($1, $2, 'free', NOW())`,
			eventID, seatID); err != nil {
			return fmt.Errorf("座席状態初期化に失敗: %w", err)
		}
	}
	return nil
}

func (r *SeatStateRepository) Get(ctx context.Context, eventID, seatID string) (*inventory.SeatState, error) {
	var row seatStateRow
	query := `SELECT event_id, seat_id, state, order_id, updated_at FROM seat_states WHERE event_id = $1 AND seat_id = $2`
	if err := r.db.GetContext(ctx, &row, query, eventID, seatID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrStateNotFound
		}
		return nil, fmt.Errorf("座席状態取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *SeatStateRepository) GetByEventID(ctx context.Context, eventID string) ([]*inventory.SeatState, error) {
	var rows []seatStateRow
	query := `SELECT event_id, seat_id, state, order_id, updated_at FROM seat_states WHERE event_id = $1 ORDER BY seat_id`
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("座席状態一覧取得に失敗: %w", err)
	}
	states := make([]*inventory.SeatState, len(rows))
	for i, row := range rows {
		states[i] = row.toEntity()
	}
	return states, nil
}

func (r *SeatStateRepository) GetFreeSeatIDs(ctx context.Context, eventID string) ([]string, error) {
	var seatIDs []string
	query := `SELECT seat_id FROM seat_states WHERE event_id = $1 AND state = 'free' ORDER BY seat_id`
	if err := r.db.SelectContext(ctx, &seatIDs, query, eventID); err != nil {
		return nil, fmt.Errorf("空き座席取得に失敗: %w", err)
	}
	return seatIDs, nil
}

func (r *SeatStateRepository) CountFree(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM seat_states WHERE event_id = $1 AND state = 'free'`, eventID)
	return count, err
}

// Hold は free の場合のみ held へ遷移させる
// WHERE 句の state 条件と RowsAffected 判定がそのまま check-then-set の
// アトミック性を担う（同一行への同時更新は行ロックで直列化される）
func (r *SeatStateRepository) Hold(ctx context.Context, tx transaction.Tx, eventID, seatID, orderID string) error {
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE seat_states SET state = 'held', order_id = $1, updated_at = NOW() WHERE event_id = $2 AND seat_id = $3 AND state = 'free'`
	result, err := sqlxTx.ExecContext(ctx, query, orderID, eventID, seatID)
	if err != nil {
		return fmt.Errorf("仮押さえに失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return inventory.ErrSeatUnavailable
	}
	return nil
}

// Reserve は注文の全保持座席を一括で reserved へ遷移させる
// 更新行数が一致しない場合は全件失敗として扱う（トランザクション内で
// 呼ばれるためロールバックで巻き戻る）
func (r *SeatStateRepository) Reserve(ctx context.Context, tx transaction.Tx, eventID string, seatIDs []string, orderID string) error {
	if len(seatIDs) == 0 {
		return nil
	}
	sorted := sortedCopy(seatIDs)
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE seat_states SET state = 'reserved', updated_at = NOW() WHERE event_id = $1 AND seat_id = ANY($2) AND state = 'held' AND order_id = $3`
	result, err := sqlxTx.ExecContext(ctx, query, eventID, pq.Array(sorted), orderID)
	if err != nil {
		return fmt.Errorf("予約確定に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if int(rows) != len(sorted) {
		return inventory.ErrInconsistentHoldState
	}
	return nil
}

func (r *SeatStateRepository) Release(ctx context.Context, tx transaction.Tx, eventID, seatID, orderID string) error {
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE seat_states SET state = 'free', order_id = NULL, updated_at = NOW() WHERE event_id = $1 AND seat_id = $2 AND order_id = $3 AND state IN ('held', 'reserved')`
	result, err := sqlxTx.ExecContext(ctx, query, eventID, seatID, orderID)
	if err != nil {
		return fmt.Errorf("座席解放に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return inventory.ErrSeatNotHeldByOrder
	}
	return nil
}

// ReleaseAll は保持者が一致する座席のみ解放する
// 既に解放済み・別注文に渡った座席は黙って無視する（回収処理と
// キャンセルの競合時に問題にしない）
func (r *SeatStateRepository) ReleaseAll(ctx context.Context, tx transaction.Tx, eventID string, seatIDs []string, orderID string) error {
	if len(seatIDs) == 0 {
		return nil
	}
	sorted := sortedCopy(seatIDs)
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE seat_states SET state = 'free', order_id = NULL, updated_at = NOW() WHERE event_id = $1 AND seat_id = ANY($2) AND order_id = $3`
	if _, err := sqlxTx.ExecContext(ctx, query, eventID, pq.Array(sorted), orderID); err != nil {
		return fmt.Errorf("座席一括解放に失敗: %w", err)
	}
	return nil
}

func (r *SeatStateRepository) DeleteForEvent(ctx context.Context, tx transaction.Tx, eventID string) error {
	sqlxTx := UnwrapTx(tx)
	if _, err := sqlxTx.ExecContext(ctx, `DELETE FROM seat_states WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("座席状態削除に失敗: %w", err)
	}
	return nil
}

// sortedCopy は複数座席の更新を常に昇順で行うためのコピーを返す
func sortedCopy(seatIDs []string) []string {
	sorted := make([]string, len(seatIDs))
	copy(sorted, seatIDs)
	sort.Strings(sorted)
	return sorted
}

var _ inventory.Repository = (*SeatStateRepository)(nil)
