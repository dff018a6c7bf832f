package order

import "time"

// Status は注文の状態を表す
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
	StatusCancelled Status = "cancelled"
)

// Order は注文エンティティを表す
// HeldSeatIDs はこの注文が仮押さえ（完了後は予約）している座席のID集合
type Order struct {
	ID          string
	UserID      string
	EventID     string
	Status      Status
	ExpiresAt   time.Time
	HeldSeatIDs []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrder は新しい注文を作成する
func NewOrder(userID, eventID string, expiresAt time.Time) *Order {
	now := time.Now()
	return &Order{
		UserID:    userID,
		EventID:   eventID,
		Status:    StatusActive,
		ExpiresAt: expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate は注文の検証を行う
func (o *Order) Validate() error {
	if o.UserID == "" {
		return ErrUserIDRequired
	}
	if o.EventID == "" {
		return ErrEventIDRequired
	}
	if o.ExpiresAt.IsZero() {
		return ErrExpiryRequired
	}
	return nil
}

// IsActive は注文が進行中かを返す
func (o *Order) IsActive() bool {
	return o.Status == StatusActive
}

// IsExpired は基準時刻 now で注文が期限切れかを返す
func (o *Order) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// EnsureActive は注文が操作可能（進行中かつ期限内）であることを確認する
func (o *Order) EnsureActive(now time.Time) error {
	switch o.Status {
	case StatusCompleted:
		return ErrOrderAlreadyCompleted
	case StatusCancelled:
		return ErrOrderAlreadyCancelled
	case StatusAbandoned:
		return ErrOrderAbandoned
	}
	if o.IsExpired(now) {
		return ErrOrderExpired
	}
	return nil
}

// Complete は注文を完了し、仮押さえを本予約へ昇格させる前提を確認する
func (o *Order) Complete(now time.Time) error {
	if err := o.EnsureActive(now); err != nil {
		return err
	}
	if len(o.HeldSeatIDs) == 0 {
		return ErrNoSeatsHeld
	}
	o.Status = StatusCompleted
	o.UpdatedAt = now
	return nil
}

// Cancel は注文をキャンセルする
func (o *Order) Cancel(now time.Time) error {
	if o.Status == StatusCancelled {
		return ErrOrderAlreadyCancelled
	}
	o.Status = StatusCancelled
	o.UpdatedAt = now
	return nil
}

// Extend は有効期限を延長する
// 現在の期限より後ろへの延長のみ許可する（巻き戻すと回収処理と競合するため）
func (o *Order) Extend(newExpiry, now time.Time) error {
	if err := o.EnsureActive(now); err != nil {
		return err
	}
	if !newExpiry.After(o.ExpiresAt) {
		return ErrInvalidExpiry
	}
	o.ExpiresAt = newExpiry
	o.UpdatedAt = now
	return nil
}

// CanBeDeleted は注文が削除可能かを返す
// 座席を保持したままの注文、および進行中の注文は削除できない
func (o *Order) CanBeDeleted() error {
	if len(o.HeldSeatIDs) > 0 {
		return ErrOrderHasSeats
	}
	if o.Status == StatusActive {
		return ErrOrderStillActive
	}
	return nil
}

// HoldsSeat は指定座席を保持しているかを返す
func (o *Order) HoldsSeat(seatID string) bool {
	for _, id := range o.HeldSeatIDs {
		if id == seatID {
			return true
		}
	}
	return false
}
