package inventory

import "time"

// State は (イベント, 座席) の在庫状態を表す
type State string

const (
	StateFree     State = "free"
	StateHeld     State = "held"
	StateReserved State = "reserved"
)

// SeatState は (イベント, 座席) ごとの在庫エントリ
// 座席は常にちょうど1つの状態を持ち、held / reserved の場合は
// 保持している注文IDがちょうど1つ存在する
type SeatState struct {
	EventID   string
	SeatID    string
	State     State
	OrderID   *string
	UpdatedAt time.Time
}

// NewFreeState はイベント作成時の初期状態エントリを作成する
func NewFreeState(eventID, seatID string) *SeatState {
	return &SeatState{
		EventID:   eventID,
		SeatID:    seatID,
		State:     StateFree,
		UpdatedAt: time.Now(),
	}
}

// IsFree は座席が空きかを返す
func (s *SeatState) IsFree() bool {
	return s.State == StateFree
}

// HeldBy は座席が指定注文に仮押さえされているかを返す
func (s *SeatState) HeldBy(orderID string) bool {
	return s.State == StateHeld && s.OrderID != nil && *s.OrderID == orderID
}

// OwnedBy は座席が指定注文に仮押さえまたは予約されているかを返す
func (s *SeatState) OwnedBy(orderID string) bool {
	return s.State != StateFree && s.OrderID != nil && *s.OrderID == orderID
}
