package event

import "time"

// Event はイベントエンティティを表す
// 会場構成の全座席がこのイベントで販売対象となる
type Event struct {
	ID            string
	OwnerID       string
	VenueConfigID string
	MaxPeople     int
	OnSale        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewEvent は新しいイベントを作成する
// 作成直後は販売停止状態で、UpdateEvent で販売開始する
func NewEvent(ownerID, venueConfigID string, maxPeople int) *Event {
	now := time.Now()
	return &Event{
		OwnerID:       ownerID,
		VenueConfigID: venueConfigID,
		MaxPeople:     maxPeople,
		OnSale:        false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate はイベントの検証を行う
func (e *Event) Validate() error {
	if e.OwnerID == "" {
		return ErrOwnerIDRequired
	}
	if e.VenueConfigID == "" {
		return ErrVenueConfigIDRequired
	}
	if e.MaxPeople <= 0 {
		return ErrInvalidMaxPeople
	}
	return nil
}
