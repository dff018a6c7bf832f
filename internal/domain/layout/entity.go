package layout

import (
	"encoding/json"
	"time"
)

// Seat は座席エンティティを表す
// NextTo は同じ会場構成内で隣接する座席のID集合（対称関係）
type Seat struct {
	ID            string
	VenueConfigID string
	Name          string
	SeatClass     string
	NextTo        []string
	TableID       *string
	Geometry      json.RawMessage
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewSeat は新しい座席を作成する
func NewSeat(venueConfigID, name, seatClass string, nextTo []string, tableID *string, geometry json.RawMessage) *Seat {
	now := time.Now()
	return &Seat{
		VenueConfigID: venueConfigID,
		Name:          name,
		SeatClass:     seatClass,
		NextTo:        nextTo,
		TableID:       tableID,
		Geometry:      geometry,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate は座席の検証を行う
func (s *Seat) Validate() error {
	if s.VenueConfigID == "" {
		return ErrVenueConfigIDRequired
	}
	if s.Name == "" {
		return ErrSeatNameRequired
	}
	if s.SeatClass == "" {
		return ErrSeatClassRequired
	}
	if len(s.Geometry) > 0 && !json.Valid(s.Geometry) {
		return ErrInvalidGeometry
	}
	return nil
}

// Table はテーブルエンティティを表す
// テーブル席の予約人数は MinSeats 以上 MaxSeats 以下
type Table struct {
	ID            string
	VenueConfigID string
	MinSeats      int
	MaxSeats      int
	Geometry      json.RawMessage
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewTable は新しいテーブルを作成する
func NewTable(venueConfigID string, minSeats, maxSeats int, geometry json.RawMessage) *Table {
	now := time.Now()
	return &Table{
		VenueConfigID: venueConfigID,
		MinSeats:      minSeats,
		MaxSeats:      maxSeats,
		Geometry:      geometry,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate はテーブルの検証を行う
func (t *Table) Validate() error {
	if t.VenueConfigID == "" {
		return ErrVenueConfigIDRequired
	}
	if t.MinSeats < 1 || t.MaxSeats < t.MinSeats {
		return ErrInvalidTableSize
	}
	if len(t.Geometry) > 0 && !json.Valid(t.Geometry) {
		return ErrInvalidGeometry
	}
	return nil
}

// FitsParty は人数がテーブルの許容範囲内かを返す
func (t *Table) FitsParty(partySize int) bool {
	return partySize >= t.MinSeats && partySize <= t.MaxSeats
}
