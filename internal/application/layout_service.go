package application

import (
	"context"
	"encoding/json"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/layout"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/venue"
)

// LayoutService は座席・テーブルのレイアウト編集を担うサービス
// レイアウト変更は利用不可の会場構成に対してのみ行える
type LayoutService struct {
	seatRepo   layout.SeatRepository
	tableRepo  layout.TableRepository
	configRepo venue.ConfigurationRepository
}

func NewLayoutService(
	sr layout.SeatRepository,
	tr layout.TableRepository,
	cr venue.ConfigurationRepository,
) *LayoutService {
	return &LayoutService{seatRepo: sr, tableRepo: tr, configRepo: cr}
}

// editableConfig はレイアウト編集可能な会場構成を取得する
func (s *LayoutService) editableConfig(ctx context.Context, venueConfigID string) (*venue.Configuration, error) {
	c, err := s.configRepo.GetByID(ctx, venueConfigID)
	if err != nil {
		return nil, err
	}
	if c.Available {
		return nil, venue.ErrConfigurationStillAvailable
	}
	return c, nil
}

// validateNextTo は隣接指定がすべて同じ会場構成内の既存座席を指すか検証する
func (s *LayoutService) validateNextTo(ctx context.Context, venueConfigID, selfID string, nextTo []string) error {
	for _, id := range nextTo {
		if id == selfID {
			return layout.ErrSeatNotInConfiguration
		}
		other, err := s.seatRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if other.VenueConfigID != venueConfigID {
			return layout.ErrSeatNotInConfiguration
		}
	}
	return nil
}

// validateTableRef はテーブル指定が同じ会場構成内の既存テーブルを指すか検証する
func (s *LayoutService) validateTableRef(ctx context.Context, venueConfigID string, tableID *string) error {
	if tableID == nil {
		return nil
	}
	t, err := s.tableRepo.GetByID(ctx, *tableID)
	if err != nil {
		return err
	}
	if t.VenueConfigID != venueConfigID {
		return layout.ErrTableNotInConfiguration
	}
	return nil
}

type CreateSeatInput struct {
	VenueConfigID string
	Name          string
	SeatClass     string
	NextTo        []string
	TableID       *string
	Geometry      json.RawMessage
}

// CreateSeat は座席を作成する
// 隣接指定は対称関係として保存される
func (s *LayoutService) CreateSeat(ctx context.Context, input CreateSeatInput) (*layout.Seat, error) {
	if _, err := s.editableConfig(ctx, input.VenueConfigID); err != nil {
		return nil, err
	}
	seat := layout.NewSeat(input.VenueConfigID, input.Name, input.SeatClass, input.NextTo, input.TableID, input.Geometry)
	if err := seat.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateNextTo(ctx, input.VenueConfigID, "", input.NextTo); err != nil {
		return nil, err
	}
	if err := s.validateTableRef(ctx, input.VenueConfigID, input.TableID); err != nil {
		return nil, err
	}
	if err := s.seatRepo.Create(ctx, seat); err != nil {
		return nil, err
	}
	return seat, nil
}

// GetSeat はIDから座席を取得する
func (s *LayoutService) GetSeat(ctx context.Context, id string) (*layout.Seat, error) {
	return s.seatRepo.GetByID(ctx, id)
}

// GetSeatsForConfiguration は会場構成の座席一覧を取得する
func (s *LayoutService) GetSeatsForConfiguration(ctx context.Context, venueConfigID string) ([]*layout.Seat, error) {
	if _, err := s.configRepo.GetByID(ctx, venueConfigID); err != nil {
		return nil, err
	}
	return s.seatRepo.GetByVenueConfigID(ctx, venueConfigID)
}

type UpdateSeatInput struct {
	ID        string
	Name      string
	SeatClass string
	NextTo    []string
	TableID   *string
	Geometry  json.RawMessage
}

// UpdateSeat は座席を更新する
// 隣接関係は渡された内容で置き換わる
func (s *LayoutService) UpdateSeat(ctx context.Context, input UpdateSeatInput) (*layout.Seat, error) {
	seat, err := s.seatRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.editableConfig(ctx, seat.VenueConfigID); err != nil {
		return nil, err
	}
	seat.Name = input.Name
	seat.SeatClass = input.SeatClass
	seat.NextTo = input.NextTo
	seat.TableID = input.TableID
	seat.Geometry = input.Geometry
	if err := seat.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateNextTo(ctx, seat.VenueConfigID, seat.ID, input.NextTo); err != nil {
		return nil, err
	}
	if err := s.validateTableRef(ctx, seat.VenueConfigID, input.TableID); err != nil {
		return nil, err
	}
	if err := s.seatRepo.Update(ctx, seat); err != nil {
		return nil, err
	}
	return seat, nil
}

// DeleteSeat は座席を削除する
func (s *LayoutService) DeleteSeat(ctx context.Context, id string) error {
	seat, err := s.seatRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.editableConfig(ctx, seat.VenueConfigID); err != nil {
		return err
	}
	return s.seatRepo.Delete(ctx, id)
}

type CreateTableInput struct {
	VenueConfigID string
	MinSeats      int
	MaxSeats      int
	Geometry      json.RawMessage
}

// CreateTable はテーブルを作成する
func (s *LayoutService) CreateTable(ctx context.Context, input CreateTableInput) (*layout.Table, error) {
	if _, err := s.editableConfig(ctx, input.VenueConfigID); err != nil {
		return nil, err
	}
	t := layout.NewTable(input.VenueConfigID, input.MinSeats, input.MaxSeats, input.Geometry)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.tableRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTable はIDからテーブルを取得する
func (s *LayoutService) GetTable(ctx context.Context, id string) (*layout.Table, error) {
	return s.tableRepo.GetByID(ctx, id)
}

// GetTablesForConfiguration は会場構成のテーブル一覧を取得する
func (s *LayoutService) GetTablesForConfiguration(ctx context.Context, venueConfigID string) ([]*layout.Table, error) {
	if _, err := s.configRepo.GetByID(ctx, venueConfigID); err != nil {
		return nil, err
	}
	return s.tableRepo.GetByVenueConfigID(ctx, venueConfigID)
}

type UpdateTableInput struct {
	ID       string
	MinSeats int
	MaxSeats int
	Geometry json.RawMessage
}

// UpdateTable はテーブルを更新する
func (s *LayoutService) UpdateTable(ctx context.Context, input UpdateTableInput) (*layout.Table, error) {
	t, err := s.tableRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.editableConfig(ctx, t.VenueConfigID); err != nil {
		return nil, err
	}
	t.MinSeats = input.MinSeats
	t.MaxSeats = input.MaxSeats
	t.Geometry = input.Geometry
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.tableRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTable はテーブルを削除する
// 座席が参照している間は削除できない
func (s *LayoutService) DeleteTable(ctx context.Context, id string) error {
	t, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.editableConfig(ctx, t.VenueConfigID); err != nil {
		return err
	}
	seats, err := s.seatRepo.GetByVenueConfigID(ctx, t.VenueConfigID)
	if err != nil {
		return err
	}
	for _, seat := range seats {
		if seat.TableID != nil && *seat.TableID == t.ID {
			return layout.ErrTableInUse
		}
	}
	return s.tableRepo.Delete(ctx, id)
}
