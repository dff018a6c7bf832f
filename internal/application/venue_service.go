package application

import (
	"context"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/event"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/venue"
)

// VenueService は会場と会場構成の管理を担うサービス
type VenueService struct {
	venueRepo  venue.Repository
	configRepo venue.ConfigurationRepository
	eventRepo  event.Repository
}

func NewVenueService(
	vr venue.Repository,
	cr venue.ConfigurationRepository,
	er event.Repository,
) *VenueService {
	return &VenueService{venueRepo: vr, configRepo: cr, eventRepo: er}
}

type CreateVenueInput struct {
	OwnerID   string
	Name      string
	MaxPeople int
}

// CreateVenue は新しい会場を作成する
func (s *VenueService) CreateVenue(ctx context.Context, input CreateVenueInput) (*venue.Venue, error) {
	v := venue.NewVenue(input.OwnerID, input.Name, input.MaxPeople)
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if err := s.venueRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// GetVenue はIDから会場を取得する
func (s *VenueService) GetVenue(ctx context.Context, id string) (*venue.Venue, error) {
	return s.venueRepo.GetByID(ctx, id)
}

// GetAllVenuesByOwner はオーナーの会場一覧を取得する
func (s *VenueService) GetAllVenuesByOwner(ctx context.Context, ownerID string) ([]*venue.Venue, error) {
	if ownerID == "" {
		return nil, venue.ErrOwnerIDRequired
	}
	return s.venueRepo.GetByOwnerID(ctx, ownerID)
}

type UpdateVenueInput struct {
	ID        string
	Name      string
	MaxPeople int
}

// UpdateVenue は会場の名前・収容人数を更新する
func (s *VenueService) UpdateVenue(ctx context.Context, input UpdateVenueInput) (*venue.Venue, error) {
	v, err := s.venueRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	v.Name = input.Name
	v.MaxPeople = input.MaxPeople
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if err := s.venueRepo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteVenue は会場を削除する
// 会場構成が1つでも残っている間は削除できない
func (s *VenueService) DeleteVenue(ctx context.Context, id string) error {
	if _, err := s.venueRepo.GetByID(ctx, id); err != nil {
		return err
	}
	count, err := s.configRepo.CountByVenueID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return venue.ErrVenueHasConfigurations
	}
	return s.venueRepo.Delete(ctx, id)
}

type CreateVenueConfigurationInput struct {
	VenueID   string
	Name      string
	MaxPeople int
}

// CreateVenueConfiguration は新しい会場構成を作成する
// 作成直後は利用不可の状態で、レイアウト編集後に利用可能へ切り替える
func (s *VenueService) CreateVenueConfiguration(ctx context.Context, input CreateVenueConfigurationInput) (*venue.Configuration, error) {
	if _, err := s.venueRepo.GetByID(ctx, input.VenueID); err != nil {
		return nil, err
	}
	c := venue.NewConfiguration(input.VenueID, input.Name, input.MaxPeople)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.configRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetVenueConfiguration はIDから会場構成を取得する
func (s *VenueService) GetVenueConfiguration(ctx context.Context, id string) (*venue.Configuration, error) {
	return s.configRepo.GetByID(ctx, id)
}

// GetVenueConfigurations は会場に属する構成一覧を取得する
func (s *VenueService) GetVenueConfigurations(ctx context.Context, venueID string) ([]*venue.Configuration, error) {
	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		return nil, err
	}
	return s.configRepo.GetByVenueID(ctx, venueID)
}

type UpdateVenueConfigurationInput struct {
	ID        string
	Name      string
	MaxPeople int
}

// UpdateVenueConfiguration は会場構成の名前・収容人数を更新する
func (s *VenueService) UpdateVenueConfiguration(ctx context.Context, input UpdateVenueConfigurationInput) (*venue.Configuration, error) {
	c, err := s.configRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	c.Name = input.Name
	c.MaxPeople = input.MaxPeople
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.configRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateVenueConfigurationAvailability は会場構成の利用可否を切り替える
// 販売中のイベントが参照している間は利用不可へ戻せない
func (s *VenueService) UpdateVenueConfigurationAvailability(ctx context.Context, id string, available bool) (*venue.Configuration, error) {
	c, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Available == available {
		return c, nil
	}
	if !available {
		onSale, err := s.eventRepo.CountOnSaleByVenueConfigID(ctx, id)
		if err != nil {
			return nil, err
		}
		if onSale > 0 {
			return nil, venue.ErrConfigurationInUse
		}
	}
	c.Available = available
	if err := s.configRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteVenueConfiguration は会場構成を削除する
// 利用可能な構成、およびイベントが参照している構成は削除できない
func (s *VenueService) DeleteVenueConfiguration(ctx context.Context, id string) error {
	c, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.Available {
		return venue.ErrConfigurationStillAvailable
	}
	count, err := s.eventRepo.CountByVenueConfigID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return venue.ErrConfigurationInUse
	}
	return s.configRepo.Delete(ctx, id)
}
