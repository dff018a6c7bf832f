package venue

import "time"

// Venue は会場エンティティを表す
type Venue struct {
	ID        string
	OwnerID   string
	Name      string
	MaxPeople int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewVenue は新しい会場を作成する
func NewVenue(ownerID, name string, maxPeople int) *Venue {
	now := time.Now()
	return &Venue{
		OwnerID:   ownerID,
		Name:      name,
		MaxPeople: maxPeople,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate は会場の検証を行う
func (v *Venue) Validate() error {
	if v.OwnerID == "" {
		return ErrOwnerIDRequired
	}
	if v.Name == "" {
		return ErrVenueNameRequired
	}
	if v.MaxPeople <= 0 {
		return ErrInvalidMaxPeople
	}
	return nil
}

// Configuration は会場の座席レイアウト構成を表す
// 同じ会場でも構成ごとに座席配置・収容人数が異なる
type Configuration struct {
	ID        string
	VenueID   string
	Name      string
	MaxPeople int
	Available bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewConfiguration は新しい会場構成を作成する
// 作成直後は利用不可（レイアウト編集中）の状態
func NewConfiguration(venueID, name string, maxPeople int) *Configuration {
	now := time.Now()
	return &Configuration{
		VenueID:   venueID,
		Name:      name,
		MaxPeople: maxPeople,
		Available: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate は会場構成の検証を行う
func (c *Configuration) Validate() error {
	if c.VenueID == "" {
		return ErrVenueIDRequired
	}
	if c.Name == "" {
		return ErrConfigurationNameRequired
	}
	if c.MaxPeople <= 0 {
		return ErrInvalidMaxPeople
	}
	return nil
}
