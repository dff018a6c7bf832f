package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/venue"
)

type venueRow struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	MaxPeople int       `db:"max_people"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *venueRow) toEntity() *venue.Venue {
	return &venue.Venue{
		ID: r.ID, OwnerID: r.OwnerID, Name: r.Name, MaxPeople: r.MaxPeople,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type VenueRepository struct{ db *sqlx.DB }

func NewVenueRepository(db *sqlx.DB) *VenueRepository { return &VenueRepository{db: db} }

func (r *VenueRepository) Create(ctx context.Context, v *venue.Venue) error {
	query := `INSERT INTO venues (owner_id, name, max_people, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, v.OwnerID, v.Name, v.MaxPeople, v.CreatedAt, v.UpdatedAt).Scan(&v.ID); err != nil {
		return fmt.Errorf("会場作成に失敗: %w", err)
	}
	return nil
}

func (r *VenueRepository) GetByID(ctx context.Context, id string) (*venue.Venue, error) {
	var row venueRow
	query := `SELECT id, owner_id, name, max_people, created_at, updated_at FROM venues WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, venue.ErrVenueNotFound
		}
		return nil, fmt.Errorf("会場取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *VenueRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*venue.Venue, error) {
	var rows []venueRow
	query := `SELECT id, owner_id, name, max_people, created_at, updated_at FROM venues WHERE owner_id = $1 ORDER BY name, id`
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("会場一覧取得に失敗: %w", err)
	}
	venues := make([]*venue.Venue, len(rows))
	for i, row := range rows {
		venues[i] = row.toEntity()
	}
	return venues, nil
}

func (r *VenueRepository) Update(ctx context.Context, v *venue.Venue) error {
	query := `UPDATE venues SET name = $1, max_people = $2, updated_at = NOW() WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, v.Name, v.MaxPeople, v.ID)
	if err != nil {
		return fmt.Errorf("会場更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return venue.ErrVenueNotFound
	}
	return nil
}

func (r *VenueRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("会場削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return venue.ErrVenueNotFound
	}
	return nil
}

var _ venue.Repository = (*VenueRepository)(nil)

type configurationRow struct {
	ID        string    `db:"id"`
	VenueID   string    `db:"venue_id"`
	Name      string    `db:"name"`
	MaxPeople int       `db:"max_people"`
	Available bool      `db:"available"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *configurationRow) toEntity() *venue.Configuration {
	return &venue.Configuration{
		ID: r.ID, VenueID: r.VenueID, Name: r.Name, MaxPeople: r.MaxPeople,
		Available: r.Available, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type ConfigurationRepository struct{ db *sqlx.DB }

func NewConfigurationRepository(db *sqlx.DB) *ConfigurationRepository {
	return &ConfigurationRepository{db: db}
}

func (r *ConfigurationRepository) Create(ctx context.Context, c *venue.Configuration) error {
	query := `INSERT INTO venue_configurations (venue_id, name, max_people, available, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, c.VenueID, c.Name, c.MaxPeople, c.Available, c.CreatedAt, c.UpdatedAt).Scan(&c.ID); err != nil {
		return fmt.Errorf("会場構成作成に失敗: %w", err)
	}
	return nil
}

func (r *ConfigurationRepository) GetByID(ctx context.Context, id string) (*venue.Configuration, error) {
	var row configurationRow
	query := `SELECT id, venue_id, name, max_people, available, created_at, updated_at FROM venue_configurations WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, venue.ErrConfigurationNotFound
		}
		return nil, fmt.Errorf("会場構成取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *ConfigurationRepository) GetByVenueID(ctx context.Context, venueID string) ([]*venue.Configuration, error) {
	var rows []configurationRow
	query := `SELECT id, venue_id, name, max_people, available, created_at, updated_at FROM venue_configurations WHERE venue_id = $1 ORDER BY name, id`
	if err := r.db.SelectContext(ctx, &rows, query, venueID); err != nil {
		return nil, fmt.Errorf("会場構成一覧取得に失敗: %w", err)
	}
	configs := make([]*venue.Configuration, len(rows))
	for i, row := range rows {
		configs[i] = row.toEntity()
	}
	return configs, nil
}

func (r *ConfigurationRepository) CountByVenueID(ctx context.Context, venueID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM venue_configurations WHERE venue_id = $1`, venueID)
	return count, err
}

func (r *ConfigurationRepository) Update(ctx context.Context, c *venue.Configuration) error {
	query := `UPDATE venue_configurations SET name = $1, max_people = $2, available = $3, updated_at = NOW() WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, c.Name, c.MaxPeople, c.Available, c.ID)
	if err != nil {
		return fmt.Errorf("会場構成更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return venue.ErrConfigurationNotFound
	}
	return nil
}

func (r *ConfigurationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM venue_configurations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("会場構成削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return venue.ErrConfigurationNotFound
	}
	return nil
}

var _ venue.ConfigurationRepository = (*ConfigurationRepository)(nil)
