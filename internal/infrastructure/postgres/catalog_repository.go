package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.SpeciesRepository = (*SpeciesRepo)(nil)
	_ repository.ZoneRepository    = (*ZoneRepo)(nil)
	_ repository.BatchRepository   = (*BatchRepo)(nil)
)

// SpeciesRepo implementación de SpeciesRepository sobre PostgreSQL.
type SpeciesRepo struct {
	q Querier
}

// NewSpeciesRepository construye el adaptador de especies.
func NewSpeciesRepository(q Querier) *SpeciesRepo {
	return &SpeciesRepo{q: q}
}

// Create persiste una especie.
func (r *SpeciesRepo) Create(ctx context.Context, sp *entity.Species) error {
	query := `INSERT INTO species (id, name, conversion_factor, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, sp.ID, sp.Name, sp.ConversionFactor, sp.CreatedAt); err != nil {
		return insertError("insert species", err)
	}
	return nil
}

// GetByID obtiene una especie (nil si no existe).
func (r *SpeciesRepo) GetByID(ctx context.Context, id string) (*entity.Species, error) {
	query := `SELECT id, name, conversion_factor, created_at FROM species WHERE id = $1`
	var sp entity.Species
	err := r.q.QueryRow(ctx, query, id).Scan(&sp.ID, &sp.Name, &sp.ConversionFactor, &sp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get species: %w", err)
	}
	return &sp, nil
}

// List lista las especies por nombre.
func (r *SpeciesRepo) List(ctx context.Context) ([]*entity.Species, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, conversion_factor, created_at FROM species ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}
	defer rows.Close()
	var out []*entity.Species
	for rows.Next() {
		var sp entity.Species
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.ConversionFactor, &sp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan species: %w", err)
		}
		out = append(out, &sp)
	}
	return out, rows.Err()
}

// Delete elimina una especie; ErrConflict si está referenciada (ON DELETE RESTRICT).
func (r *SpeciesRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM species WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete species", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ZoneRepo implementación de ZoneRepository sobre PostgreSQL.
type ZoneRepo struct {
	q Querier
}

// NewZoneRepository construye el adaptador de zonas.
func NewZoneRepository(q Querier) *ZoneRepo {
	return &ZoneRepo{q: q}
}

// Create persiste una zona.
func (r *ZoneRepo) Create(ctx context.Context, z *entity.Zone) error {
	query := `INSERT INTO zones (id, name, location, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, z.ID, z.Name, z.Location, z.CreatedAt); err != nil {
		return insertError("insert zone", err)
	}
	return nil
}

// GetByID obtiene una zona (nil si no existe).
func (r *ZoneRepo) GetByID(ctx context.Context, id string) (*entity.Zone, error) {
	var z entity.Zone
	err := r.q.QueryRow(ctx, `SELECT id, name, location, created_at FROM zones WHERE id = $1`, id).
		Scan(&z.ID, &z.Name, &z.Location, &z.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get zone: %w", err)
	}
	return &z, nil
}

// List lista las zonas por nombre.
func (r *ZoneRepo) List(ctx context.Context) ([]*entity.Zone, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, location, created_at FROM zones ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()
	var out []*entity.Zone
	for rows.Next() {
		var z entity.Zone
		if err := rows.Scan(&z.ID, &z.Name, &z.Location, &z.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		out = append(out, &z)
	}
	return out, rows.Err()
}

// Delete elimina una zona; ErrConflict si está referenciada.
func (r *ZoneRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM zones WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete zone", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// BatchRepo implementación de BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes.
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (id, species_id, zone_id, initial_wet_mass, final_dry_mass, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, b.ID, b.SpeciesID, b.ZoneID, b.InitialWetMass, b.FinalDryMass, b.RegisteredAt); err != nil {
		return insertError("insert batch", err)
	}
	return nil
}

// GetByID obtiene un lote (nil si no existe).
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `
		SELECT id, species_id, zone_id, initial_wet_mass, final_dry_mass, registered_at
		FROM batches WHERE id = $1`
	var b entity.Batch
	var dry decimal.NullDecimal
	err := r.q.QueryRow(ctx, query, id).Scan(&b.ID, &b.SpeciesID, &b.ZoneID, &b.InitialWetMass, &dry, &b.RegisteredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	if dry.Valid {
		b.FinalDryMass = &dry.Decimal
	}
	return &b, nil
}

// SetFinalDryMass registra la masa seca obtenida al terminar el secado.
func (r *BatchRepo) SetFinalDryMass(ctx context.Context, id string, dryMass decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE batches SET final_dry_mass = $2 WHERE id = $1`, id, dryMass)
	if err != nil {
		return updateError("update batch", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
