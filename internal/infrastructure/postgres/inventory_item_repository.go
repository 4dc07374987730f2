package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, batch_id, species_id, zone_id, quantity, state, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	if err := row.Scan(&it.ID, &it.BatchID, &it.SpeciesID, &it.ZoneID, &it.Quantity, &it.State, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un item de inventario.
func (r *InventoryItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	query := `INSERT INTO inventory_items (` + itemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, it.ID, it.BatchID, it.SpeciesID, it.ZoneID, it.Quantity, it.State, it.UpdatedAt)
	if err != nil {
		return insertError("insert inventory item", err)
	}
	return nil
}

// GetByID obtiene un item (nil si no existe).
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetForUpdate obtiene el item y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryItemRepo) getOne(ctx context.Context, query, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// SumBySpeciesAndState suma la cantidad de la especie en el estado dado.
func (r *InventoryItemRepo) SumBySpeciesAndState(ctx context.Context, speciesID, state string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(quantity), 0) FROM inventory_items WHERE species_id = $1 AND state = $2`
	if err := r.q.QueryRow(ctx, query, speciesID, state).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum inventory: %w", err)
	}
	return sum, nil
}

// ListForUpdateBySpecies bloquea los items de la especie en los estados dados, más reciente primero.
func (r *InventoryItemRepo) ListForUpdateBySpecies(ctx context.Context, speciesID string, states ...string) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE species_id = $1 AND state = ANY($2)
		ORDER BY updated_at DESC, id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, speciesID, states)
	if err != nil {
		return nil, fmt.Errorf("lock inventory items: %w", err)
	}
	defer rows.Close()
	var out []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// SpeciesWithStock IDs de especies con cantidad positiva en el estado dado.
func (r *InventoryItemRepo) SpeciesWithStock(ctx context.Context, state string) ([]string, error) {
	query := `SELECT DISTINCT species_id FROM inventory_items WHERE state = $1 AND quantity > 0 ORDER BY species_id`
	rows, err := r.q.Query(ctx, query, state)
	if err != nil {
		return nil, fmt.Errorf("species with stock: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan species id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// UpdateQuantity fija la cantidad del item. El CHECK quantity >= 0 rechaza negativos.
func (r *InventoryItemRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE inventory_items SET quantity = $2, updated_at = $3 WHERE id = $1`, id, quantity, updatedAt)
	if err != nil {
		return updateError("update inventory quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateState cambia estado y cantidad del item (transiciones de secado).
func (r *InventoryItemRepo) UpdateState(ctx context.Context, id, state string, quantity decimal.Decimal, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET state = $2, quantity = $3, updated_at = $4 WHERE id = $1`,
		id, state, quantity, updatedAt)
	if err != nil {
		return updateError("update inventory state", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
