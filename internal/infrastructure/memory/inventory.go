package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepository)(nil)

// InventoryItemRepository implementación en memoria de repository.InventoryItemRepository.
// Las variantes ForUpdate no bloquean filas individuales: dentro de un TxRunner el lock del store
// ya serializa toda la unidad de trabajo.
type InventoryItemRepository struct {
	x *session
}

func (r *InventoryItemRepository) Create(_ context.Context, item *entity.InventoryItem) error {
	if item.Quantity.IsNegative() {
		return domain.ErrInvalidInput
	}
	return r.x.do(func() error {
		if _, ok := r.x.s.items[item.ID]; ok {
			return domain.ErrDuplicate
		}
		r.x.s.items[item.ID] = &itemRow{item: cloneItem(item), seq: r.x.s.nextSeq()}
		r.x.onRollback(func() { delete(r.x.s.items, item.ID) })
		return nil
	})
}

func (r *InventoryItemRepository) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.x.do(func() error {
		if row, ok := r.x.s.items[id]; ok {
			out = cloneItem(row.item)
		}
		return nil
	})
	return out, err
}

func (r *InventoryItemRepository) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryItemRepository) SumBySpeciesAndState(_ context.Context, speciesID, state string) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.x.do(func() error {
		for _, row := range r.x.s.items {
			if row.item.SpeciesID == speciesID && row.item.State == state {
				sum = sum.Add(row.item.Quantity)
			}
		}
		return nil
	})
	return sum, err
}

func (r *InventoryItemRepository) ListForUpdateBySpecies(_ context.Context, speciesID string, states ...string) ([]*entity.InventoryItem, error) {
	var rows []*itemRow
	err := r.x.do(func() error {
		for _, row := range r.x.s.items {
			if row.item.SpeciesID != speciesID || !containsState(states, row.item.State) {
				continue
			}
			rows = append(rows, &itemRow{item: cloneItem(row.item), seq: row.seq})
		}
		return nil
	})
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.item.UpdatedAt.Equal(b.item.UpdatedAt) {
			return a.item.UpdatedAt.After(b.item.UpdatedAt)
		}
		return a.seq > b.seq
	})
	out := make([]*entity.InventoryItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.item)
	}
	return out, err
}

func (r *InventoryItemRepository) SpeciesWithStock(_ context.Context, state string) ([]string, error) {
	seen := make(map[string]struct{})
	err := r.x.do(func() error {
		for _, row := range r.x.s.items {
			if row.item.State == state && row.item.Quantity.IsPositive() {
				seen[row.item.SpeciesID] = struct{}{}
			}
		}
		return nil
	})
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, err
}

func (r *InventoryItemRepository) UpdateQuantity(_ context.Context, id string, quantity decimal.Decimal, updatedAt time.Time) error {
	if quantity.IsNegative() {
		return domain.ErrInvalidInput
	}
	return r.x.do(func() error {
		row, ok := r.x.s.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		prev, prevSeq := *row.item, row.seq
		row.item.Quantity = quantity
		row.item.UpdatedAt = updatedAt
		row.seq = r.x.s.nextSeq()
		r.x.onRollback(func() { *row.item, row.seq = prev, prevSeq })
		return nil
	})
}

func (r *InventoryItemRepository) UpdateState(_ context.Context, id, state string, quantity decimal.Decimal, updatedAt time.Time) error {
	if quantity.IsNegative() {
		return domain.ErrInvalidInput
	}
	return r.x.do(func() error {
		row, ok := r.x.s.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		prev, prevSeq := *row.item, row.seq
		row.item.State = state
		row.item.Quantity = quantity
		row.item.UpdatedAt = updatedAt
		row.seq = r.x.s.nextSeq()
		r.x.onRollback(func() { *row.item, row.seq = prev, prevSeq })
		return nil
	})
}

func containsState(states []string, state string) bool {
	if len(states) == 0 {
		return true
	}
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}
