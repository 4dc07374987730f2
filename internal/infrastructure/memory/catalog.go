package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.SpeciesRepository = (*SpeciesRepository)(nil)
	_ repository.ZoneRepository    = (*ZoneRepository)(nil)
	_ repository.BatchRepository   = (*BatchRepository)(nil)
	_ repository.UserRepository    = (*UserRepository)(nil)
)

// SpeciesRepository implementación en memoria de repository.SpeciesRepository.
type SpeciesRepository struct {
	x *session
}

func (r *SpeciesRepository) Create(_ context.Context, sp *entity.Species) error {
	return r.x.do(func() error {
		if _, ok := r.x.s.species[sp.ID]; ok {
			return domain.ErrDuplicate
		}
		r.x.s.species[sp.ID] = cloneSpecies(sp)
		r.x.onRollback(func() { delete(r.x.s.species, sp.ID) })
		return nil
	})
}

func (r *SpeciesRepository) GetByID(_ context.Context, id string) (*entity.Species, error) {
	var out *entity.Species
	err := r.x.do(func() error {
		if v, ok := r.x.s.species[id]; ok {
			out = cloneSpecies(v)
		}
		return nil
	})
	return out, err
}

func (r *SpeciesRepository) List(_ context.Context) ([]*entity.Species, error) {
	var out []*entity.Species
	err := r.x.do(func() error {
		for _, v := range r.x.s.species {
			out = append(out, cloneSpecies(v))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *SpeciesRepository) Delete(_ context.Context, id string) error {
	return r.x.do(func() error {
		sp, ok := r.x.s.species[id]
		if !ok {
			return domain.ErrNotFound
		}
		if r.x.s.speciesReferenced(id) {
			return domain.ErrConflict
		}
		delete(r.x.s.species, id)
		r.x.onRollback(func() { r.x.s.species[id] = sp })
		return nil
	})
}

func (s *Store) speciesReferenced(id string) bool {
	for _, b := range s.batches {
		if b.SpeciesID == id {
			return true
		}
	}
	for _, row := range s.items {
		if row.item.SpeciesID == id {
			return true
		}
	}
	for _, l := range s.lines {
		if l.SpeciesID == id {
			return true
		}
	}
	for _, f := range s.forecasts {
		if f.SpeciesID == id {
			return true
		}
	}
	return false
}

// ZoneRepository implementación en memoria de repository.ZoneRepository.
type ZoneRepository struct {
	x *session
}

func (r *ZoneRepository) Create(_ context.Context, z *entity.Zone) error {
	return r.x.do(func() error {
		if _, ok := r.x.s.zones[z.ID]; ok {
			return domain.ErrDuplicate
		}
		r.x.s.zones[z.ID] = cloneZone(z)
		r.x.onRollback(func() { delete(r.x.s.zones, z.ID) })
		return nil
	})
}

func (r *ZoneRepository) GetByID(_ context.Context, id string) (*entity.Zone, error) {
	var out *entity.Zone
	err := r.x.do(func() error {
		if v, ok := r.x.s.zones[id]; ok {
			out = cloneZone(v)
		}
		return nil
	})
	return out, err
}

func (r *ZoneRepository) List(_ context.Context) ([]*entity.Zone, error) {
	var out []*entity.Zone
	err := r.x.do(func() error {
		for _, v := range r.x.s.zones {
			out = append(out, cloneZone(v))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *ZoneRepository) Delete(_ context.Context, id string) error {
	return r.x.do(func() error {
		z, ok := r.x.s.zones[id]
		if !ok {
			return domain.ErrNotFound
		}
		for _, b := range r.x.s.batches {
			if b.ZoneID == id {
				return domain.ErrConflict
			}
		}
		for _, row := range r.x.s.items {
			if row.item.ZoneID == id {
				return domain.ErrConflict
			}
		}
		delete(r.x.s.zones, id)
		r.x.onRollback(func() { r.x.s.zones[id] = z })
		return nil
	})
}

// BatchRepository implementación en memoria de repository.BatchRepository.
type BatchRepository struct {
	x *session
}

func (r *BatchRepository) Create(_ context.Context, b *entity.Batch) error {
	return r.x.do(func() error {
		if _, ok := r.x.s.batches[b.ID]; ok {
			return domain.ErrDuplicate
		}
		r.x.s.batches[b.ID] = cloneBatch(b)
		r.x.onRollback(func() { delete(r.x.s.batches, b.ID) })
		return nil
	})
}

func (r *BatchRepository) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	var out *entity.Batch
	err := r.x.do(func() error {
		if v, ok := r.x.s.batches[id]; ok {
			out = cloneBatch(v)
		}
		return nil
	})
	return out, err
}

func (r *BatchRepository) SetFinalDryMass(_ context.Context, id string, dryMass decimal.Decimal) error {
	return r.x.do(func() error {
		b, ok := r.x.s.batches[id]
		if !ok {
			return domain.ErrNotFound
		}
		prev := b.FinalDryMass
		m := dryMass
		b.FinalDryMass = &m
		r.x.onRollback(func() { b.FinalDryMass = prev })
		return nil
	})
}

// UserRepository implementación en memoria de repository.UserRepository.
type UserRepository struct {
	x *session
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	return r.x.do(func() error {
		if _, ok := r.x.s.users[u.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, existing := range r.x.s.users {
			if existing.Username == u.Username {
				return domain.ErrDuplicate
			}
		}
		r.x.s.users[u.ID] = cloneUser(u)
		r.x.onRollback(func() { delete(r.x.s.users, u.ID) })
		return nil
	})
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.x.do(func() error {
		if v, ok := r.x.s.users[id]; ok {
			out = cloneUser(v)
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.x.do(func() error {
		for _, v := range r.x.s.users {
			if v.Username == username {
				out = cloneUser(v)
				break
			}
		}
		return nil
	})
	return out, err
}
