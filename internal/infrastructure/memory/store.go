// Package memory implementa los puertos de persistencia en proceso, con el mismo contrato de
// atomicidad que el adaptador postgres: TxRunner serializa las unidades de trabajo y deshace
// todas las escrituras si la función devuelve error.
package memory

import (
	"sync"

	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
)

type itemRow struct {
	item *entity.InventoryItem
	seq  int64 // desempate de UpdatedAt: mayor = tocado más recientemente
}

// Store datos en memoria compartidos por todos los repositorios.
type Store struct {
	mu sync.Mutex

	species      map[string]*entity.Species
	zones        map[string]*entity.Zone
	batches      map[string]*entity.Batch
	items        map[string]*itemRow
	forecasts    []*entity.CapacityForecast
	orders       map[string]*entity.Order
	lines        map[string]*entity.OrderLine
	reservations []*entity.Reservation
	alerts       []*entity.Alert
	weather      map[string]*entity.WeatherReading
	users        map[string]*entity.User

	seq int64
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		species: make(map[string]*entity.Species),
		zones:   make(map[string]*entity.Zone),
		batches: make(map[string]*entity.Batch),
		items:   make(map[string]*itemRow),
		orders:  make(map[string]*entity.Order),
		lines:   make(map[string]*entity.OrderLine),
		weather: make(map[string]*entity.WeatherReading),
		users:   make(map[string]*entity.User),
	}
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// session agrupa las operaciones de un repositorio. Fuera de una transacción cada operación toma
// el lock del store; dentro, el lock ya lo tiene el TxRunner y se registran las acciones de deshacer.
type session struct {
	s    *Store
	inTx bool
	undo []func()
}

func (x *session) do(fn func() error) error {
	if !x.inTx {
		x.s.mu.Lock()
		defer x.s.mu.Unlock()
	}
	return fn()
}

func (x *session) onRollback(fn func()) {
	if x.inTx {
		x.undo = append(x.undo, fn)
	}
}

func (x *session) rollback() {
	for i := len(x.undo) - 1; i >= 0; i-- {
		x.undo[i]()
	}
	x.undo = nil
}

func (s *Store) session() *session { return &session{s: s} }

// Repositorios fuera de transacción.

func (s *Store) Species() *SpeciesRepository { return &SpeciesRepository{x: s.session()} }

func (s *Store) Zones() *ZoneRepository { return &ZoneRepository{x: s.session()} }

func (s *Store) Batches() *BatchRepository { return &BatchRepository{x: s.session()} }

func (s *Store) Items() *InventoryItemRepository { return &InventoryItemRepository{x: s.session()} }

func (s *Store) Forecasts() *ForecastRepository { return &ForecastRepository{x: s.session()} }

func (s *Store) Orders() *OrderRepository { return &OrderRepository{x: s.session()} }

func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{x: s.session()}
}

func (s *Store) Alerts() *AlertRepository { return &AlertRepository{x: s.session()} }

func (s *Store) Weather() *WeatherRepository { return &WeatherRepository{x: s.session()} }

func (s *Store) Users() *UserRepository { return &UserRepository{x: s.session()} }

func cloneSpecies(v *entity.Species) *entity.Species {
	c := *v
	return &c
}

func cloneZone(v *entity.Zone) *entity.Zone {
	c := *v
	return &c
}

func cloneBatch(v *entity.Batch) *entity.Batch {
	c := *v
	if v.FinalDryMass != nil {
		m := *v.FinalDryMass
		c.FinalDryMass = &m
	}
	return &c
}

func cloneItem(v *entity.InventoryItem) *entity.InventoryItem {
	c := *v
	return &c
}

func cloneForecast(v *entity.CapacityForecast) *entity.CapacityForecast {
	c := *v
	return &c
}

func cloneOrder(v *entity.Order) *entity.Order {
	c := *v
	return &c
}

func cloneLine(v *entity.OrderLine) *entity.OrderLine {
	c := *v
	return &c
}

func cloneReservation(v *entity.Reservation) *entity.Reservation {
	c := *v
	return &c
}

func cloneAlert(v *entity.Alert) *entity.Alert {
	c := *v
	return &c
}

func cloneUser(v *entity.User) *entity.User {
	c := *v
	return &c
}
