package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
	"github.com/jhoicas/Proyeccion-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de lotes e inventario.
type TxRunner interface {
	RunIntake(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		itemRepo repository.InventoryItemRepository,
	) error) error
}

// UseCase registro de biomasa y transiciones de secado (LIVE → DRYING → DRY).
type UseCase struct {
	txRunner    TxRunner
	speciesRepo repository.SpeciesRepository
	zoneRepo    repository.ZoneRepository
	itemRepo    repository.InventoryItemRepository
	now         func() time.Time
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	speciesRepo repository.SpeciesRepository,
	zoneRepo repository.ZoneRepository,
	itemRepo repository.InventoryItemRepository,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner:    txRunner,
		speciesRepo: speciesRepo,
		zoneRepo:    zoneRepo,
		itemRepo:    itemRepo,
		now:         time.Now,
		log:         log,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// RegisterBiomass crea el lote y su item LIVE con la masa húmeda, en una sola transacción.
func (uc *UseCase) RegisterBiomass(ctx context.Context, in dto.RegisterBiomassRequest) (*dto.InventoryItemResponse, error) {
	if in.SpeciesID == "" || in.ZoneID == "" || !in.WetMass.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	sp, err := uc.speciesRepo.GetByID(ctx, in.SpeciesID)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, fmt.Errorf("especie: %w", domain.ErrNotFound)
	}
	zone, err := uc.zoneRepo.GetByID(ctx, in.ZoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, fmt.Errorf("zona: %w", domain.ErrNotFound)
	}

	now := uc.now()
	batch := &entity.Batch{
		ID:             uuid.New().String(),
		SpeciesID:      sp.ID,
		ZoneID:         zone.ID,
		InitialWetMass: in.WetMass,
		RegisteredAt:   now,
	}
	item := &entity.InventoryItem{
		ID:        uuid.New().String(),
		BatchID:   batch.ID,
		SpeciesID: sp.ID,
		ZoneID:    zone.ID,
		Quantity:  in.WetMass,
		State:     entity.ItemStateLive,
		UpdatedAt: now,
	}
	err = uc.txRunner.RunIntake(ctx, func(batchRepo repository.BatchRepository, itemRepo repository.InventoryItemRepository) error {
		if err := batchRepo.Create(ctx, batch); err != nil {
			return err
		}
		return itemRepo.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("species_id", sp.ID).
		Str("batch_id", batch.ID).
		Str("wet_mass", in.WetMass.String()).
		Msg("biomasa registrada")
	return toItemResponse(item), nil
}

// StartDrying pasa un item LIVE a DRYING conservando la masa húmeda.
func (uc *UseCase) StartDrying(ctx context.Context, itemID string) (*dto.InventoryItemResponse, error) {
	var out *entity.InventoryItem
	now := uc.now()
	err := uc.txRunner.RunIntake(ctx, func(_ repository.BatchRepository, itemRepo repository.InventoryItemRepository) error {
		item, err := lockItem(ctx, itemRepo, itemID, entity.ItemStateLive)
		if err != nil {
			return err
		}
		if err := itemRepo.UpdateState(ctx, item.ID, entity.ItemStateDrying, item.Quantity, now); err != nil {
			return err
		}
		item.State = entity.ItemStateDrying
		item.UpdatedAt = now
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(out), nil
}

// FinishDrying pasa un item DRYING a DRY con la masa seca obtenida y la registra en el lote.
func (uc *UseCase) FinishDrying(ctx context.Context, itemID string, dryMass decimal.Decimal) (*dto.InventoryItemResponse, error) {
	if !dryMass.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.InventoryItem
	now := uc.now()
	err := uc.txRunner.RunIntake(ctx, func(batchRepo repository.BatchRepository, itemRepo repository.InventoryItemRepository) error {
		item, err := lockItem(ctx, itemRepo, itemID, entity.ItemStateDrying)
		if err != nil {
			return err
		}
		if err := itemRepo.UpdateState(ctx, item.ID, entity.ItemStateDry, dryMass, now); err != nil {
			return err
		}
		if err := batchRepo.SetFinalDryMass(ctx, item.BatchID, dryMass); err != nil {
			return err
		}
		item.State = entity.ItemStateDry
		item.Quantity = dryMass
		item.UpdatedAt = now
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("item_id", itemID).
		Str("dry_mass", dryMass.String()).
		Msg("secado finalizado")
	return toItemResponse(out), nil
}

// Get obtiene un item de inventario.
func (uc *UseCase) Get(ctx context.Context, itemID string) (*dto.InventoryItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

func lockItem(ctx context.Context, itemRepo repository.InventoryItemRepository, id, want string) (*entity.InventoryItem, error) {
	item, err := itemRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.State != want {
		return nil, fmt.Errorf("%w: item en estado %s, se esperaba %s", domain.ErrInvalidTransition, item.State, want)
	}
	return item, nil
}

func toItemResponse(i *entity.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:        i.ID,
		BatchID:   i.BatchID,
		SpeciesID: i.SpeciesID,
		ZoneID:    i.ZoneID,
		Quantity:  i.Quantity,
		State:     i.State,
		UpdatedAt: i.UpdatedAt,
	}
}
