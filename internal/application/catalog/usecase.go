package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/inventory"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UseCase datos de referencia: especies y zonas de cultivo.
type UseCase struct {
	speciesRepo repository.SpeciesRepository
	zoneRepo    repository.ZoneRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(speciesRepo repository.SpeciesRepository, zoneRepo repository.ZoneRepository) *UseCase {
	return &UseCase{speciesRepo: speciesRepo, zoneRepo: zoneRepo}
}

// NormalizeName recorta espacios repetidos y capitaliza cada palabra ("gracilaria  chilensis" → "Gracilaria Chilensis").
func NormalizeName(name string) string {
	return cases.Title(language.Spanish).String(strings.Join(strings.Fields(name), " "))
}

// CreateSpecies crea una especie. El factor de conversión debe ser > 0.
func (uc *UseCase) CreateSpecies(ctx context.Context, in dto.CreateSpeciesRequest) (*dto.SpeciesResponse, error) {
	name := NormalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := inventory.ValidateFactor(in.ConversionFactor); err != nil {
		return nil, err
	}
	sp := &entity.Species{
		ID:               uuid.New().String(),
		Name:             name,
		ConversionFactor: in.ConversionFactor,
		CreatedAt:        time.Now(),
	}
	if err := uc.speciesRepo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return toSpeciesResponse(sp), nil
}

// ListSpecies lista las especies por nombre.
func (uc *UseCase) ListSpecies(ctx context.Context) ([]dto.SpeciesResponse, error) {
	list, err := uc.speciesRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SpeciesResponse, 0, len(list))
	for _, sp := range list {
		out = append(out, *toSpeciesResponse(sp))
	}
	return out, nil
}

// DeleteSpecies elimina una especie. domain.ErrConflict si está referenciada.
func (uc *UseCase) DeleteSpecies(ctx context.Context, id string) error {
	return uc.speciesRepo.Delete(ctx, id)
}

// CreateZone crea una zona de cultivo.
func (uc *UseCase) CreateZone(ctx context.Context, in dto.CreateZoneRequest) (*dto.ZoneResponse, error) {
	name := NormalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	z := &entity.Zone{
		ID:        uuid.New().String(),
		Name:      name,
		Location:  strings.TrimSpace(in.Location),
		CreatedAt: time.Now(),
	}
	if err := uc.zoneRepo.Create(ctx, z); err != nil {
		return nil, err
	}
	return toZoneResponse(z), nil
}

// ListZones lista las zonas por nombre.
func (uc *UseCase) ListZones(ctx context.Context) ([]dto.ZoneResponse, error) {
	list, err := uc.zoneRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ZoneResponse, 0, len(list))
	for _, z := range list {
		out = append(out, *toZoneResponse(z))
	}
	return out, nil
}

// DeleteZone elimina una zona. domain.ErrConflict si está referenciada.
func (uc *UseCase) DeleteZone(ctx context.Context, id string) error {
	return uc.zoneRepo.Delete(ctx, id)
}

func toSpeciesResponse(sp *entity.Species) *dto.SpeciesResponse {
	return &dto.SpeciesResponse{
		ID:               sp.ID,
		Name:             sp.Name,
		ConversionFactor: sp.ConversionFactor,
		CreatedAt:        sp.CreatedAt,
	}
}

func toZoneResponse(z *entity.Zone) *dto.ZoneResponse {
	return &dto.ZoneResponse{ID: z.ID, Name: z.Name, Location: z.Location, CreatedAt: z.CreatedAt}
}
