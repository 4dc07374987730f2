package report

import (
	"context"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
	"github.com/jhoicas/Proyeccion-api/internal/application/ports"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/domain/repository"
)

// UseCase reporte PDF con la última proyección a 7 y 14 días de cada especie.
type UseCase struct {
	speciesRepo  repository.SpeciesRepository
	forecastRepo repository.ForecastRepository
	generator    ports.ForecastReportGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(speciesRepo repository.SpeciesRepository, forecastRepo repository.ForecastRepository, generator ports.ForecastReportGenerator) *UseCase {
	return &UseCase{speciesRepo: speciesRepo, forecastRepo: forecastRepo, generator: generator}
}

// Rows arma las filas del reporte. Las especies sin proyección quedan con valores nil.
func (uc *UseCase) Rows(ctx context.Context) ([]dto.ForecastReportRow, error) {
	species, err := uc.speciesRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.ForecastReportRow, 0, len(species))
	for _, sp := range species {
		row := dto.ForecastReportRow{SpeciesName: sp.Name, ConversionFactor: sp.ConversionFactor}
		f7, err := uc.forecastRepo.Latest(ctx, sp.ID, entity.Horizon7Days)
		if err != nil {
			return nil, err
		}
		if f7 != nil {
			row.Capacity7 = &f7.EstimatedCapacity
			row.GeneratedAt = &f7.GeneratedAt
		}
		f14, err := uc.forecastRepo.Latest(ctx, sp.ID, entity.Horizon14Days)
		if err != nil {
			return nil, err
		}
		if f14 != nil {
			row.Capacity14 = &f14.EstimatedCapacity
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ForecastPDF genera el PDF del reporte.
func (uc *UseCase) ForecastPDF(ctx context.Context) ([]byte, error) {
	rows, err := uc.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateForecastReport(ctx, rows, time.Now())
}
