package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
	"github.com/jhoicas/Proyeccion-api/internal/application/report"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct{ rows []dto.ForecastReportRow }

func (g *fakeGenerator) GenerateForecastReport(_ context.Context, rows []dto.ForecastReportRow, _ time.Time) ([]byte, error) {
	g.rows = rows
	return []byte("%PDF"), nil
}

func TestForecastPDF_UltimaProyeccionPorEspecie(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	base := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	require.NoError(t, s.Species().Create(ctx, &entity.Species{ID: "sp1", Name: "Gracilaria", ConversionFactor: decimal.NewFromInt(6)}))
	require.NoError(t, s.Species().Create(ctx, &entity.Species{ID: "sp2", Name: "Luga", ConversionFactor: decimal.NewFromInt(5)}))
	require.NoError(t, s.Forecasts().Create(ctx, &entity.CapacityForecast{ID: "a", SpeciesID: "sp1", HorizonDays: 7, EstimatedCapacity: decimal.NewFromInt(8), GeneratedAt: base}))
	require.NoError(t, s.Forecasts().Create(ctx, &entity.CapacityForecast{ID: "b", SpeciesID: "sp1", HorizonDays: 7, EstimatedCapacity: decimal.NewFromInt(10), GeneratedAt: base.Add(time.Hour)}))
	require.NoError(t, s.Forecasts().Create(ctx, &entity.CapacityForecast{ID: "c", SpeciesID: "sp1", HorizonDays: 14, EstimatedCapacity: decimal.NewFromInt(16), GeneratedAt: base.Add(time.Hour)}))

	gen := &fakeGenerator{}
	pdf, err := report.NewUseCase(s.Species(), s.Forecasts(), gen).ForecastPDF(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)

	require.Len(t, gen.rows, 2)
	assert.Equal(t, "Gracilaria", gen.rows[0].SpeciesName)
	require.NotNil(t, gen.rows[0].Capacity7)
	assert.True(t, gen.rows[0].Capacity7.Equal(decimal.NewFromInt(10)))
	assert.True(t, gen.rows[0].Capacity14.Equal(decimal.NewFromInt(16)))
	assert.Nil(t, gen.rows[1].Capacity7, "Luga sin proyección")
}
