package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
)

// ForecastReportGenerator genera el reporte PDF de proyecciones vigentes por especie.
type ForecastReportGenerator interface {
	GenerateForecastReport(ctx context.Context, rows []dto.ForecastReportRow, generatedAt time.Time) ([]byte, error)
}
