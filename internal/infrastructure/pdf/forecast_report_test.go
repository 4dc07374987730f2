package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/pdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatKg(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"12.5":      "12,50",
		"1234":      "1.234,00",
		"1234567.5": "1.234.567,50",
		"-1500.25":  "-1.500,25",
	}
	for in, want := range cases {
		assert.Equal(t, want, pdf.FormatKg(decimal.RequireFromString(in)), in)
	}
}

func TestMarotoReportGenerator_GeneraPDF(t *testing.T) {
	c7 := decimal.RequireFromString("52.50")
	c14 := decimal.RequireFromString("84.00")
	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	rows := []dto.ForecastReportRow{
		{SpeciesName: "Pelillo", ConversionFactor: decimal.NewFromInt(5), Capacity7: &c7, Capacity14: &c14, GeneratedAt: &at},
		{SpeciesName: "Chasca", ConversionFactor: decimal.RequireFromString("4.5")},
	}

	out, err := pdf.NewMarotoReportGenerator("Planta Calbuco").GenerateForecastReport(context.Background(), rows, at)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMarotoReportGenerator_SinFilas(t *testing.T) {
	out, err := pdf.NewMarotoReportGenerator("").GenerateForecastReport(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
