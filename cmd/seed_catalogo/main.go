// seed_catalogo genera el script SQL que precarga especies y zonas de cultivo
// a partir de una planilla CSV exportada desde la hoja de planta.
//
// Formato (separador ';', con cabecera): tipo;nombre;valor
//   especie;Gracilaria;6,00      -> valor = factor de conversión húmedo:seco
//   zona;Caleta Sur;Quellón      -> valor = ubicación
//
// Uso: go run ./cmd/seed_catalogo [ruta/catalogo.csv] [-latin1]
// Escribe: internal/infrastructure/postgres/migrations/0002_seed_catalog.sql
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/Proyeccion-api/internal/application/catalog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Espacio de nombres para IDs deterministas: el mismo nombre produce el mismo UUID.
var seedNamespace = uuid.MustParse("6f1c2d4e-8a0b-4c3d-9e5f-7a1b2c3d4e5f")

type speciesRow struct {
	id     uuid.UUID
	name   string
	factor decimal.Decimal
}

type zoneRow struct {
	id       uuid.UUID
	name     string
	location string
}

func main() {
	csvPath := "catalogo.csv"
	latin1 := false
	for _, a := range os.Args[1:] {
		if a == "-latin1" {
			latin1 = true
			continue
		}
		csvPath = a
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	species, zones, err := parseCatalog(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "0002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, species, zones); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d especies, %d zonas\n", outPath, len(species), len(zones))
}

// parseCatalog lee la planilla. Normaliza nombres igual que el catálogo de la API
// y rechaza factores <= 0. Las filas repetidas conservan la última aparición.
func parseCatalog(r io.Reader) ([]speciesRow, []zoneRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	speciesByName := make(map[string]speciesRow)
	zonesByName := make(map[string]zoneRow)
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "tipo") {
			continue
		}
		name := catalog.NormalizeName(rec[1])
		if name == "" {
			return nil, nil, fmt.Errorf("línea %d: nombre vacío", line)
		}
		switch strings.ToLower(strings.TrimSpace(rec[0])) {
		case "especie":
			factor, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[2]), ",", "."))
			if err != nil {
				return nil, nil, fmt.Errorf("línea %d: factor %q inválido", line, rec[2])
			}
			if !factor.IsPositive() {
				return nil, nil, fmt.Errorf("línea %d: factor debe ser mayor que cero", line)
			}
			speciesByName[name] = speciesRow{
				id:     uuid.NewSHA1(seedNamespace, []byte("especie:"+name)),
				name:   name,
				factor: factor.Round(2),
			}
		case "zona":
			zonesByName[name] = zoneRow{
				id:       uuid.NewSHA1(seedNamespace, []byte("zona:"+name)),
				name:     name,
				location: strings.TrimSpace(rec[2]),
			}
		default:
			return nil, nil, fmt.Errorf("línea %d: tipo %q desconocido (especie|zona)", line, rec[0])
		}
	}

	species := make([]speciesRow, 0, len(speciesByName))
	for _, s := range speciesByName {
		species = append(species, s)
	}
	sort.Slice(species, func(i, j int) bool { return species[i].name < species[j].name })

	zones := make([]zoneRow, 0, len(zonesByName))
	for _, z := range zonesByName {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].name < zones[j].name })
	return species, zones, nil
}

func writeSQL(w io.Writer, species []speciesRow, zones []zoneRow) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial de especies y zonas\n")
	b.WriteString("-- Generado por cmd/seed_catalogo\n\n")

	if len(species) > 0 {
		b.WriteString("INSERT INTO species (id, name, conversion_factor) VALUES\n")
		for i, s := range species {
			fmt.Fprintf(&b, "  ('%s', '%s', %s)", s.id, escapeSQL(s.name), s.factor.StringFixed(2))
			b.WriteString(separator(i, len(species)))
		}
		b.WriteString("ON CONFLICT (name) DO UPDATE SET conversion_factor = EXCLUDED.conversion_factor;\n\n")
	}
	if len(zones) > 0 {
		b.WriteString("INSERT INTO zones (id, name, location) VALUES\n")
		for i, z := range zones {
			fmt.Fprintf(&b, "  ('%s', '%s', '%s')", z.id, escapeSQL(z.name), escapeSQL(z.location))
			b.WriteString(separator(i, len(zones)))
		}
		b.WriteString("ON CONFLICT (name) DO UPDATE SET location = EXCLUDED.location;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func separator(i, n int) string {
	if i < n-1 {
		return ",\n"
	}
	return "\n"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
