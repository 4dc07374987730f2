package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proyeccion-api/internal/application/alert"
	"github.com/jhoicas/Proyeccion-api/internal/application/auth"
	"github.com/jhoicas/Proyeccion-api/internal/application/catalog"
	"github.com/jhoicas/Proyeccion-api/internal/application/dto"
	"github.com/jhoicas/Proyeccion-api/internal/application/feasibility"
	"github.com/jhoicas/Proyeccion-api/internal/application/forecast"
	"github.com/jhoicas/Proyeccion-api/internal/application/intake"
	"github.com/jhoicas/Proyeccion-api/internal/application/ledger"
	"github.com/jhoicas/Proyeccion-api/internal/application/order"
	"github.com/jhoicas/Proyeccion-api/internal/application/report"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Proyeccion-api/internal/interfaces/http"
)

var clockNow = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	app   *fiber.App
	store *memory.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := memory.NewStore()
	clock := func() time.Time { return clockNow }
	runner := memory.NewTxRunner(s)

	authUC := auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	agg := feasibility.NewCapacityAggregator(s.Species(), s.Items(), s.Forecasts())
	ev := feasibility.NewEvaluator(agg, time.UTC).WithClock(clock)
	led := ledger.NewReservationLedger(runner, s.Species(), "operaciones", nil).WithClock(clock)
	forecaster := forecast.NewHistoricalForecaster(s.Forecasts(), 30, decimal.RequireFromString("1.05")).WithClock(clock)
	generate := forecast.NewGenerateUseCase(forecast.GenerateDeps{
		SpeciesRepo:  s.Species(),
		ItemRepo:     s.Items(),
		ForecastRepo: s.Forecasts(),
		AlertRepo:    s.Alerts(),
		WeatherRepo:  s.Weather(),
		Forecaster:   forecaster,
	}, "operaciones", decimal.RequireFromString("0.50")).WithClock(clock)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalog.NewUseCase(s.Species(), s.Zones()),
		IntakeUC:   intake.NewUseCase(runner, s.Species(), s.Zones(), s.Items(), nil).WithClock(clock),
		Evaluator:  ev,
		GenerateUC: generate,
		ReportUC:   report.NewUseCase(s.Species(), s.Forecasts(), pdf.NewMarotoReportGenerator("Planta test")),
		OrderSvc:   order.NewService(ev, led, runner, s.Orders(), s.Reservations(), nil, nil, 3, nil),
		AlertUC:    alert.NewUseCase(s.Alerts(), nil, nil),
		JWTSecret:  testJWTSecret,
	})
	return &testEnv{app: app, store: s}
}

func (e *testEnv) do(t *testing.T, method, path, role string, body interface{}) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) seedSpecies(t *testing.T, id, factor string) {
	t.Helper()
	require.NoError(t, e.store.Species().Create(context.Background(), &entity.Species{
		ID: id, Name: "Especie " + id, ConversionFactor: decimal.RequireFromString(factor), CreatedAt: clockNow,
	}))
}

func (e *testEnv) seedItem(t *testing.T, id, speciesID, state, qty string) {
	t.Helper()
	require.NoError(t, e.store.Items().Create(context.Background(), &entity.InventoryItem{
		ID: id, BatchID: "b-" + id, SpeciesID: speciesID, ZoneID: "z1",
		Quantity: decimal.RequireFromString(qty), State: state, UpdatedAt: clockNow,
	}))
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	authUC := auth.NewAuthUseCase(env.store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	_, err := authUC.EnsureAdmin(context.Background(), "admin", "admin-secret")
	require.NoError(t, err)

	resp := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "admin-secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	bad := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "otra"})
	defer bad.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, bad.StatusCode)
}

func TestSpecies_CrearListarYProteger(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/species", "PLANTA", map[string]interface{}{
		"name": "gracilaria  chilensis", "conversion_factor": "6",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sp dto.SpeciesResponse
	decode(t, resp, &sp)
	assert.Equal(t, "Gracilaria Chilensis", sp.Name)

	forbidden := env.do(t, http.MethodPost, "/api/species", "COMERCIAL", map[string]interface{}{
		"name": "Pelillo", "conversion_factor": "5",
	})
	forbidden.Body.Close()
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode)

	invalid := env.do(t, http.MethodPost, "/api/species", "PLANTA", map[string]interface{}{
		"name": "Luga", "conversion_factor": "0",
	})
	invalid.Body.Close()
	assert.Equal(t, http.StatusBadRequest, invalid.StatusCode)

	list := env.do(t, http.MethodGet, "/api/species", "AUDITOR", nil)
	require.Equal(t, http.StatusOK, list.StatusCode)
	var all []dto.SpeciesResponse
	decode(t, list, &all)
	assert.Len(t, all, 1)

	env.seedItem(t, "i1", sp.ID, entity.ItemStateLive, "10")
	del := env.do(t, http.MethodDelete, "/api/species/"+sp.ID, "PLANTA", nil)
	defer del.Body.Close()
	assert.Equal(t, http.StatusConflict, del.StatusCode)
}

func TestOrders_FactibleEnRiesgoYCompletar(t *testing.T) {
	env := newTestEnv(t)
	env.seedSpecies(t, "sp1", "6")
	env.seedItem(t, "i1", "sp1", entity.ItemStateLive, "120")

	body := map[string]interface{}{"species_id": "sp1", "dry_volume": "15", "delivery_date": "2026-10-17"}
	resp := env.do(t, http.MethodPost, "/api/orders", "COMERCIAL", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ok dto.OrderResultResponse
	decode(t, resp, &ok)
	assert.Equal(t, "FEASIBLE", ok.Verdict)
	assert.Equal(t, testUserID, ok.Order.UserID)

	body["dry_volume"] = "10"
	resp = env.do(t, http.MethodPost, "/api/orders", "COMERCIAL", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var risk dto.OrderResultResponse
	decode(t, resp, &risk)
	assert.Equal(t, "AT_RISK", risk.Verdict)
	assert.NotEmpty(t, risk.AlertID)

	alerts := env.do(t, http.MethodGet, "/api/alerts?recipient_id=operaciones&pending=true", "PLANTA", nil)
	require.Equal(t, http.StatusOK, alerts.StatusCode)
	var alertList dto.AlertListResponse
	decode(t, alerts, &alertList)
	require.Len(t, alertList.Items, 1)
	assert.Equal(t, entity.AlertTypeDeliveryRisk, alertList.Items[0].Type)

	get := env.do(t, http.MethodGet, "/api/orders/"+ok.Order.ID, "AUDITOR", nil)
	require.Equal(t, http.StatusOK, get.StatusCode)
	get.Body.Close()

	done := env.do(t, http.MethodPost, "/api/orders/"+ok.Order.ID+"/complete", "COMERCIAL", nil)
	require.Equal(t, http.StatusOK, done.StatusCode)
	var completed dto.OrderResponse
	decode(t, done, &completed)
	assert.Equal(t, entity.OrderStatusCompleted, completed.Status)

	again := env.do(t, http.MethodPost, "/api/orders/"+risk.Order.ID+"/complete", "COMERCIAL", nil)
	defer again.Body.Close()
	assert.Equal(t, http.StatusConflict, again.StatusCode)
}

func TestOrders_Errores(t *testing.T) {
	env := newTestEnv(t)
	env.seedSpecies(t, "sp1", "6")
	env.seedSpecies(t, "sp-mal", "0")

	cases := []struct {
		name   string
		role   string
		body   map[string]interface{}
		status int
		code   string
	}{
		{"fecha pasada", "COMERCIAL", map[string]interface{}{"species_id": "sp1", "dry_volume": "1", "delivery_date": "2026-10-10"}, http.StatusBadRequest, "PAST_DELIVERY_DATE"},
		{"factor inválido", "COMERCIAL", map[string]interface{}{"species_id": "sp-mal", "dry_volume": "1", "delivery_date": "2026-10-20"}, http.StatusUnprocessableEntity, "INVALID_FACTOR"},
		{"especie inexistente", "COMERCIAL", map[string]interface{}{"species_id": "nope", "dry_volume": "1", "delivery_date": "2026-10-20"}, http.StatusNotFound, "NOT_FOUND"},
		{"volumen cero", "COMERCIAL", map[string]interface{}{"species_id": "sp1", "dry_volume": "0", "delivery_date": "2026-10-20"}, http.StatusBadRequest, "VALIDATION"},
		{"fecha mal formada", "COMERCIAL", map[string]interface{}{"species_id": "sp1", "dry_volume": "1", "delivery_date": "20-10-2026"}, http.StatusBadRequest, "VALIDATION"},
		{"rol sin permiso", "CULTIVO", map[string]interface{}{"species_id": "sp1", "dry_volume": "1", "delivery_date": "2026-10-20"}, http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/orders", tc.role, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			var out dto.ErrorResponse
			decode(t, resp, &out)
			assert.Equal(t, tc.code, out.Code)
		})
	}
}

func TestBiomasaSecadoYCapacidad(t *testing.T) {
	env := newTestEnv(t)
	env.seedSpecies(t, "sp1", "5")
	require.NoError(t, env.store.Zones().Create(context.Background(), &entity.Zone{ID: "z1", Name: "Norte", CreatedAt: clockNow}))

	resp := env.do(t, http.MethodPost, "/api/biomass", "CULTIVO", map[string]interface{}{
		"species_id": "sp1", "zone_id": "z1", "wet_mass": "100",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item dto.InventoryItemResponse
	decode(t, resp, &item)
	assert.Equal(t, entity.ItemStateLive, item.State)

	capResp := env.do(t, http.MethodGet, "/api/capacity/sp1?lead_days=3", "AUDITOR", nil)
	require.Equal(t, http.StatusOK, capResp.StatusCode)
	var capOut dto.CapacityResponse
	decode(t, capResp, &capOut)
	assert.True(t, capOut.Total.Equal(decimal.NewFromInt(20)), "got %s", capOut.Total)

	drying := env.do(t, http.MethodPost, "/api/inventory/"+item.ID+"/drying", "CULTIVO", nil)
	require.Equal(t, http.StatusOK, drying.StatusCode)
	drying.Body.Close()

	// DRYING no cuenta como capacidad
	capResp = env.do(t, http.MethodGet, "/api/capacity/sp1", "AUDITOR", nil)
	decode(t, capResp, &capOut)
	assert.True(t, capOut.Total.IsZero(), "got %s", capOut.Total)

	dry := env.do(t, http.MethodPost, "/api/inventory/"+item.ID+"/dry", "CULTIVO", map[string]interface{}{"dry_mass": "18"})
	require.Equal(t, http.StatusOK, dry.StatusCode)
	var dried dto.InventoryItemResponse
	decode(t, dry, &dried)
	assert.Equal(t, entity.ItemStateDry, dried.State)
	assert.True(t, dried.Quantity.Equal(decimal.NewFromInt(18)))

	twice := env.do(t, http.MethodPost, "/api/inventory/"+item.ID+"/drying", "CULTIVO", nil)
	defer twice.Body.Close()
	assert.Equal(t, http.StatusConflict, twice.StatusCode)

	past := env.do(t, http.MethodGet, "/api/capacity/sp1?lead_days=-1", "AUDITOR", nil)
	defer past.Body.Close()
	assert.Equal(t, http.StatusBadRequest, past.StatusCode)
}

func TestForecasts_RunYReporte(t *testing.T) {
	env := newTestEnv(t)
	env.seedSpecies(t, "sp1", "5")
	env.seedItem(t, "i1", "sp1", entity.ItemStateLive, "100")

	forbidden := env.do(t, http.MethodPost, "/api/forecasts/run", "COMERCIAL", nil)
	forbidden.Body.Close()
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode)

	resp := env.do(t, http.MethodPost, "/api/forecasts/run", "PLANTA", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var run dto.ForecastRunResponse
	decode(t, resp, &run)
	require.Len(t, run.Results, 1)
	assert.Equal(t, dto.ForecastSourceLiveStock, run.Results[0].Source)
	assert.True(t, run.Results[0].Capacity7.Equal(decimal.NewFromInt(10)), "got %s", run.Results[0].Capacity7)
	assert.True(t, run.Results[0].Capacity14.Equal(decimal.NewFromInt(16)), "got %s", run.Results[0].Capacity14)

	pdfResp := env.do(t, http.MethodGet, "/api/forecasts/report.pdf", "AUDITOR", nil)
	defer pdfResp.Body.Close()
	require.Equal(t, http.StatusOK, pdfResp.StatusCode)
	assert.Equal(t, "application/pdf", pdfResp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(pdfResp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestAlerts_MarcarNotificada(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.Alerts().Create(context.Background(), &entity.Alert{
		ID: "a1", RecipientID: "operaciones", Type: entity.AlertTypeAdverseWeather,
		Message: "Humedad 85%", Level: entity.AlertLevelCritical, CreatedAt: clockNow,
	}))

	resp := env.do(t, http.MethodPost, "/api/alerts/a1/notified", "PLANTA", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var a dto.AlertResponse
	decode(t, resp, &a)
	assert.True(t, a.Notified)

	missing := env.do(t, http.MethodPost, "/api/alerts/nope/notified", "PLANTA", nil)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}
