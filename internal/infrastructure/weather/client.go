package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/application/ports"
	"github.com/jhoicas/Proyeccion-api/internal/domain"
	"github.com/jhoicas/Proyeccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Verificar en tiempo de compilación que Client implementa WeatherProvider.
var _ ports.WeatherProvider = (*Client)(nil)

// Config datos de conexión al proveedor (API estilo OpenWeatherMap).
type Config struct {
	BaseURL string
	APIKey  string
	Lat     string
	Lon     string
	Timeout time.Duration
}

// Client adaptador HTTP del proveedor climático. Usa net/http y un circuit breaker propio.
type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *CircuitBreaker
	now        func() time.Time
}

// NewClient construye el cliente. El timeout de red es el tope; el modificador climático impone además el suyo por contexto.
func NewClient(cfg Config, breaker *CircuitBreaker) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if breaker == nil {
		breaker = NewCircuitBreaker(DefaultBreakerConfig())
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj usado para fechar la lectura (tests).
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// BreakerState estado del circuito (para /health).
func (c *Client) BreakerState() CBState {
	return c.breaker.State()
}

// Humidity es puntero: una respuesta sin main.humidity no es una lectura válida.
type currentResponse struct {
	Main struct {
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
}

// CurrentConditions consulta las condiciones actuales. Cualquier fallo se devuelve envuelto en domain.ErrWeatherUnavailable.
func (c *Client) CurrentConditions(ctx context.Context) (*entity.WeatherReading, error) {
	var body currentResponse
	err := c.breaker.Execute(func() error {
		return c.fetch(ctx, &body)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWeatherUnavailable, err)
	}

	condition := ""
	if len(body.Weather) > 0 {
		condition = body.Weather[0].Description
		if condition == "" {
			condition = body.Weather[0].Main
		}
	}
	now := c.now()
	return &entity.WeatherReading{
		Date:           time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		Humidity:       decimal.NewFromFloat(*body.Main.Humidity).Round(2),
		SolarRadiation: decimal.Zero,
		Condition:      strings.TrimSpace(condition),
	}, nil
}

func (c *Client) fetch(ctx context.Context, out *currentResponse) error {
	if c.cfg.BaseURL == "" {
		return errors.New("proveedor climático no configurado")
	}
	q := url.Values{}
	q.Set("lat", c.cfg.Lat)
	q.Set("lon", c.cfg.Lon)
	q.Set("appid", c.cfg.APIKey)
	q.Set("units", "metric")
	q.Set("lang", "es")
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/data/2.5/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llamar proveedor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("proveedor respondió %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificar respuesta: %w", err)
	}
	h := out.Main.Humidity
	if h == nil {
		return errors.New("respuesta sin main.humidity")
	}
	if *h < 0 || *h > 100 {
		return fmt.Errorf("humedad fuera de rango: %v", *h)
	}
	return nil
}
