package weather_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Proyeccion-api/internal/infrastructure/weather"
	"github.com/stretchr/testify/assert"
)

var errFalla = errors.New("falla")

func TestCircuitBreaker_Transiciones(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := weather.NewCircuitBreaker(weather.BreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		OpenTimeout:      time.Minute,
	}).WithClock(func() time.Time { return now })

	assert.Equal(t, weather.CBClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return errFalla }), errFalla)
	assert.Equal(t, weather.CBClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return errFalla }), errFalla)
	assert.Equal(t, weather.CBOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, weather.ErrCircuitOpen)
	assert.False(t, called)

	now = now.Add(time.Minute)
	assert.Equal(t, weather.CBHalfOpen, cb.State())
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, weather.CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFallaVuelveAAbrir(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := weather.NewCircuitBreaker(weather.BreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute}).
		WithClock(func() time.Time { return now })

	_ = cb.Execute(func() error { return errFalla })
	assert.Equal(t, weather.CBOpen, cb.State())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, weather.CBHalfOpen, cb.State())
	_ = cb.Execute(func() error { return errFalla })
	assert.Equal(t, weather.CBOpen, cb.State())
	assert.Equal(t, "open", cb.State().String())
}

func TestCircuitBreaker_ExitoReiniciaConteo(t *testing.T) {
	cb := weather.NewCircuitBreaker(weather.BreakerConfig{FailureThreshold: 2})
	_ = cb.Execute(func() error { return errFalla })
	_ = cb.Execute(func() error { return nil })
	_ = cb.Execute(func() error { return errFalla })
	assert.Equal(t, weather.CBClosed, cb.State())
}
