package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInvalidTransition = errors.New("transición de estado no permitida")

	// ErrInvalidFactor especie mal configurada (factor <= 0); bloquea toda agregación de esa especie.
	ErrInvalidFactor = errors.New("factor de conversión inválido")

	// ErrPastDeliveryDate la fecha de entrega solicitada es anterior a hoy.
	ErrPastDeliveryDate = errors.New("la fecha de entrega es anterior a hoy")

	// ErrReservationRace el inventario cambió entre la evaluación y el commit; el caller debe reevaluar.
	ErrReservationRace = errors.New("inventario modificado durante la reserva, reevaluar pedido")

	// ErrWeatherUnavailable el proveedor de clima falló o no respondió a tiempo. Nunca es fatal.
	ErrWeatherUnavailable = errors.New("datos climáticos no disponibles")
)
