package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidPeriod      = errors.New("período no reconocido")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrStoreOutOfScope    = errors.New("tienda fuera del alcance del usuario")

	// ErrActiveSessionExists: ya hay una sesión de inventario activa para la tienda.
	// Lo garantiza el índice único parcial sobre (store_id) WHERE status='active';
	// el repositorio traduce la violación de constraint a este error.
	ErrActiveSessionExists = errors.New("ya existe una sesión de inventario activa para la tienda")

	// ErrInvalidTransition: la sesión o devolución está en un estado terminal
	// y no admite la transición solicitada.
	ErrInvalidTransition = errors.New("transición de estado no permitida")

	// ErrReturnOverCap: el monto de la devolución supera el tope del rol.
	ErrReturnOverCap = errors.New("el monto de la devolución supera el tope permitido para el rol")

	ErrItemNotCounted = errors.New("el artículo aún no tiene cantidad contada")
)
