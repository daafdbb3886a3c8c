package errors

import "net/http"

var (
	// ErrResourceLoadFailure - не удалось инициализировать карту (рендерер)
	ErrResourceLoadFailure = New(
		"RESOURCE_LOAD_FAILURE",
		"Failed to load map library. Please refresh the page.",
		http.StatusServiceUnavailable,
	)

	// ErrDataFetchFailure - данные заказа/локации недоступны
	ErrDataFetchFailure = New(
		"DATA_FETCH_FAILURE",
		"Error fetching location data. Please try again.",
		http.StatusBadGateway,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Received invalid coordinates from the server.",
		http.StatusUnprocessableEntity,
	)

	// ErrRoutingFailure никогда не отдается клиенту: только логируется перед fallback
	ErrRoutingFailure = New(
		"ROUTING_FAILURE",
		"Routing service unavailable",
		http.StatusInternalServerError,
	)

	// ErrAnimationDataFailure - битая точка маршрута, кадр пропускается
	ErrAnimationDataFailure = New(
		"ANIMATION_DATA_FAILURE",
		"Malformed waypoint",
		http.StatusInternalServerError,
	)

	ErrRenderSuperseded = New(
		"RENDER_SUPERSEDED",
		"Map render was superseded by a newer request",
		http.StatusConflict,
	)

	ErrOrderNotFound = New(
		"ORDER_NOT_FOUND",
		"Order not found",
		http.StatusNotFound,
	)

	ErrCartNotFound = New(
		"CART_NOT_FOUND",
		"Cart not found",
		http.StatusNotFound,
	)

	ErrViewNotFound = New(
		"VIEW_NOT_FOUND",
		"No active delivery map for this order",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
