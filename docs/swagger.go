// Package docs Delivery Tracker API.
//
// Сервис карты доставки для партнерского портала. Строит маршрут
// от адреса отправителя до адреса доставки, рассчитывает график доставки
// по дате активации заказа и расстоянию, анимирует грузовик вдоль маршрута.
//
// Основные возможности:
// - Карта доставки заказа: маркеры, маршрут или прямая линия, снимок в GeoJSON
// - График доставки: дата отгрузки, ожидаемая дата, окно доставки
// - Статус просрочки относительно текущей даты
// - Корзина товаров партнера
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- application/geo+json
//
// swagger:meta
package docs
