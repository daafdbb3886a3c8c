package docs

import "github.com/swaggo/swag"

// docTemplate ведется вручную по аннотациям обработчиков internal/delivery/http/handler
// и проверяется тестом docs_test.go
const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/carts": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Cart"
                ],
                "summary": "Новая корзина",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/utils.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.CartResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/api/v1/carts/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Cart"
                ],
                "summary": "Содержимое корзины",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID корзины",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/utils.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.CartResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Cart"
                ],
                "summary": "Сохранить корзину",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID корзины",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Позиции корзины",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.SaveCartRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/utils.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.CartResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/utils.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Cart"
                ],
                "summary": "Очистить корзину",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID корзины",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/delivery/estimates": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Tracking"
                ],
                "summary": "Прогноз доставки для списка заказов",
                "parameters": [
                    {
                        "description": "ID заказов (до 50)",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.BatchEstimateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/utils.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.BatchEstimateResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/utils.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/utils.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/delivery/status": {
            "get": {
                "description": "Доставка просрочена, если ожидаемая дата не позже сегодняшней",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Schedule"
                ],
                "summary": "Статус просрочки доставки",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Ожидаемая дата (YYYY-MM-DD)",
                        "name": "expectedDate",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/utils.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.DeliveryStatusResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/utils.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/orders/{id}/tracking": {
            "post": {
                "description": "Загружает заказ, строит маршрут billing -> shipping, считает график доставки и запускает анимацию грузовика",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Tracking"
                ],
                "summary": "Открыть карту доставки заказа",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID заказа",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/utils.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.TrackingResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/utils.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/utils.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Tracking"
                ],
                "summary": "Закрыть карту доставки",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID заказа",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/orders/{id}/tracking/animation": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Tracking"
                ],
                "summary": "Состояние анимации грузовика",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID заказа",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/utils.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/animation.AnimationState"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/orders/{id}/tracking/map": {
            "get": {
                "description": "Маркеры, линия маршрута, след и текущая позиция грузовика",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Tracking"
                ],
                "summary": "Снимок карты в GeoJSON",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID заказа",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/utils.SuccessResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/utils.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/schedule": {
            "post": {
                "description": "activation + 1 день обработки = dispatch; dispatch + transit + 1 день буфера = expected",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Schedule"
                ],
                "summary": "Расчет графика доставки",
                "parameters": [
                    {
                        "description": "Дата активации (YYYY-MM-DD, опционально) и расстояние в км",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ScheduleRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/utils.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.ScheduleResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/utils.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "animation.AnimationState": {
            "type": "object",
            "properties": {
                "state": {
                    "type": "string"
                },
                "is_running": {
                    "type": "boolean"
                },
                "current_segment_index": {
                    "type": "integer"
                },
                "segment_progress": {
                    "type": "number"
                },
                "position": {
                    "$ref": "#/definitions/domain.GeoPoint"
                },
                "heading": {
                    "type": "number"
                },
                "trail": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.GeoPoint"
                    }
                }
            }
        },
        "domain.CartItem": {
            "type": "object",
            "required": [
                "productId",
                "quantity"
            ],
            "properties": {
                "productId": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer",
                    "minimum": 1
                },
                "unitPrice": {
                    "type": "number",
                    "minimum": 0
                }
            }
        },
        "domain.DeliveryStatus": {
            "type": "string",
            "enum": [
                "NOT_INITIATED",
                "ON_TIME",
                "DELAYED"
            ]
        },
        "domain.GeoPoint": {
            "type": "object",
            "properties": {
                "lat": {
                    "type": "number"
                },
                "lon": {
                    "type": "number"
                }
            }
        },
        "domain.RouteSource": {
            "type": "string",
            "enum": [
                "route",
                "fallback"
            ]
        },
        "dto.BatchEstimateItem": {
            "type": "object",
            "properties": {
                "orderId": {
                    "type": "string"
                },
                "deliveryStatus": {
                    "$ref": "#/definitions/domain.DeliveryStatus"
                },
                "deliveryInfo": {
                    "$ref": "#/definitions/dto.DeliveryInfo"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "dto.BatchEstimateRequest": {
            "type": "object",
            "required": [
                "orderIds"
            ],
            "properties": {
                "orderIds": {
                    "type": "array",
                    "maxItems": 50,
                    "minItems": 1,
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "dto.BatchEstimateResponse": {
            "type": "object",
            "properties": {
                "results": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.BatchEstimateItem"
                    }
                }
            }
        },
        "dto.CartResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.CartItem"
                    }
                },
                "total": {
                    "type": "number"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "dto.DeliveryInfo": {
            "type": "object",
            "properties": {
                "routeSource": {
                    "$ref": "#/definitions/domain.RouteSource"
                },
                "distanceKm": {
                    "type": "number"
                },
                "driveHours": {
                    "type": "integer"
                },
                "driveMinutes": {
                    "type": "integer"
                },
                "processingDays": {
                    "type": "integer"
                },
                "transitDays": {
                    "type": "integer"
                },
                "bufferDays": {
                    "type": "integer"
                },
                "totalDays": {
                    "type": "integer"
                },
                "activationDate": {
                    "type": "string"
                },
                "dispatchDate": {
                    "type": "string"
                },
                "expectedDate": {
                    "type": "string"
                },
                "earliestDate": {
                    "type": "string"
                },
                "latestDate": {
                    "type": "string"
                }
            }
        },
        "dto.DeliveryStatusResponse": {
            "type": "object",
            "properties": {
                "expectedDate": {
                    "type": "string"
                },
                "today": {
                    "type": "string"
                },
                "delayed": {
                    "type": "boolean"
                },
                "status": {
                    "$ref": "#/definitions/domain.DeliveryStatus"
                },
                "label": {
                    "type": "string"
                }
            }
        },
        "dto.SaveCartRequest": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.CartItem"
                    }
                }
            }
        },
        "dto.ScheduleRequest": {
            "type": "object",
            "properties": {
                "activationDate": {
                    "type": "string",
                    "example": "2024-01-01"
                },
                "distanceKm": {
                    "type": "number",
                    "minimum": 0
                }
            }
        },
        "dto.ScheduleResponse": {
            "type": "object",
            "properties": {
                "routeSource": {
                    "$ref": "#/definitions/domain.RouteSource"
                },
                "distanceKm": {
                    "type": "number"
                },
                "driveHours": {
                    "type": "integer"
                },
                "driveMinutes": {
                    "type": "integer"
                },
                "processingDays": {
                    "type": "integer"
                },
                "transitDays": {
                    "type": "integer"
                },
                "bufferDays": {
                    "type": "integer"
                },
                "totalDays": {
                    "type": "integer"
                },
                "activationDate": {
                    "type": "string"
                },
                "dispatchDate": {
                    "type": "string"
                },
                "expectedDate": {
                    "type": "string"
                },
                "earliestDate": {
                    "type": "string"
                },
                "latestDate": {
                    "type": "string"
                },
                "delayed": {
                    "type": "boolean"
                }
            }
        },
        "dto.TrackingResponse": {
            "type": "object",
            "properties": {
                "orderId": {
                    "type": "string"
                },
                "orderNumber": {
                    "type": "string"
                },
                "orderStatus": {
                    "type": "string"
                },
                "deliveryStatus": {
                    "$ref": "#/definitions/domain.DeliveryStatus"
                },
                "statusLabel": {
                    "type": "string"
                },
                "deliveryInfo": {
                    "$ref": "#/definitions/dto.DeliveryInfo"
                }
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "details": {
                    "type": "object",
                    "additionalProperties": true
                }
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "$ref": "#/definitions/errors.AppError"
                }
            }
        },
        "utils.Meta": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "integer"
                },
                "time_ms": {
                    "type": "number"
                }
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {
                    "$ref": "#/definitions/utils.Meta"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Delivery Tracker API",
	Description:      "Карта доставки для партнерского портала: маршрут от отправителя до адреса доставки, график доставки и статус просрочки.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
