package handler

import (
	"github.com/delivery-tracker/internal/pkg/errors"
	"github.com/delivery-tracker/internal/pkg/utils"
	"github.com/delivery-tracker/internal/pkg/validator"
	"github.com/delivery-tracker/internal/usecase"
	"github.com/delivery-tracker/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TrackingHandler - карта доставки заказа
type TrackingHandler struct {
	trackingUC *usecase.TrackingUseCase
	logger     *zap.Logger
}

func NewTrackingHandler(trackingUC *usecase.TrackingUseCase, logger *zap.Logger) *TrackingHandler {
	return &TrackingHandler{
		trackingUC: trackingUC,
		logger:     logger,
	}
}

// Track godoc
// @Summary Открыть карту доставки заказа
// @Description Загружает заказ, строит маршрут billing -> shipping, считает график доставки и запускает анимацию грузовика
// @Tags Tracking
// @Produce json
// @Param id path string true "ID заказа"
// @Success 200 {object} utils.SuccessResponse{data=dto.TrackingResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/orders/{id}/tracking [post]
func (h *TrackingHandler) Track(c *fiber.Ctx) error {
	orderID := c.Params("id")

	result, err := h.trackingUC.Track(c.UserContext(), orderID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Stop godoc
// @Summary Закрыть карту доставки
// @Tags Tracking
// @Param id path string true "ID заказа"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/orders/{id}/tracking [delete]
func (h *TrackingHandler) Stop(c *fiber.Ctx) error {
	if err := h.trackingUC.Stop(c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Map godoc
// @Summary Снимок карты в GeoJSON
// @Description Маркеры, линия маршрута, след и текущая позиция грузовика
// @Tags Tracking
// @Produce json
// @Param id path string true "ID заказа"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/orders/{id}/tracking/map [get]
func (h *TrackingHandler) Map(c *fiber.Ctx) error {
	fc, err := h.trackingUC.Snapshot(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fc, &utils.Meta{Total: len(fc.Features)})
}

// Animation godoc
// @Summary Состояние анимации грузовика
// @Tags Tracking
// @Produce json
// @Param id path string true "ID заказа"
// @Success 200 {object} utils.SuccessResponse{data=animation.AnimationState}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/orders/{id}/tracking/animation [get]
func (h *TrackingHandler) Animation(c *fiber.Ctx) error {
	state, err := h.trackingUC.Animation(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, state, nil)
}

// BatchEstimate godoc
// @Summary Прогноз доставки для списка заказов
// @Tags Tracking
// @Accept json
// @Produce json
// @Param request body dto.BatchEstimateRequest true "ID заказов (до 50)"
// @Success 200 {object} utils.SuccessResponse{data=dto.BatchEstimateResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/delivery/estimates [post]
func (h *TrackingHandler) BatchEstimate(c *fiber.Ctx) error {
	var req dto.BatchEstimateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.trackingUC.BatchEstimate(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Results)})
}
