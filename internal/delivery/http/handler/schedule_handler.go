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

// ScheduleHandler - расчет графика и статуса доставки
type ScheduleHandler struct {
	scheduleUC *usecase.ScheduleUseCase
	logger     *zap.Logger
}

func NewScheduleHandler(scheduleUC *usecase.ScheduleUseCase, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUC: scheduleUC,
		logger:     logger,
	}
}

// Compute godoc
// @Summary Расчет графика доставки
// @Description activation + 1 день обработки = dispatch; dispatch + transit + 1 день буфера = expected
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.ScheduleRequest true "Дата активации (YYYY-MM-DD, опционально) и расстояние в км"
// @Success 200 {object} utils.SuccessResponse{data=dto.ScheduleResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/schedule [post]
func (h *ScheduleHandler) Compute(c *fiber.Ctx) error {
	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.scheduleUC.Compute(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Status godoc
// @Summary Статус просрочки доставки
// @Description Доставка просрочена, если ожидаемая дата не позже сегодняшней
// @Tags Schedule
// @Produce json
// @Param expectedDate query string true "Ожидаемая дата (YYYY-MM-DD)"
// @Success 200 {object} utils.SuccessResponse{data=dto.DeliveryStatusResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/delivery/status [get]
func (h *ScheduleHandler) Status(c *fiber.Ctx) error {
	var req dto.DeliveryStatusRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid query parameters"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.scheduleUC.Status(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
