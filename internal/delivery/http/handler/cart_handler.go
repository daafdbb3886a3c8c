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

type CartHandler struct {
	cartUC *usecase.CartUseCase
	logger *zap.Logger
}

func NewCartHandler(cartUC *usecase.CartUseCase, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartUC: cartUC,
		logger: logger,
	}
}

// Create godoc
// @Summary Новая корзина
// @Tags Cart
// @Produce json
// @Success 201 {object} utils.SuccessResponse{data=dto.CartResponse}
// @Router /api/v1/carts [post]
func (h *CartHandler) Create(c *fiber.Ctx) error {
	result, err := h.cartUC.Create(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}
	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, result, nil)
}

// Get godoc
// @Summary Содержимое корзины
// @Tags Cart
// @Produce json
// @Param id path string true "ID корзины"
// @Success 200 {object} utils.SuccessResponse{data=dto.CartResponse}
// @Router /api/v1/carts/{id} [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	result, err := h.cartUC.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Items)})
}

// Save godoc
// @Summary Сохранить корзину
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "ID корзины"
// @Param request body dto.SaveCartRequest true "Позиции корзины"
// @Success 200 {object} utils.SuccessResponse{data=dto.CartResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/carts/{id} [put]
func (h *CartHandler) Save(c *fiber.Ctx) error {
	var req dto.SaveCartRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.cartUC.Save(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Items)})
}

// Clear godoc
// @Summary Очистить корзину
// @Tags Cart
// @Param id path string true "ID корзины"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/carts/{id} [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.cartUC.Clear(c.UserContext(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
