package helpers

import (
	"errors"
	"jafa-app/repositories"
	"jafa-app/storage"
	"jafa-app/validation"

	"github.com/gofiber/fiber/v2"
)

// RespondError maps service errors onto HTTP statuses.
func RespondError(ctx *fiber.Ctx, err error) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  verrs,
		})
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repositories.ErrDuplicateReference),
		errors.Is(err, repositories.ErrDuplicateHoliday),
		errors.Is(err, repositories.ErrDuplicateTaxID),
		errors.Is(err, repositories.ErrPartnerInUse):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ctx.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// ActorID is the authenticated user, or 0 outside the auth middleware.
func ActorID(ctx *fiber.Ctx) int {
	if id, ok := ctx.Locals("userID").(float64); ok {
		return int(id)
	}
	return 0
}

// ParamID reads a positive numeric path parameter.
func ParamID(ctx *fiber.Ctx, name string) (uint, error) {
	id, err := ctx.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	return uint(id), nil
}

func OK(ctx *fiber.Ctx, message string, data interface{}) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": message, "data": data})
}

func Created(ctx *fiber.Ctx, message string, data interface{}) error {
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": message, "data": data})
}
