package controllers

import (
	"errors"
	"jafa-app/controllers/helpers"
	"jafa-app/services"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Users *services.UserService
}

func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{Users: users}
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input services.LoginInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := c.Users.Login(input)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid username or password"})
	}
	if err != nil {
		return helpers.RespondError(ctx, err)
	}

	return helpers.OK(ctx, "Login successful", result)
}

func (c *AuthController) Me(ctx *fiber.Ctx) error {
	user, err := c.Users.GetUserByID(uint(helpers.ActorID(ctx)))
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "User found", user)
}
