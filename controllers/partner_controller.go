package controllers

import (
	"fmt"
	"jafa-app/controllers/helpers"
	"jafa-app/models"
	"jafa-app/repositories"
	"jafa-app/services"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type PartnerController struct {
	Partners *services.PartnerService
}

func NewPartnerController(partners *services.PartnerService) *PartnerController {
	return &PartnerController{Partners: partners}
}

func (c *PartnerController) GetAllPartners(ctx *fiber.Ctx) error {
	filter := repositories.PartnerFilter{Q: ctx.Query("q")}
	if t := ctx.Query("type"); t != "" {
		filter.Types = []models.PartnerType{models.PartnerType(t)}
	}

	partners, err := c.Partners.List(filter)
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Partners found", partners)
}

func (c *PartnerController) GetCustomers(ctx *fiber.Ctx) error {
	partners, err := c.Partners.Customers(ctx.Query("q"))
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Customers found", partners)
}

func (c *PartnerController) GetCarriers(ctx *fiber.Ctx) error {
	partners, err := c.Partners.Carriers(ctx.Query("q"))
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Carriers found", partners)
}

func (c *PartnerController) GetPartnerByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	partner, err := c.Partners.Get(id)
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Partner found", partner)
}

func (c *PartnerController) CreatePartner(ctx *fiber.Ctx) error {
	var input services.PartnerInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	partner, err := c.Partners.Create(input, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.Created(ctx, "Partner created successfully", partner)
}

func (c *PartnerController) UpdatePartner(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	var input services.PartnerInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	partner, err := c.Partners.Update(id, input, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Partner updated successfully", partner)
}

func (c *PartnerController) DeletePartner(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	if err := c.Partners.Delete(id); err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Partner deleted successfully", nil)
}

func (c *PartnerController) ImportPartners(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "File is required"})
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Only Excel files (.xlsx) are allowed"})
	}

	content, err := file.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to open file"})
	}
	defer content.Close()

	result, err := c.Partners.ImportExcel(content, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Upload completed: %d success, %d skipped, %d errors",
			result.SuccessCount, result.SkippedCount, result.ErrorCount),
		"data": result,
	})
}
