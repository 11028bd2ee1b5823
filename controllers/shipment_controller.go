package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"jafa-app/controllers/helpers"
	"jafa-app/models"
	"jafa-app/pdfsheet"
	"jafa-app/repositories"
	"jafa-app/services"

	"github.com/gofiber/fiber/v2"
)

type ShipmentController struct {
	Shipments *services.ShipmentService
	Exports   *services.ExportService
	Mail      *services.MailService
	FontDir   string
}

func NewShipmentController(shipments *services.ShipmentService, exports *services.ExportService, mail *services.MailService, fontDir string) *ShipmentController {
	return &ShipmentController{Shipments: shipments, Exports: exports, Mail: mail, FontDir: fontDir}
}

// shipmentView adds the derived money figures to the stored record.
type shipmentView struct {
	models.Shipment
	StatusLabel string                 `json:"status_label"`
	Finance     models.ShipmentFinance `json:"finance"`
}

func viewOf(s models.Shipment) shipmentView {
	return shipmentView{Shipment: s, StatusLabel: s.Status.Label(), Finance: s.Finance()}
}

func (c *ShipmentController) GetAllShipments(ctx *fiber.Ctx) error {
	filter := repositories.ShipmentFilter{
		Q:      ctx.Query("q"),
		Status: models.ShipmentStatus(ctx.Query("status")),
		Scope:  ctx.Query("scope"),
	}
	if id := ctx.QueryInt("customer_id"); id > 0 {
		filter.CustomerID = uint(id)
	}
	if id := ctx.QueryInt("carrier_id"); id > 0 {
		filter.CarrierID = uint(id)
	}

	shipments, err := c.Shipments.List(filter)
	if err != nil {
		return helpers.RespondError(ctx, err)
	}

	views := make([]shipmentView, 0, len(shipments))
	for _, s := range shipments {
		views = append(views, viewOf(s))
	}
	return helpers.OK(ctx, "Shipments found", views)
}

func (c *ShipmentController) GetShipmentByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	shipment, err := c.Shipments.Get(id)
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Shipment found", viewOf(*shipment))
}

func (c *ShipmentController) CreateShipment(ctx *fiber.Ctx) error {
	var input services.ShipmentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	shipment, err := c.Shipments.Create(input, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.Created(ctx, fmt.Sprintf("Shipment %s created successfully", shipment.ReferenceCode), viewOf(*shipment))
}

func (c *ShipmentController) UpdateShipment(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	var input services.ShipmentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	shipment, err := c.Shipments.Update(id, input, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Shipment updated successfully", viewOf(*shipment))
}

func (c *ShipmentController) AssignCarrier(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	var input services.AssignCarrierInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	shipment, err := c.Shipments.AssignCarrier(id, input, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Carrier assigned successfully", viewOf(*shipment))
}

func (c *ShipmentController) ChangeStatus(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	var input services.StatusInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	shipment, err := c.Shipments.ChangeStatus(id, input, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Status changed successfully", viewOf(*shipment))
}

func (c *ShipmentController) DeleteShipment(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	if err := c.Shipments.Delete(ctx.UserContext(), id, helpers.ActorID(ctx)); err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Shipment deleted successfully", nil)
}

func (c *ShipmentController) GetHistory(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	history, err := c.Shipments.HistoryOf(id)
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "History found", history)
}

// DownloadSheet streams the printable PDF sheet.
func (c *ShipmentController) DownloadSheet(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	shipment, err := c.Shipments.Get(id)
	if err != nil {
		return helpers.RespondError(ctx, err)
	}

	var buf bytes.Buffer
	if err := pdfsheet.Render(&buf, pdfsheet.Title(*shipment), pdfsheet.Sections(*shipment), pdfsheet.WithFontDir(c.FontDir)); err != nil {
		return helpers.RespondError(ctx, err)
	}

	ctx.Attachment(pdfsheet.FileName(*shipment))
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	return ctx.Send(buf.Bytes())
}

func (c *ShipmentController) EmailSheet(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}

	to, err := c.Mail.SendCarrierOrder(id, helpers.ActorID(ctx))
	if errors.Is(err, services.ErrMailDisabled) {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Carrier order sent to "+to, fiber.Map{"to": to})
}

// ExportOpenShipments downloads the shipments still waiting for a carrier.
func (c *ShipmentController) ExportOpenShipments(ctx *fiber.Ctx) error {
	buf, filename, err := c.Exports.OpenShipmentsWorkbook()
	if err != nil {
		return helpers.RespondError(ctx, err)
	}

	ctx.Attachment(filename)
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Send(buf.Bytes())
}
