package controllers

import (
	"fmt"
	"io"
	"jafa-app/controllers/helpers"
	"jafa-app/services"

	"github.com/gofiber/fiber/v2"
)

type DocumentController struct {
	Documents *services.DocumentService
}

func NewDocumentController(documents *services.DocumentService) *DocumentController {
	return &DocumentController{Documents: documents}
}

func (c *DocumentController) GetDocuments(ctx *fiber.Ctx) error {
	shipmentID, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	documents, err := c.Documents.List(shipmentID)
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Documents found", documents)
}

// UploadDocument expects a multipart form with "name" and "file".
func (c *DocumentController) UploadDocument(ctx *fiber.Ctx) error {
	shipmentID, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}

	input := services.DocumentInput{Name: ctx.FormValue("name")}
	var upload services.Upload

	file, err := ctx.FormFile("file")
	if err == nil {
		f, err := file.Open()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to open file: " + err.Error()})
		}
		defer f.Close()
		upload = services.Upload{
			Filename:    file.Filename,
			ContentType: file.Header.Get(fiber.HeaderContentType),
			Size:        file.Size,
			Body:        f,
		}
	}

	document, err := c.Documents.Upload(ctx.UserContext(), shipmentID, input, upload, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.Created(ctx, fmt.Sprintf("Document %s uploaded successfully", document.Name), document)
}

func (c *DocumentController) DownloadDocument(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}

	document, body, err := c.Documents.Open(ctx.UserContext(), id)
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return helpers.RespondError(ctx, err)
	}

	ctx.Attachment(document.OriginalFilename)
	if document.ContentType != "" {
		ctx.Set(fiber.HeaderContentType, document.ContentType)
	}
	return ctx.Send(data)
}

func (c *DocumentController) DeleteDocument(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}

	document, err := c.Documents.Delete(ctx.UserContext(), id, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, fmt.Sprintf("Document %s deleted successfully", document.Name), nil)
}
