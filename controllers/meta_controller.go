package controllers

import (
	"jafa-app/controllers/helpers"
	"jafa-app/models"

	"github.com/gofiber/fiber/v2"
)

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Badge string `json:"badge,omitempty"`
}

type MetaController struct{}

func NewMetaController() *MetaController {
	return &MetaController{}
}

// GetChoices lists the enumerations the forms need, in display order.
func (c *MetaController) GetChoices(ctx *fiber.Ctx) error {
	statuses := make([]Choice, 0, len(models.Statuses))
	for _, s := range models.Statuses {
		statuses = append(statuses, Choice{Value: string(s), Label: s.Label(), Badge: s.Badge()})
	}

	partnerTypes := []Choice{}
	for _, t := range []models.PartnerType{models.PartnerCustomer, models.PartnerCarrier, models.PartnerCustomerCarrier} {
		partnerTypes = append(partnerTypes, Choice{Value: string(t), Label: models.PartnerTypeLabels[t]})
	}

	vehicleTypes := []Choice{}
	for _, v := range []models.VehicleType{models.VehicleTipper, models.VehicleWalkingFloor, models.VehicleTipperOrWF} {
		vehicleTypes = append(vehicleTypes, Choice{Value: string(v), Label: models.VehicleTypeLabels[v]})
	}

	currencies := []Choice{}
	for _, cur := range []models.Currency{models.CZK, models.EUR} {
		currencies = append(currencies, Choice{Value: string(cur), Label: cur.Symbol()})
	}

	return helpers.OK(ctx, "Choices found", fiber.Map{
		"statuses":      statuses,
		"partner_types": partnerTypes,
		"vehicle_types": vehicleTypes,
		"currencies":    currencies,
	})
}
