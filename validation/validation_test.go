package validation

import (
	"jafa-app/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string                `json:"name" validate:"required,max=5"`
	Type     models.PartnerType    `json:"partner_type" validate:"required,partner_type"`
	Status   models.ShipmentStatus `json:"status" validate:"omitempty,shipment_status"`
	Currency models.Currency       `json:"currency" validate:"omitempty,currency"`
	Vehicle  models.VehicleType    `json:"vehicle_type" validate:"omitempty,vehicle_type"`
	Country  string                `json:"country_code" validate:"omitempty,country_code"`
	Email    string                `json:"email" validate:"omitempty,email"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		input  sample
		fields []string
	}{
		{"valid", sample{Name: "JAFA", Type: models.PartnerCarrier, Status: models.StatusClosed, Currency: models.EUR, Vehicle: models.VehicleWalkingFloor, Country: "CZ"}, nil},
		{"missing required", sample{}, []string{"name", "partner_type"}},
		{"too long", sample{Name: "abcdef", Type: models.PartnerCustomer}, []string{"name"}},
		{"unknown partner type", sample{Name: "x", Type: "supplier"}, []string{"partner_type"}},
		{"unknown status", sample{Name: "x", Type: models.PartnerCustomer, Status: "lost"}, []string{"status"}},
		{"unknown currency", sample{Name: "x", Type: models.PartnerCustomer, Currency: "USD"}, []string{"currency"}},
		{"unknown vehicle", sample{Name: "x", Type: models.PartnerCustomer, Vehicle: "VAN"}, []string{"vehicle_type"}},
		{"lower-case country", sample{Name: "x", Type: models.PartnerCustomer, Country: "cz"}, []string{"country_code"}},
		{"bad email", sample{Name: "x", Type: models.PartnerCustomer, Email: "nope"}, []string{"email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			errs, ok := err.(Errors)
			require.True(t, ok, "expected validation.Errors, got %T", err)
			var got []string
			for _, fe := range errs {
				got = append(got, fe.Field)
				assert.NotEmpty(t, fe.Message)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestErrorsAdd(t *testing.T) {
	errs := Field("customer_id", "role", "Partner is not a customer.")
	errs = errs.Add("carrier_id", "role", "Partner is not a carrier.")

	assert.Len(t, errs, 2)
	assert.Contains(t, errs.Error(), "customer_id: Partner is not a customer.")
	assert.Contains(t, errs.Error(), "carrier_id")
}
