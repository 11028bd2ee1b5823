package validation

import (
	"fmt"
	"jafa-app/models"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator"
)

var (
	validate *validator.Validate
	once     sync.Once
)

var countryCodeRe = regexp.MustCompile(`^[A-Z]{2}$`)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		mustRegister("partner_type", func(fl validator.FieldLevel) bool {
			return models.PartnerType(fl.Field().String()).Valid()
		})
		mustRegister("vehicle_type", func(fl validator.FieldLevel) bool {
			_, ok := models.VehicleTypeLabels[models.VehicleType(fl.Field().String())]
			return ok
		})
		mustRegister("currency", func(fl validator.FieldLevel) bool {
			_, ok := models.CurrencySymbols[models.Currency(fl.Field().String())]
			return ok
		})
		mustRegister("shipment_status", func(fl validator.FieldLevel) bool {
			return models.ShipmentStatus(fl.Field().String()).Valid()
		})
		mustRegister("country_code", func(fl validator.FieldLevel) bool {
			return countryCodeRe.MatchString(fl.Field().String())
		})
	})
	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// FieldError is one failed constraint, addressed by the JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Errors is returned whenever input is rejected; handlers render it as 422.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error that a struct tag cannot express, such as a
// partner having the wrong role.
func (e Errors) Add(field, rule, message string) Errors {
	return append(e, FieldError{Field: field, Rule: rule, Message: message})
}

// Field builds a single-field Errors value.
func Field(field, rule, message string) Errors {
	return Errors{{Field: field, Rule: rule, Message: message}}
}

// Struct checks v against its validate tags. It returns nil or Errors.
func Struct(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "partner_type", "vehicle_type", "currency", "shipment_status":
		return fmt.Sprintf("%q is not one of the available choices.", fmt.Sprint(fe.Value()))
	case "country_code":
		return "Enter a two-letter upper-case country code."
	}
	return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
}
