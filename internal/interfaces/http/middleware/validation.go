package middleware

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/clubfinanzas/backend/internal/domain/club"
	"github.com/clubfinanzas/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var setupOnce sync.Once

// SetupValidator configures gin's validator: errors name fields by their
// json tag, decimal amounts compare as numbers (so `gt=0` works on money)
// and the `slug` tag checks public club slugs.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})

		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return club.ValidateSlug(fl.Field().String()) == nil
		})
	})
}

// ValidationDetails turns binding errors into per-field details.
// Returns nil for errors that are not validation failures (bad JSON).
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: getValidationMessage(e),
		})
	}
	return details
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "email":
		return "Formato de email inválido"
	case "min":
		if e.Kind() == reflect.String {
			return "Debe tener al menos " + e.Param() + " caracteres"
		}
		return "Debe ser al menos " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Debe tener como máximo " + e.Param() + " caracteres"
		}
		return "Debe ser como máximo " + e.Param()
	case "uuid":
		return "Formato de UUID inválido"
	case "oneof":
		return "Debe ser uno de: " + e.Param()
	case "gte":
		return "Debe ser mayor o igual que " + e.Param()
	case "gt":
		return "Debe ser mayor que " + e.Param()
	case "lte":
		return "Debe ser menor o igual que " + e.Param()
	case "slug":
		return "Solo puede contener minúsculas, dígitos y guiones"
	case "url":
		return "Formato de URL inválido"
	default:
		return "Valor inválido"
	}
}
