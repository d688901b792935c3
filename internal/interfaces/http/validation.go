package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Los mensajes usan el nombre JSON del campo.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// parseAndValidate decodifica el cuerpo JSON en out y aplica las etiquetas validate.
// Si algo falla escribe el 400 y devuelve ok=false.
func parseAndValidate(c *fiber.Ctx, out any) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := getValidator().Struct(out); err != nil {
		return false, badRequest(c, "VALIDATION", validationMessage(err))
	}
	return true, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	// Namespace: "BillRequest.items[0].quantity"; se quita el nombre del tipo.
	field := fe.Namespace()
	if _, rest, found := strings.Cut(field, "."); found {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", field)
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s debe ser menor o igual que %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s debe tener al menos %s elemento(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s debe tener al menos %s caracteres", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s debe tener como máximo %s caracteres", field, fe.Param())
	default:
		return fmt.Sprintf("%s no es válido (%s)", field, fe.Tag())
	}
}
