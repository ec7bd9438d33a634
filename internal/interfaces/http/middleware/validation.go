package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/maumaun30/CM-Pharmacy-API/internal/interfaces/http/dto"
)

// SetupValidator makes binding errors report json (or form) tag names
// instead of Go field names.
func SetupValidator() {
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
}

// HandleValidationError answers a failed bind with the standard 400 envelope.
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, c.GetString(RequestIDContextKey)))
}

// FormatValidationErrors turns binding errors into a response with one
// detail per failed field. Non-validator errors (malformed JSON) yield the
// envelope without details.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details = append(details, dto.ValidationDetail{
				Field:   fe.Field(),
				Message: getValidationMessage(fe),
			})
		}
	}

	resp := dto.NewValidationErrorResponse(details)
	resp.Error.RequestID = requestID
	return resp
}

// fixedValidationMessages covers the tags whose message needs no parameter.
var fixedValidationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"uuid":     "Invalid UUID format",
	"numeric":  "Must be numeric",
	"alphanum": "Must be alphanumeric",
}

// getValidationMessage returns a human-readable message for a failed rule.
func getValidationMessage(e validator.FieldError) string {
	if msg, ok := fixedValidationMessages[e.Tag()]; ok {
		return msg
	}

	switch e.Tag() {
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "lt":
		return "Must be less than " + e.Param()
	default:
		return "Invalid value"
	}
}
