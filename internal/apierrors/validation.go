package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation messages name fields by their JSON key, so a failed
// `analysisId` reads as "analysisId is required".
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// ValidationError sends a 400 for a failed ShouldBind*
func ValidationError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		logger.InfoWithError(c.Request.Context(), "request binding failed", err)
		respond(c, http.StatusBadRequest, CodeInvalidInput, "Invalid request format. Please check your JSON syntax.")
		return
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fieldMessage(fieldErr))
	}
	message := messages[0]
	if len(messages) > 1 {
		message = "Validation failed: " + strings.Join(messages, "; ")
	}
	respond(c, http.StatusBadRequest, CodeInvalidInput, message)
}

var tagMessages = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"uuid":     "%s must be a valid UUID",
	"url":      "%s must be a valid URL",
	"http_url": "%s must be an http(s) URL",
	"oneof":    "%s must be one of: %s",
	"gt":       "%s must be greater than %s",
	"gte":      "%s must be greater than or equal to %s",
	"lt":       "%s must be less than %s",
	"lte":      "%s must be less than or equal to %s",
}

func fieldMessage(fieldErr validator.FieldError) string {
	field := fieldErr.Field()

	switch tag := fieldErr.Tag(); tag {
	case "min", "max", "len":
		bound := map[string]string{"min": "at least", "max": "at most", "len": "exactly"}[tag]
		return strings.TrimSpace(fmt.Sprintf("%s must be %s %s %s", field, bound, fieldErr.Param(), unit(fieldErr.Kind())))
	default:
		format, ok := tagMessages[tag]
		if !ok {
			return fmt.Sprintf("%s failed validation (%s)", field, tag)
		}
		if strings.Count(format, "%s") == 2 {
			return fmt.Sprintf(format, field, fieldErr.Param())
		}
		return fmt.Sprintf(format, field)
	}
}

func unit(kind reflect.Kind) string {
	switch kind {
	case reflect.Slice, reflect.Array, reflect.Map:
		return "items"
	case reflect.String:
		return "characters"
	}
	return ""
}
