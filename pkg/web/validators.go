package web

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports JSON field names instead of Go field names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidationErrors flattens validator errors into field -> rule pairs.
// Returns nil if err is not a validator.ValidationErrors.
func ValidationErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	errorResponse := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		// Namespace is "<Struct>.<json path>", the root struct name is dropped.
		field := fieldErr.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		// fieldErr.Tag() returns "required", "max", etc.
		errorResponse[field] = "failed on rule: " + fieldErr.Tag()
	}
	return errorResponse
}

// RespondValidation writes a 400 response describing err.
// Validator errors are reported per field, anything else as a generic invalid body.
func RespondValidation(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if fields := ValidationErrors(err); fields != nil {
		logger.WarnContext(r.Context(), "Validation errors occurred", "errors", fields)
		RespondJSON(w, logger, http.StatusBadRequest, map[string]any{"validation_errors": fields})
		return
	}
	logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
	RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
}
