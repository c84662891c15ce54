// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ayurplan/engine/internal/infrastructure/http/middleware"
	"github.com/ayurplan/engine/internal/ports/inbound"
	"github.com/ayurplan/engine/pkg/errors"
)

const maxBodyBytes = 1 << 20

// APIHandlers handles REST API requests
type APIHandlers struct {
	nutrition  inbound.NutritionService
	compliance inbound.ComplianceService
	meals      inbound.MealSuggestionService
	charts     inbound.DietChartService
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(
	nutrition inbound.NutritionService,
	compliance inbound.ComplianceService,
	meals inbound.MealSuggestionService,
	charts inbound.DietChartService,
	logger *zap.Logger,
) *APIHandlers {
	return &APIHandlers{
		nutrition:  nutrition,
		compliance: compliance,
		meals:      meals,
		charts:     charts,
		validate:   newValidator(),
		logger:     logger.Named("api"),
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it
func (h *APIHandlers) decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if stderrors.Is(err, io.EOF) {
			return errors.NewBadRequestError("Request body is required")
		}
		return errors.NewBadRequestError("Invalid JSON body").WithCause(err)
	}
	return h.validateStruct(dst)
}

func (h *APIHandlers) validateStruct(dst interface{}) error {
	err := h.validate.Struct(dst)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewBadRequestError(err.Error())
	}
	out := make([]errors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, errors.ValidationError{
			Field:   fieldPath(fe.Namespace()),
			Value:   fe.Value(),
			Tag:     fe.Tag(),
			Message: validationMessage(fe),
		})
	}
	return errors.NewValidationErrors(out)
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func validationMessage(fe validator.FieldError) string {
	field := fieldPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// writeJSON writes a JSON response
func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func (h *APIHandlers) ok(w http.ResponseWriter, status int, data interface{}, message string) {
	h.writeJSON(w, status, APIResponse{Success: true, Data: data, Message: message})
}

// writeError renders err in the error envelope. Errors that are not
// AppErrors are reported as internal errors without their detail.
func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.RequestIDFromContext(r.Context())

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		h.logger.Error("Unhandled error",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		appErr = errors.NewInternalError("")
	}
	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("request_id", requestID),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
		)
	}
	h.writeJSON(w, status, errors.ToErrorResponse(appErr, requestID))
}
