package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/smart-class/classroom-service/internal/errors"
	"github.com/smart-class/classroom-service/internal/models"
)

// Validator wraps a single validator.Validate instance with the service's
// custom domain rules registered.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	registerCustomValidators(validate)
	return &Validator{validate: validate}
}

// Validate checks struct tags and converts failures to the shared
// ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return ve
		}
		return err
	}
	return nil
}

func validateQuestionType(fl validator.FieldLevel) bool {
	switch models.QuestionType(fl.Field().String()) {
	case models.ShortAnswer, models.MultipleChoice:
		return true
	}
	return false
}

func validateProfileStatus(fl validator.FieldLevel) bool {
	switch models.ProfileStatus(fl.Field().String()) {
	case models.StatusPending, models.StatusActive:
		return true
	}
	return false
}

func validatePointKind(fl validator.FieldLevel) bool {
	return models.PointKind(fl.Field().String()).Valid()
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("profile_status", validateProfileStatus)
	validate.RegisterValidation("point_kind", validatePointKind)

	// Report json field names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
