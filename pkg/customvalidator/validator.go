package customvalidator

import (
	"time"

	"github.com/go-playground/validator/v10"

	"gearguard/pkg/constants"
)

// RegisterCustomValidations wires the enum and date rules used by the
// DTO layer. Tags:
//
//	user_role       - one of the closed role set
//	request_stage   - one of the lifecycle stages
//	request_type    - corrective|preventive
//	equipment_status
//	date_format     - YYYY-MM-DD
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return constants.Role(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("request_stage", func(fl validator.FieldLevel) bool {
		return constants.Stage(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("request_type", func(fl validator.FieldLevel) bool {
		return constants.RequestType(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("equipment_status", func(fl validator.FieldLevel) bool {
		return constants.EquipmentStatus(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("date_format", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	return nil
}
