package validator

import (
	"log"
	"strings"

	"rtw_backend/internal/auth"
	"rtw_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain tag rules on the validator
// instance. Empty values pass; 'required' handles presence separately.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Failing to register a rule is a startup bug, not a runtime
			// condition.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-account-kind", validateAccountKind)
	mustRegister("is-invitation-status", validateInvitationStatus)
	mustRegister("is-gender", validateGender)
	mustRegister("is-visa-status", validateVisaStatus)
	mustRegister("strong-password", validateStrongPassword)
}

func validateAccountKind(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidAccountKind(value)
}

func validateInvitationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.InvitationStatus(value) {
	case models.InvitationStatusAccepted, models.InvitationStatusDeclined:
		return true
	default:
		return false
	}
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch strings.ToLower(value) {
	case "male", "female":
		return true
	default:
		return false
	}
}

func validateVisaStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "citizen", "resident", "transferable_iqama", "visit_visa", "none":
		return true
	default:
		return false
	}
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return auth.ValidatePassword(value)
}
