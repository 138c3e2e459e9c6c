// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"reflect"
	"regexp"

	"medical-inventory/internal/authz"
	"medical-inventory/pkg/constants"

	"github.com/go-playground/validator/v10"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9 ()-]{6,20}$`)

// RegisterCustomValidations "собирает" все наши кастомные правила валидации
// и регистрирует их в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"equipment_state":   oneOf(constants.EquipmentStates),
		"maintenance_type":  oneOf(constants.MaintenanceTypes),
		"maintenance_state": oneOf(constants.MaintenanceStates),
		"event_type":        oneOf(constants.EventTypes),
		"event_state":       oneOf(constants.EventStates),
		"event_priority":    oneOf(constants.EventPriorities),
		"user_role":         oneOf(authz.Roles),
		"user_status":       oneOf(constants.UserStatuses),
		"nonneg_money":      isNonNegativeMoney,
		"phone":             isPhone,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// oneOf - значение из закрытого перечисления, с учётом регистра.
func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return constants.Contains(allowed, fl.Field().String())
	}
}

func isNonNegativeMoney(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() >= 0
	case reflect.Int, reflect.Int64:
		return fl.Field().Int() >= 0
	}
	return false
}

func isPhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}
