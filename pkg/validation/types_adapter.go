package validation

import (
	"reflect"

	"medical-inventory/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// registerNullTypes учит валидатор "смотреть внутрь" null-типов.
// Невалидное значение превращается в nil, чтобы сработал `omitempty`.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Int); ok && val.Valid {
			return val.Int
		}
		return nil
	}, null.Int{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Float64); ok && val.Valid {
			return val.Float64
		}
		return nil
	}, null.Float64{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Time); ok && val.Valid {
			return val.Time
		}
		return nil
	}, null.Time{})

	// Дата без времени проверяется как строка "YYYY-MM-DD".
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(types.NullDate); ok && val.Valid {
			return val.Date.String()
		}
		return nil
	}, types.NullDate{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(types.Date); ok && !val.IsZero() {
			return val.String()
		}
		return nil
	}, types.Date{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(uuid.UUID); ok && val != uuid.Nil {
			return val.String()
		}
		return nil
	}, uuid.UUID{})
}
