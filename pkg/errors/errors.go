package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind - категория ошибки, по ней выбирается HTTP-статус ответа.
type Kind int

const (
	KindInternal Kind = iota
	KindTransport
	KindNotFound
	KindValidation
	KindDomain
	KindConflict
	KindAuth
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindDomain:
		return "domain"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// HTTPStatus сопоставляет категорию ошибки со статусом ответа.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindTransport:
		return http.StatusBadGateway
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindDomain:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

var (
	// JWT и сессии
	ErrInvalidSigningMethod = &AppError{Kind: KindAuth, Message: "неверный метод подписи токена"}
	ErrInvalidToken         = &AppError{Kind: KindAuth, Message: "недопустимый токен"}
	ErrTokenExpired         = &AppError{Kind: KindAuth, Message: "срок действия токена истёк"}
	ErrTokenIsNotRefresh    = &AppError{Kind: KindAuth, Message: "токен не является refresh-токеном"}
	ErrTokenIsNotAccess     = &AppError{Kind: KindAuth, Message: "токен не является access-токеном"}
	ErrSessionExpired       = &AppError{Kind: KindAuth, Message: "сессия истекла или была завершена"}

	// Авторизация
	ErrEmptyAuthHeader    = &AppError{Kind: KindAuth, Message: "заголовок авторизации отсутствует"}
	ErrInvalidAuthHeader  = &AppError{Kind: KindAuth, Message: "неверный формат заголовка авторизации"}
	ErrInvalidCredentials = &AppError{Kind: KindAuth, Message: "неверные учётные данные"}
	ErrAccountLocked      = &AppError{Kind: KindAuth, Message: "слишком много попыток входа, повторите позже"}
	ErrUnauthorized       = &AppError{Kind: KindAuth, Message: "неавторизован"}
	ErrForbidden          = &AppError{Kind: KindForbidden, Message: "доступ запрещён"}

	// Общие
	ErrNotFound       = &AppError{Kind: KindNotFound, Message: "запись не найдена"}
	ErrUserNotFound   = &AppError{Kind: KindNotFound, Message: "пользователь не найден"}
	ErrBadRequest     = &AppError{Kind: KindValidation, Message: "неверный запрос"}
	ErrConflict       = &AppError{Kind: KindConflict, Message: "запись была изменена другим пользователем"}
	ErrGatewayTimeout = &AppError{Kind: KindTransport, Message: "хранилище данных не ответило вовремя"}
)

// AppError - ошибка доступа к данным или бизнес-логики с категорией.
// Сообщение предназначено для человека, категория - для обработки кодом.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is позволяет сравнивать обёрнутые ошибки с сигнальными значениями через errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewTransportError(err error) *AppError {
	return &AppError{Kind: KindTransport, Message: "ошибка обращения к хранилищу данных", Err: err}
}

func NewInternalError(message string) *AppError {
	return &AppError{Kind: KindInternal, Message: message}
}

// KindOf возвращает категорию ошибки; для "чужих" ошибок - KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		return KindValidation
	}
	return KindInternal
}

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError - ошибка, готовая к отдаче клиенту.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}
