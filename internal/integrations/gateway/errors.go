package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "medical-inventory/pkg/errors"
)

// apiError - тело ошибки PostgREST.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// parseError переводит ответ хранилища в AppError, сохраняя исходное сообщение.
func parseError(status int, body []byte) *apperrors.AppError {
	var e apiError
	if err := json.Unmarshal(body, &e); err != nil || e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
		if e.Message == "" {
			e.Message = http.StatusText(status)
		}
	}

	upstream := fmt.Errorf("%s", e.Message)
	if e.Code != "" {
		upstream = fmt.Errorf("%s (%s)", e.Message, e.Code)
	}
	if e.Details != "" {
		upstream = fmt.Errorf("%w: %s", upstream, e.Details)
	}

	switch {
	case e.Code == "PGRST116":
		return apperrors.Wrap(apperrors.KindNotFound, "запись не найдена", upstream)
	case e.Code == "23505":
		return apperrors.Wrap(apperrors.KindDomain, "запись с такими данными уже существует", upstream)
	case e.Code == "23503":
		return apperrors.Wrap(apperrors.KindDomain, "ссылка на несуществующую запись", upstream)
	case strings.HasPrefix(e.Code, "23"):
		return apperrors.Wrap(apperrors.KindDomain, "нарушено ограничение данных", upstream)
	case strings.HasPrefix(e.Code, "22"):
		return apperrors.Wrap(apperrors.KindValidation, "недопустимое значение поля", upstream)
	}

	switch {
	case status == http.StatusUnauthorized:
		return apperrors.Wrap(apperrors.KindAuth, "хранилище отклонило ключ доступа", upstream)
	case status == http.StatusForbidden:
		return apperrors.Wrap(apperrors.KindForbidden, "хранилище запретило операцию", upstream)
	case status == http.StatusNotFound || status == http.StatusNotAcceptable:
		return apperrors.Wrap(apperrors.KindNotFound, "запись не найдена", upstream)
	case status == http.StatusConflict:
		return apperrors.Wrap(apperrors.KindDomain, "конфликт данных", upstream)
	case status >= 400 && status < 500:
		return apperrors.Wrap(apperrors.KindValidation, "хранилище отклонило запрос", upstream)
	default:
		return apperrors.Wrap(apperrors.KindTransport, "ошибка хранилища данных", upstream)
	}
}
