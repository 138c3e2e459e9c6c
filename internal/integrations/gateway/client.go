package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"medical-inventory/pkg/config"
	apperrors "medical-inventory/pkg/errors"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const restPrefix = "/rest/v1/"

// Client - REST-клиент удалённого хранилища в стиле PostgREST.
// Повторов нет: ошибка сразу возвращается вызывающему.
type Client struct {
	httpClient *resty.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

func New(cfg config.GatewayConfig, logger *zap.Logger) *Client {
	key := cfg.ServiceKey
	if key == "" {
		key = cfg.AnonKey
	}

	httpClient := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("apikey", cfg.AnonKey)
	if key != "" {
		httpClient.SetAuthToken(key)
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger.Named("gateway"),
	}
}

// Select выполняет GET /rest/v1/{table} и раскладывает массив строк в out.
func (c *Client) Select(ctx context.Context, table string, params *Params, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, table, params, nil)
	if err != nil {
		return err
	}
	return c.decode(table, resp, out)
}

// Insert вставляет одну строку и возвращает её представление.
func (c *Client) Insert(ctx context.Context, table string, values map[string]interface{}, out interface{}) error {
	resp, err := c.do(ctx, http.MethodPost, table, NewParams(), values)
	if err != nil {
		return err
	}
	return c.decode(table, resp, out)
}

// Update меняет все строки, подходящие под фильтры, и возвращает их.
func (c *Client) Update(ctx context.Context, table string, params *Params, values map[string]interface{}, out interface{}) error {
	if params.Empty() {
		return apperrors.NewInternalError("обновление без фильтра запрещено")
	}
	resp, err := c.do(ctx, http.MethodPatch, table, params, values)
	if err != nil {
		return err
	}
	return c.decode(table, resp, out)
}

// Delete удаляет строки по фильтру и возвращает их количество.
func (c *Client) Delete(ctx context.Context, table string, params *Params) (int, error) {
	if params.Empty() {
		return 0, apperrors.NewInternalError("удаление без фильтра запрещено")
	}
	resp, err := c.do(ctx, http.MethodDelete, table, params.Select("id"), nil)
	if err != nil {
		return 0, err
	}
	var deleted []json.RawMessage
	if err := c.decode(table, resp, &deleted); err != nil {
		return 0, err
	}
	return len(deleted), nil
}

func (c *Client) do(ctx context.Context, method, table string, params *Params, body interface{}) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperrors.NewTransportError(err)
	}

	req := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParamsFromValues(params.Values())
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, restPrefix+url.PathEscape(table))
	if err != nil {
		c.logger.Error("Хранилище недоступно",
			zap.String("method", method),
			zap.String("table", table),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Wrap(apperrors.KindTransport, apperrors.ErrGatewayTimeout.Message, err)
		}
		return nil, apperrors.NewTransportError(err)
	}

	if resp.IsError() {
		appErr := parseError(resp.StatusCode(), resp.Body())
		c.logger.Warn("Хранилище вернуло ошибку",
			zap.String("method", method),
			zap.String("table", table),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("kind", appErr.Kind.String()),
			zap.Error(appErr),
		)
		return nil, appErr
	}

	c.logger.Debug("Запрос к хранилищу выполнен",
		zap.String("method", method),
		zap.String("table", table),
		zap.Int("status_code", resp.StatusCode()),
		zap.Duration("duration", resp.Time()),
	)
	return resp, nil
}

func (c *Client) decode(table string, resp *resty.Response, out interface{}) error {
	if out == nil {
		return nil
	}
	raw := resp.Body()
	if len(raw) == 0 {
		raw = []byte("[]")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Error("Не удалось разобрать ответ хранилища", zap.String("table", table), zap.Error(err))
		return apperrors.Wrap(apperrors.KindTransport, fmt.Sprintf("неожиданный ответ хранилища для %s", table), err)
	}
	return nil
}
