package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/logging"
	"github.com/GriffinCanCode/StarfleetGamifier/internal/storage"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is used when Options.BaseURL is empty.
	DefaultBaseURL = "http://localhost:8080/api"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	userAgent   = "StarfleetGamifier/1.0"
	contentJSON = "application/json"
)

// Options configures a Client. Zero values select defaults.
type Options struct {
	BaseURL string
	// Timeout bounds each request; negative disables the bound.
	Timeout time.Duration
	// RateLimit caps requests per second; zero or negative means unlimited.
	RateLimit float64

	// Store supplies the auth token. A nil store means no token is ever sent.
	Store   storage.Store
	Loading *LoadingState
	Metrics *monitoring.Metrics
	Logger  *logging.Logger

	// Transport overrides the pooled transport, mainly for tests.
	Transport http.RoundTripper
}

// Client is the single choke point for backend calls. It attaches headers,
// maintains the shared loading state and normalizes errors.
type Client struct {
	resty   *resty.Client
	baseURL string
	store   storage.Store
	loading *LoadingState
	metrics *monitoring.Metrics
	logger  *zap.Logger

	mu      sync.RWMutex
	limiter *rate.Limiter
}

// NewClient creates a client. Retries are disabled: a failed call fails once.
func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := opts.Timeout
	switch {
	case timeout == 0:
		timeout = DefaultTimeout
	case timeout < 0:
		timeout = 0
	}

	logger := opts.Logger.Component("api")

	transport := opts.Transport
	if transport == nil {
		// Pooled transport only; retryablehttp's retry loop is not used.
		retryClient := retryablehttp.NewClient()
		retryClient.RetryMax = 0
		retryClient.Logger = nil
		transport = retryClient.HTTPClient.Transport
	}

	restyClient := resty.New()
	restyClient.
		SetTransport(transport).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent).
		SetJSONMarshaler(sonic.ConfigStd.Marshal).
		SetJSONUnmarshaler(sonic.ConfigStd.Unmarshal).
		SetLogger(logger.Sugar())

	loading := opts.Loading
	if loading == nil {
		loading = NewLoadingState()
	}
	if opts.Metrics != nil {
		loading.mu.Lock()
		if loading.onChange == nil {
			loading.onChange = opts.Metrics.SetInFlight
		}
		loading.mu.Unlock()
	}

	c := &Client{
		resty:   restyClient,
		baseURL: baseURL,
		store:   opts.Store,
		loading: loading,
		metrics: opts.Metrics,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	c.SetRateLimit(opts.RateLimit)
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Loading returns the shared loading state.
func (c *Client) Loading() *LoadingState {
	return c.loading
}

// IsLoading reports whether any request is in flight.
func (c *Client) IsLoading() bool {
	return c.loading.IsLoading()
}

// SetRateLimit configures rate limiting (requests per second).
func (c *Client) SetRateLimit(rps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rps <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// URL joins the base URL and endpoint verbatim.
func (c *Client) URL(endpoint string) string {
	return c.baseURL + "/" + endpoint
}

// Get fetches endpoint with query parameters and decodes the body into out.
func (c *Client) Get(ctx context.Context, endpoint string, params Params, out any) error {
	return c.Do(ctx, &Request{Method: MethodGet, Endpoint: endpoint, Params: params}, out)
}

// Post sends body as JSON.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.Do(ctx, &Request{Method: MethodPost, Endpoint: endpoint, Body: body}, out)
}

// Put sends body as JSON.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.Do(ctx, &Request{Method: MethodPut, Endpoint: endpoint, Body: body}, out)
}

// Delete removes the resource at endpoint.
func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.Do(ctx, &Request{Method: MethodDelete, Endpoint: endpoint}, out)
}

// Upload posts file under the multipart field "file" plus fields.
func (c *Client) Upload(ctx context.Context, endpoint string, file *File, fields map[string]any, out any) error {
	return c.Do(ctx, &Request{Method: MethodUpload, Endpoint: endpoint, File: file, Fields: fields}, out)
}

// Do dispatches req. The loading state is raised before dispatch and lowered
// after settlement, before Do returns, whatever the outcome.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	if req == nil || req.Endpoint == "" {
		return ErrEmptyEndpoint
	}
	if req.Method == MethodUpload && req.File == nil {
		return fmt.Errorf("api: upload to %s requires a file", req.Endpoint)
	}

	method := req.Method.HTTPMethod()
	url := c.URL(req.Endpoint)
	token := c.authToken()
	requestID := uuid.NewString()

	c.loading.begin()
	defer c.loading.end()

	timer := monitoring.NewTimer(c.metrics, method)
	log := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("url", url),
	)

	c.mu.RLock()
	limiter := c.limiter
	c.mu.RUnlock()
	if err := limiter.Wait(ctx); err != nil {
		timer.Stop(0)
		return c.networkFailure(log, method, url, fmt.Errorf("rate limit: %w", err))
	}

	r := c.resty.R().SetContext(ctx)
	if token != "" {
		r.SetHeader("Authorization", "Bearer "+token)
	}
	if len(req.Params) > 0 {
		r.SetQueryParamsFromValues(req.Params.Values())
	}

	if req.Method == MethodUpload {
		r.SetMultipartField("file", req.File.Name, req.File.MediaType(), bytes.NewReader(req.File.Data))
		form := make(map[string]string, len(req.Fields))
		for key, value := range req.Fields {
			form[key] = formValue(value)
		}
		if len(form) > 0 {
			r.SetFormData(form)
		}
	} else {
		r.SetHeader("Content-Type", contentJSON)
		if req.Body != nil {
			r.SetBody(req.Body)
		}
	}

	log.Debug("dispatching request")
	resp, err := r.Execute(method, url)
	if err != nil {
		timer.Stop(0)
		return c.networkFailure(log, method, url, err)
	}

	status := resp.StatusCode()
	elapsed := timer.Stop(status)

	if status < 200 || status > 299 {
		log.Warn("request failed",
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
		)
		if c.metrics != nil {
			c.metrics.RecordRequestError(method, "http")
		}
		return &HTTPStatusError{
			Method: method,
			URL:    url,
			Status: status,
			Body:   resp.Body(),
			Header: resp.Header(),
		}
	}

	log.Debug("request settled", zap.Int("status", status), zap.Duration("elapsed", elapsed))

	if err := decode(resp.Body(), out); err != nil {
		if c.metrics != nil {
			c.metrics.RecordRequestError(method, "decode")
		}
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

// formValue stringifies an extra multipart field. Unlike query parameters,
// nil fields are kept and sent as "null".
func formValue(value any) string {
	if isNil(value) {
		return "null"
	}
	return Stringify(value)
}

// authToken reads the token fresh on every call.
func (c *Client) authToken() string {
	if c.store == nil {
		return ""
	}
	token, ok, err := c.store.Get(storage.AuthTokenKey)
	if err != nil {
		c.logger.Warn("failed to read auth token", zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

func (c *Client) networkFailure(log *zap.Logger, method, url string, err error) error {
	log.Warn("request failed", zap.Error(err))
	if c.metrics != nil {
		c.metrics.RecordRequestError(method, "network")
	}
	return &NetworkError{Method: method, URL: url, Err: err}
}

func decode(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	switch v := out.(type) {
	case *[]byte:
		*v = append((*v)[:0], body...)
		return nil
	case *string:
		*v = string(body)
		return nil
	}
	return sonic.ConfigStd.Unmarshal(body, out)
}
