// Package schoolapi is a typed client for the ChemClass REST API.
//
// Unauthenticated account calls go through Client directly. Everything else
// runs through a Scoped view obtained with ForToken, which sends the user's
// bearer token on every request.
package schoolapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/ghugn/chem-class-git/internal/errors"
	"github.com/ghugn/chem-class-git/internal/observability/metrics"
	"github.com/ghugn/chem-class-git/internal/observability/statsd"
	"github.com/ghugn/chem-class-git/internal/ports"
)

const (
	// DefaultTimeout bounds every API round trip.
	DefaultTimeout = 15 * time.Second
	// DefaultErrorMessagePath selects the user-facing message from an error body.
	DefaultErrorMessagePath = "message || error"

	maxErrorBody = 1 << 20
)

// Options configures a Client.
type Options struct {
	BaseURL          string
	Timeout          time.Duration
	ErrorMessagePath string
	HTTPClient       *http.Client
	Logger           *slog.Logger
	Metrics          statsd.Sink
}

// Client talks to the school API.
type Client struct {
	baseURL    string
	msgPath    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    statsd.Sink
}

// New validates opts and builds a Client.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("schoolapi: base URL is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("schoolapi: invalid base URL: %w", err)
	}

	msgPath := strings.TrimSpace(opts.ErrorMessagePath)
	if msgPath == "" {
		msgPath = DefaultErrorMessagePath
	}
	if _, err := jmespath.Compile(msgPath); err != nil {
		return nil, fmt.Errorf("schoolapi: invalid error message path %q: %w", msgPath, err)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    base,
		msgPath:    msgPath,
		httpClient: hc,
		logger:     logger.With("component", "schoolapi"),
		metrics:    opts.Metrics,
	}, nil
}

// ForToken returns an API view that authenticates with token.
func (c *Client) ForToken(token string) ports.SchoolAPI {
	return &Scoped{c: c, token: token}
}

// Scoped is a token-bearing view of the API.
type Scoped struct {
	c     *Client
	token string
}

// Health pings the API's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	if err := c.do(ctx, call{op: "health", method: http.MethodGet, path: "/health"}); err != nil {
		return fmt.Errorf("schoolapi.Health: %w", err)
	}
	return nil
}

// call describes one API round trip.
type call struct {
	op     string
	method string
	path   string
	token  string
	body   any
	out    any
	form   *multipartForm
}

type multipartForm struct {
	fields map[string]string
	file   *fileField
}

type fileField struct {
	name        string
	filename    string
	contentType string
	data        []byte
}

func (c *Client) do(ctx context.Context, in call) (err error) {
	start := time.Now()
	defer func() {
		c.observe(in.op, time.Since(start), err)
	}()

	req, err := c.newRequest(ctx, in)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeTransport, "school API unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		return c.decodeError(resp)
	}

	if in.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(in.out); decodeErr != nil {
		return apperrors.Wrap(decodeErr, apperrors.ErrCodeTransport, "decode response")
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, in call) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
	)
	switch {
	case in.form != nil:
		buf, ct, err := encodeMultipart(in.form)
		if err != nil {
			return nil, fmt.Errorf("encode multipart: %w", err)
		}
		body, contentType = buf, ct
	case in.body != nil:
		data, err := json.Marshal(in.body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, in.method, c.baseURL+in.path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if in.token != "" {
		req.Header.Set("Authorization", "Bearer "+in.token)
	}
	return req, nil
}

func encodeMultipart(form *multipartForm) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range form.fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if f := form.file; f != nil {
		part, err := createFilePart(w, f)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func createFilePart(w *multipart.Writer, f *fileField) (io.Writer, error) {
	if f.contentType == "" {
		return w.CreateFormFile(f.name, f.filename)
	}
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{
		fmt.Sprintf(`form-data; name=%q; filename=%q`, f.name, f.filename),
	}
	h["Content-Type"] = []string{f.contentType}
	return w.CreatePart(h)
}

func (c *Client) observe(op string, d time.Duration, err error) {
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
		c.logger.Debug("api call failed", "op", op, "error", err)
	}
	metrics.EmitAPICall(c.metrics, metrics.APICall{Op: op, Result: result, Duration: d, Err: err})
}

func (s *Scoped) do(ctx context.Context, in call) error {
	in.token = s.token
	return s.c.do(ctx, in)
}

func (s *Scoped) get(ctx context.Context, op, path string, out any) error {
	return s.do(ctx, call{op: op, method: http.MethodGet, path: path, out: out})
}

func (s *Scoped) send(ctx context.Context, op, method, path string, body any) error {
	return s.do(ctx, call{op: op, method: method, path: path, body: body})
}

func escape(id string) string { return url.PathEscape(id) }
