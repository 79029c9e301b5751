package downstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"engdata-admin/internal/common/logger"
	"engdata-admin/internal/common/metrics"
)

// Caller issues one request against the engineering data service.
type Caller interface {
	Call(ctx context.Context, req Request) *Result
}

// TokenSource supplies the bearer token attached to each request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Request describes a single downstream call. Exactly one of JSON or Form is
// used as the body; both may be nil for GET and DELETE.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	JSON   interface{}
	Form   *Multipart
}

// Multipart is a set of named text fields plus binary attachments.
type Multipart struct {
	Fields map[string]string
	Files  []FilePart
}

type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     logger.Logger
}

type Option func(*Client)

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for baseURL. A zero timeout keeps the transport default.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Call(ctx context.Context, req Request) *Result {
	start := time.Now()
	result := c.do(ctx, req)

	metrics.DownstreamRequests.WithLabelValues(req.Method, metrics.StatusClass(result.StatusCode)).Inc()

	fields := map[string]interface{}{
		"method":     req.Method,
		"path":       req.Path,
		"statusCode": result.StatusCode,
		"durationMs": time.Since(start).Milliseconds(),
	}
	if result.OK {
		c.logger.Debug("Downstream call succeeded", fields)
	} else {
		fields["message"] = result.Message
		if result.Err != nil {
			fields["error"] = result.Err.Error()
		}
		c.logger.Warn("Downstream call failed", fields)
	}
	return result
}

func (c *Client) do(ctx context.Context, req Request) *Result {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return &Result{Err: fmt.Errorf("failed to encode request body: %w", err), Message: InvalidResponseMessage}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.url(req), body)
	if err != nil {
		return &Result{Err: fmt.Errorf("failed to create request: %w", err), Message: TransportErrorMessage}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return &Result{Err: fmt.Errorf("failed to obtain token: %w", err), Message: TokenErrorMessage}
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &Result{Err: fmt.Errorf("failed to execute request: %w", err), Message: TransportErrorMessage}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Result{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
			Message:    InvalidResponseMessage,
		}
	}

	return buildResult(resp.StatusCode, raw)
}

func (c *Client) url(req Request) string {
	path := req.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}
	return u
}

func buildResult(status int, raw []byte) *Result {
	result := &Result{
		OK:         status >= 200 && status < 300,
		StatusCode: status,
		Body:       raw,
	}

	data, err := decodeBody(raw)
	if err != nil {
		result.OK = false
		result.Err = fmt.Errorf("failed to decode response (status %d): %w", status, err)
		result.Message = InvalidResponseMessage
		return result
	}
	result.Data = data

	if result.OK {
		result.Message = stringValue(data["message"])
	} else {
		result.Message = ExtractErrorMessage(data)
	}
	return result
}

// decodeBody parses a JSON body. Non-object documents are wrapped under "data";
// an empty body decodes to an empty object.
func decodeBody(raw []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return map[string]interface{}{}, nil
	}
	var doc interface{}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	if obj, ok := doc.(map[string]interface{}); ok {
		return obj, nil
	}
	return map[string]interface{}{"data": doc}, nil
}

func encodeBody(req Request) (io.Reader, string, error) {
	switch {
	case req.Form != nil:
		return encodeMultipart(req.Form)
	case req.JSON != nil:
		payload, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(payload), "application/json", nil
	default:
		return nil, "", nil
	}
}

func encodeMultipart(form *Multipart) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for name, value := range form.Fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	for _, f := range form.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(f.Field), escapeQuotes(f.Filename)))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// SingleFile wraps one attachment, sent as field "file" unless it names its
// own field, together with optional text fields.
func SingleFile(file FilePart, fields map[string]string) *Multipart {
	if file.Field == "" {
		file.Field = "file"
	}
	return &Multipart{Fields: fields, Files: []FilePart{file}}
}
