package downstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"engdata-admin/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken struct {
	token string
	err   error
}

func (s staticToken) Token(context.Context) (string, error) {
	return s.token, s.err
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	opts = append([]Option{WithLogger(logger.NewTestLogger(t))}, opts...)
	return NewClient(server.URL+"/", 5*time.Second, opts...)
}

func TestExtractErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
		want string
	}{
		{
			name: "message field wins",
			body: map[string]interface{}{"message": "Preset name already exists", "detail": "ignored"},
			want: "Preset name already exists",
		},
		{
			name: "blank message falls through to detail",
			body: map[string]interface{}{"message": "  ", "detail": "Invalid vendor"},
			want: "Invalid vendor",
		},
		{
			name: "detail string",
			body: map[string]interface{}{"detail": "Not authenticated"},
			want: "Not authenticated",
		},
		{
			name: "detail object with message",
			body: map[string]interface{}{"detail": map[string]interface{}{"message": "Library locked", "error": "LOCKED"}},
			want: "Library locked",
		},
		{
			name: "detail object with error only",
			body: map[string]interface{}{"detail": map[string]interface{}{"error": "structure_id is invalid"}},
			want: "structure_id is invalid",
		},
		{
			name: "detail object without usable fields",
			body: map[string]interface{}{"detail": map[string]interface{}{"code": 42}},
			want: DefaultErrorMessage,
		},
		{
			name: "detail list is not a supported shape",
			body: map[string]interface{}{"detail": []interface{}{map[string]interface{}{"msg": "field required"}}},
			want: DefaultErrorMessage,
		},
		{
			name: "empty body",
			body: map[string]interface{}{},
			want: DefaultErrorMessage,
		},
		{
			name: "nil body",
			body: nil,
			want: DefaultErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractErrorMessage(tt.body))
		})
	}
}

func TestResult_ID(t *testing.T) {
	tests := []struct {
		name string
		data map[string]interface{}
		key  string
		want string
	}{
		{"keyed field", map[string]interface{}{"project_id": "P1", "id": "other"}, "project_id", "P1"},
		{"generic id", map[string]interface{}{"id": "X1"}, "project_id", "X1"},
		{"numeric id", map[string]interface{}{"id": float64(42)}, "site_id", "42"},
		{"nested data", map[string]interface{}{"data": map[string]interface{}{"library_id": "L1"}}, "library_id", "L1"},
		{"missing", map[string]interface{}{"message": "ok"}, "preset_id", ""},
		{"blank keyed falls back", map[string]interface{}{"client_id": "", "id": "C7"}, "client_id", "C7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Result{OK: true, Data: tt.data}
			assert.Equal(t, tt.want, r.ID(tt.key))
		})
	}
}

func TestClient_Call_JSONSuccess(t *testing.T) {
	var gotBody map[string]interface{}
	var gotAuth, gotContentType string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/projects/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Project created","project_id":"P1"}`))
	}, WithTokenSource(staticToken{token: "secret"}))

	res := client.Call(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/projects/",
		JSON:   map[string]string{"name": "Plant A", "client_id": "C1"},
	})

	require.NotNil(t, res)
	assert.True(t, res.OK)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "Project created", res.Message)
	assert.Equal(t, "P1", res.ID("project_id"))
	assert.NoError(t, res.Err)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "C1", gotBody["client_id"])
}

func TestClient_Call_ErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":{"error":"vendor_id is unknown"}}`))
	})

	res := client.Call(context.Background(), Request{Method: http.MethodPatch, Path: "/equipment/pipe/E1", JSON: map[string]string{}})

	assert.False(t, res.OK)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Equal(t, "vendor_id is unknown", res.Message)
	assert.NoError(t, res.Err)
	assert.False(t, res.TransportFailure())
}

func TestClient_Call_EmptyBodyIsSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	res := client.Call(context.Background(), Request{Method: http.MethodDelete, Path: "/files/F1"})

	assert.True(t, res.OK)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.NotNil(t, res.Data)
}

func TestClient_Call_UnparseableBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	})

	res := client.Call(context.Background(), Request{Method: http.MethodGet, Path: "/presets/"})

	assert.False(t, res.OK)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Error(t, res.Err)
	assert.Equal(t, InvalidResponseMessage, res.Message)
}

func TestClient_Call_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second)
	res := client.Call(context.Background(), Request{Method: http.MethodGet, Path: "/clients/"})

	assert.False(t, res.OK)
	assert.Equal(t, 0, res.StatusCode)
	assert.True(t, res.TransportFailure())
	assert.Equal(t, TransportErrorMessage, res.Message)
}

func TestClient_Call_TokenFailure(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, WithTokenSource(staticToken{err: errors.New("token endpoint down")}))

	res := client.Call(context.Background(), Request{Method: http.MethodGet, Path: "/clients/"})

	assert.False(t, res.OK)
	assert.True(t, res.TransportFailure())
	assert.Equal(t, TokenErrorMessage, res.Message)
	assert.False(t, called)
}

func TestClient_Call_Multipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "P1", r.FormValue("project_id"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "layout.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		assert.Equal(t, "PDFDATA", string(content))

		_, _ = w.Write([]byte(`{"file_id":"F9"}`))
	})

	res := client.Call(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/upload",
		Form: &Multipart{
			Fields: map[string]string{"project_id": "P1"},
			Files: []FilePart{{
				Field:       "file",
				Filename:    "layout.pdf",
				ContentType: "application/pdf",
				Content:     []byte("PDFDATA"),
			}},
		},
	})

	assert.True(t, res.OK)
	assert.Equal(t, "F9", res.ID("file_id"))
}

func TestClient_Call_QueryAndArrayBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "machine", r.URL.Query().Get("category"))
		_, _ = w.Write([]byte(`[{"id":"E1"},{"id":"E2"}]`))
	})

	res := client.Call(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "equipment",
		Query:  map[string][]string{"category": {"machine"}},
	})

	assert.True(t, res.OK)
	items, ok := res.Data["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)
}
