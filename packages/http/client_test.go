package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, c *Client, url string) (*Response, error) {
	t.Helper()
	return c.Do(context.Background(), NewRequest(http.MethodGet, url))
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/test", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message": "hello"}`))
	}))
	defer server.Close()

	client := NewClient()
	resp, err := get(t, client, server.URL+"/test")

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers.Get("Content-Type"))
	assert.Contains(t, resp.BodyString(), "hello")
}

func TestClient_PostBodyVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"name": "test"}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 123}`))
	}))
	defer server.Close()

	req := NewRequest(http.MethodPost, server.URL).
		SetHeader("Content-Type", "application/json").
		SetBody(`{"name": "test"}`)
	resp, err := NewClient().Do(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	assert.Contains(t, resp.BodyString(), "123")
}

func TestClient_ErrorStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`boom`))
	}))
	defer server.Close()

	resp, err := get(t, NewClient(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "boom", resp.BodyString())
	assert.True(t, resp.IsServerError())
}

func TestClient_HeaderOrderLastWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"second"}, r.Header.Values("X-Token"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req := NewRequest(http.MethodGet, server.URL).
		SetHeader("X-Token", "first").
		SetHeader("x-token", "second")

	_, err := NewClient().Do(context.Background(), req)
	require.NoError(t, err)
}

func TestClient_WithTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithTimeout(50 * time.Millisecond))
	_, err := get(t, client, server.URL)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "context deadline exceeded")
}

func TestClient_HostHeaderOverridesHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "api.example.com", r.Host)
		assert.Equal(t, "1", r.Header.Get("X-Other"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req := NewRequest(http.MethodGet, server.URL).
		SetHeader("host", "api.example.com").
		SetHeader("X-Other", "1")
	resp, err := NewClient().Do(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestClient_WithDefaultHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "custom-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "override", r.Header.Get("X-Env"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(
		WithUserAgent("hitflow-test"),
		WithDefaultHeaders(map[string]string{
			"Authorization": "test-token",
			"User-Agent":    "custom-agent",
			"X-Env":         "default",
		}),
	)
	req := NewRequest(http.MethodGet, server.URL).SetHeader("X-Env", "override")
	resp, err := client.Do(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestClient_FollowRedirects(t *testing.T) {
	redirectCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/final" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`final`))
			return
		}
		redirectCount++
		http.Redirect(w, r, "/final", http.StatusFound)
	}))
	defer server.Close()

	client := NewClient(WithFollowRedirects(true))
	resp, err := get(t, client, server.URL+"/redirect")

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "final", resp.BodyString())
	assert.Equal(t, 1, redirectCount)
}

func TestClient_NoFollowRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	}))
	defer server.Close()

	client := NewClient(WithFollowRedirects(false))
	resp, err := get(t, client, server.URL+"/redirect")

	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)
	assert.True(t, resp.IsRedirect())
}

func TestClient_MaxRedirects(t *testing.T) {
	redirectCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		redirectCount++
		http.Redirect(w, r, "/redirect", http.StatusFound)
	}))
	defer server.Close()

	client := NewClient(WithMaxRedirects(3))
	resp, err := get(t, client, server.URL+"/redirect")

	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)
	assert.LessOrEqual(t, redirectCount, 4)
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

func TestClient_WithDoer(t *testing.T) {
	var seen *http.Request
	client := NewClient(WithDoer(doerFunc(func(r *http.Request) (*http.Response, error) {
		seen = r
		return &http.Response{
			StatusCode: http.StatusTeapot,
			Status:     "418 I'm a teapot",
			Header:     http.Header{"X-Fake": {"1"}},
			Body:       io.NopCloser(strings.NewReader("short and stout")),
		}, nil
	})))

	resp, err := get(t, client, "http://example.invalid/pot")
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, "/pot", seen.URL.Path)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "1", resp.Headers.Get("x-fake"))
	assert.Equal(t, "short and stout", resp.BodyString())

	failing := NewClient(WithDoer(doerFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})))
	_, err = get(t, failing, "http://example.invalid/")
	assert.ErrorContains(t, err, "connection refused")
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"GET", "GET", false},
		{"get", "GET", false},
		{"Post", "POST", false},
		{" delete ", "DELETE", false},
		{"patch", "PATCH", false},
		{"OPTIONS", "OPTIONS", false},
		{"FETCH", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMethod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid http URL",
			url:     "http://example.com/path",
			wantErr: false,
		},
		{
			name:    "valid https URL",
			url:     "https://example.com/path",
			wantErr: false,
		},
		{
			name:    "invalid scheme",
			url:     "ftp://example.com",
			wantErr: true,
			errMsg:  "unsupported URL scheme",
		},
		{
			name:    "missing scheme",
			url:     "example.com/path",
			wantErr: true,
			errMsg:  "unsupported URL scheme",
		},
		{
			name:    "unrendered placeholder host",
			url:     "${base}/path",
			wantErr: true,
			errMsg:  "unsupported URL scheme",
		},
		{
			name:    "missing host",
			url:     "http:///path",
			wantErr: true,
			errMsg:  "URL must have a host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResponse_StatusClass(t *testing.T) {
	tests := []struct {
		statusCode  int
		success     bool
		redirect    bool
		clientError bool
		serverError bool
	}{
		{200, true, false, false, false},
		{204, true, false, false, false},
		{299, true, false, false, false},
		{301, false, true, false, false},
		{400, false, false, true, false},
		{404, false, false, true, false},
		{500, false, false, false, true},
		{503, false, false, false, true},
		{101, false, false, false, false},
	}

	for _, tt := range tests {
		resp := &Response{StatusCode: tt.statusCode}
		assert.Equal(t, tt.success, resp.IsSuccess(), "IsSuccess: %d", tt.statusCode)
		assert.Equal(t, tt.redirect, resp.IsRedirect(), "IsRedirect: %d", tt.statusCode)
		assert.Equal(t, tt.clientError, resp.IsClientError(), "IsClientError: %d", tt.statusCode)
		assert.Equal(t, tt.serverError, resp.IsServerError(), "IsServerError: %d", tt.statusCode)
	}
}

func TestResponse_HeaderNames(t *testing.T) {
	resp := &Response{Headers: http.Header{"X-B": {"2"}, "Content-Type": {"text/plain"}, "X-A": {"1"}}}
	assert.Equal(t, []string{"Content-Type", "X-A", "X-B"}, resp.HeaderNames())
}
