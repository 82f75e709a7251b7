package web

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/stockroom/internal/config"
	"github.com/stockroom/stockroom/internal/db/dbtest"
)

const indexHTML = "<!doctype html><title>stockroom</title>"

func testConfig(t *testing.T, mode config.Mode) *config.Config {
	t.Helper()

	dir := t.TempDir()
	staticDir := filepath.Join(dir, "dist")
	require.NoError(t, os.MkdirAll(staticDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, indexFile), []byte(indexHTML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("console.log(1)"), 0o600))

	return &config.Config{
		Mode:  mode,
		Title: "stockroom-test",
		Webserver: config.Webserver{
			BodyLimit:        config.DefaultBodyLimit,
			UploadLimit:      config.DefaultUploadLimit,
			ShutDownTime:     1,
			StaticDir:        staticDir,
			UploadDir:        filepath.Join(dir, "uploads"),
			CORSAllowOrigins: []string{"*"},
		},
	}
}

func newService(t *testing.T, mode config.Mode) *Service {
	t.Helper()

	s, err := New(testConfig(t, mode), dbtest.Open(t))
	require.NoError(t, err)

	return s
}

type response struct {
	code   int
	header http.Header
	body   []byte
}

func (r response) json(t *testing.T) map[string]any {
	t.Helper()

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(r.body, &out), string(r.body))

	return out
}

func do(t *testing.T, s *Service, method, target, body string) response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")

	resp, err := s.App.Test(req)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return response{code: resp.StatusCode, header: resp.Header, body: raw}
}

func TestNewNil(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrConfigNil)

	_, err = New(&config.Config{}, nil)
	assert.ErrorIs(t, err, ErrDBNil)
}

func TestPrefixes(t *testing.T) {
	assert.Equal(t, []string{
		"/api/users", "/api/suppliers", "/api/customers", "/api/skus",
		"/api/warehouses", "/api/purchase-orders", "/api/purchase-indents",
		"/api/sales-orders", "/api/sales-returns", "/api/invoices",
		"/api/stock-adjustments", "/api/transactions", "/api/reports", "/api/upload",
		"/api/vendor-mappings", "/api/dashboard", "/api/permissions",
	}, Prefixes())
}

func TestEveryGroupIsMounted(t *testing.T) {
	s := newService(t, config.ModeDefault)

	for _, g := range Groups() {
		switch g.Name {
		case "upload":
			continue
		case "reports":
			resp := do(t, s, http.MethodGet, g.Prefix+"/invoices", "")
			assert.Equal(t, http.StatusOK, resp.code, g.Prefix)
		default:
			resp := do(t, s, http.MethodGet, g.Prefix, "")
			assert.Equal(t, http.StatusOK, resp.code, g.Prefix)
		}
	}
}

func TestNotFound(t *testing.T) {
	tests := []struct {
		name string
		mode config.Mode
	}{
		{"default", config.ModeDefault},
		{"production", config.ModeProduction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newService(t, tt.mode)

			resp := do(t, s, http.MethodGet, "/api/does-not-exist", "")
			assert.Equal(t, http.StatusNotFound, resp.code)

			body := resp.json(t)
			assert.Equal(t, "Not Found - /api/does-not-exist", body["message"])
			assert.Equal(t, map[string]any{}, body["stack"])
		})
	}
}

func TestNotFoundDevelopmentStack(t *testing.T) {
	s := newService(t, config.ModeDevelopment)

	resp := do(t, s, http.MethodDelete, "/nowhere?x=1", "")
	assert.Equal(t, http.StatusNotFound, resp.code)

	body := resp.json(t)
	assert.Equal(t, "Not Found - /nowhere?x=1", body["message"])

	stack, ok := body["stack"].(string)
	require.True(t, ok)
	assert.Contains(t, stack, "Not Found - /nowhere?x=1")
	assert.Contains(t, stack, "RouteNotFound")
}

func TestProductionServesFrontend(t *testing.T) {
	s := newService(t, config.ModeProduction)

	resp := do(t, s, http.MethodGet, "/dashboard", "")
	assert.Equal(t, http.StatusOK, resp.code)
	assert.Equal(t, indexHTML, string(resp.body))

	resp = do(t, s, http.MethodGet, "/orders/42/edit", "")
	assert.Equal(t, http.StatusOK, resp.code)
	assert.Equal(t, indexHTML, string(resp.body))

	resp = do(t, s, http.MethodGet, "/app.js", "")
	assert.Equal(t, http.StatusOK, resp.code)
	assert.Equal(t, "console.log(1)", string(resp.body))

	// the frontend never answers for the API
	for _, target := range []string{"/api/unknown", "/API/foo", "/Api", "/aPi/sales-orders/x/y"} {
		resp = do(t, s, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, resp.code, target)
		assert.Equal(t, "Not Found - "+target, resp.json(t)["message"], target)
	}

	// only the whole first segment counts
	resp = do(t, s, http.MethodGet, "/apiary", "")
	assert.Equal(t, http.StatusOK, resp.code)
	assert.Equal(t, indexHTML, string(resp.body))

	resp = do(t, s, http.MethodPost, "/dashboard", "")
	assert.Equal(t, http.StatusNotFound, resp.code)
}

func TestOtherModesAnswerLiveness(t *testing.T) {
	for _, mode := range []config.Mode{config.ModeDefault, config.ModeDevelopment} {
		t.Run(mode.String(), func(t *testing.T) {
			s := newService(t, mode)

			resp := do(t, s, http.MethodGet, "/", "")
			assert.Equal(t, http.StatusOK, resp.code)
			assert.Equal(t, LivenessMessage, string(resp.body))

			resp = do(t, s, http.MethodGet, "/dashboard", "")
			assert.Equal(t, http.StatusNotFound, resp.code)
			assert.Equal(t, "Not Found - /dashboard", resp.json(t)["message"])
		})
	}
}

func TestMalformedJSON(t *testing.T) {
	s := newService(t, config.ModeDefault)

	resp := do(t, s, http.MethodPost, "/api/suppliers", `{"name": }`)
	assert.Equal(t, http.StatusBadRequest, resp.code)

	body := resp.json(t)
	assert.NotEmpty(t, body["message"])
	assert.Equal(t, map[string]any{}, body["stack"])
	assert.Equal(t, "*", resp.header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestBodyLimits(t *testing.T) {
	s := newService(t, config.ModeDefault)

	big := strings.Repeat("x", config.DefaultBodyLimit)

	resp := do(t, s, http.MethodPost, "/api/suppliers", `{"name":"`+big+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.code)

	resp = do(t, s, http.MethodPost, "/api/suppliers", `{"name":"acme"}`)
	assert.Equal(t, http.StatusCreated, resp.code)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "scan.png")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0xff}, 2*config.DefaultBodyLimit))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())

	res, err := s.App.Test(req)
	require.NoError(t, err)

	defer func() {
		_ = res.Body.Close()
	}()

	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestBodyLimit(t *testing.T) {
	assert.Equal(t, config.DefaultUploadLimit, bodyLimit(config.DefaultBodyLimit, config.DefaultUploadLimit))
	assert.Equal(t, 500, bodyLimit(500, 100))
}

func TestCORS(t *testing.T) {
	s := newService(t, config.ModeDefault)

	resp := do(t, s, http.MethodGet, "/api/permissions", "")
	assert.Equal(t, http.StatusOK, resp.code)
	assert.Equal(t, "*", resp.header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestPermissionEndToEnd(t *testing.T) {
	s := newService(t, config.ModeProduction)

	payload := `{"name":"view_orders","route":"/api/sales-orders","description":"View sales orders"}`

	resp := do(t, s, http.MethodPost, "/api/permissions", payload)
	require.Equal(t, http.StatusCreated, resp.code, string(resp.body))

	created := resp.json(t)
	assert.NotZero(t, created["id"])
	assert.NotEmpty(t, created["createdAt"])
	assert.NotEmpty(t, created["updatedAt"])

	resp = do(t, s, http.MethodPost, "/api/permissions", payload)
	assert.Equal(t, http.StatusConflict, resp.code)
	assert.Equal(t, map[string]any{}, resp.json(t)["stack"])

	resp = do(t, s, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, resp.code)
	assert.InDelta(t, 1, resp.json(t)["permissions"], 0)
}

func TestHealth(t *testing.T) {
	s := newService(t, config.ModeDefault)

	resp := do(t, s, http.MethodGet, HealthPath, "")
	assert.Equal(t, http.StatusOK, resp.code)

	s.alive.Store(false)

	resp = do(t, s, http.MethodGet, HealthPath, "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.code)
}

func TestMetrics(t *testing.T) {
	cfg := testConfig(t, config.ModeDefault)
	cfg.Webserver.Metrics = true

	s, err := New(cfg, dbtest.Open(t))
	require.NoError(t, err)

	do(t, s, http.MethodGet, "/api/skus", "")

	resp := do(t, s, http.MethodGet, MetricsPath, "")
	assert.Equal(t, http.StatusOK, resp.code)
	assert.Contains(t, string(resp.body), "stockroom_http_requests_total")
}

func TestUploadIsServed(t *testing.T) {
	cfg := testConfig(t, config.ModeDefault)

	s, err := New(cfg, dbtest.Open(t))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(cfg.Webserver.UploadDir, "note.txt"), []byte("hello"), 0o600))

	resp := do(t, s, http.MethodGet, "/uploads/note.txt", "")
	assert.Equal(t, http.StatusOK, resp.code)
	assert.Equal(t, "hello", string(resp.body))

	resp = do(t, s, http.MethodGet, "/uploads/missing.txt", "")
	assert.Equal(t, http.StatusNotFound, resp.code)
}

func TestIsAPI(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api", true},
		{"/api/", true},
		{"/API/foo", true},
		{"/Api/skus/1", true},
		{"/apiary", false},
		{"/ap", false},
		{"/", false},
		{"/dashboard/api", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isAPI(tt.path), tt.path)
	}
}

func TestAddr(t *testing.T) {
	cfg := &config.Config{Webserver: config.Webserver{Port: 5000}}
	assert.Equal(t, ":5000", Addr(cfg))
	assert.Equal(t, "5000", port(Addr(cfg)))
}
