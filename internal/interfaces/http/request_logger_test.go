package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/erp-posting/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// RequestID + RequestLogger
// ──────────────────────────────────────────────────────────────────────────────

func buildLoggedApp(buf *bytes.Buffer) *fiber.App {
	app := fiber.New()
	app.Use(apphttp.RequestID(), apphttp.RequestLogger(zerolog.New(buf)))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	return app
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var out map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &out))
	return out
}

func TestRequestID_GeneraYRegistra(t *testing.T) {
	var buf bytes.Buffer
	app := buildLoggedApp(&buf)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	id := resp.Header.Get(fiber.HeaderXRequestID)
	assert.NotEmpty(t, id)
	entry := lastLogLine(t, &buf)
	assert.Equal(t, id, entry["request_id"])
	assert.Equal(t, "/ping", entry["path"])
	assert.EqualValues(t, 200, entry["status"])
}

func TestRequestID_RespetaElDelCliente(t *testing.T) {
	var buf bytes.Buffer
	app := buildLoggedApp(&buf)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, "req-123", resp.Header.Get(fiber.HeaderXRequestID))
	assert.Equal(t, "req-123", lastLogLine(t, &buf)["request_id"])
}

func TestRequestLogger_NivelSegunStatus(t *testing.T) {
	var buf bytes.Buffer
	app := buildLoggedApp(&buf)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/no-existe", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "warn", lastLogLine(t, &buf)["level"])
}
