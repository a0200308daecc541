package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-posting/internal/application/dto"
	apphttp "github.com/jhoicas/erp-posting/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/erp-posting/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "erp-posting-test"
	testExpMin    = 60
)

// buildTestApp app mínima: JWT + RBAC delante de un handler que responde 200.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"role":       apphttp.GetRole(c),
				"user_id":    apphttp.GetUserID(c),
				"company_id": apphttp.GetCompanyID(c),
			})
		},
	)
	return app
}

func bearer(t *testing.T, userID, companyID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, companyID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CargaLocals(t *testing.T) {
	app := buildTestApp(pkgjwt.RoleAccountant)
	resp := doProtected(t, app, bearer(t, testUserID, testCompanyID, pkgjwt.RoleAccountant))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, pkgjwt.RoleAccountant, body["role"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	otherSecret, err := pkgjwt.Generate("otro-secreto", testUserID, testCompanyID, pkgjwt.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, pkgjwt.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema distinto", "Basic abc", "INVALID_TOKEN"},
		{"basura", "Bearer no.es.jwt", "INVALID_TOKEN"},
		{"otro secreto", "Bearer " + otherSecret, "INVALID_TOKEN"},
		{"expirado", "Bearer " + expired, "INVALID_TOKEN"},
	}
	app := buildTestApp(pkgjwt.RoleAdmin)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doProtected(t, app, tc.header)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp).Code)
		})
	}
}

func TestAuthMiddleware_BearerSinDistinguirMayusculas(t *testing.T) {
	app := buildTestApp(pkgjwt.RoleClerk)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, pkgjwt.RoleClerk, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doProtected(t, app, "bearer "+tok)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		role    string
		want    int
	}{
		{"admin en ruta de admin", []string{pkgjwt.RoleAdmin}, pkgjwt.RoleAdmin, fiber.StatusOK},
		{"contador en ruta de contabilización", []string{pkgjwt.RoleAdmin, pkgjwt.RoleAccountant}, pkgjwt.RoleAccountant, fiber.StatusOK},
		{"auxiliar en ruta de contabilización", []string{pkgjwt.RoleAdmin, pkgjwt.RoleAccountant}, pkgjwt.RoleClerk, fiber.StatusForbidden},
		{"contador en ruta de admin", []string{pkgjwt.RoleAdmin}, pkgjwt.RoleAccountant, fiber.StatusForbidden},
		{"rol desconocido", []string{pkgjwt.RoleAdmin}, "bodeguero", fiber.StatusForbidden},
		{"token sin rol", []string{pkgjwt.RoleAdmin}, "", fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildTestApp(tc.allowed...)
			resp := doProtected(t, app, bearer(t, testUserID, testCompanyID, tc.role))
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
