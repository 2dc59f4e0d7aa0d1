package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/middleware"
	"lms/models"
	"lms/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMiddlewareRejections(t *testing.T) {
	app, _ := testutil.SetupApp(t)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc123"},
		{"garbage token", "Bearer not-a-token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/progress/completed", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestJWTMiddlewareWrongKey(t *testing.T) {
	app, _ := testutil.SetupApp(t)

	claims := jwt.MapClaims{"userId": float64(1), "role": models.RoleStudent}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/progress/completed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGenerateJWTRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret", TokenTTLMinutes: 60}

	signed, err := middleware.GenerateJWT(42, "Jamie", models.RoleStudent, "jamie@example.com")
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["userId"])
	assert.Equal(t, models.RoleStudent, claims["role"])
	assert.Equal(t, "jamie@example.com", claims["email"])
}

func TestRequireRoleAdminBypass(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret", TokenTTLMinutes: 60}

	app := fiber.New()
	app.Get("/mentor-only", middleware.JWTMiddleware, middleware.RequireRole(models.RoleMentor), func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	})

	adminToken, err := middleware.GenerateJWT(1, "Alex", models.RoleAdmin, "alex@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/mentor-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
