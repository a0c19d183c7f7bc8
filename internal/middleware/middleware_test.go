package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"payroll-backend/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func accessClaims(role model.Role) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": 7,
		"email":   "someone@acme.test",
		"role":    string(role),
		"tenant":  "acme",
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
}

func newApp(capability string) *fiber.App {
	app := fiber.New()
	app.Get("/", Auth(secret), Permission(capability), func(c *fiber.Ctx) error {
		actor := ActorFrom(c)
		return c.JSON(fiber.Map{"user_id": actor.UserID, "role": actor.Role, "tenant": actor.Tenant})
	})
	return app
}

func get(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuth_RejectsMissingAndInvalidTokens(t *testing.T) {
	app := newApp(ViewPayroll)

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, ""))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "garbage"))

	expired := accessClaims(model.RoleAdmin)
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, sign(t, expired)))

	refresh := accessClaims(model.RoleAdmin)
	refresh["type"] = "refresh"
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, sign(t, refresh)))
}

func TestPermission_CapabilityTable(t *testing.T) {
	cases := []struct {
		capability string
		role       model.Role
		want       int
	}{
		{ViewPayroll, model.RoleCashier, fiber.StatusOK},
		{RecordPayments, model.RoleCashier, fiber.StatusOK},
		{ManageCycles, model.RoleCashier, fiber.StatusForbidden},
		{ManageEmployees, model.RoleCashier, fiber.StatusForbidden},
		{ManageCycles, model.RoleAdmin, fiber.StatusOK},
		{ManageTenants, model.RoleAdmin, fiber.StatusForbidden},
		{ManageTenants, model.RoleSuperAdmin, fiber.StatusOK},
		{"unknown_capability", model.RoleSuperAdmin, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.capability+"/"+string(tc.role), func(t *testing.T) {
			assert.Equal(t, tc.want, get(t, newApp(tc.capability), sign(t, accessClaims(tc.role))))
		})
	}
}

func TestRole(t *testing.T) {
	app := fiber.New()
	app.Get("/", Auth(secret), Role(model.RoleSuperAdmin), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	assert.Equal(t, fiber.StatusNoContent, get(t, app, sign(t, accessClaims(model.RoleSuperAdmin))))
	assert.Equal(t, fiber.StatusForbidden, get(t, app, sign(t, accessClaims(model.RoleAdmin))))
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(3)
	app := fiber.New()
	app.Post("/login", limiter.Handler(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	status := func() int {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil))
		require.NoError(t, err)
		return resp.StatusCode
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, fiber.StatusOK, status())
	}
	assert.Equal(t, fiber.StatusTooManyRequests, status())
}

func TestRateLimiter_ForgetsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1)
	now := time.Now()
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.allow("10.0.0.1"))
	assert.False(t, limiter.allow("10.0.0.1"))

	now = now.Add(idleLimiterTTL + time.Minute)
	assert.True(t, limiter.allow("10.0.0.2"))
	limiter.mu.Lock()
	_, kept := limiter.visitors["10.0.0.1"]
	limiter.mu.Unlock()
	assert.False(t, kept)
}
