package authkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookieTestApp(rc *RefreshCookie) *fiber.App {
	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		rc.Write(c, c.Query("token"))
		return c.SendString("ok")
	})
	app.Get("/clear", func(c *fiber.Ctx) error {
		rc.Clear(c)
		return c.SendString("ok")
	})
	app.Get("/read", func(c *fiber.Ctx) error {
		token, err := rc.Read(c)
		if err != nil {
			return respondError(c, err)
		}
		return c.SendString(token)
	})
	return app
}

func TestRefreshCookieRoundTrip(t *testing.T) {
	rc := NewRefreshCookie(testConfig())
	app := cookieTestApp(rc)

	req := httptest.NewRequest(http.MethodGet, "/set?token=the-refresh-token", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	setCookie := resp.Header.Get(fiber.HeaderSetCookie)
	require.NotEmpty(t, setCookie)

	assert.Contains(t, setCookie, "cookie_refresh=")
	assert.Contains(t, setCookie, "path=/api/auth")
	assert.Contains(t, setCookie, "HttpOnly")
	assert.Contains(t, setCookie, "SameSite=Strict")
	// Testing mode relaxes Secure.
	assert.NotContains(t, setCookie, "secure")

	value := setCookie[strings.Index(setCookie, "=")+1:]
	value = value[:strings.Index(value, ";")]

	req = httptest.NewRequest(http.MethodGet, "/read", nil)
	req.AddCookie(&http.Cookie{Name: "cookie_refresh", Value: value})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "the-refresh-token", string(body[:n]))
}

func TestRefreshCookieSecureOutsideTesting(t *testing.T) {
	cfg := testConfig()
	cfg.Testing = false
	rc := NewRefreshCookie(cfg)
	app := cookieTestApp(rc)

	req := httptest.NewRequest(http.MethodGet, "/set?token=tok", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Contains(t, resp.Header.Get(fiber.HeaderSetCookie), "secure")
}

func TestRefreshCookieTamperRejected(t *testing.T) {
	rc := NewRefreshCookie(testConfig())
	app := cookieTestApp(rc)

	signed := rc.sign("the-refresh-token")

	cases := map[string]string{
		"missing":         "",
		"unsigned":        "the-refresh-token",
		"swapped token":   signed[:strings.Index(signed, ".")] + ".other-token",
		"broken mac":      "AAAA" + signed,
		"wrong secret":    (&RefreshCookie{secret: []byte("other")}).sign("the-refresh-token"),
		"empty signature": ".the-refresh-token",
	}

	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/read", nil)
			if value != "" {
				req.AddCookie(&http.Cookie{Name: "cookie_refresh", Value: value})
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRefreshCookieClear(t *testing.T) {
	rc := NewRefreshCookie(testConfig())
	app := cookieTestApp(rc)

	req := httptest.NewRequest(http.MethodGet, "/clear", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	setCookie := resp.Header.Get(fiber.HeaderSetCookie)
	require.NotEmpty(t, setCookie)
	assert.Contains(t, setCookie, "cookie_refresh=")
	assert.Contains(t, setCookie, "path=/api/auth")
}
