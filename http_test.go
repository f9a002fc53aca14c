package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/ftechlab/playauth"
)

// extractWith runs TokenFromRequest for one request under the given
// lookup and reports what came out. Query strings must go in the
// target; httptest.NewRequest freezes RequestURI and app.Test replays
// the request from it.
func extractWith(t *testing.T, lookup, scheme, target string, build func(req *http.Request)) (string, error) {
	t.Helper()

	var (
		token      string
		extractErr error
	)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		token, extractErr = auth.TokenFromRequest(c, lookup, scheme)
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if build != nil {
		build(req)
	}

	_, err := app.Test(req, -1)
	require.NoError(t, err)

	return token, extractErr
}

func TestTokenFromRequest(t *testing.T) {
	t.Run("bearer header", func(t *testing.T) {
		token, err := extractWith(t, "header:Authorization", "Bearer", "/", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer abc.def.ghi")
		})
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("header without the scheme is missing", func(t *testing.T) {
		_, err := extractWith(t, "header:Authorization", "Bearer", "/", func(req *http.Request) {
			req.Header.Set("Authorization", "abc.def.ghi")
		})
		assert.ErrorIs(t, err, auth.ErrTokenMissing)
	})

	t.Run("cookie", func(t *testing.T) {
		token, err := extractWith(t, "cookie:accessToken", "Bearer", "/", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "accessToken", Value: "abc.def.ghi"})
		})
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("query parameter", func(t *testing.T) {
		token, err := extractWith(t, "query:token", "Bearer", "/?token=abc.def.ghi", nil)
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("first matching source wins", func(t *testing.T) {
		token, err := extractWith(t, "header:Authorization,cookie:accessToken", "Bearer", "/", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "accessToken", Value: "from-cookie"})
		})
		require.NoError(t, err)
		assert.Equal(t, "from-cookie", token)
	})

	t.Run("no token anywhere is missing", func(t *testing.T) {
		_, err := extractWith(t, "header:Authorization,cookie:accessToken", "Bearer", "/", nil)
		assert.ErrorIs(t, err, auth.ErrTokenMissing)
	})

	t.Run("malformed lookup entries are skipped", func(t *testing.T) {
		_, err := extractWith(t, "garbage", "Bearer", "/", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "accessToken", Value: "abc"})
		})
		assert.ErrorIs(t, err, auth.ErrTokenMissing)
	})
}

func TestTokenExtractors(t *testing.T) {
	assert.Len(t, auth.TokenExtractors("header:Authorization,cookie:accessToken,query:token", "Bearer"), 3)
	assert.Empty(t, auth.TokenExtractors("nonsense", "Bearer"))
	assert.Empty(t, auth.TokenExtractors("ldap:cn", "Bearer"))
}
