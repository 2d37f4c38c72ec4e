package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func newAuthRouter(secret []byte) *gin.Engine {
	r := gin.New()
	r.Use(Authenticate(secret))
	r.GET("/who", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": ActorFromContext(c)})
	})
	return r
}

func doRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func actorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["actor"]
}

func TestAuthenticateDisabled(t *testing.T) {
	r := newAuthRouter(nil)

	w := doRequest(r, httptest.NewRequest(http.MethodGet, "/who", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", actorOf(t, w))
}

func TestAuthenticateBearer(t *testing.T) {
	r := newAuthRouter(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "u-1",
		"name": "Sales Rep 1",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := doRequest(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sales Rep 1", actorOf(t, w))
}

func TestAuthenticateCookieFallsBackToSubject(t *testing.T) {
	r := newAuthRouter(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{"sub": "u-2"})

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	w := doRequest(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-2", actorOf(t, w))
}

func TestAuthenticateQueryToken(t *testing.T) {
	r := newAuthRouter(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{"sub": "ws-client"})

	w := doRequest(r, httptest.NewRequest(http.MethodGet, "/who?token="+token, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateRejects(t *testing.T) {
	r := newAuthRouter(testSecret)
	expired := signToken(t, testSecret, jwt.MapClaims{"sub": "u", "exp": time.Now().Add(-time.Hour).Unix()})
	foreign := signToken(t, []byte("other-secret"), jwt.MapClaims{"sub": "u"})

	cases := map[string]string{
		"missing":       "",
		"wrong scheme":  "Basic abc",
		"expired":       "Bearer " + expired,
		"bad signature": "Bearer " + foreign,
		"garbage":       "Bearer not.a.jwt",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := doRequest(r, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), name)
		assert.NotEmpty(t, body["error"], name)
	}
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/api/customers/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/customers/:id", "204")
	before := testutil.ToFloat64(counter)

	doRequest(r, httptest.NewRequest(http.MethodGet, "/api/customers/abc", nil))
	doRequest(r, httptest.NewRequest(http.MethodGet, "/api/customers/def", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestMetricsUnmatchedRoute(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	before := testutil.ToFloat64(counter)

	doRequest(r, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&buf)))
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	doRequest(r, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "/boom", line["path"])
	assert.EqualValues(t, 500, line["status"])
}
