package observability

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danmuck/psyc/internal/protocol"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaggedRouter(node string, out *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(out)))
	r.Use(RequestMetricsMiddleware(node))
	r.POST("/render/ok", func(c *gin.Context) {
		MarkRender(c, "list", 7, nil)
		c.Status(http.StatusOK)
	})
	r.POST("/render/fail", func(c *gin.Context) {
		MarkRender(c, "packet", 0, protocol.ErrMethodMissing)
		_ = c.Error(protocol.ErrMethodMissing)
		c.Status(http.StatusUnprocessableEntity)
	})
	r.POST("/render/bad", func(c *gin.Context) {
		TagRender(c, "packet_id", assert.AnError)
		c.Status(http.StatusBadRequest)
	})
	r.GET("/plain", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func serve(r *gin.Engine, method, path string) {
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, path, nil))
}

func lastLine(t *testing.T, out *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestRequestLoggerCarriesRenderOutcome(t *testing.T) {
	var out bytes.Buffer
	r := newTaggedRouter("mw-log", &out)

	serve(r, http.MethodPost, "/render/ok")
	entry := lastLine(t, &out)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "list", entry["kind"])
	assert.Equal(t, "ok", entry["result"])
	assert.Equal(t, "/render/ok", entry["route"])
	assert.EqualValues(t, 7, entry["rendered"])

	serve(r, http.MethodPost, "/render/fail")
	entry = lastLine(t, &out)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "packet", entry["kind"])
	assert.Equal(t, "method_missing", entry["result"])
	assert.Equal(t, protocol.ErrMethodMissing.Error(), entry["error"])
	assert.NotContains(t, entry, "rendered")

	serve(r, http.MethodGet, "/plain")
	entry = lastLine(t, &out)
	assert.Equal(t, "none", entry["kind"])
	assert.Equal(t, "none", entry["result"])

	serve(r, http.MethodGet, "/missing")
	assert.Equal(t, "unmatched", lastLine(t, &out)["route"])
}

func TestRequestMetricsLabelRenderOutcome(t *testing.T) {
	var out bytes.Buffer
	r := newTaggedRouter("mw-metrics", &out)

	ok := requests.WithLabelValues("mw-metrics", "/render/ok", "list", "ok", "200")
	fail := requests.WithLabelValues("mw-metrics", "/render/fail", "packet", "method_missing", "422")
	bad := requests.WithLabelValues("mw-metrics", "/render/bad", "packet_id", "invalid", "400")
	okBefore, failBefore, badBefore := testutil.ToFloat64(ok), testutil.ToFloat64(fail), testutil.ToFloat64(bad)
	rendersBefore := testutil.ToFloat64(renders.WithLabelValues("packet_id", "invalid"))

	serve(r, http.MethodPost, "/render/ok")
	serve(r, http.MethodPost, "/render/fail")
	serve(r, http.MethodPost, "/render/bad")

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failBefore+1, testutil.ToFloat64(fail))
	assert.Equal(t, badBefore+1, testutil.ToFloat64(bad))
	// TagRender labels the request but is not a render.
	assert.Equal(t, rendersBefore, testutil.ToFloat64(renders.WithLabelValues("packet_id", "invalid")))
}
