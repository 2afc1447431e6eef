package observability

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Context keys a handler sets through MarkRender.
const (
	KeyRenderKind   = "psyc.render.kind"
	KeyRenderResult = "psyc.render.result"
	KeyRenderBytes  = "psyc.render.bytes"
)

// MarkRender records one render attempt and tags the request with its kind
// and result so the request log and request metrics can report them.
func MarkRender(c *gin.Context, kind string, size int, err error) {
	RecordRender(kind, size, err)
	TagRender(c, kind, err)
	if err == nil {
		c.Set(KeyRenderBytes, size)
	}
}

// TagRender tags the request without counting a render, for requests
// rejected before a renderer ran.
func TagRender(c *gin.Context, kind string, err error) {
	c.Set(KeyRenderKind, kind)
	c.Set(KeyRenderResult, RenderResult(err))
}

// renderTags reads what MarkRender left on the request. Requests that never
// reached a renderer report kind "none".
func renderTags(c *gin.Context) (kind, result string) {
	kind, result = "none", "none"
	if v := c.GetString(KeyRenderKind); v != "" {
		kind = v
	}
	if v := c.GetString(KeyRenderResult); v != "" {
		result = v
	}
	return kind, result
}

// RequestLogger writes one line per request carrying the render outcome.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kind, result := renderTags(c)

		event := logger.Info()
		switch {
		case status >= 500:
			event = logger.Error()
		case result != "ok" && result != "none":
			event = logger.Warn()
		}
		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.Last().Error())
		}
		if size, ok := c.Get(KeyRenderBytes); ok {
			event = event.Interface("rendered", size)
		}

		event.
			Str("kind", kind).
			Str("result", result).
			Str("route", routeOf(c)).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("render_request")
	}
}

// RequestMetricsMiddleware counts requests per route and render outcome.
func RequestMetricsMiddleware(node string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kind, result := renderTags(c)
		RecordRequest(node, routeOf(c), kind, result, c.Writer.Status(), time.Since(start))
	}
}

func routeOf(c *gin.Context) string {
	if path := c.FullPath(); path != "" {
		return path
	}
	return "unmatched"
}
