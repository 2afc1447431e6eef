package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danmuck/psyc/internal/observability"
	"github.com/danmuck/psyc/internal/protocol"
	"github.com/danmuck/psyc/internal/protocol/schema"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// HeaderLength carries the rendered size alongside the wire bytes.
const HeaderLength = "X-Psyc-Length"

var ErrTooLarge = errors.New("rendered value exceeds max_packet_bytes")

func (s *Server) RegisterRoutes() {
	routes := s.routes()
	routes.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.ID,
			"version": "0.0.1",
		})
	})

	routes.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.POST("/v1/render/packet", func(c *gin.Context) {
		var spec schema.PacketSpec
		if err := c.ShouldBindJSON(&spec); err != nil {
			s.reject(c, http.StatusBadRequest, "packet", err)
			return
		}
		p, err := spec.Packet()
		if err != nil {
			s.reject(c, http.StatusBadRequest, "packet", err)
			return
		}
		s.respond(c, "packet", p.Length, func(buf []byte) (int, error) {
			return protocol.RenderPacket(p, buf)
		})
	})

	routes.POST("/v1/render/list", func(c *gin.Context) {
		var spec schema.ListSpec
		if err := c.ShouldBindJSON(&spec); err != nil {
			s.reject(c, http.StatusBadRequest, "list", err)
			return
		}
		table, err := spec.Table()
		if err != nil {
			s.reject(c, http.StatusBadRequest, "list", err)
			return
		}
		if table.Width == 0 {
			s.respond(c, "list", table.List.Length, func(buf []byte) (int, error) {
				return protocol.RenderList(table.List, buf)
			})
			return
		}
		s.respond(c, "table", table.Length, func(buf []byte) (int, error) {
			return protocol.RenderTable(table, buf)
		})
	})

	routes.POST("/v1/render/packet-id", func(c *gin.Context) {
		var spec schema.PacketIDSpec
		if err := c.ShouldBindJSON(&spec); err != nil {
			s.reject(c, http.StatusBadRequest, "packet_id", err)
			return
		}
		ctx, src, tgt, cnt, frag := spec.Components()
		s.respond(c, "packet_id", protocol.PacketIDLength(ctx, src, tgt, cnt, frag), func(buf []byte) (int, error) {
			return protocol.RenderPacketID(ctx, src, tgt, cnt, frag, buf)
		})
	})
}

// respond allocates one buffer of the sized length and renders into it.
func (s *Server) respond(c *gin.Context, kind string, length int, render func([]byte) (int, error)) {
	if s.MaxPacketBytes > 0 && length > s.MaxPacketBytes {
		s.reject(c, http.StatusRequestEntityTooLarge, kind, ErrTooLarge)
		return
	}
	if length < 0 {
		length = 0
	}
	buf := make([]byte, length)
	n, err := render(buf)
	observability.MarkRender(c, kind, n, err)
	if err != nil {
		s.reject(c, http.StatusUnprocessableEntity, kind, err)
		return
	}
	c.Header(HeaderLength, strconv.Itoa(n))
	c.Data(http.StatusOK, ContentType, buf[:n])
}

func (s *Server) reject(c *gin.Context, status int, kind string, err error) {
	_ = c.Error(err)
	if _, tagged := c.Get(observability.KeyRenderResult); !tagged {
		observability.TagRender(c, kind, err)
	}
	log.Warn().
		Str("service", s.ID).
		Str("kind", kind).
		Err(err).
		Msg("render rejected")
	c.JSON(status, gin.H{
		"error":  err.Error(),
		"result": observability.RenderResult(err),
	})
}
