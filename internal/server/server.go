package server

import (
	"time"

	"github.com/danmuck/psyc/internal/config"
	"github.com/danmuck/psyc/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ContentType is sent with rendered wire bytes.
const ContentType = "application/x-psyc"

// Server exposes the renderers over HTTP for tooling and debugging.
type Server struct {
	ID             string
	Addr           string
	MaxPacketBytes int
	Appeared       time.Time

	router   *gin.Engine
	basePath string
}

func Appear(cfg config.ServerConfig) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.ID))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Server{
		ID:             cfg.ID,
		Addr:           cfg.Addr,
		MaxPacketBytes: cfg.MaxPacketBytes,
		Appeared:       time.Now(),
		router:         r,
	}
}

// Attach mounts the render routes on an existing router under basePath.
func Attach(cfg config.ServerConfig, router *gin.Engine, basePath string) *Server {
	return &Server{
		ID:             cfg.ID,
		Addr:           cfg.Addr,
		MaxPacketBytes: cfg.MaxPacketBytes,
		Appeared:       time.Now(),
		router:         router,
		basePath:       basePath,
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) Serve() error {
	s.RegisterRoutes()
	log.Info().Str("id", s.ID).Str("addr", s.Addr).Msg("render service listening")
	return s.router.Run(s.Addr)
}

func (s *Server) routes() gin.IRoutes {
	if s.basePath == "" {
		return s.router
	}
	return s.router.Group(s.basePath)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
