// Package server exposes the profile and statistics engine over HTTP
// for the mobile client. Handlers are thin: parse the window, load the
// profile, delegate to the pure calculators, and serialize the snapshot.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/macroday/macroday/internal/logger"
	"github.com/macroday/macroday/internal/store"
)

var validate = validator.New()

type Server struct {
	store *store.Store
	log   *logger.Logger
}

func New(st *store.Store, log *logger.Logger) *Server {
	return &Server{store: st, log: log}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(s.log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		v1.GET("/profile", s.getProfile)
		v1.PUT("/profile", s.putProfile)
		v1.GET("/macros", s.getMacros)
		v1.GET("/stats/day", s.getDayStats)
		v1.GET("/stats/week", s.getWeekStats)
		v1.GET("/stats/activity", s.getActivityStats)
		v1.GET("/stats/weight", s.getWeightStats)
	}
	return r
}
