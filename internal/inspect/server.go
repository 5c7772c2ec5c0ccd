// Package inspect exposes a minimal Gin HTTP surface over a running
// simulation: health, current world snapshot, and a manual single-tick
// trigger for debugging a stuck run.
package inspect

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dispatchsim/internal/dispatch/loop"
	"dispatchsim/internal/domain"
)

type Server struct {
	dispatcher *loop.Dispatcher
	world      *domain.World
	now        func() time.Time
}

func NewServer(dispatcher *loop.Dispatcher, world *domain.World, now func() time.Time) *Server {
	return &Server{dispatcher: dispatcher, world: world, now: now}
}

func (s *Server) Routes() *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	r.GET("/state", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"orders":      len(s.world.Orders),
			"restaurants": len(s.world.Restaurants),
			"couriers":    len(s.world.Couriers),
			"free":        len(s.world.FreeCouriers()),
		})
	})

	r.POST("/tick", func(c *gin.Context) {
		t := s.now()
		if err := s.dispatcher.Tick(context.Background(), t); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tick": t})
	})

	return r
}
