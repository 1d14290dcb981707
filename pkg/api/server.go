// Package api provides the REST API for tapping the note pad remotely
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/james-see/pianopad/pkg/notepad"
	"github.com/james-see/pianopad/pkg/notes"
)

// @title PianoPad API
// @version 1.0
// @description Tap the note pad and pick the octave label over HTTP
// @host localhost:8080
// @BasePath /api/v1

// Server exposes a screen over HTTP
type Server struct {
	screen *notepad.Screen
	log    *zap.Logger
}

// NoteView describes one pad region
type NoteView struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Asset string `json:"asset"`
	Ready bool   `json:"ready"`
}

// OctaveRequest is the body of PUT /octave
type OctaveRequest struct {
	Octave int `json:"octave" binding:"required"`
}

// NewServer creates a server for screen
func NewServer(screen *notepad.Screen, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{screen: screen, log: log}
}

// Router builds the gin engine
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.logMiddleware())

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/session", s.getSession)
		v1.GET("/notes", s.listNotes)
		v1.POST("/notes/:index/tap", s.tapNote)
		v1.GET("/octave", s.getOctave)
		v1.PUT("/octave", s.putOctave)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// ListenAndServe serves on port until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("API server listening", zap.Int("port", port), zap.String("screen", s.screen.ID()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pianopad",
	})
}

// getSession godoc
// @Summary Current screen
// @Description Returns the screen id and how many notes are ready
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/session [get]
func (s *Server) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":    s.screen.ID(),
		"ready": s.screen.Pad.ReadyCount(),
		"notes": notes.Size,
	})
}

// listNotes godoc
// @Summary List notes
// @Description Returns the pad regions in display order
// @Tags notes
// @Produce json
// @Success 200 {object} map[string][]NoteView
// @Router /api/v1/notes [get]
func (s *Server) listNotes(c *gin.Context) {
	catalog := s.screen.Pad.Notes()
	views := make([]NoteView, 0, len(catalog))
	for i, n := range catalog {
		views = append(views, NoteView{
			Index: i,
			Label: n.Label,
			Asset: n.Asset,
			Ready: s.screen.Pad.Ready(i),
		})
	}
	c.JSON(http.StatusOK, gin.H{"notes": views})
}

// tapNote godoc
// @Summary Tap a note
// @Description Stops whatever is playing and plays the note. Notes still loading are ignored.
// @Tags notes
// @Produce json
// @Param index path int true "Note index (0-6)"
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/notes/{index}/tap [post]
func (s *Server) tapNote(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	if err := s.screen.Pad.Tap(index); err != nil {
		if errors.Is(err, notepad.ErrNoSuchNote) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"index": index,
		"label": s.screen.Pad.Notes()[index].Label,
		"ready": s.screen.Pad.Ready(index),
	})
}

// getOctave godoc
// @Summary Current octave label
// @Tags octave
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/octave [get]
func (s *Server) getOctave(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"octave":  s.screen.Octave(),
		"options": s.screen.Octaves(),
	})
}

// putOctave godoc
// @Summary Select octave label
// @Description Highlights one of the three octave buttons. Playback is unaffected.
// @Tags octave
// @Accept json
// @Produce json
// @Param body body OctaveRequest true "Octave (3-5)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/octave [put]
func (s *Server) putOctave(c *gin.Context) {
	var req OctaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"octave\": 3|4|5}"})
		return
	}
	if err := s.screen.SelectOctave(req.Octave); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.getOctave(c)
}
