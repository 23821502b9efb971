// Package api exposes the tracker over HTTP with gin: current and
// historical valuations, record history and entity listings, and exports.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"fjacquet/asset-tracker/internal/apperrors"
	"fjacquet/asset-tracker/internal/container"
	"fjacquet/asset-tracker/internal/ledger"
	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server serves one dataset store. Every request loads the dataset; mutations
// hold a lock across load, edit and save so concurrent writes cannot lose
// each other's changes.
type Server struct {
	c      *container.Container
	logger logging.Logger
	mu     sync.Mutex
}

// NewServer returns a Server backed by the container's store and engine.
func NewServer(c *container.Container) *Server {
	return &Server{c: c, logger: c.GetLogger().WithComponent("api")}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	cfg := s.c.GetConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.Server.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Content-Type", "Authorization"},
			ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		}))
	}

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/summary", s.summary)
	api.GET("/history", s.history)
	api.GET("/records", s.listRecords)
	api.POST("/records", s.createRecord)
	api.PUT("/records/:id", s.updateRecord)
	api.DELETE("/records/:id", s.deleteRecord)
	api.GET("/accounts", s.listAccounts)
	api.GET("/categories", s.listCategories)
	api.GET("/owners", s.listOwners)
	api.GET("/export", s.export)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", logging.Field{Key: logging.FieldAddr, Value: addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("HTTP server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		s.logger.Debug("HTTP request",
			logging.Field{Key: logging.FieldMethod, Value: ctx.Request.Method},
			logging.Field{Key: logging.FieldPath, Value: ctx.FullPath()},
			logging.Field{Key: logging.FieldStatus, Value: ctx.Writer.Status()},
			logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	}
}

// load reads the current dataset.
func (s *Server) load(ctx *gin.Context) (*models.Dataset, bool) {
	ds, err := s.c.GetStore().Load(ctx.Request.Context())
	if err != nil {
		s.fail(ctx, err)
		return nil, false
	}
	return ds, true
}

// mutate runs edit on a ledger over the freshly loaded dataset and saves the
// result if edit succeeds.
func (s *Server) mutate(ctx *gin.Context, edit func(l *ledger.Ledger) error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, ok := s.load(ctx)
	if !ok {
		return false
	}
	if err := edit(s.c.NewLedger(ds)); err != nil {
		s.fail(ctx, err)
		return false
	}
	if err := s.c.GetStore().Save(ctx.Request.Context(), ds); err != nil {
		s.fail(ctx, err)
		return false
	}
	return true
}

// fail maps typed errors onto HTTP statuses.
func (s *Server) fail(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
		inUseErr      *apperrors.InUseError
		badRequest    *badRequestError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &badRequest):
		status = http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &inUseErr):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).Error("Request failed",
			logging.Field{Key: logging.FieldPath, Value: ctx.FullPath()})
	}
	ctx.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

func badRequest(err error) error { return &badRequestError{msg: err.Error()} }
