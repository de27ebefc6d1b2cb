package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vvatanabe/shiptracker"
	"github.com/vvatanabe/shiptracker/internal/observability"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Host is the part of shiptracker.Host the server calls.
type Host interface {
	Call(ctx context.Context, method string, args json.RawMessage) (any, error)
	TrackShipment(ctx context.Context, id int) (shiptracker.Shipment, bool, error)
	GetAllShipments(ctx context.Context) ([]shiptracker.Shipment, error)
}

type Server struct {
	host    Host
	logger  *zap.Logger
	router  *gin.Engine
	started time.Time
}

type CallRequest struct {
	Method string          `json:"method" binding:"required"`
	Args   json.RawMessage `json:"args"`
}

type CallResponse struct {
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func New(host Host, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	observability.RegisterMetrics()
	s := &Server{
		host:    host,
		logger:  logger,
		router:  gin.New(),
		started: time.Now(),
	}
	s.router.Use(gin.Recovery(), observability.RequestLogger(logger), observability.RequestMetricsMiddleware())
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.started).String(),
			"service": "shiptracker",
		})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.POST("/call", s.call)
	s.router.POST("/shipments", s.createShipment)
	s.router.GET("/shipments", s.getAllShipments)
	s.router.GET("/shipments/:id", s.trackShipment)
}

func (s *Server) call(c *gin.Context) {
	var req CallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, CallResponse{Error: err.Error()})
		return
	}
	result, err := s.host.Call(c.Request.Context(), req.Method, req.Args)
	if err != nil {
		observability.RecordLedgerCall(req.Method, observability.OutcomeError)
		c.JSON(statusOf(err), CallResponse{Error: err.Error()})
		return
	}
	outcome := observability.OutcomeOK
	if sh, ok := result.(*shiptracker.Shipment); ok && sh == nil {
		outcome = observability.OutcomeNotFound
	}
	observability.RecordLedgerCall(req.Method, outcome)
	c.JSON(http.StatusOK, CallResponse{Result: result})
}

// createShipment decodes its body the way Host.Call decodes create_shipment args, so unknown fields are rejected on both routes.
func (s *Server) createShipment(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, CallResponse{Error: err.Error()})
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		c.JSON(http.StatusBadRequest, CallResponse{Error: "request body is required"})
		return
	}
	result, err := s.host.Call(c.Request.Context(), shiptracker.MethodCreateShipment, body)
	if err != nil {
		observability.RecordLedgerCall(shiptracker.MethodCreateShipment, observability.OutcomeError)
		c.JSON(statusOf(err), CallResponse{Error: err.Error()})
		return
	}
	observability.RecordLedgerCall(shiptracker.MethodCreateShipment, observability.OutcomeOK)
	c.JSON(http.StatusCreated, result)
}

func (s *Server) getAllShipments(c *gin.Context) {
	all, err := s.host.GetAllShipments(c.Request.Context())
	if err != nil {
		observability.RecordLedgerCall(shiptracker.MethodGetAllShipments, observability.OutcomeError)
		c.JSON(statusOf(err), CallResponse{Error: err.Error()})
		return
	}
	observability.RecordLedgerCall(shiptracker.MethodGetAllShipments, observability.OutcomeOK)
	c.JSON(http.StatusOK, all)
}

func (s *Server) trackShipment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, CallResponse{Error: "id must be an integer"})
		return
	}
	shipment, found, err := s.host.TrackShipment(c.Request.Context(), id)
	if err != nil {
		observability.RecordLedgerCall(shiptracker.MethodTrackShipment, observability.OutcomeError)
		c.JSON(statusOf(err), CallResponse{Error: err.Error()})
		return
	}
	if !found {
		observability.RecordLedgerCall(shiptracker.MethodTrackShipment, observability.OutcomeNotFound)
		c.JSON(http.StatusNotFound, CallResponse{Error: "shipment not found"})
		return
	}
	observability.RecordLedgerCall(shiptracker.MethodTrackShipment, observability.OutcomeOK)
	c.JSON(http.StatusOK, shipment)
}

func statusOf(err error) int {
	var (
		unknownMethod *shiptracker.UnknownMethodError
		invalidArg    *shiptracker.InvalidArgumentError
		initialized   *shiptracker.AlreadyInitializedError
	)
	switch {
	case errors.As(err, &unknownMethod):
		return http.StatusNotFound
	case errors.As(err, &invalidArg):
		return http.StatusBadRequest
	case errors.As(err, &initialized):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
