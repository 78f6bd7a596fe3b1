package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rdj5415/a2e-quant-pipeline/common"
	"github.com/rdj5415/a2e-quant-pipeline/config"
	"github.com/rdj5415/a2e-quant-pipeline/data"
	"github.com/rdj5415/a2e-quant-pipeline/engine"
	"github.com/rdj5415/a2e-quant-pipeline/order"
)

// NewServer returns an HTTP server for running backtests
func NewServer(addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{addr: addr, log: logger}
}

// Handler builds the routed handler with CORS applied
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", s.health)
	router.POST("/api/v1/backtest", s.runBacktest)
	return cors.Default().Handler(router)
}

// ListenAndServe serves until the listener fails or is closed
func (s *Server) ListenAndServe() error {
	s.log.Info("api listening", zap.String("addr", s.addr))
	return http.ListenAndServe(s.addr, s.Handler())
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// runBacktest executes a full run from an inline request: construct the
// engine, submit every order, stream the bars, return the summary
func (s *Server) runBacktest(c *gin.Context) {
	var req BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: "INVALID_REQUEST", Message: err.Error()})
		return
	}

	settings := config.Settings{
		InitialCapital: decimal.NewFromFloat(req.Settings.InitialCapital),
		CommissionRate: decimal.NewFromFloat(req.Settings.CommissionRate),
		Slippage:       decimal.NewFromFloat(req.Settings.Slippage),
	}
	eng, err := engine.New(settings, s.log)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: "INVALID_CONFIGURATION", Message: err.Error()})
		return
	}

	for i := range req.Orders {
		o := &order.Order{
			Symbol:     req.Orders[i].Symbol,
			Kind:       order.Kind(req.Orders[i].Kind),
			Side:       order.Side(req.Orders[i].Side),
			Quantity:   decimal.NewFromFloat(req.Orders[i].Quantity),
			LimitPrice: decimal.NewFromFloat(req.Orders[i].LimitPrice),
		}
		if err = eng.SubmitOrder(o); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Code: "INVALID_ORDER", Message: err.Error()})
			return
		}
	}

	bars := make([]data.Bar, len(req.Bars))
	for i := range req.Bars {
		bars[i] = data.Bar{
			Timestamp: req.Bars[i].Timestamp,
			Symbol:    req.Bars[i].Symbol,
			Open:      decimal.NewFromFloat(req.Bars[i].Open),
			High:      decimal.NewFromFloat(req.Bars[i].High),
			Low:       decimal.NewFromFloat(req.Bars[i].Low),
			Close:     decimal.NewFromFloat(req.Bars[i].Close),
			Volume:    decimal.NewFromFloat(req.Bars[i].Volume),
		}
	}

	if err = eng.Run(data.NewBarStream(bars)); err != nil {
		status := http.StatusInternalServerError
		code := "RUN_FAILED"
		if errors.Is(err, common.ErrInsufficientPosition) {
			status = http.StatusUnprocessableEntity
			code = "INSUFFICIENT_POSITION"
		}
		c.JSON(status, ErrorResponse{Code: code, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BacktestResponse{
		RunName: req.RunName,
		Summary: eng.Summary(),
	})
}
