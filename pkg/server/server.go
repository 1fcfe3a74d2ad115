package server

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/ladderbot/ladderbot/pkg/service"
	"github.com/ladderbot/ladderbot/pkg/slack/slackstyle"
	"github.com/ladderbot/ladderbot/pkg/types"
)

var log = logrus.WithField("component", "webhook")

// TradeExecutor runs one trade per signal and reports whether it completed.
type TradeExecutor interface {
	ExecuteTrade(ctx context.Context, signal types.Signal) bool
}

type Server struct {
	AuthToken string

	// TradeStrategies start a trade; StateStrategy only records the trend.
	TradeStrategies []string
	StateStrategy   string

	States *service.SymbolStateService
	Trader TradeExecutor

	ctx    context.Context
	trades sync.WaitGroup
	srv    *http.Server
}

// New creates a webhook server. Trades started by the webhook run with ctx, not the request context.
func New(ctx context.Context, authToken string, states *service.SymbolStateService, trader TradeExecutor) *Server {
	return &Server{
		AuthToken:       authToken,
		TradeStrategies: []string{"trend", "scalp", "highVol"},
		StateStrategy:   "state",
		States:          states,
		Trader:          trader,
		ctx:             ctx,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "online")
	})

	r.POST("/webhook", s.webhook)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// Run serves until ctx is done, then waits for the running trades.
func (s *Server) Run(ctx context.Context, bind string) error {
	s.srv = &http.Server{
		Addr:              bind,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		log.Infof("webhook server listening on %s", bind)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errC <- err
		}
		close(errC)
	}()

	select {
	case err := <-errC:
		return err

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	log.Info("waiting for running trades...")
	s.Wait()
	return nil
}

// Wait blocks until every trade started by the webhook has returned.
func (s *Server) Wait() {
	s.trades.Wait()
}

func (s *Server) isTradeStrategy(strategy string) bool {
	for _, a := range s.TradeStrategies {
		if a == strategy {
			return true
		}
	}
	return false
}

func (s *Server) webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "")
		return
	}

	data, err := ParsePayload(body)
	if err != nil {
		log.WithError(err).Warn("can not parse webhook payload")
		c.String(http.StatusBadRequest, "")
		return
	}

	if s.AuthToken == "" || subtle.ConstantTimeCompare([]byte(data["key"]), []byte(s.AuthToken)) != 1 {
		log.Warnf("unknown key: %q", data["key"])
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	log.Info("[ALERT RECEIVED]")
	log.Debugf("payload: %+v", data)

	strategy := data["strategy"]
	symbol := strings.ToUpper(strings.TrimSpace(data["symbol"]))

	switch {
	case strategy == s.StateStrategy:
		if symbol == "" {
			c.String(http.StatusBadRequest, "")
			return
		}

		trend := data["trend"]
		if err := s.States.SetTrend(symbol, trend); err != nil {
			log.WithError(err).Errorf("unable to store trend of %s", symbol)
			c.String(http.StatusInternalServerError, "")
			return
		}

		log.Infof("%s trend: %s %s", symbol, trend, slackstyle.TrendIcon(trend))

	case s.isTradeStrategy(strategy):
		signal, err := types.ParseSignal(data)
		if err != nil {
			log.WithError(err).Warn("invalid signal")
			c.String(http.StatusBadRequest, "")
			return
		}

		if !s.States.TryStart(signal.Symbol) {
			log.Warnf("%s trade is running, no trade", signal.Symbol)
			break
		}

		s.trades.Add(1)
		go func() {
			defer s.trades.Done()
			defer s.States.Finish(signal.Symbol)

			if ok := s.Trader.ExecuteTrade(s.ctx, *signal); !ok {
				log.Warnf("%s %s trade did not complete", signal.Symbol, signal.Strategy)
			}
		}()

	default:
		log.Warnf("unhandled strategy: %s", strategy)
	}

	c.String(http.StatusOK, "")
}
