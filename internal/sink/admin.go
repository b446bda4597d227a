package sink

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danmuck/castctl/internal/logging"
	"github.com/danmuck/castctl/internal/observability"
)

// Sink admin HTTP surface: health snapshot plus Prometheus scrape target.
func (s *Service) adminRouter() *gin.Engine {
	observability.RegisterMetrics()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.RequestTrace(logging.Component("sink.admin"), "castsinkd"))

	router.GET("/healthz", func(c *gin.Context) {
		st := s.Status()
		c.JSON(http.StatusOK, gin.H{
			"status":           "ok",
			"listen_addr":      st.ListenAddr,
			"uptime":           st.Uptime,
			"open_connections": st.OpenConns,
			"frames_seen":      st.FramesSeen,
			"acks_sent":        st.AcksSent,
			"decode_failures":  st.DecodeFails,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}

// Sink admin listener with context-driven shutdown.
func (s *Service) serveAdmin(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.adminRouter()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info().Str("addr", addr).Msg("admin endpoint listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
