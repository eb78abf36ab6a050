package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/observability"
	"github.com/benz9527/xtree/xlog"
)

func newLogger(cfg *appConfig) (xlog.XLogger, error) {
	lvl, err := xlog.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	enc, err := xlog.ParseEncoder(cfg.Encoder)
	if err != nil {
		return nil, err
	}
	// The stdout is kept for the tree output.
	return xlog.NewXLogger(
		xlog.WithXLoggerWriter(xlog.StdErr),
		xlog.WithXLoggerLevel(lvl),
		xlog.WithXLoggerEncoder(enc),
	), nil
}

func newMeterProvider(lc fx.Lifecycle, cfg *appConfig, logger xlog.XLogger) (metric.MeterProvider, error) {
	var (
		shutdown observability.ShutdownFunc
		err      error
	)
	switch cfg.Metrics {
	case metricsStdout:
		shutdown, err = observability.NewConsoleMetricsExporter(os.Stderr, time.Minute, 5*time.Second)
	case metricsPrometheus:
		shutdown, err = observability.NewPrometheusMetricsExporter()
	default:
		return noop.NewMeterProvider(), nil
	}
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "metrics exporter")
	}
	observability.InitAppStats("xtree")
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})

	if cfg.Metrics == metricsPrometheus {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				ln, err := net.Listen("tcp", cfg.MetricsAddr)
				if err != nil {
					return infra.WrapErrorStackWithMessage(err, "metrics listen")
				}
				logger.Info("serving metrics", zap.String("addr", ln.Addr().String()))
				go func() {
					if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error(err, "metrics server")
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return srv.Shutdown(ctx)
			},
		})
	}
	return otel.GetMeterProvider(), nil
}

func registerSession(lc fx.Lifecycle, cfg *appConfig, s *session) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.run(cfg.Out, cfg.Ops)
		},
		OnStop: func(ctx context.Context) error {
			return s.close()
		},
	})
}

func newApp(cfg *appConfig) *fx.App {
	return fx.New(
		fx.Supply(cfg),
		fx.Provide(
			newLogger,
			newMeterProvider,
			newSession,
		),
		fx.Invoke(registerSession),
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
	)
}

// runApp runs the ops once. With the prometheus exporter the process
// keeps serving the scrapes until it is signaled.
func runApp(ctx context.Context, cfg *appConfig) error {
	app := newApp(cfg)
	if err := app.Err(); err != nil {
		return err
	}
	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	if cfg.Metrics == metricsPrometheus {
		select {
		case <-app.Done():
		case <-ctx.Done():
		}
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	return app.Stop(stopCtx)
}
