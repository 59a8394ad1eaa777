package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fulldump/box"

	"github.com/fulldump/listdb/api"
	"github.com/fulldump/listdb/configuration"
	"github.com/fulldump/listdb/database"
	"github.com/fulldump/listdb/service"
)

var VERSION = "dev"

func Bootstrap(c *configuration.Configuration) (start, stop func(), err error) {

	db := database.NewDatabase(&database.Config{
		Dir:       c.Dir,
		ListField: c.ListField,
		KeyField:  c.KeyField,
		Watch:     c.Watch,
	})

	b := api.Build(service.NewService(db), VERSION, c.ApiKey, c.ApiSecret)
	if c.EnableCompression {
		b.WithInterceptors(api.Compression)
	}
	b.WithInterceptors(
		api.AccessLog(slog.Default().With("component", "http")),
		api.PrettyErrorInterceptor,
		api.RecoverFromPanic,
	)
	var limiter *api.Limiter
	if c.RateLimit > 0 {
		limiter = api.NewLimiter(c.RateLimit, c.RateBurst)
		b.WithInterceptors(api.RateLimit(limiter))
	}
	b.WithInterceptors(
		api.InterceptorUnavailable(db),
	)

	s := &http.Server{
		Addr:    c.HttpAddr,
		Handler: box.Box2Http(b),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("listening", "addr", ln.Addr().String())

	done := make(chan struct{})
	stopOnce := sync.Once{}
	stop = func() {
		stopOnce.Do(func() {
			close(done)
			db.Stop()
			s.Shutdown(context.Background())
		})
	}

	if limiter != nil {
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case now := <-ticker.C:
					limiter.Cleanup(now.Add(-10 * time.Minute))
				}
			}
		}()
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		slog.Info("signal received", "signal", sig.String())
		stop()
	}()

	start = func() {
		defer signal.Stop(signalChan)

		wg := &sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Start()
			if err != nil {
				slog.Error("database", "err", err)
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Serve(ln)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("http server", "err", err)
			}
		}()

		wg.Wait()
	}

	return
}
