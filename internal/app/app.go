package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/session"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 15 * time.Second
)

type App struct {
	Addr string

	log      *logrus.Logger
	router   *http.ServeMux
	sessions *session.Registry
	cookies  *config.Cookies
	ws       *config.WebSocket

	// Sessions idle longer than the cookie lifetime (SESSION_TTL) are swept.
	sessionTTL time.Duration
}

func New(
	log *logrus.Logger,
	jwt *config.JWT,
	cookies *config.Cookies,
	ws *config.WebSocket,
) *App {
	app := &App{
		Addr:       config.Addr(),
		log:        log,
		router:     http.NewServeMux(),
		sessions:   session.NewRegistry(createRand()),
		cookies:    cookies,
		ws:         ws,
		sessionTTL: jwt.Lifetime(),
	}

	app.loadRoutes()

	return app
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.log, a.cookies),
		middleware.Cors(),
		middleware.Logging(a.log),
		middleware.Recover(a.log),
	)
}

// Start serves until ctx is done or the listener fails. Idle sessions are
// swept in the background for as long as the server runs.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         a.Addr,
		Handler:      a.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Infof("ready to serve @ %s", a.Addr)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		err := a.sessions.Run(gCtx, sweepInterval, a.sessionTTL)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	return g.Wait()
}
