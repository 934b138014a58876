// Package httpapi is the JSON-over-HTTP transport of the service: routing,
// the authorization gate decorator and the mapping of domain errors to
// responses.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophfav/internal/logging"
	"github.com/dmitrijs2005/gophfav/internal/server/auth"
	"github.com/dmitrijs2005/gophfav/internal/server/metrics"
	"github.com/dmitrijs2005/gophfav/internal/server/services"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 10 * time.Second

type UserService interface {
	Register(ctx context.Context, userName, password, password2 string) (string, error)
	Login(ctx context.Context, userName, password string) (*services.LoginResult, error)
}

type FavouritesService interface {
	List(ctx context.Context, id auth.Identity) ([]string, error)
	Add(ctx context.Context, id auth.Identity, itemID string) ([]string, error)
	Remove(ctx context.Context, id auth.Identity, itemID string) ([]string, error)
}

type Server struct {
	address    string
	logger     logging.Logger
	users      UserService
	favourites FavouritesService
	gate       *auth.Gate
	metrics    *metrics.Metrics
}

func NewServer(a string, l logging.Logger, us UserService, fs FavouritesService, gate *auth.Gate, m *metrics.Metrics) *Server {
	return &Server{
		address:    a,
		logger:     l.With("module", "http_server"),
		users:      us,
		favourites: fs,
		gate:       gate,
		metrics:    m,
	}
}

// Handler returns the fully wired router. Protected routes are wrapped with
// RequireAuth one by one.
//
// Routes match the escaped path, so an item id may contain "/" or be "..".
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter().UseEncodedPath().SkipClean(true)
	r.Use(s.metrics.Middleware)
	r.NotFoundHandler = http.HandlerFunc(routeNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/user").Subrouter()
	api.HandleFunc("/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/login", s.login).Methods(http.MethodPost)
	api.Handle("/favourites", s.RequireAuth(http.HandlerFunc(s.listFavourites))).Methods(http.MethodGet)
	api.Handle("/favourites/{id}", s.RequireAuth(http.HandlerFunc(s.addFavourite))).Methods(http.MethodPut)
	api.Handle("/favourites/{id}", s.RequireAuth(http.HandlerFunc(s.removeFavourite))).Methods(http.MethodDelete)

	return cors(s.recovery(s.logging(r)))
}

// Run listens on the configured address until ctx is cancelled, then shuts
// the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}
