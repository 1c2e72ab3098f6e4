package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"moviehub/backend/internal/auth"
	"moviehub/backend/internal/config"
	"moviehub/backend/internal/omdb"
	"moviehub/backend/internal/store"

	"github.com/rs/zerolog"
)

// MovieSource is the upstream movie-data API the proxy endpoints relay.
type MovieSource interface {
	TestConnection(ctx context.Context) (json.RawMessage, error)
	Search(ctx context.Context, term string) (json.RawMessage, error)
	Details(ctx context.Context, q omdb.DetailsQuery) (json.RawMessage, error)
	Defaults(ctx context.Context, ids []string) ([]json.RawMessage, int, error)
}

type Server struct {
	cfg    config.Config
	store  store.Store
	auth   *auth.Service
	movies MovieSource
	log    zerolog.Logger
	mux    *http.ServeMux
}

func NewServer(cfg config.Config, st store.Store, movies MovieSource, logger zerolog.Logger) *Server {
	key, generated := signingKey(cfg.JWTSecret)
	if generated {
		logger.Warn().Msg("JWT_SECRET not set, using a random signing key; tokens will not survive a restart")
	}

	s := &Server{
		cfg:    cfg,
		store:  st,
		auth:   auth.NewService(st, auth.NewBcryptHasher(cfg.BcryptCost), auth.NewTokenIssuer(key, cfg.JWTTTL)),
		movies: movies,
		log:    logger,
		mux:    http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = s.recoverMiddleware(h)
	h = corsMiddleware(s.cfg.CORSAllowedOrigins, h)
	h = requestIDMiddleware(h)
	h = s.loggingMiddleware(h)
	return h
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)

	s.mux.HandleFunc("/api/auth/register", s.handleRegister)
	s.mux.HandleFunc("/api/auth/login", s.handleLogin)

	s.mux.HandleFunc("/api/movies/test", s.handleMoviesTest)
	s.mux.HandleFunc("/api/movies/search", s.handleMoviesSearch)
	s.mux.HandleFunc("/api/movies/details", s.handleMoviesDetails)
	s.mux.HandleFunc("/api/movies/defaults", s.handleMoviesDefaults)

	s.mux.Handle("/api/protected", s.requireBearer(http.HandlerFunc(s.handleProtected)))
}
