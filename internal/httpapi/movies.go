package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"moviehub/backend/internal/omdb"
)

type connectionResponse struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type defaultsResponse struct {
	Movies []json.RawMessage `json:"movies"`
}

func (s *Server) logUpstreamError(r *http.Request, err error) {
	s.log.Error().Err(err).Str("path", r.URL.Path).Str("request_id", r.Header.Get(requestIDHeader)).Msg("omdb request failed")
}

func (s *Server) handleMoviesTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	raw, err := s.movies.TestConnection(r.Context())
	if err != nil {
		s.logUpstreamError(r, err)
		writeError(w, http.StatusInternalServerError, msgOMDbConnectFailed)
		return
	}
	writeJSON(w, http.StatusOK, connectionResponse{Message: msgOMDbConnected, Data: raw})
}

func (s *Server) handleMoviesSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	term := r.URL.Query().Get("s")
	if term == "" {
		writeError(w, http.StatusBadRequest, msgSearchTermRequired)
		return
	}

	raw, err := s.movies.Search(r.Context(), term)
	if err != nil {
		s.logUpstreamError(r, err)
		writeError(w, http.StatusInternalServerError, msgSearchFailed)
		return
	}
	writeRaw(w, http.StatusOK, raw)
}

func (s *Server) handleMoviesDetails(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	q := omdb.DetailsQuery{
		Title: r.URL.Query().Get("t"),
		ID:    r.URL.Query().Get("i"),
	}
	if q.Title == "" && q.ID == "" {
		writeError(w, http.StatusBadRequest, msgDetailsRequired)
		return
	}

	raw, err := s.movies.Details(r.Context(), q)
	if err != nil {
		var nf *omdb.NotFoundError
		if errors.As(err, &nf) {
			writeError(w, http.StatusNotFound, nf.Message)
			return
		}
		s.logUpstreamError(r, err)
		writeError(w, http.StatusInternalServerError, msgDetailsFailed)
		return
	}
	writeRaw(w, http.StatusOK, raw)
}

func (s *Server) handleMoviesDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	movies, dropped, err := s.movies.Defaults(r.Context(), omdb.DefaultIDs)
	if err != nil {
		s.logUpstreamError(r, err)
		writeError(w, http.StatusInternalServerError, msgDefaultsFailed)
		return
	}
	if dropped > 0 {
		s.log.Warn().Int("dropped", dropped).Int("loaded", len(movies)).Msg("some default movies could not be loaded")
	}
	if len(movies) == 0 {
		writeError(w, http.StatusInternalServerError, msgDefaultsFailed)
		return
	}
	writeJSON(w, http.StatusOK, defaultsResponse{Movies: movies})
}
