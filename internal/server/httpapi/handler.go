package httpapi

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/gophfav/internal/common"
	"github.com/dmitrijs2005/gophfav/internal/server/auth"
	"github.com/dmitrijs2005/gophfav/internal/server/metrics"
	"github.com/gorilla/mux"
)

type RegisterRequest struct {
	UserName  string `json:"userName"`
	Password  string `json:"password"`
	Password2 string `json:"password2,omitempty"`
}

type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.authEvent(metrics.EventRegister, err)
		writeError(w, err)
		return
	}

	msg, err := s.users.Register(r.Context(), req.UserName, req.Password, req.Password2)
	s.authEvent(metrics.EventRegister, err)
	if err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", req.UserName)
	writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.authEvent(metrics.EventLogin, err)
		writeError(w, err)
		return
	}

	res, err := s.users.Login(r.Context(), req.UserName, req.Password)
	s.authEvent(metrics.EventLogin, err)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Message: res.Message, Token: res.Token})
}

func (s *Server) listFavourites(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())
	s.writeFavourites(w)(s.favourites.List(r.Context(), id))
}

func (s *Server) addFavourite(w http.ResponseWriter, r *http.Request) {
	item, err := itemID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, _ := auth.IdentityFromContext(r.Context())
	s.writeFavourites(w)(s.favourites.Add(r.Context(), id, item))
}

func (s *Server) removeFavourite(w http.ResponseWriter, r *http.Request) {
	item, err := itemID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, _ := auth.IdentityFromContext(r.Context())
	s.writeFavourites(w)(s.favourites.Remove(r.Context(), id, item))
}

// itemID unescapes the {id} path variable; the router matches encoded paths.
func itemID(r *http.Request) (string, error) {
	item, err := url.PathUnescape(mux.Vars(r)["id"])
	if err != nil {
		return "", fmt.Errorf("%w: malformed item id", common.ErrValidation)
	}
	return item, nil
}

func (s *Server) writeFavourites(w http.ResponseWriter) func([]string, error) {
	return func(favs []string, err error) {
		if err != nil {
			writeError(w, err)
			return
		}
		if favs == nil {
			favs = []string{}
		}
		writeJSON(w, http.StatusOK, favs)
	}
}

func (s *Server) authEvent(event string, err error) {
	outcome := "success"
	if err != nil {
		outcome = string(common.KindOf(err))
	}
	s.metrics.AuthEvent(event, outcome)
}
