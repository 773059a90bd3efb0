package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/upcheck/internal/server/services"
)

// tokenID extracts the session token clients pass in the token header.
func tokenID(r *http.Request) string {
	return r.Header.Get("token")
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	var in services.CreateUserInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	view, err := s.users.Create(r.Context(), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUserGet(w http.ResponseWriter, r *http.Request) {
	view, err := s.users.Get(r.Context(), r.URL.Query().Get("phone"), tokenID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	var in services.UpdateUserInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	view, err := s.users.Update(r.Context(), in, tokenID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Delete(r.Context(), r.URL.Query().Get("phone"), tokenID(r)); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}
