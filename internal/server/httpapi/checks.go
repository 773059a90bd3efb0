package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/upcheck/internal/server/services"
)

func (s *Server) handleCheckCreate(w http.ResponseWriter, r *http.Request) {
	var in services.CreateCheckInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	check, err := s.checks.Create(r.Context(), in, tokenID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}

func (s *Server) handleCheckGet(w http.ResponseWriter, r *http.Request) {
	check, err := s.checks.Get(r.Context(), r.URL.Query().Get("id"), tokenID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}

func (s *Server) handleCheckUpdate(w http.ResponseWriter, r *http.Request) {
	var in services.UpdateCheckInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	check, err := s.checks.Update(r.Context(), in, tokenID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}

func (s *Server) handleCheckDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.checks.Delete(r.Context(), r.URL.Query().Get("id"), tokenID(r)); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}
