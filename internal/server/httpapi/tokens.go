package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/upcheck/internal/server/services"
)

func (s *Server) handleTokenIssue(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	token, err := s.tokens.Issue(r.Context(), in.Phone, in.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (s *Server) handleTokenGet(w http.ResponseWriter, r *http.Request) {
	token, err := s.tokens.Get(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (s *Server) handleTokenExtend(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID     string `json:"id"`
		Extend bool   `json:"extend"`
	}
	if err := decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	if !in.Extend {
		s.respondError(w, r, fmt.Errorf("%w: missing required fields", services.ErrValidation))
		return
	}
	token, err := s.tokens.Extend(r.Context(), in.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (s *Server) handleTokenRevoke(w http.ResponseWriter, r *http.Request) {
	if err := s.tokens.Revoke(r.Context(), r.URL.Query().Get("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}
