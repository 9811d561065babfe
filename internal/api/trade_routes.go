package api

import (
	"net/http"

	"github.com/rustyeddy/tradejournal/journal"
)

type exitRequest struct {
	Exit *float64 `json:"exit"`
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	f, err := s.parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trades, err := s.svc.ListTrades(r.Context(), f)
	if err != nil {
		s.fail(w, r, "failed to fetch trades", err)
		return
	}
	writeJSON(w, http.StatusOK, trades)
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := s.svc.GetTrade(r.Context(), id)
	if err != nil {
		s.fail(w, r, "failed to fetch trade", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleAddTrade(w http.ResponseWriter, r *http.Request) {
	var in journal.Trade
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := s.svc.AddTrade(r.Context(), in)
	if err != nil {
		s.fail(w, r, "failed to add trade", err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleCloseTrade(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in exitRequest
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Exit == nil {
		writeError(w, http.StatusBadRequest, "exit is required")
		return
	}

	t, err := s.svc.CloseTrade(r.Context(), id, *in.Exit)
	if err != nil {
		s.fail(w, r, "failed to close trade", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleReviewTrade(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var rv journal.TradeReview
	if err := decodeBody(w, r, &rv); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := s.svc.ReviewTrade(r.Context(), id, rv)
	if err != nil {
		s.fail(w, r, "failed to review trade", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.svc.DeleteTrade(r.Context(), id); err != nil {
		s.fail(w, r, "failed to delete trade", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
