package api

import (
	"net/http"

	"github.com/rustyeddy/tradejournal/journal"
)

func (s *Server) handleGetReviewNote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	n, err := s.svc.ReviewNote(r.Context(), q.Get("period_type"), q.Get("period_key"))
	if err != nil {
		s.fail(w, r, "failed to fetch review", err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleSaveReviewNote(w http.ResponseWriter, r *http.Request) {
	var in journal.ReviewNote
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, d := range []string{in.FromDate, in.ToDate} {
		if d != "" && !validateDate(d) {
			writeError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
			return
		}
	}

	n, err := s.svc.SaveReviewNote(r.Context(), in)
	if err != nil {
		s.fail(w, r, "failed to save review", err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}
