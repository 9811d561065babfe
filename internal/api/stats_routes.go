package api

import (
	"net/http"

	"github.com/rustyeddy/tradejournal/stats"
)

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	f, err := s.parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := s.svc.Overview(r.Context(), f)
	if err != nil {
		s.fail(w, r, "failed to compute overview", err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleEquityCurve(w http.ResponseWriter, r *http.Request) {
	f, err := s.parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	curve, err := s.svc.EquityCurve(r.Context(), f)
	if err != nil {
		s.fail(w, r, "failed to compute equity curve", err)
		return
	}
	writeJSON(w, http.StatusOK, curve)
}

func (s *Server) handleDrawdown(w http.ResponseWriter, r *http.Request) {
	f, err := s.parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dd, err := s.svc.Drawdown(r.Context(), f)
	if err != nil {
		s.fail(w, r, "failed to compute drawdown", err)
		return
	}
	writeJSON(w, http.StatusOK, dd)
}

func (s *Server) groupHandler(key stats.GroupKey) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeGroups(w, r, key)
	}
}

func (s *Server) handleGroupedBy(w http.ResponseWriter, r *http.Request) {
	s.writeGroups(w, r, stats.GroupKey(r.PathValue("key")))
}

func (s *Server) writeGroups(w http.ResponseWriter, r *http.Request, key stats.GroupKey) {
	f, err := s.parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	groups, err := s.svc.Grouped(r.Context(), f, key)
	if err != nil {
		s.fail(w, r, "failed to compute grouped stats", err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	f, err := s.parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	months, err := s.svc.Monthly(r.Context(), f)
	if err != nil {
		s.fail(w, r, "failed to compute monthly pnl", err)
		return
	}
	writeJSON(w, http.StatusOK, months)
}

func (s *Server) tagHandler(field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeTags(w, r, field)
	}
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	s.writeTags(w, r, r.PathValue("field"))
}

func (s *Server) writeTags(w http.ResponseWriter, r *http.Request, field string) {
	f, err := s.parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	counts, err := s.svc.Tags(r.Context(), f, field)
	if err != nil {
		s.fail(w, r, "failed to count tags", err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	f, err := s.parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rv, err := s.svc.Review(r.Context(), f)
	if err != nil {
		s.fail(w, r, "failed to build review", err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}
