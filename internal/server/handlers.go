package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/report"
	"go.uber.org/zap"
)

type healthResponse struct {
	Status        string                  `json:"status"`
	Loaded        bool                    `json:"loaded"`
	UptimeSeconds int64                   `json:"uptime_seconds"`
	Load          *attendsheet.LoadStatus `json:"load,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", UptimeSeconds: s.uptimeSeconds()}
	if st, err := s.table.Status(); err == nil {
		resp.Loaded = true
		resp.Load = &st
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWeeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := s.table.Weeks()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, weeks)
}

func (s *Server) handleMonthWeeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := s.reports.MonthWeeks(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, weeks)
}

func (s *Server) handleCurrentWeek(w http.ResponseWriter, r *http.Request) {
	local, global, err := s.table.CurrentWeek()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	label, _ := s.table.WeekRangeLabel(global)
	writeJSON(w, http.StatusOK, report.WeekRef{Global: global, Local: local, Label: label})
}

func (s *Server) handlePerson(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	p, err := s.reports.Me(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDays(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	week, err := weekParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	d, err := s.reports.Days(r.Context(), id, week)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleSalary(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	week, err := weekParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	sal, err := s.reports.Salary(r.Context(), id, week)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sal)
}

// selectionRequest picks a local week of the current month; zero, or an
// empty body, selects the current week.
type selectionRequest struct {
	LocalWeek int `json:"local_week"`
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req selectionRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid JSON")
		return
	}

	var ref report.WeekRef
	if req.LocalWeek == 0 {
		ref, err = s.reports.Current(r.Context(), id)
	} else {
		ref, err = s.reports.Select(r.Context(), id, req.LocalWeek)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ref)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	st, err := s.table.Load(r.Context())
	if err != nil {
		s.logger.Warn("reload failed", zap.Error(err))
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
