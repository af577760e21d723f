package ui

import (
	"net/http"

	"methodcost/adapters/excel"
	"methodcost/adapters/report"
	"methodcost/domain/analysis"
	"methodcost/domain/core"
	"methodcost/internal/errors"
	uimw "methodcost/ui/middleware"

	"github.com/go-chi/chi/v5"
)

func analysisIDParam(r *http.Request) (core.AnalysisID, error) {
	id, err := core.ParseAnalysisID(chi.URLParam(r, "id"))
	if err != nil {
		return "", errors.InvalidInput(err.Error())
	}
	return id, nil
}

func (a *App) handleRunAnalysis(w http.ResponseWriter, r *http.Request) {
	var cfg analysis.Config
	if err := decodeJSON(r, &cfg); err != nil {
		writeError(w, a.logger, err)
		return
	}

	outcome, err := a.analyses.RunAnalysis(r.Context(), uimw.UserID(r.Context()), cfg)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	status := http.StatusCreated
	if !outcome.Saved {
		status = http.StatusOK
	}
	writeJSON(w, status, outcome)
}

func (a *App) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	list, err := a.analyses.ListAnalyses(r.Context(), uimw.UserID(r.Context()))
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	if list == nil {
		list = []analysis.SavedAnalysis{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *App) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := analysisIDParam(r)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	saved, err := a.analyses.GetAnalysis(r.Context(), uimw.UserID(r.Context()), id)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (a *App) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := analysisIDParam(r)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	if err := a.analyses.DeleteAnalysis(r.Context(), uimw.UserID(r.Context()), id); err != nil {
		writeError(w, a.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type exporter struct {
	contentType string
	ext         string
	write       func(w http.ResponseWriter, a analysis.SavedAnalysis) error
}

var exporters = map[string]exporter{
	"csv": {"text/csv; charset=utf-8", "csv", func(w http.ResponseWriter, a analysis.SavedAnalysis) error {
		return excel.WriteAnalysisCSV(w, a)
	}},
	"xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", func(w http.ResponseWriter, a analysis.SavedAnalysis) error {
		return excel.WriteAnalysisXLSX(w, a)
	}},
	"md": {"text/markdown; charset=utf-8", "md", func(w http.ResponseWriter, a analysis.SavedAnalysis) error {
		return report.WriteMarkdown(w, a)
	}},
	"html": {"text/html; charset=utf-8", "html", func(w http.ResponseWriter, a analysis.SavedAnalysis) error {
		return report.WriteHTML(w, a)
	}},
}

func (a *App) handleExportAnalysis(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	exp, ok := exporters[format]
	if !ok {
		writeError(w, a.logger, errors.InvalidInputf("unsupported export format %q", format))
		return
	}

	id, err := analysisIDParam(r)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	saved, err := a.analyses.GetAnalysis(r.Context(), uimw.UserID(r.Context()), id)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	w.Header().Set("Content-Type", exp.contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+excel.AnalysisFileName(saved.Name, saved.CreatedAt, exp.ext)+`"`)
	if err := exp.write(w, *saved); err != nil {
		a.logger.Error("Export of analysis %s as %s failed: %v", id, format, err)
	}
}
