package ui

import (
	"io"
	"net/http"
	"time"

	"methodcost/adapters/excel"
	"methodcost/domain/core"
	"methodcost/domain/project"
	"methodcost/internal/errors"
	uimw "methodcost/ui/middleware"

	"github.com/go-chi/chi/v5"
)

func projectIDParam(r *http.Request) (core.ProjectID, error) {
	id, err := core.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		return "", errors.InvalidInput(err.Error())
	}
	return id, nil
}

func (a *App) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := a.projects.List(r.Context(), uimw.UserID(r.Context()))
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (a *App) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var p project.Project
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, a.logger, err)
		return
	}
	if err := a.projects.Create(r.Context(), uimw.UserID(r.Context()), &p); err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (a *App) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectIDParam(r)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	p, err := a.projects.Get(r.Context(), uimw.UserID(r.Context()), id)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *App) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectIDParam(r)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	var p project.Project
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, a.logger, err)
		return
	}
	if err := a.projects.Update(r.Context(), uimw.UserID(r.Context()), id, &p); err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *App) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectIDParam(r)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	if err := a.projects.Delete(r.Context(), uimw.UserID(r.Context()), id); err != nil {
		writeError(w, a.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleImportProjects accepts a multipart upload in the "file" field
func (a *App) handleImportProjects(w http.ResponseWriter, r *http.Request) {
	limit := int64(a.config.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		writeError(w, a.logger, errors.InvalidInputf("invalid upload: %v", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, a.logger, errors.InvalidInput("missing file field"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, a.logger, errors.InvalidInputf("failed to read upload: %v", err))
		return
	}

	projects, err := a.projects.Import(r.Context(), uimw.UserID(r.Context()), header.Filename, content)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"imported": len(projects),
		"projects": projects,
	})
}

func (a *App) handleLoadSampleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := a.projects.LoadSamples(r.Context(), uimw.UserID(r.Context()))
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"imported": len(projects),
		"projects": projects,
	})
}

func (a *App) handleExportProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := a.projects.List(r.Context(), uimw.UserID(r.Context()))
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+excel.ProjectsFileName(time.Now().UTC(), "csv")+`"`)
	if err := excel.WriteProjectsCSV(w, projects); err != nil {
		a.logger.Error("Project export failed: %v", err)
	}
}
