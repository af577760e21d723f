package ui

import (
	"net/http"

	uimw "methodcost/ui/middleware"
)

func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := a.analyses.Dashboard(r.Context(), uimw.UserID(r.Context()))
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
