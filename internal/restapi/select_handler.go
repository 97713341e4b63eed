package restapi

import (
	"net/http"

	"marga.transitlab.org/internal/models"
	"marga.transitlab.org/internal/routing"
	"marga.transitlab.org/internal/session"
	"marga.transitlab.org/internal/utils"
)

// selectHandler replays a choice against the options computed earlier in
// the same session, so "book the cheapest one" needs no recomputation.
func (api *RestAPI) selectHandler(w http.ResponseWriter, r *http.Request) {
	choice := utils.PathParam(r, "choice")
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		api.validationErrorResponse(w, r, map[string][]string{
			"sessionId": {"must be provided"},
		})
		return
	}

	bag := api.Sessions.Get(sessionID)
	result, ok := bag["lastResult"].(routing.Result)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	var selected *routing.ModeOption
	switch choice {
	case "cheapest":
		selected = result.Cheapest
	case "fastest":
		selected = result.Fastest
	case "balanced":
		selected = result.Balanced
	case "comfortable", "mostComfortable":
		selected = result.MostComfortable
	default:
		api.validationErrorResponse(w, r, map[string][]string{
			"choice": {"must be one of cheapest, fastest, balanced, comfortable"},
		})
		return
	}

	if selected == nil {
		api.sendNotFound(w, r)
		return
	}

	api.Sessions.Update(sessionID, session.Bag{"selectedChoice": choice})
	api.sendResponse(w, r, models.NewEntryResponse(selected))
}
