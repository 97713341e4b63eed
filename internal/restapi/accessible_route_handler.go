package restapi

import (
	"net/http"

	"marga.transitlab.org/internal/models"
)

func (api *RestAPI) accessibleRouteHandler(w http.ResponseWriter, r *http.Request) {
	req, fieldErrors := parseTripRequest(r.URL.Query())
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	plan := api.Engine.PlanAccessibleRoute(r.Context(), req)
	api.sendResponse(w, r, models.NewEntryResponse(plan))
}
