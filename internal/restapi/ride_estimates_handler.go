package restapi

import (
	"net/http"
	"strings"

	"marga.transitlab.org/internal/models"
	"marga.transitlab.org/internal/routing"
	"marga.transitlab.org/internal/utils"
)

func (api *RestAPI) rideEstimatesHandler(w http.ResponseWriter, r *http.Request) {
	req, fieldErrors := parseTripRequest(r.URL.Query())
	query := r.URL.Query()
	budget, fieldErrors := utils.ParseIntParam(query, "budget", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	km := req.DistanceKmHint
	min := req.DurationMinHint
	if km <= 0 || min <= 0 {
		result := api.Engine.ComputeOptions(r.Context(), req)
		km = result.DistanceKm
	}

	userType := strings.TrimSpace(query.Get("userType"))
	surge := api.Engine.CurrentSurge()

	estimates := routing.EstimateRides(req.Origin, req.Destination, km, surge, userType, budget)
	api.sendResponse(w, r, models.NewEntryResponse(estimates))
}
