package restapi

import (
	"net/http"
	"net/url"
	"strings"

	"marga.transitlab.org/internal/models"
	"marga.transitlab.org/internal/routing"
	"marga.transitlab.org/internal/session"
	"marga.transitlab.org/internal/utils"
)

// parseTripRequest builds a routing request from the shared query
// parameters of the trip endpoints.
func parseTripRequest(query url.Values) (routing.Request, map[string][]string) {
	fieldErrors := map[string][]string{}

	origin := strings.TrimSpace(query.Get("from"))
	if err := utils.ValidatePlace(origin); err != nil {
		fieldErrors["from"] = append(fieldErrors["from"], err.Error())
	}
	destination := strings.TrimSpace(query.Get("to"))
	if err := utils.ValidatePlace(destination); err != nil {
		fieldErrors["to"] = append(fieldErrors["to"], err.Error())
	}

	distanceKm, fieldErrors := utils.ParseFloatParam(query, "distanceKm", fieldErrors)
	durationMin, fieldErrors := utils.ParseFloatParam(query, "durationMin", fieldErrors)
	groupSize, fieldErrors := utils.ParseIntParam(query, "groupSize", fieldErrors)
	elderly, fieldErrors := utils.ParseIntParam(query, "elderly", fieldErrors)
	students, fieldErrors := utils.ParseIntParam(query, "students", fieldErrors)
	children, fieldErrors := utils.ParseIntParam(query, "children", fieldErrors)

	req := routing.Request{
		Origin:      origin,
		Destination: destination,
		City:        strings.TrimSpace(query.Get("city")),
		Group: routing.GroupSpec{
			Size:          groupSize,
			ElderlyCount:  elderly,
			StudentCount:  students,
			ChildrenCount: children,
		},
		DistanceKmHint:  distanceKm,
		DurationMinHint: durationMin,
	}
	return req, fieldErrors
}

func (api *RestAPI) routeOptionsHandler(w http.ResponseWriter, r *http.Request) {
	req, fieldErrors := parseTripRequest(r.URL.Query())
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	result := api.Engine.ComputeOptions(r.Context(), req)
	optionsComputedTotal.Inc()

	if sessionID := r.URL.Query().Get("sessionId"); sessionID != "" && api.Sessions != nil {
		api.Sessions.Update(sessionID, session.Bag{
			"lastResult": result,
			"from":       req.Origin,
			"to":         req.Destination,
		})
	}

	api.sendResponse(w, r, models.NewEntryResponse(result))
}
