package restapi

import (
	"net/http"
	"strings"

	"marga.transitlab.org/internal/models"
	"marga.transitlab.org/internal/transitgraph"
	"marga.transitlab.org/internal/utils"
)

func (api *RestAPI) kRoutesHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fieldErrors := map[string][]string{}

	origin := strings.TrimSpace(query.Get("from"))
	if err := utils.ValidatePlace(origin); err != nil {
		fieldErrors["from"] = append(fieldErrors["from"], err.Error())
	}
	destination := strings.TrimSpace(query.Get("to"))
	if err := utils.ValidatePlace(destination); err != nil {
		fieldErrors["to"] = append(fieldErrors["to"], err.Error())
	}

	k, fieldErrors := utils.ParseIntParam(query, "k", fieldErrors)
	maxTransfers, fieldErrors := utils.ParseIntParam(query, "maxTransfers", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if k <= 0 {
		k = 3
	}
	if query.Get("maxTransfers") == "" {
		maxTransfers = transitgraph.DefaultMaxTransfers
	}

	paths := api.Engine.FindKRoutes(origin, destination, query.Get("city"), k, maxTransfers)
	if len(paths) == 0 {
		api.sendNotFound(w, r)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(paths))
}
