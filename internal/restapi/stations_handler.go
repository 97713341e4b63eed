package restapi

import (
	"net/http"

	"marga.transitlab.org/internal/models"
	"marga.transitlab.org/internal/utils"
)

func (api *RestAPI) stationsHandler(w http.ResponseWriter, r *http.Request) {
	city := utils.PathParam(r, "city")

	names := api.Engine.StationNames(city)
	if names == nil {
		api.sendNotFound(w, r)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(names))
}

func (api *RestAPI) citiesHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(api.Engine.Cities()))
}
