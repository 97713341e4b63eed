package restapi

import (
	"net/http"
	"time"

	"marga.transitlab.org/internal/models"
)

// Declare a handler which writes a JSON response with information about the
// current time.
func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	timeData := models.NewCurrentTimeData(time.Now())
	response := models.NewEntryResponse(timeData)

	api.sendResponse(w, r, response)
}
