package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// PathParam returns a named route parameter with any trailing ".json"
// stripped, so /stations/mumbai and /stations/mumbai.json resolve to the
// same value.
func PathParam(r *http.Request, name string) string {
	params := httprouter.ParamsFromContext(r.Context())
	return strings.TrimSuffix(params.ByName(name), ".json")
}
