package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	wrap := func(h handlerFunc) http.Handler {
		handler := validateAPIKey(api, h)
		if api.rateLimiter != nil {
			handler = api.rateLimiter(handler)
		}
		if api.Logger != nil {
			handler = NewRequestLoggingMiddleware(api.Logger)(handler)
		}
		return NewMetricsMiddleware()(handler)
	}

	router.Handler(http.MethodGet, "/api/marga/route-options.json", wrap(api.routeOptionsHandler))
	router.Handler(http.MethodGet, "/api/marga/accessible-route.json", wrap(api.accessibleRouteHandler))
	router.Handler(http.MethodGet, "/api/marga/k-routes.json", wrap(api.kRoutesHandler))
	router.Handler(http.MethodGet, "/api/marga/ride-estimates.json", wrap(api.rideEstimatesHandler))
	router.Handler(http.MethodGet, "/api/marga/select/:choice", wrap(api.selectHandler))
	router.Handler(http.MethodGet, "/api/marga/stations/:city", wrap(api.stationsHandler))
	router.Handler(http.MethodGet, "/api/marga/cities.json", wrap(api.citiesHandler))
	router.Handler(http.MethodGet, "/api/marga/current-time.json", wrap(api.currentTimeHandler))
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())
}
