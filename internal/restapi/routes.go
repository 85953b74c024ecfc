package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/api/trip.json", api.tripHandler)
	router.HandlerFunc(http.MethodGet, "/api/stations.json", api.stationsHandler)
	router.HandlerFunc(http.MethodGet, "/api/station/:id", api.stationHandler)
	router.HandlerFunc(http.MethodGet, "/api/route/:from/:to", api.routeHandler)
	router.HandlerFunc(http.MethodGet, "/api/stats.json", api.statsHandler)
	if api.Metrics != nil {
		router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())
	}
}

func (api *RestAPI) routes() *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		api.Logger.Error("panic serving request", "path", r.URL.Path, "panic", v)
		api.serverErrorResponse(w, r, nil)
	}
	api.SetRoutes(router)
	return router
}
