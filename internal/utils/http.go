package utils

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractIDFromParams retrieves a route parameter from the request context and removes
// a trailing ".json" extension. The value is path-unescaped, so "StopArea%3APE" yields
// "StopArea:PE".
func ExtractIDFromParams(r *http.Request, paramName string) string {
	params := httprouter.ParamsFromContext(r.Context())
	rawID := strings.TrimSuffix(params.ByName(paramName), ".json")
	if id, err := url.PathUnescape(rawID); err == nil {
		return id
	}
	return rawID
}
