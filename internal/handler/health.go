package handler

import "net/http"

// HandleHealthCheck responds with a 200 OK and a JSON body indicating the
// server is healthy. It sits behind the auth gate like every data endpoint.
func HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
