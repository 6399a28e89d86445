package handlers

import "net/http"

// Healthz is a trivial liveness endpoint.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
