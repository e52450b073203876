package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// The terminal UI is served from the station itself; only loopback origins
// ever talk to this surface.
var defaultCORSOrigins = []string{
	"http://localhost:4200", // UI dev server
	"http://localhost:4300",
	"http://127.0.0.1:4300",
}

// CORS returns middleware that applies the station's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
