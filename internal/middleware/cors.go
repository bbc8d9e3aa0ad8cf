package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors lets any origin call the API with credentials so that the session
// cookies survive a cross-origin frontend.
func Cors() Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	return cors.New(options).Handler
}
