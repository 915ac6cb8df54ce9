package middleware

import (
	"slices"

	"github.com/rs/cors"

	"TODOLIST_BACK-END/internal/config"
)

// CORS emits cross-origin headers only for allow-listed origins. Other
// origins are served without them and the browser blocks the response.
func CORS(cfg config.CORSConfig) Middleware {
	allowAll := slices.Contains(cfg.AllowedOrigins, "*")
	c := cors.New(cors.Options{
		// an empty AllowedOrigins means "allow all" to rs/cors, so the
		// allow-list is always enforced through the predicate
		AllowOriginFunc: func(origin string) bool {
			return allowAll || slices.Contains(cfg.AllowedOrigins, origin)
		},
		AllowedMethods:     cfg.AllowedMethods,
		AllowedHeaders:     cfg.AllowedHeaders,
		AllowCredentials:   cfg.AllowCredentials,
		OptionsPassthrough: true,
	})
	return c.Handler
}
