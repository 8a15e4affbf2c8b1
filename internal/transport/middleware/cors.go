package middleware

import (
	"github.com/go-chi/cors"

	"github.com/heartmarshall/family-planner/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing,
// answering preflight requests without reaching the router.
func CORS(cfg config.CORSConfig) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   cfg.Methods(),
		AllowedHeaders:   cfg.Headers(),
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
