package middleware

import (
	"regexp"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pratham-associates/listings/internal/config"
)

// CORS creates a middleware that handles Cross-Origin Resource Sharing (CORS).
// Origins are matched exactly first, then against the configured patterns, so
// preview deployments can be allowed without listing each one.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	patterns := make([]*regexp.Regexp, 0, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		// Patterns are checked by config.Validate.
		patterns = append(patterns, regexp.MustCompile(p))
	}

	corsConfig := cors.Config{
		AllowOrigins:     cfg.Origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	if len(patterns) > 0 {
		corsConfig.AllowOriginFunc = func(origin string) bool {
			for _, re := range patterns {
				if re.MatchString(origin) {
					return true
				}
			}
			return false
		}
	}

	return cors.New(corsConfig)
}
