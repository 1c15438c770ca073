package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	allowedHeaders = "Authorization, Content-Type, X-Requested-With, X-Request-ID"
	allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	preflightCache = "600"
)

// New returns a CORS middleware for the console's browser clients. An empty
// origin list allows any origin; preflight requests are answered directly.
func New(origins []string) gin.HandlerFunc {
	allowed := newOriginList(origins)

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Vary", "Origin")
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Headers", allowedHeaders)
		h.Set("Access-Control-Allow-Methods", allowedMethods)
		h.Set("Access-Control-Max-Age", preflightCache)

		switch origin := c.GetHeader("Origin"); {
		case origin != "" && allowed.match(origin):
			h.Set("Access-Control-Allow-Origin", origin)
		case origin == "" && allowed.any():
			h.Set("Access-Control-Allow-Origin", "*")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// originList matches request origins against the configured set. Trailing
// slashes are ignored on both sides.
type originList map[string]struct{}

func newOriginList(origins []string) originList {
	set := make(originList, len(origins))
	for _, origin := range origins {
		set[strings.TrimRight(origin, "/")] = struct{}{}
	}
	return set
}

func (l originList) any() bool {
	return len(l) == 0
}

func (l originList) match(origin string) bool {
	if l.any() {
		return true
	}
	_, ok := l[strings.TrimRight(origin, "/")]
	return ok
}
