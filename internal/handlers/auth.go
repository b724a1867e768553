package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusops/caseledger/internal/engine"
)

// PassphraseHeader carries the shared admin passphrase on guarded routes.
const PassphraseHeader = "X-Admin-Passphrase"

// PassphraseRequired guards a route with the shared passphrase from the
// store's config cell. An empty stored passphrase disables the check. The
// cell is read per request so an operator changing it takes effect
// immediately.
func PassphraseRequired(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		want, err := e.Passphrase(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
				"error":  "passphrase_unavailable",
				"detail": err.Error(),
			})
			return
		}
		if want == "" {
			c.Next()
			return
		}

		got := engine.NormalizePassphrase(c.GetHeader(PassphraseHeader))
		if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bad_passphrase"})
			return
		}
		c.Next()
	}
}
