package middlewares

import (
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
)

// SimulatedLatency delays each request by a random duration below maxDelay to
// mimic a remote backend. A zero maxDelay disables it.
func SimulatedLatency(maxDelay time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxDelay <= 0 {
			c.Next()
			return
		}
		t := time.NewTimer(time.Duration(rand.Int63n(int64(maxDelay))))
		defer t.Stop()
		select {
		case <-t.C:
			c.Next()
		case <-c.Request.Context().Done():
			c.Abort()
		}
	}
}
