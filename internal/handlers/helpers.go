package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/souma9830/travel-agency-website/internal/middleware"
)

// tolerant to the value type the middleware stored (int / int64 / string)
func getIntFromCtx(c *gin.Context, key string) (int, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, true
		}
	}
	return 0, false
}

func currentUserID(c *gin.Context) (int, bool) {
	return getIntFromCtx(c, middleware.ContextUserID)
}
