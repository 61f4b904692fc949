package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/bookstore-api/pkg/mongo"
	"github.com/openshelf/bookstore-api/pkg/redis"
)

func (a *API) HealthCheck(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{"status": "OK", "database": "Connected", "cache": "Connected"}

	if err := mongo.GetDatabase().Client().Ping(c.Request.Context(), nil); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "DEGRADED"
		body["database"] = "Unavailable"
	}
	if err := redis.Client().Ping(c.Request.Context()).Err(); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "DEGRADED"
		body["cache"] = "Unavailable"
	}

	c.JSON(status, body)
}
