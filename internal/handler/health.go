package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type healthStatus struct {
	Status string `json:"status"`
	DB     string `json:"db"`
	Redis  string `json:"redis"`
}

// Health pings postgres and redis with a short deadline. A degraded
// dependency turns the whole check into a 503 so the load balancer stops
// routing here before requests start failing.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		out := healthStatus{Status: "ok", DB: "ok", Redis: "ok"}

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			out.DB = "unavailable"
		}
		if rdb.Ping(ctx).Err() != nil {
			out.Redis = "unavailable"
		}

		code := http.StatusOK
		if out.DB != "ok" || out.Redis != "ok" {
			out.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, out)
	}
}
