package controller

import (
	"net/http"
	"sync"

	"github.com/chelaniparth/arms11/config"
	"github.com/chelaniparth/arms11/middleware"
	redisclient "github.com/chelaniparth/arms11/pkg/clients/redis"
	"github.com/chelaniparth/arms11/repository/xormimplement"
	"github.com/chelaniparth/arms11/service/dashboard"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var (
	dashboardServiceOnce sync.Once
	dashboardService     *dashboard.Service
)

// getDashboardService 获取仪表盘服务单例，缓存未开启时不建 redis 连接
func getDashboardService() *dashboard.Service {
	dashboardServiceOnce.Do(func() {
		var cache *redisclient.RedisClient
		if config.GetInstance().GetBoolOrDefault(config.DashboardCacheEnable, false) {
			cache = redisclient.GetInstance()
		}

		var err error
		dashboardService, err = dashboard.NewService(xormimplement.GetRepositoryFactoryInstance(), cache)
		if err != nil {
			log.Fatalf("Failed to create dashboard service: %v", err)
		}
	})
	return dashboardService
}

// DashboardStats 仪表盘统计
// @Summary 获取仪表盘统计
// @Description 当前用户当日绩效 + 系统整体统计，可能来自缓存
// @Tags Dashboard
// @Produce json
// @Success 200 {object} model.DashboardStats
// @Router /api/v1/dashboard/stats [get]
func DashboardStats(ctx *gin.Context) {
	stats, serviceErr := getDashboardService().Stats(ctx, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// MyStats 当前用户当日绩效
// @Summary 获取当前用户当日绩效
// @Tags Dashboard
// @Produce json
// @Success 200 {object} model.MyStats
// @Router /api/v1/dashboard/my-stats [get]
func MyStats(ctx *gin.Context) {
	stats, serviceErr := getDashboardService().MyStats(ctx, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
