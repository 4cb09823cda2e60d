package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chelaniparth/arms11/config"
	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	redisclient "github.com/chelaniparth/arms11/pkg/clients/redis"
	prjtime "github.com/chelaniparth/arms11/pkg/time"
	"github.com/chelaniparth/arms11/pkg/tools"
	"github.com/chelaniparth/arms11/repository/factory"
	goredis "github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	statsCacheKeyFormat = "arms11:dashboard:stats:%s:%s" // user_id, date
	defaultCacheTTL     = 30
)

// Service 仪表盘统计服务。系统级统计开销较大，按 (用户, 日期) 缓存在
// redis，TTL 可配，缓存读写失败只记日志不影响请求。
type Service struct {
	repositoryFactory factory.Factory
	cache             *redisclient.RedisClient
}

func NewService(repositoryFactory factory.Factory, cache *redisclient.RedisClient) (*Service, error) {
	if repositoryFactory == nil {
		return nil, fmt.Errorf("repository factory is required")
	}
	return &Service{repositoryFactory: repositoryFactory, cache: cache}, nil
}

// Stats 获取仪表盘统计：当前用户当日绩效 + 系统整体
func (s *Service) Stats(ctx context.Context, actor *entity.User) (*model.DashboardStats, *model.Error) {
	if actor == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("actor is required"))
	}

	date := prjtime.Today()
	if cached := s.loadCache(ctx, actor.ID, date); cached != nil {
		return cached, nil
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "dashboard stats session")

	performanceRepo, err := s.repositoryFactory.NewPerformanceRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	taskRepo, err := s.repositoryFactory.NewTaskRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	performance, err := performanceRepo.Get(actor.ID, date)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	totalActive, err := taskRepo.CountActive()
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	breakdown, err := taskRepo.CountByStatus()
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	topPerformers, err := performanceRepo.TopPerformers(date, constant.DefaultTopPerformerLimit)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if topPerformers == nil {
		topPerformers = []*model.TopPerformer{}
	}

	stats := &model.DashboardStats{
		MyStats: &model.MyStats{
			TasksAssignedToday:  performance.TasksAssigned,
			TasksCompletedToday: performance.TasksCompleted,
			TasksInProgress:     performance.TasksInProgress,
		},
		SystemStats: &model.SystemStats{
			TotalActiveTasks: totalActive,
			StatusBreakdown:  breakdown,
			TopPerformers:    topPerformers,
		},
	}

	s.storeCache(ctx, actor.ID, date, stats)
	return stats, nil
}

// MyStats 仅获取当前用户当日绩效（不走缓存）
func (s *Service) MyStats(ctx context.Context, actor *entity.User) (*model.MyStats, *model.Error) {
	if actor == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("actor is required"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "my stats session")

	performanceRepo, err := s.repositoryFactory.NewPerformanceRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	date := prjtime.Today()
	performance, err := performanceRepo.Get(actor.ID, date)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	return &model.MyStats{
		TasksAssignedToday:  performance.TasksAssigned,
		TasksCompletedToday: performance.TasksCompleted,
		TasksInProgress:     performance.TasksInProgress,
	}, nil
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && config.GetInstance().GetBoolOrDefault(config.DashboardCacheEnable, false)
}

func (s *Service) loadCache(ctx context.Context, userID, date string) *model.DashboardStats {
	if !s.cacheEnabled() {
		return nil
	}

	key := fmt.Sprintf(statsCacheKeyFormat, userID, date)
	raw, err := s.cache.Get(ctx, key).Result()
	if err == goredis.Nil {
		return nil
	}
	if err != nil {
		log.Warnf("dashboard cache get failed, key=%s, err=%v", key, err)
		return nil
	}

	stats := &model.DashboardStats{}
	if err := json.Unmarshal([]byte(raw), stats); err != nil {
		log.Warnf("dashboard cache decode failed, key=%s, err=%v", key, err)
		return nil
	}
	return stats
}

func (s *Service) storeCache(ctx context.Context, userID, date string, stats *model.DashboardStats) {
	if !s.cacheEnabled() {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		log.Warnf("dashboard cache encode failed, err=%v", err)
		return
	}

	ttl := config.GetInstance().GetIntOrDefault(config.DashboardCacheTTLSeconds, defaultCacheTTL)
	key := fmt.Sprintf(statsCacheKeyFormat, userID, date)
	if err := s.cache.Set(ctx, key, raw, time.Duration(ttl)*time.Second).Err(); err != nil {
		log.Warnf("dashboard cache set failed, key=%s, err=%v", key, err)
	}
}
