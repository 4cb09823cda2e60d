package xormimplement

import (
	"context"
	"fmt"
	"sync"

	"github.com/chelaniparth/arms11/config"
	"github.com/chelaniparth/arms11/repository"
	"github.com/chelaniparth/arms11/repository/factory"
	"github.com/chelaniparth/arms11/repository/interfaces"
	"github.com/sirupsen/logrus"
	"xorm.io/xorm"

	_ "github.com/lib/pq"
)

var once sync.Once
var instance *Factory

type Factory struct {
	// 连接 pg
	engine *xorm.Engine
}

// 获取一个factory实例
func GetRepositoryFactoryInstance() factory.Factory {
	once.Do(func() {
		instance = &Factory{
			engine: openDB(
				config.GetInstance().GetString(config.BaseDbXormType),
				config.GetInstance().GetString(config.BaseDbXormHost),
				config.GetInstance().GetString(config.BaseDbXormPort),
				config.GetInstance().GetString(config.BaseDbXormUsername),
				config.GetInstance().GetString(config.BaseDbXormName),
				config.GetInstance().GetString(config.BaseDbXormPassword),
				config.GetInstance().GetBool(config.BaseDbXormShowsql),
			),
		}
	})
	return instance
}

// 设置xorm的连接参数
func openDB(dbType string, host string, port string, userName string, name string, password string, showSql bool) *xorm.Engine {
	//拼接数据库参数
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host,
		userName,
		password,
		name,
		port)
	//设置连接参数
	engine, err := xorm.NewEngine(dbType, dsn)
	if err != nil {
		logrus.Errorf("Database connection failed err: %v. Database name: %s", err, name)
		panic(err)
	}
	//是否展示sql文件
	engine.ShowSQL(showSql)
	return engine
}

// 创建一个会话
func (f *Factory) NewSession(ctx context.Context) interfaces.Session {
	return &Session{Session: f.engine.NewSession().Context(ctx)}
}

// NewTaskRepository 创建任务仓库
func (f *Factory) NewTaskRepository(session interfaces.Session) (repository.TaskRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewTaskRepository(s), nil
	}
	return nil, fmt.Errorf("xorm session 结构解析失败")
}

// NewPerformanceRepository 创建用户绩效仓库
func (f *Factory) NewPerformanceRepository(session interfaces.Session) (repository.PerformanceRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewPerformanceRepository(s), nil
	}
	return nil, fmt.Errorf("xorm session 结构解析失败")
}

// NewVolumeRepository 创建工作流每日量仓库
func (f *Factory) NewVolumeRepository(session interfaces.Session) (repository.VolumeRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewVolumeRepository(s), nil
	}
	return nil, fmt.Errorf("xorm session 结构解析失败")
}

// NewWorkflowConfigRepository 创建工作流配置仓库
func (f *Factory) NewWorkflowConfigRepository(session interfaces.Session) (repository.WorkflowConfigRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewWorkflowConfigRepository(s), nil
	}
	return nil, fmt.Errorf("xorm session 结构解析失败")
}

// NewUserRepository 创建用户仓库
func (f *Factory) NewUserRepository(session interfaces.Session) (repository.UserRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewUserRepository(s), nil
	}
	return nil, fmt.Errorf("xorm session 结构解析失败")
}

// NewNotificationRepository 创建通知仓库
func (f *Factory) NewNotificationRepository(session interfaces.Session) (repository.NotificationRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewNotificationRepository(s), nil
	}
	return nil, fmt.Errorf("xorm session 结构解析失败")
}
