package router

import (
	"sync"

	"github.com/gin-gonic/gin"
)

var once sync.Once
var instance *gin.Engine

// GetInstance 获取路由单例，首次调用时装配全部路由
func GetInstance() *gin.Engine {
	once.Do(func() {
		instance = gin.New()
		addBasicRouter(instance)
		addApiRouter(instance)
	})
	return instance
}
