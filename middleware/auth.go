package middleware

import (
	"net/http"

	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	"github.com/chelaniparth/arms11/pkg/tools"
	"github.com/chelaniparth/arms11/repository/factory"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	ActorIDHeader     = "X-User-ID"
	GinContextUserKey = "CurrentUser"
)

// Auth 操作者识别中间件：按 X-User-ID 请求头加载用户并挂到 gin 上下文。
// 头缺失或用户不存在返回 401，已停用的用户返回 403。
func Auth(repositoryFactory factory.Factory) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetHeader(ActorIDHeader)
		if userID == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + ActorIDHeader + " header"})
			return
		}

		session := repositoryFactory.NewSession(ctx)
		defer tools.ErrorWithPrintContext(session.Close, "auth session, user_id=%s", userID)

		userRepo, err := repositoryFactory.NewUserRepository(session)
		if err != nil {
			log.Errorf("auth middleware create user repository failed: %v", err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": model.ErrorMessages[model.ErrorNewRepo]})
			return
		}

		currentUser, err := userRepo.Get(userID)
		if err != nil {
			log.Errorf("auth middleware load user %s failed: %v", userID, err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": model.ErrorMessages[model.ErrorDB]})
			return
		}
		if currentUser == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		if !currentUser.IsActive {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user is inactive"})
			return
		}

		ctx.Set(GinContextUserKey, currentUser)
		ctx.Next()
	}
}

// CurrentUser 从 gin 上下文取出操作者，Auth 未挂载时返回 nil
func CurrentUser(ctx *gin.Context) *entity.User {
	value, ok := ctx.Get(GinContextUserKey)
	if !ok {
		return nil
	}
	currentUser, ok := value.(*entity.User)
	if !ok {
		return nil
	}
	return currentUser
}
