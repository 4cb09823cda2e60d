package controller

import (
	"net/http"
	"sync"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/middleware"
	"github.com/chelaniparth/arms11/model"
	"github.com/chelaniparth/arms11/repository/xormimplement"
	"github.com/chelaniparth/arms11/service/user"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

var (
	userServiceOnce sync.Once
	userService     *user.Service
)

// getUserService 获取用户服务单例
func getUserService() *user.Service {
	userServiceOnce.Do(func() {
		var err error
		userService, err = user.NewService(xormimplement.GetRepositoryFactoryInstance())
		if err != nil {
			log.Fatalf("Failed to create user service: %v", err)
		}
	})
	return userService
}

// CreateUser 创建用户
// @Summary 创建用户
// @Description 仅 admin 可用，用户名和邮箱全局唯一
// @Tags User
// @Accept json
// @Produce json
// @Param request body model.CreateUserCondition true "用户字段"
// @Success 200 {object} entity.User
// @Router /api/v1/users [post]
func CreateUser(ctx *gin.Context) {
	var req model.CreateUserCondition
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, serviceErr := getUserService().Create(ctx, &req, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// ListUsers 列出用户
// @Summary 列出用户
// @Tags User
// @Produce json
// @Param limit query int false "分页大小"
// @Param offset query int false "分页偏移"
// @Success 200 {array} entity.User
// @Router /api/v1/users [get]
func ListUsers(ctx *gin.Context) {
	pager := &model.Pager{
		Limit:  constant.DefaultPageLimit,
		Offset: cast.ToInt(ctx.Query("offset")),
	}
	if limit := cast.ToInt(ctx.Query("limit")); limit > 0 {
		pager.Limit = limit
	}

	results, serviceErr := getUserService().List(ctx, pager)
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, results)
}

// GetMe 获取当前用户
// @Summary 获取当前登录用户信息
// @Tags User
// @Produce json
// @Success 200 {object} entity.User
// @Router /api/v1/users/me [get]
func GetMe(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, middleware.CurrentUser(ctx))
}

// GetUser 获取用户详情
// @Summary 获取用户详情
// @Tags User
// @Produce json
// @Param user_id path string true "用户 id"
// @Success 200 {object} entity.User
// @Router /api/v1/users/{user_id} [get]
func GetUser(ctx *gin.Context) {
	userID := ctx.Param("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	result, serviceErr := getUserService().Get(ctx, userID)
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// UpdateUser 更新用户
// @Summary 更新用户资料
// @Description 改角色仅 admin 可用，其余字段本人或 admin 可改
// @Tags User
// @Accept json
// @Produce json
// @Param user_id path string true "用户 id"
// @Param request body model.UpdateUserCondition true "更新字段"
// @Success 200 {object} entity.User
// @Router /api/v1/users/{user_id} [put]
func UpdateUser(ctx *gin.Context) {
	userID := ctx.Param("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	var req model.UpdateUserCondition
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, serviceErr := getUserService().Update(ctx, userID, &req, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// DeleteUser 删除用户
// @Summary 删除用户
// @Description 仅 admin 可用，不允许删除自己
// @Tags User
// @Produce json
// @Param user_id path string true "用户 id"
// @Success 200 {object} gin.H
// @Router /api/v1/users/{user_id} [delete]
func DeleteUser(ctx *gin.Context) {
	userID := ctx.Param("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	if serviceErr := getUserService().Delete(ctx, userID, middleware.CurrentUser(ctx)); serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
