package controller

import (
	"github.com/chelaniparth/arms11/model"
	"github.com/gin-gonic/gin"
)

// respondError 按错误码分段映射 http 状态码后返回业务错误体
func respondError(ctx *gin.Context, serviceErr *model.Error) {
	ctx.JSON(serviceErr.HTTPStatus(), serviceErr)
}
