package router

import (
	"github.com/chelaniparth/arms11/controller"
	"github.com/chelaniparth/arms11/middleware"
	"github.com/chelaniparth/arms11/repository/xormimplement"
	"github.com/gin-gonic/gin"
)

func addApiRouter(engine *gin.Engine) {

	// 业务 API 统一要求 X-User-ID 识别操作者
	api := engine.Group("/api/v1")
	api.Use(middleware.Auth(xormimplement.GetRepositoryFactoryInstance()))
	{
		// 任务生命周期
		api.POST("/tasks", controller.CreateTask)
		api.GET("/tasks", controller.QueryTasks)
		api.GET("/tasks/export", controller.ExportTasks)
		api.POST("/tasks/upload", controller.ImportTasks)
		api.POST("/tasks/bulk-delete", controller.BulkDeleteTasks)
		api.POST("/tasks/bulk-assign", controller.BulkAssignTasks)
		api.GET("/tasks/:task_id", controller.GetTask)
		api.PUT("/tasks/:task_id", controller.UpdateTask)
		api.DELETE("/tasks/:task_id", controller.DeleteTask)
		api.POST("/tasks/:task_id/pick", controller.PickTask)
		api.POST("/tasks/:task_id/unpick", controller.UnpickTask)
		api.POST("/tasks/:task_id/complete", controller.CompleteTask)

		// 仪表盘统计
		api.GET("/dashboard/stats", controller.DashboardStats)
		api.GET("/dashboard/my-stats", controller.MyStats)

		// 工作流配置与每日量
		api.POST("/workflows", controller.CreateWorkflow)
		api.GET("/workflows", controller.ListWorkflows)
		api.POST("/workflows/volumes", controller.RecordWorkflowVolume)
		api.GET("/workflows/volumes", controller.ListWorkflowVolumes)
		api.GET("/workflows/:config_id", controller.GetWorkflow)
		api.PUT("/workflows/:config_id", controller.UpdateWorkflow)
		api.DELETE("/workflows/:config_id", controller.DeleteWorkflow)

		// 用户管理
		api.POST("/users", controller.CreateUser)
		api.GET("/users", controller.ListUsers)
		api.GET("/users/me", controller.GetMe)
		api.GET("/users/:user_id", controller.GetUser)
		api.PUT("/users/:user_id", controller.UpdateUser)
		api.DELETE("/users/:user_id", controller.DeleteUser)

		// 通知
		api.GET("/notifications", controller.ListNotifications)
		api.POST("/notifications/read-all", controller.MarkAllNotificationsRead)
		api.POST("/notifications/:notification_id/read", controller.MarkNotificationRead)
	}
}
