package controller

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"sync"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/middleware"
	"github.com/chelaniparth/arms11/model"
	"github.com/chelaniparth/arms11/repository/xormimplement"
	"github.com/chelaniparth/arms11/service/task"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

var (
	taskServiceOnce sync.Once
	taskService     *task.Service
)

// getTaskService 获取任务服务单例
func getTaskService() *task.Service {
	taskServiceOnce.Do(func() {
		var err error
		taskService, err = task.NewService(xormimplement.GetRepositoryFactoryInstance())
		if err != nil {
			log.Fatalf("Failed to create task service: %v", err)
		}
	})
	return taskService
}

// CreateTask 创建任务
// @Summary 创建新任务
// @Description 创建任务，有工作流关联时同步登记当日收件量
// @Tags Task
// @Accept json
// @Produce json
// @Param request body model.CreateTaskCondition true "任务字段"
// @Success 200 {object} entity.Task
// @Router /api/v1/tasks [post]
func CreateTask(ctx *gin.Context) {
	var req model.CreateTaskCondition
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, serviceErr := getTaskService().Create(ctx, &req, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// ImportTasks 批量导入任务
// @Summary 上传 CSV 批量导入任务
// @Description 仅 admin/manager 可用，逐行校验，失败行记入报告
// @Tags Task
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV 文件"
// @Success 200 {object} model.ImportReport
// @Router /api/v1/tasks/upload [post]
func ImportTasks(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "file is required: " + err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to open file: " + err.Error()})
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Errorf("close upload file error: %v", err)
		}
	}()

	report, serviceErr := getTaskService().Import(ctx, fileHeader.Filename, file, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// QueryTasks 查询任务列表
// @Summary 查询任务列表
// @Description 支持状态/执行人/工作流过滤和分页
// @Tags Task
// @Produce json
// @Param status query string false "任务状态"
// @Param assigned_user_id query string false "执行人 id"
// @Param workflow_config_id query int false "工作流配置 id"
// @Param limit query int false "分页大小"
// @Param offset query int false "分页偏移"
// @Success 200 {object} gin.H
// @Router /api/v1/tasks [get]
func QueryTasks(ctx *gin.Context) {
	condition := &model.TaskQueryCondition{
		Pager: &model.Pager{
			Limit:  constant.DefaultPageLimit,
			Offset: cast.ToInt(ctx.Query("offset")),
		},
	}
	if limit := cast.ToInt(ctx.Query("limit")); limit > 0 {
		condition.Pager.Limit = limit
	}
	if status := ctx.Query("status"); status != "" {
		taskStatus := constant.TaskStatus(status)
		condition.Status = &taskStatus
	}
	if assignedUserID := ctx.Query("assigned_user_id"); assignedUserID != "" {
		condition.AssignedUserID = &assignedUserID
	}
	if workflowConfigID := cast.ToInt64(ctx.Query("workflow_config_id")); workflowConfigID > 0 {
		condition.WorkflowConfigID = &workflowConfigID
	}
	if keyword := ctx.Query("keyword"); keyword != "" {
		condition.Keyword = &keyword
	}

	tasks, total, serviceErr := getTaskService().Query(ctx, condition)
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"total": total, "tasks": tasks})
}

// ExportTasks 导出任务
// @Summary 导出全部任务为 CSV
// @Description 仅 admin/manager 可用
// @Tags Task
// @Produce text/csv
// @Success 200 {string} string
// @Router /api/v1/tasks/export [get]
func ExportTasks(ctx *gin.Context) {
	rows, serviceErr := getTaskService().Export(ctx, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", "attachment; filename=tasks_export.csv")

	writer := csv.NewWriter(ctx.Writer)
	header := []string{"Task ID", "Company", "Type", "Document", "Status", "Priority", "Target Qty", "Achieved Qty", "Created At", "Assigned To"}
	if err := writer.Write(header); err != nil {
		log.Errorf("write export header error: %v", err)
		return
	}
	for _, row := range rows {
		record := []string{
			cast.ToString(row.TaskID),
			row.CompanyName,
			row.TaskType,
			row.DocumentType,
			row.Status,
			row.Priority,
			cast.ToString(row.TargetQty),
			cast.ToString(row.AchievedQty),
			row.CreatedAt,
			row.AssignedTo,
		}
		if err := writer.Write(record); err != nil {
			log.Errorf("write export record error: %v", err)
			return
		}
	}
	writer.Flush()
}

// GetTask 获取任务详情
// @Summary 获取任务详情
// @Tags Task
// @Produce json
// @Param task_id path int true "任务 id"
// @Success 200 {object} entity.Task
// @Router /api/v1/tasks/{task_id} [get]
func GetTask(ctx *gin.Context) {
	taskID, err := cast.ToInt64E(ctx.Param("task_id"))
	if err != nil || taskID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid task_id"})
		return
	}

	result, serviceErr := getTaskService().Get(ctx, taskID)
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// UpdateTask 更新任务
// @Summary 部分更新任务字段
// @Description 已完成任务仅 admin/manager 可编辑，状态改为已完成时触发台账同步
// @Tags Task
// @Accept json
// @Produce json
// @Param task_id path int true "任务 id"
// @Param request body model.UpdateTaskCondition true "更新字段"
// @Success 200 {object} entity.Task
// @Router /api/v1/tasks/{task_id} [put]
func UpdateTask(ctx *gin.Context) {
	taskID, err := cast.ToInt64E(ctx.Param("task_id"))
	if err != nil || taskID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid task_id"})
		return
	}

	var req model.UpdateTaskCondition
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, serviceErr := getTaskService().Update(ctx, taskID, &req, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// DeleteTask 删除任务
// @Summary 删除任务
// @Description 仅 admin/manager 可用，删除前回退历史台账效果
// @Tags Task
// @Produce json
// @Param task_id path int true "任务 id"
// @Success 200 {object} gin.H
// @Router /api/v1/tasks/{task_id} [delete]
func DeleteTask(ctx *gin.Context) {
	taskID, err := cast.ToInt64E(ctx.Param("task_id"))
	if err != nil || taskID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid task_id"})
		return
	}

	if serviceErr := getTaskService().Delete(ctx, taskID, middleware.CurrentUser(ctx)); serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// PickTask 认领任务
// @Summary 认领待处理任务
// @Tags Task
// @Produce json
// @Param task_id path int true "任务 id"
// @Success 200 {object} gin.H
// @Router /api/v1/tasks/{task_id}/pick [post]
func PickTask(ctx *gin.Context) {
	taskID, err := cast.ToInt64E(ctx.Param("task_id"))
	if err != nil || taskID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid task_id"})
		return
	}

	result, serviceErr := getTaskService().Pick(ctx, taskID, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task picked up successfully", "task": result})
}

// UnpickTask 取消认领
// @Summary 取消认领任务
// @Tags Task
// @Produce json
// @Param task_id path int true "任务 id"
// @Success 200 {object} gin.H
// @Router /api/v1/tasks/{task_id}/unpick [post]
func UnpickTask(ctx *gin.Context) {
	taskID, err := cast.ToInt64E(ctx.Param("task_id"))
	if err != nil || taskID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid task_id"})
		return
	}

	result, serviceErr := getTaskService().Unpick(ctx, taskID, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task unpicked successfully", "task": result})
}

// CompleteTask 完成任务
// @Summary 完成任务并登记成果量
// @Tags Task
// @Accept json
// @Produce json
// @Param task_id path int true "任务 id"
// @Param request body model.CompleteTaskCondition true "完成参数"
// @Success 200 {object} entity.Task
// @Router /api/v1/tasks/{task_id}/complete [post]
func CompleteTask(ctx *gin.Context) {
	taskID, err := cast.ToInt64E(ctx.Param("task_id"))
	if err != nil || taskID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid task_id"})
		return
	}

	var req model.CompleteTaskCondition
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, serviceErr := getTaskService().Complete(ctx, taskID, &req, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// BulkDeleteTasks 批量删除任务
// @Summary 批量删除任务
// @Tags Task
// @Accept json
// @Produce json
// @Param request body model.BulkDeleteCondition true "任务 id 列表"
// @Success 200 {object} gin.H
// @Router /api/v1/tasks/bulk-delete [post]
func BulkDeleteTasks(ctx *gin.Context) {
	var req model.BulkDeleteCondition
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, serviceErr := getTaskService().BulkDelete(ctx, &req, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Successfully deleted %d tasks", deleted)})
}

// BulkAssignTasks 批量分配任务
// @Summary 批量分配任务给指定用户
// @Tags Task
// @Accept json
// @Produce json
// @Param request body model.BulkAssignCondition true "任务 id 列表和目标用户"
// @Success 200 {object} gin.H
// @Router /api/v1/tasks/bulk-assign [post]
func BulkAssignTasks(ctx *gin.Context) {
	var req model.BulkAssignCondition
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assigned, serviceErr := getTaskService().BulkAssign(ctx, &req, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Successfully assigned %d tasks", assigned)})
}
