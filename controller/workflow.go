package controller

import (
	"net/http"
	"sync"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/middleware"
	"github.com/chelaniparth/arms11/model"
	"github.com/chelaniparth/arms11/repository/xormimplement"
	"github.com/chelaniparth/arms11/service/workflow"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

var (
	workflowServiceOnce sync.Once
	workflowService     *workflow.Service
)

// getWorkflowService 获取工作流服务单例
func getWorkflowService() *workflow.Service {
	workflowServiceOnce.Do(func() {
		var err error
		workflowService, err = workflow.NewService(xormimplement.GetRepositoryFactoryInstance())
		if err != nil {
			log.Fatalf("Failed to create workflow service: %v", err)
		}
	})
	return workflowService
}

// CreateWorkflow 创建工作流配置
// @Summary 创建工作流配置
// @Tags Workflow
// @Accept json
// @Produce json
// @Param request body model.CreateWorkflowCondition true "配置字段"
// @Success 200 {object} entity.WorkflowConfig
// @Router /api/v1/workflows [post]
func CreateWorkflow(ctx *gin.Context) {
	var req model.CreateWorkflowCondition
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, serviceErr := getWorkflowService().Create(ctx, &req, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// ListWorkflows 列出工作流配置
// @Summary 列出工作流配置
// @Tags Workflow
// @Produce json
// @Param limit query int false "分页大小"
// @Param offset query int false "分页偏移"
// @Success 200 {array} entity.WorkflowConfig
// @Router /api/v1/workflows [get]
func ListWorkflows(ctx *gin.Context) {
	pager := &model.Pager{
		Limit:  constant.DefaultPageLimit,
		Offset: cast.ToInt(ctx.Query("offset")),
	}
	if limit := cast.ToInt(ctx.Query("limit")); limit > 0 {
		pager.Limit = limit
	}

	results, serviceErr := getWorkflowService().List(ctx, pager)
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, results)
}

// GetWorkflow 获取工作流配置
// @Summary 获取工作流配置详情
// @Tags Workflow
// @Produce json
// @Param config_id path int true "配置 id"
// @Success 200 {object} entity.WorkflowConfig
// @Router /api/v1/workflows/{config_id} [get]
func GetWorkflow(ctx *gin.Context) {
	configID, err := cast.ToInt64E(ctx.Param("config_id"))
	if err != nil || configID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid config_id"})
		return
	}

	result, serviceErr := getWorkflowService().Get(ctx, configID)
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// UpdateWorkflow 更新工作流配置
// @Summary 更新工作流配置
// @Tags Workflow
// @Accept json
// @Produce json
// @Param config_id path int true "配置 id"
// @Param request body model.UpdateWorkflowCondition true "更新字段"
// @Success 200 {object} entity.WorkflowConfig
// @Router /api/v1/workflows/{config_id} [put]
func UpdateWorkflow(ctx *gin.Context) {
	configID, err := cast.ToInt64E(ctx.Param("config_id"))
	if err != nil || configID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid config_id"})
		return
	}

	var req model.UpdateWorkflowCondition
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, serviceErr := getWorkflowService().Update(ctx, configID, &req, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// DeleteWorkflow 删除工作流配置
// @Summary 删除工作流配置
// @Tags Workflow
// @Produce json
// @Param config_id path int true "配置 id"
// @Success 200 {object} gin.H
// @Router /api/v1/workflows/{config_id} [delete]
func DeleteWorkflow(ctx *gin.Context) {
	configID, err := cast.ToInt64E(ctx.Param("config_id"))
	if err != nil || configID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid config_id"})
		return
	}

	if serviceErr := getWorkflowService().Delete(ctx, configID, middleware.CurrentUser(ctx)); serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Workflow deleted successfully"})
}

// RecordWorkflowVolume 手工登记每日量
// @Summary 手工登记工作流每日量
// @Description 直接覆盖对应键的 quantity，不做累加
// @Tags Workflow
// @Accept json
// @Produce json
// @Param request body model.RecordVolumeCondition true "登记字段"
// @Success 200 {object} entity.WorkflowDailyVolume
// @Router /api/v1/workflows/volumes [post]
func RecordWorkflowVolume(ctx *gin.Context) {
	var req model.RecordVolumeCondition
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, serviceErr := getWorkflowService().RecordVolume(ctx, &req, middleware.CurrentUser(ctx))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// ListWorkflowVolumes 列出每日量
// @Summary 列出工作流每日量
// @Tags Workflow
// @Produce json
// @Param date query string false "日期 2006-01-02"
// @Param workflow_type query string false "工作流类型"
// @Param analyst_id query string false "分析师 id"
// @Success 200 {array} entity.WorkflowDailyVolume
// @Router /api/v1/workflows/volumes [get]
func ListWorkflowVolumes(ctx *gin.Context) {
	condition := &model.VolumeListCondition{
		Limit: cast.ToInt(ctx.Query("limit")),
	}
	if date := ctx.Query("date"); date != "" {
		condition.Date = &date
	}
	if workflowType := ctx.Query("workflow_type"); workflowType != "" {
		wt := constant.WorkflowType(workflowType)
		condition.WorkflowType = &wt
	}
	if analystID := ctx.Query("analyst_id"); analystID != "" {
		condition.AnalystID = &analystID
	}

	results, serviceErr := getWorkflowService().ListVolumes(ctx, condition)
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, results)
}
