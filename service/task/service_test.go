package task

import (
	"context"
	"testing"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *fakeFactory) {
	t.Helper()
	factory := newFakeFactory()
	service, err := NewService(factory)
	require.NoError(t, err)
	return service, factory
}

func TestNewServiceRequiresFactory(t *testing.T) {
	_, err := NewService(nil)
	assert.Error(t, err)
}

func TestCreateTaskDefaults(t *testing.T) {
	service, factory := newTestService(t)
	actor := factory.addUser("analyst1", constant.UserRoleAnalyst)

	created, serviceErr := service.Create(context.Background(), &model.CreateTaskCondition{
		TaskType:     constant.TaskTypeTierI,
		CompanyName:  "Acme Corp",
		DocumentType: "UCC Filing",
	}, actor)
	require.Nil(t, serviceErr)

	assert.NotZero(t, created.ID)
	assert.Equal(t, constant.TaskPriorityMedium, created.Priority)
	assert.Equal(t, constant.TaskStatusPending, created.Status)
	assert.Equal(t, constant.DefaultTargetQty, created.TargetQty)
	assert.Equal(t, constant.DefaultSlaHours, created.SlaHours)
	// 创建不等于分配，不写任何生命周期时间戳
	assert.Nil(t, created.AssignedUserID)
	assert.Nil(t, created.AssignedAt)
	assert.Nil(t, created.PickedAt)
	assert.Nil(t, created.CompletedAt)

	// 创建不影响任何人的绩效
	assigned, inProgress, completed := factory.perf(actor.ID, today())
	assert.Zero(t, assigned)
	assert.Zero(t, inProgress)
	assert.Zero(t, completed)
}

func TestCreateTaskValidation(t *testing.T) {
	service, factory := newTestService(t)
	actor := factory.addUser("analyst1", constant.UserRoleAnalyst)
	ctx := context.Background()

	_, serviceErr := service.Create(ctx, &model.CreateTaskCondition{
		TaskType:     constant.TaskTypeTierI,
		DocumentType: "UCC Filing",
	}, actor)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorParams, serviceErr.Code)

	_, serviceErr = service.Create(ctx, &model.CreateTaskCondition{
		TaskType:     "Tier IX",
		CompanyName:  "Acme Corp",
		DocumentType: "UCC Filing",
	}, actor)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorInvalidTaskType, serviceErr.Code)

	_, serviceErr = service.Create(ctx, &model.CreateTaskCondition{
		TaskType:     constant.TaskTypeTierI,
		CompanyName:  "Acme Corp",
		DocumentType: "UCC Filing",
		Priority:     "Urgent",
	}, actor)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorInvalidPriority, serviceErr.Code)
}

func TestCreateTaskRecordsIntakeVolume(t *testing.T) {
	service, factory := newTestService(t)
	actor := factory.addUser("manager1", constant.UserRoleManager)
	configID := factory.addWorkflow("UCC Monitoring", constant.WorkflowTypeUCC)

	_, serviceErr := service.Create(context.Background(), &model.CreateTaskCondition{
		TaskType:         constant.TaskTypeTierI,
		CompanyName:      "Acme Corp",
		DocumentType:     "UCC Filing",
		TargetQty:        3,
		WorkflowConfigID: &configID,
	}, actor)
	require.Nil(t, serviceErr)

	// 未分配任务的收件量记到 null 分析师行
	assert.Equal(t, 3, factory.volume(constant.WorkflowTypeUCC, today(), nil))
	assert.Zero(t, factory.volume(constant.WorkflowTypeUCC, today(), &actor.ID))
}

func TestCreateTaskIntakeVolumeFollowsAssignee(t *testing.T) {
	service, factory := newTestService(t)
	actor := factory.addUser("manager1", constant.UserRoleManager)
	assignee := factory.addUser("analyst1", constant.UserRoleAnalyst)
	configID := factory.addWorkflow("UCC Monitoring", constant.WorkflowTypeUCC)

	_, serviceErr := service.Create(context.Background(), &model.CreateTaskCondition{
		TaskType:         constant.TaskTypeTierI,
		CompanyName:      "Acme Corp",
		DocumentType:     "UCC Filing",
		TargetQty:        2,
		AssignedUserID:   &assignee.ID,
		WorkflowConfigID: &configID,
	}, actor)
	require.Nil(t, serviceErr)

	assert.Equal(t, 2, factory.volume(constant.WorkflowTypeUCC, today(), &assignee.ID))
	assert.Zero(t, factory.volume(constant.WorkflowTypeUCC, today(), nil))
}

func TestCreateTaskUnknownWorkflowSkipsVolume(t *testing.T) {
	service, factory := newTestService(t)
	actor := factory.addUser("manager1", constant.UserRoleManager)
	missingConfigID := int64(999)

	created, serviceErr := service.Create(context.Background(), &model.CreateTaskCondition{
		TaskType:         constant.TaskTypeTierI,
		CompanyName:      "Acme Corp",
		DocumentType:     "UCC Filing",
		WorkflowConfigID: &missingConfigID,
	}, actor)
	require.Nil(t, serviceErr)

	// 配置不存在时任务照常创建，台账静默跳过
	assert.NotZero(t, created.ID)
	assert.Empty(t, factory.volumes.rows)
}

func TestGetTaskNotFound(t *testing.T) {
	service, _ := newTestService(t)

	_, serviceErr := service.Get(context.Background(), 42)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorTaskNotFound, serviceErr.Code)
}

func TestQueryTasksByStatus(t *testing.T) {
	service, factory := newTestService(t)
	actor := factory.addUser("manager1", constant.UserRoleManager)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, serviceErr := service.Create(ctx, &model.CreateTaskCondition{
			TaskType:     constant.TaskTypeTierI,
			CompanyName:  "Acme Corp",
			DocumentType: "UCC Filing",
		}, actor)
		require.Nil(t, serviceErr)
	}

	status := constant.TaskStatusPending
	tasks, total, serviceErr := service.Query(ctx, &model.TaskQueryCondition{Status: &status})
	require.Nil(t, serviceErr)
	assert.Equal(t, int64(3), total)
	assert.Len(t, tasks, 3)

	status = constant.TaskStatusCompleted
	_, total, serviceErr = service.Query(ctx, &model.TaskQueryCondition{Status: &status})
	require.Nil(t, serviceErr)
	assert.Zero(t, total)
}

func TestExportRequiresElevated(t *testing.T) {
	service, factory := newTestService(t)
	analyst := factory.addUser("analyst1", constant.UserRoleAnalyst)

	_, serviceErr := service.Export(context.Background(), analyst)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorNoPermission, serviceErr.Code)
}

func TestExportRows(t *testing.T) {
	service, factory := newTestService(t)
	admin := factory.addUser("admin1", constant.UserRoleAdmin)
	assignee := factory.addUser("analyst1", constant.UserRoleAnalyst)
	ctx := context.Background()

	_, serviceErr := service.Create(ctx, &model.CreateTaskCondition{
		TaskType:       constant.TaskTypeAudit,
		CompanyName:    "Acme Corp",
		DocumentType:   "Judgement",
		AssignedUserID: &assignee.ID,
	}, admin)
	require.Nil(t, serviceErr)

	_, serviceErr = service.Create(ctx, &model.CreateTaskCondition{
		TaskType:     constant.TaskTypeTierII,
		CompanyName:  "Globex Inc",
		DocumentType: "Lien",
	}, admin)
	require.Nil(t, serviceErr)

	rows, serviceErr := service.Export(ctx, admin)
	require.Nil(t, serviceErr)
	require.Len(t, rows, 2)

	// 按创建倒序，最新的在前
	assert.Equal(t, "Globex Inc", rows[0].CompanyName)
	assert.Equal(t, "Unassigned", rows[0].AssignedTo)
	assert.Equal(t, "Acme Corp", rows[1].CompanyName)
	assert.Equal(t, assignee.FullName, rows[1].AssignedTo)
}
