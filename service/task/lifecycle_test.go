package task

import (
	"context"
	"testing"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTask 创建一个挂在指定工作流下的待处理任务
func createTask(t *testing.T, service *Service, actor *entity.User, targetQty int, configID *int64) *entity.Task {
	t.Helper()
	created, serviceErr := service.Create(context.Background(), &model.CreateTaskCondition{
		TaskType:         constant.TaskTypeTierI,
		CompanyName:      "Acme Corp",
		DocumentType:     "UCC Filing",
		TargetQty:        targetQty,
		WorkflowConfigID: configID,
	}, actor)
	require.Nil(t, serviceErr)
	return created
}

func TestPickTask(t *testing.T) {
	service, factory := newTestService(t)
	manager := factory.addUser("manager1", constant.UserRoleManager)
	analyst := factory.addUser("analyst1", constant.UserRoleAnalyst)
	created := createTask(t, service, manager, 1, nil)

	picked, serviceErr := service.Pick(context.Background(), created.ID, analyst)
	require.Nil(t, serviceErr)

	assert.Equal(t, constant.TaskStatusInProgress, picked.Status)
	require.NotNil(t, picked.AssignedUserID)
	assert.Equal(t, analyst.ID, *picked.AssignedUserID)
	assert.NotNil(t, picked.AssignedAt)
	assert.NotNil(t, picked.PickedAt)

	// 认领只动 in_progress，assigned 不变
	assigned, inProgress, completed := factory.perf(analyst.ID, today())
	assert.Zero(t, assigned)
	assert.Equal(t, 1, inProgress)
	assert.Zero(t, completed)
}

func TestPickNonPendingTask(t *testing.T) {
	service, factory := newTestService(t)
	manager := factory.addUser("manager1", constant.UserRoleManager)
	analyst1 := factory.addUser("analyst1", constant.UserRoleAnalyst)
	analyst2 := factory.addUser("analyst2", constant.UserRoleAnalyst)
	created := createTask(t, service, manager, 1, nil)
	ctx := context.Background()

	_, serviceErr := service.Pick(ctx, created.ID, analyst1)
	require.Nil(t, serviceErr)

	_, serviceErr = service.Pick(ctx, created.ID, analyst2)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorTaskNotPending, serviceErr.Code)

	// 第二次认领失败不影响任何计数
	_, inProgress, _ := factory.perf(analyst2.ID, today())
	assert.Zero(t, inProgress)
}

// 批量分配后的待处理任务已有归属，不能再被认领
func TestPickAssignedPendingTask(t *testing.T) {
	service, factory := newTestService(t)
	manager := factory.addUser("manager1", constant.UserRoleManager)
	analyst1 := factory.addUser("analyst1", constant.UserRoleAnalyst)
	analyst2 := factory.addUser("analyst2", constant.UserRoleAnalyst)
	created := createTask(t, service, manager, 1, nil)
	ctx := context.Background()

	_, serviceErr := service.BulkAssign(ctx, &model.BulkAssignCondition{TaskIDs: []int64{created.ID}, UserID: analyst1.ID}, manager)
	require.Nil(t, serviceErr)

	_, serviceErr = service.Pick(ctx, created.ID, analyst2)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorTaskNotPending, serviceErr.Code)

	_, inProgress, _ := factory.perf(analyst2.ID, today())
	assert.Zero(t, inProgress)
}

func TestPickMissingTask(t *testing.T) {
	service, factory := newTestService(t)
	analyst := factory.addUser("analyst1", constant.UserRoleAnalyst)

	_, serviceErr := service.Pick(context.Background(), 42, analyst)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorTaskNotFound, serviceErr.Code)
}

func TestPickCompleteRoundTrip(t *testing.T) {
	service, factory := newTestService(t)
	manager := factory.addUser("manager1", constant.UserRoleManager)
	analyst := factory.addUser("analyst1", constant.UserRoleAnalyst)
	configID := factory.addWorkflow("UCC Monitoring", constant.WorkflowTypeUCC)
	created := createTask(t, service, manager, 3, &configID)
	ctx := context.Background()

	_, serviceErr := service.Pick(ctx, created.ID, analyst)
	require.Nil(t, serviceErr)

	completed, serviceErr := service.Complete(ctx, created.ID, &model.CompleteTaskCondition{
		AchievedQty: 5,
		Remarks:     "done",
	}, analyst)
	require.Nil(t, serviceErr)

	assert.Equal(t, constant.TaskStatusCompleted, completed.Status)
	assert.Equal(t, 5, completed.AchievedQty)
	assert.Equal(t, "done", completed.Remarks)
	assert.NotNil(t, completed.CompletedAt)

	// in_progress 回到认领前，completed +1
	assigned, inProgress, completedCount := factory.perf(analyst.ID, today())
	assert.Zero(t, assigned)
	assert.Zero(t, inProgress)
	assert.Equal(t, 1, completedCount)

	// 收件量（创建时 target 3，null 行）与产出量（完成时 achieved 5，
	// 操作者行）分键叠加，同一工作流当天合计 8
	assert.Equal(t, 3, factory.volume(constant.WorkflowTypeUCC, today(), nil))
	assert.Equal(t, 5, factory.volume(constant.WorkflowTypeUCC, today(), &analyst.ID))
}

func TestUnpickTask(t *testing.T) {
	service, factory := newTestService(t)
	manager := factory.addUser("manager1", constant.UserRoleManager)
	analyst := factory.addUser("analyst1", constant.UserRoleAnalyst)
	created := createTask(t, service, manager, 1, nil)
	ctx := context.Background()

	_, serviceErr := service.Pick(ctx, created.ID, analyst)
	require.Nil(t, serviceErr)

	unpicked, serviceErr := service.Unpick(ctx, created.ID, analyst)
	require.Nil(t, serviceErr)

	assert.Equal(t, constant.TaskStatusPending, unpicked.Status)
	assert.Nil(t, unpicked.AssignedUserID)
	assert.Nil(t, unpicked.AssignedAt)
	assert.Nil(t, unpicked.PickedAt)

	_, inProgress, _ := factory.perf(analyst.ID, today())
	assert.Zero(t, inProgress)
}

func TestUnpickNotOwner(t *testing.T) {
	service, factory := newTestService(t)
	manager := factory.addUser("manager1", constant.UserRoleManager)
	analyst1 := factory.addUser("analyst1", constant.UserRoleAnalyst)
	analyst2 := factory.addUser("analyst2", constant.UserRoleAnalyst)
	created := createTask(t, service, manager, 1, nil)
	ctx := context.Background()

	_, serviceErr := service.Pick(ctx, created.ID, analyst1)
	require.Nil(t, serviceErr)

	_, serviceErr = service.Unpick(ctx, created.ID, analyst2)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorNotTaskOwner, serviceErr.Code)
}

func TestUnpickPendingTask(t *testing.T) {
	service, factory := newTestService(t)
	manager := factory.addUser("manager1", constant.UserRoleManager)
	created := createTask(t, service, manager, 1, nil)

	_, serviceErr := service.Unpick(context.Background(), created.ID, manager)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorTaskNotInProgress, serviceErr.Code)

	// 拒绝后计数纹丝不动
	assert.Empty(t, factory.performance.rows)
}

func TestUnpickDecrementsActorToday(t *testing.T) {
	service, factory := newTestService(t)
	manager := factory.addUser("manager1", constant.UserRoleManager)
	analyst := factory.addUser("analyst1", constant.UserRoleAnalyst)
	created := createTask(t, service, manager, 1, nil)
	ctx := context.Background()

	_, serviceErr := service.Pick(ctx, created.ID, analyst)
	require.Nil(t, serviceErr)

	// manager 代取消：扣的是 manager 当日的行，analyst 的 +1 留着。
	// 绩效口径按操作者算，代操作会错位，这是既定行为。
	_, serviceErr = service.Unpick(ctx, created.ID, manager)
	require.Nil(t, serviceErr)

	_, analystInProgress, _ := factory.perf(analyst.ID, today())
	assert.Equal(t, 1, analystInProgress)
	_, managerInProgress, _ := factory.perf(manager.ID, today())
	assert.Zero(t, managerInProgress)
}

func TestCompleteAlreadyCompleted(t *testing.T) {
	service, factory := newTestService(t)
	manager := factory.addUser("manager1", constant.UserRoleManager)
	analyst := factory.addUser("analyst1", constant.UserRoleAnalyst)
	created := createTask(t, service, manager, 1, nil)
	ctx := context.Background()

	_, serviceErr := service.Pick(ctx, created.ID, analyst)
	require.Nil(t, serviceErr)
	_, serviceErr = service.Complete(ctx, created.ID, &model.CompleteTaskCondition{AchievedQty: 2}, analyst)
	require.Nil(t, serviceErr)

	_, serviceErr = service.Complete(ctx, created.ID, &model.CompleteTaskCondition{AchievedQty: 9}, analyst)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorTaskCompleted, serviceErr.Code)

	// 重复完成被拒，completed 不会加第二次
	_, _, completedCount := factory.perf(analyst.ID, today())
	assert.Equal(t, 1, completedCount)
}

func TestCompleteZeroAchievedCountsOne(t *testing.T) {
	service, factory := newTestService(t)
	manager := factory.addUser("manager1", constant.UserRoleManager)
	analyst := factory.addUser("analyst1", constant.UserRoleAnalyst)
	configID := factory.addWorkflow("UCC Monitoring", constant.WorkflowTypeUCC)
	created := createTask(t, service, manager, 1, &configID)
	ctx := context.Background()

	_, serviceErr := service.Pick(ctx, created.ID, analyst)
	require.Nil(t, serviceErr)
	_, serviceErr = service.Complete(ctx, created.ID, &model.CompleteTaskCondition{AchievedQty: 0}, analyst)
	require.Nil(t, serviceErr)

	// achieved 为 0 时产出量按 1 记
	assert.Equal(t, 1, factory.volume(constant.WorkflowTypeUCC, today(), &analyst.ID))
}

func TestCompleteByManagerAttributesToManager(t *testing.T) {
	service, factory := newTestService(t)
	manager := factory.addUser("manager1", constant.UserRoleManager)
	analyst := factory.addUser("analyst1", constant.UserRoleAnalyst)
	configID := factory.addWorkflow("UCC Monitoring", constant.WorkflowTypeUCC)
	created := createTask(t, service, manager, 1, &configID)
	ctx := context.Background()

	_, serviceErr := service.Pick(ctx, created.ID, analyst)
	require.Nil(t, serviceErr)

	// manager 代完成：绩效和产出量都归 manager
	_, serviceErr = service.Complete(ctx, created.ID, &model.CompleteTaskCondition{AchievedQty: 4}, manager)
	require.Nil(t, serviceErr)

	_, _, managerCompleted := factory.perf(manager.ID, today())
	assert.Equal(t, 1, managerCompleted)
	_, _, analystCompleted := factory.perf(analyst.ID, today())
	assert.Zero(t, analystCompleted)
	assert.Equal(t, 4, factory.volume(constant.WorkflowTypeUCC, today(), &manager.ID))
	assert.Zero(t, factory.volume(constant.WorkflowTypeUCC, today(), &analyst.ID))

	// analyst 认领时的 in_progress +1 留着，manager 的 -1 截断在 0
	_, analystInProgress, _ := factory.perf(analyst.ID, today())
	assert.Equal(t, 1, analystInProgress)
	_, managerInProgress, _ := factory.perf(manager.ID, today())
	assert.Zero(t, managerInProgress)
}

func TestUpdateCompletedTaskLocked(t *testing.T) {
	service, factory := newTestService(t)
	manager := factory.addUser("manager1", constant.UserRoleManager)
	analyst := factory.addUser("analyst1", constant.UserRoleAnalyst)
	created := createTask(t, service, manager, 1, nil)
	ctx := context.Background()

	_, serviceErr := service.Pick(ctx, created.ID, analyst)
	require.Nil(t, serviceErr)
	_, serviceErr = service.Complete(ctx, created.ID, &model.CompleteTaskCondition{AchievedQty: 1}, analyst)
	require.Nil(t, serviceErr)

	notes := "late edit"
	_, serviceErr = service.Update(ctx, created.ID, &model.UpdateTaskCondition{Notes: &notes}, analyst)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorCompletedTaskLocked, serviceErr.Code)

	// 高权限角色可以改
	updated, serviceErr := service.Update(ctx, created.ID, &model.UpdateTaskCondition{Notes: &notes}, manager)
	require.Nil(t, serviceErr)
	assert.Equal(t, notes, updated.Notes)
}

func TestUpdateStatusToCompletedTriggersEffects(t *testing.T) {
	service, factory := newTestService(t)
	manager := factory.addUser("manager1", constant.UserRoleManager)
	configID := factory.addWorkflow("UCC Monitoring", constant.WorkflowTypeUCC)
	created := createTask(t, service, manager, 1, &configID)
	ctx := context.Background()

	status := constant.TaskStatusCompleted
	achieved := 7
	updated, serviceErr := service.Update(ctx, created.ID, &model.UpdateTaskCondition{
		Status:      &status,
		AchievedQty: &achieved,
	}, manager)
	require.Nil(t, serviceErr)

	assert.Equal(t, constant.TaskStatusCompleted, updated.Status)
	assert.Equal(t, 7, updated.AchievedQty)
	assert.NotNil(t, updated.CompletedAt)

	// 台账按更新后的 achieved 记到操作者名下
	_, _, completedCount := factory.perf(manager.ID, today())
	assert.Equal(t, 1, completedCount)
	assert.Equal(t, 7, factory.volume(constant.WorkflowTypeUCC, today(), &manager.ID))
}

func TestUpdateInvalidStatus(t *testing.T) {
	service, factory := newTestService(t)
	manager := factory.addUser("manager1", constant.UserRoleManager)
	created := createTask(t, service, manager, 1, nil)

	status := constant.TaskStatus("Archived")
	_, serviceErr := service.Update(context.Background(), created.ID, &model.UpdateTaskCondition{Status: &status}, manager)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorInvalidStatus, serviceErr.Code)
}
