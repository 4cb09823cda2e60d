package task

import (
	"context"
	"fmt"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	prjtime "github.com/chelaniparth/arms11/pkg/time"
	"github.com/chelaniparth/arms11/pkg/tools"
	"github.com/chelaniparth/arms11/repository"
	"github.com/chelaniparth/arms11/repository/factory"
	"github.com/chelaniparth/arms11/repository/interfaces"
)

// Service 任务生命周期服务。每个操作开一个独立 session，任务写入和台账
// 增减同一事务提交，任一环节失败整体回滚。
type Service struct {
	repositoryFactory factory.Factory
}

func NewService(repositoryFactory factory.Factory) (*Service, error) {
	if repositoryFactory == nil {
		return nil, fmt.Errorf("repository factory is required")
	}
	return &Service{repositoryFactory: repositoryFactory}, nil
}

// taskRepos 单次操作内共享同一 session 的仓库集合
type taskRepos struct {
	task         repository.TaskRepository
	performance  repository.PerformanceRepository
	volume       repository.VolumeRepository
	workflow     repository.WorkflowConfigRepository
	notification repository.NotificationRepository
}

func (s *Service) newRepos(session interfaces.Session) (*taskRepos, *model.Error) {
	taskRepo, err := s.repositoryFactory.NewTaskRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	performanceRepo, err := s.repositoryFactory.NewPerformanceRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	volumeRepo, err := s.repositoryFactory.NewVolumeRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	workflowRepo, err := s.repositoryFactory.NewWorkflowConfigRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	notificationRepo, err := s.repositoryFactory.NewNotificationRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	return &taskRepos{
		task:         taskRepo,
		performance:  performanceRepo,
		volume:       volumeRepo,
		workflow:     workflowRepo,
		notification: notificationRepo,
	}, nil
}

func today() string {
	return prjtime.Today()
}

// Get 获取单个任务
func (s *Service) Get(ctx context.Context, taskID int64) (*entity.Task, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "get task session, task_id=%d", taskID)

	repos, serviceErr := s.newRepos(session)
	if serviceErr != nil {
		return nil, serviceErr
	}

	result, err := repos.task.Get(taskID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if result == nil {
		return nil, model.NewError(model.ErrorTaskNotFound, fmt.Errorf("task %d not found", taskID))
	}

	return result, nil
}

// Query 按条件查询任务列表，返回列表和总数
func (s *Service) Query(ctx context.Context, condition *model.TaskQueryCondition) ([]*entity.Task, int64, *model.Error) {
	if condition == nil {
		condition = &model.TaskQueryCondition{}
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "query tasks session")

	repos, serviceErr := s.newRepos(session)
	if serviceErr != nil {
		return nil, 0, serviceErr
	}

	results, total, err := repos.task.Query(condition)
	if err != nil {
		return nil, 0, model.NewError(model.ErrorDB, err)
	}

	return results, total, nil
}

// Export 导出全部任务（按创建时间倒序），仅 admin/manager 可用
func (s *Service) Export(ctx context.Context, actor *entity.User) ([]*model.TaskExportRow, *model.Error) {
	if actor == nil || !actor.Role.IsElevated() {
		return nil, model.NewError(model.ErrorNoPermission, fmt.Errorf("export requires admin or manager role"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "export tasks session")

	repos, serviceErr := s.newRepos(session)
	if serviceErr != nil {
		return nil, serviceErr
	}

	tasks, err := repos.task.ListAll()
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	userRepo, err := s.repositoryFactory.NewUserRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	// 缓存已查过的用户名，避免逐行重复查询
	names := map[string]string{}
	rows := make([]*model.TaskExportRow, 0, len(tasks))
	for _, t := range tasks {
		assignedTo := "Unassigned"
		if t.AssignedUserID != nil {
			name, ok := names[*t.AssignedUserID]
			if !ok {
				assignedUser, err := userRepo.Get(*t.AssignedUserID)
				if err != nil {
					return nil, model.NewError(model.ErrorDB, err)
				}
				if assignedUser != nil {
					name = assignedUser.FullName
				}
				names[*t.AssignedUserID] = name
			}
			if name != "" {
				assignedTo = name
			}
		}

		rows = append(rows, &model.TaskExportRow{
			TaskID:       t.ID,
			CompanyName:  t.CompanyName,
			TaskType:     t.TaskType.String(),
			DocumentType: t.DocumentType,
			Status:       t.Status.String(),
			Priority:     t.Priority.String(),
			TargetQty:    t.TargetQty,
			AchievedQty:  t.AchievedQty,
			CreatedAt:    t.CreatedAt.Format(prjtime.TimeFormatCommonStyleSec),
			AssignedTo:   assignedTo,
		})
	}

	return rows, nil
}

func validateCreateCondition(condition *model.CreateTaskCondition) *model.Error {
	if condition == nil {
		return model.NewError(model.ErrorParams, fmt.Errorf("create condition is required"))
	}
	if condition.CompanyName == constant.EmptyString {
		return model.NewError(model.ErrorParams, fmt.Errorf("company_name is required"))
	}
	if condition.DocumentType == constant.EmptyString {
		return model.NewError(model.ErrorParams, fmt.Errorf("document_type is required"))
	}
	if !condition.TaskType.IsValid() {
		return model.NewError(model.ErrorInvalidTaskType, fmt.Errorf("invalid task_type: %s", condition.TaskType))
	}
	if condition.Priority != constant.EmptyString && !condition.Priority.IsValid() {
		return model.NewError(model.ErrorInvalidPriority, fmt.Errorf("invalid priority: %s", condition.Priority))
	}
	if condition.Status != constant.EmptyString && !condition.Status.IsValid() {
		return model.NewError(model.ErrorInvalidStatus, fmt.Errorf("invalid status: %s", condition.Status))
	}
	return nil
}
