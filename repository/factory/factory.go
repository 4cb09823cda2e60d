package factory

import (
	"context"

	"github.com/chelaniparth/arms11/repository"
	"github.com/chelaniparth/arms11/repository/interfaces"
)

type Factory interface {
	NewSession(ctx context.Context) interfaces.Session
	NewTaskRepository(session interfaces.Session) (repository.TaskRepository, error)
	NewPerformanceRepository(session interfaces.Session) (repository.PerformanceRepository, error)
	NewVolumeRepository(session interfaces.Session) (repository.VolumeRepository, error)
	NewWorkflowConfigRepository(session interfaces.Session) (repository.WorkflowConfigRepository, error)
	NewUserRepository(session interfaces.Session) (repository.UserRepository, error)
	NewNotificationRepository(session interfaces.Session) (repository.NotificationRepository, error)
}
