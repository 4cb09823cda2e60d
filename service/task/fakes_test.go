package task

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	"github.com/chelaniparth/arms11/repository"
	"github.com/chelaniparth/arms11/repository/interfaces"
)

// 内存版仓库实现，仅测试用。所有仓库共享同一份状态，
// 模拟同一库里的多张表。

type fakeSession struct {
	begun      int
	committed  int
	rolledBack int
}

func (s *fakeSession) Begin() error    { s.begun++; return nil }
func (s *fakeSession) Close() error    { return nil }
func (s *fakeSession) Commit() error   { s.committed++; return nil }
func (s *fakeSession) Rollback() error { s.rolledBack++; return nil }

type fakeFactory struct {
	session       *fakeSession
	tasks         *fakeTaskRepository
	performance   *fakePerformanceRepository
	volumes       *fakeVolumeRepository
	workflows     *fakeWorkflowConfigRepository
	users         *fakeUserRepository
	notifications *fakeNotificationRepository
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		session:       &fakeSession{},
		tasks:         &fakeTaskRepository{tasks: map[int64]*entity.Task{}},
		performance:   &fakePerformanceRepository{rows: map[string]*entity.UserPerformance{}},
		volumes:       &fakeVolumeRepository{rows: map[string]*entity.WorkflowDailyVolume{}},
		workflows:     &fakeWorkflowConfigRepository{configs: map[int64]*entity.WorkflowConfig{}},
		users:         &fakeUserRepository{users: map[string]*entity.User{}},
		notifications: &fakeNotificationRepository{},
	}
}

func (f *fakeFactory) NewSession(_ context.Context) interfaces.Session { return f.session }

func (f *fakeFactory) NewTaskRepository(_ interfaces.Session) (repository.TaskRepository, error) {
	return f.tasks, nil
}

func (f *fakeFactory) NewPerformanceRepository(_ interfaces.Session) (repository.PerformanceRepository, error) {
	return f.performance, nil
}

func (f *fakeFactory) NewVolumeRepository(_ interfaces.Session) (repository.VolumeRepository, error) {
	return f.volumes, nil
}

func (f *fakeFactory) NewWorkflowConfigRepository(_ interfaces.Session) (repository.WorkflowConfigRepository, error) {
	return f.workflows, nil
}

func (f *fakeFactory) NewUserRepository(_ interfaces.Session) (repository.UserRepository, error) {
	return f.users, nil
}

func (f *fakeFactory) NewNotificationRepository(_ interfaces.Session) (repository.NotificationRepository, error) {
	return f.notifications, nil
}

// perf 读取某用户某天的三个计数，行不存在时全 0
func (f *fakeFactory) perf(userID, date string) (assigned, inProgress, completed int) {
	row, ok := f.performance.rows[perfKey(userID, date)]
	if !ok {
		return 0, 0, 0
	}
	return row.TasksAssigned, row.TasksInProgress, row.TasksCompleted
}

// volume 读取某 (workflow_type, date, analyst) 键的量，行不存在时 0
func (f *fakeFactory) volume(workflowType constant.WorkflowType, date string, analystID *string) int {
	row, ok := f.volumes.rows[volumeKey(workflowType, date, analystID)]
	if !ok {
		return 0
	}
	return row.Quantity
}

// addUser 预置一个激活用户
func (f *fakeFactory) addUser(id string, role constant.UserRole) *entity.User {
	user := &entity.User{
		ID:       id,
		Username: id,
		Email:    id + "@example.com",
		FullName: id + " test",
		Role:     role,
		IsActive: true,
	}
	f.users.users[id] = user
	return user
}

// addWorkflow 预置一个工作流配置，返回 config_id
func (f *fakeFactory) addWorkflow(name string, workflowType constant.WorkflowType) int64 {
	config := &entity.WorkflowConfig{
		WorkflowName: name,
		WorkflowType: workflowType,
		Priority:     constant.TaskPriorityMedium,
		SlaHours:     constant.DefaultSlaHours,
		IsActive:     true,
	}
	_ = f.workflows.Insert(config)
	return config.ID
}

// ========== 任务仓库 ==========

type fakeTaskRepository struct {
	tasks  map[int64]*entity.Task
	nextID int64
}

func (r *fakeTaskRepository) Insert(task *entity.Task) error {
	r.nextID++
	task.ID = r.nextID
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	task.UpdatedAt = time.Now()
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *fakeTaskRepository) Get(taskID int64) (*entity.Task, error) {
	stored, ok := r.tasks[taskID]
	if !ok {
		return nil, nil
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeTaskRepository) ListByIDs(taskIDs []int64) ([]*entity.Task, error) {
	var results []*entity.Task
	for _, taskID := range taskIDs {
		if stored, ok := r.tasks[taskID]; ok {
			clone := *stored
			results = append(results, &clone)
		}
	}
	return results, nil
}

func (r *fakeTaskRepository) Query(condition *model.TaskQueryCondition) ([]*entity.Task, int64, error) {
	var results []*entity.Task
	for _, stored := range r.tasks {
		if condition.Status != nil && stored.Status != *condition.Status {
			continue
		}
		if condition.AssignedUserID != nil {
			if stored.AssignedUserID == nil || *stored.AssignedUserID != *condition.AssignedUserID {
				continue
			}
		}
		if condition.WorkflowConfigID != nil {
			if stored.WorkflowConfigID == nil || *stored.WorkflowConfigID != *condition.WorkflowConfigID {
				continue
			}
		}
		if condition.Keyword != nil && !strings.Contains(stored.CompanyName, *condition.Keyword) {
			continue
		}
		clone := *stored
		results = append(results, &clone)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID > results[j].ID })
	return results, int64(len(results)), nil
}

func (r *fakeTaskRepository) ListAll() ([]*entity.Task, error) {
	var results []*entity.Task
	for _, stored := range r.tasks {
		clone := *stored
		results = append(results, &clone)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID > results[j].ID })
	return results, nil
}

func (r *fakeTaskRepository) Update(taskID int64, req *model.UpdateTaskCondition) error {
	stored, ok := r.tasks[taskID]
	if !ok {
		return nil
	}
	if req.TaskType != nil {
		stored.TaskType = *req.TaskType
	}
	if req.CompanyName != nil {
		stored.CompanyName = *req.CompanyName
	}
	if req.DocumentType != nil {
		stored.DocumentType = *req.DocumentType
	}
	if req.Priority != nil {
		stored.Priority = *req.Priority
	}
	if req.Status != nil {
		stored.Status = *req.Status
	}
	if req.Description != nil {
		stored.Description = *req.Description
	}
	if req.Notes != nil {
		stored.Notes = *req.Notes
	}
	if req.SlaHours != nil {
		stored.SlaHours = *req.SlaHours
	}
	if req.DueDate != nil {
		stored.DueDate = req.DueDate
	}
	if req.TargetQty != nil {
		stored.TargetQty = *req.TargetQty
	}
	if req.AchievedQty != nil {
		stored.AchievedQty = *req.AchievedQty
	}
	if req.Rating != nil {
		stored.Rating = req.Rating
	}
	if req.Remarks != nil {
		stored.Remarks = *req.Remarks
	}
	if req.AssignedUserID != nil {
		stored.AssignedUserID = req.AssignedUserID
	}
	if req.WorkflowConfigID != nil {
		stored.WorkflowConfigID = req.WorkflowConfigID
	}
	if req.CustomWorkflowName != nil {
		stored.CustomWorkflowName = *req.CustomWorkflowName
	}
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTaskRepository) UpdateColumns(taskID int64, data map[string]interface{}) error {
	stored, ok := r.tasks[taskID]
	if !ok {
		return nil
	}
	for column, value := range data {
		switch column {
		case entity.TaskFieldStatus:
			stored.Status = value.(constant.TaskStatus)
		case entity.TaskFieldAssignedUserID:
			if value == nil {
				stored.AssignedUserID = nil
			} else {
				userID := value.(string)
				stored.AssignedUserID = &userID
			}
		case entity.TaskFieldAssignedAt:
			stored.AssignedAt = timeColumn(value)
		case entity.TaskFieldPickedAt:
			stored.PickedAt = timeColumn(value)
		case entity.TaskFieldCompletedAt:
			stored.CompletedAt = timeColumn(value)
		case entity.TaskFieldAchievedQty:
			stored.AchievedQty = value.(int)
		case entity.TaskFieldRemarks:
			stored.Remarks = value.(string)
		default:
			return fmt.Errorf("unsupported column: %s", column)
		}
	}
	stored.UpdatedAt = time.Now()
	return nil
}

func timeColumn(value interface{}) *time.Time {
	if value == nil {
		return nil
	}
	t := value.(time.Time)
	return &t
}

func (r *fakeTaskRepository) Delete(taskID int64) error {
	delete(r.tasks, taskID)
	return nil
}

func (r *fakeTaskRepository) DeleteByIDs(taskIDs []int64) (int64, error) {
	var deleted int64
	for _, taskID := range taskIDs {
		if _, ok := r.tasks[taskID]; ok {
			delete(r.tasks, taskID)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeTaskRepository) CountActive() (int64, error) {
	var count int64
	for _, stored := range r.tasks {
		if stored.Status == constant.TaskStatusPending || stored.Status == constant.TaskStatusInProgress {
			count++
		}
	}
	return count, nil
}

func (r *fakeTaskRepository) CountByStatus() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, stored := range r.tasks {
		counts[stored.Status.String()]++
	}
	return counts, nil
}

// ========== 绩效仓库 ==========

type fakePerformanceRepository struct {
	rows map[string]*entity.UserPerformance
}

func perfKey(userID, date string) string {
	return userID + "|" + date
}

// add 模拟存储层的原子 upsert-and-add，逐列截断到 0
func (r *fakePerformanceRepository) add(userID, date string, dAssigned, dInProgress, dCompleted int) error {
	key := perfKey(userID, date)
	row, ok := r.rows[key]
	if !ok {
		row = &entity.UserPerformance{UserID: userID, MetricDate: date}
		r.rows[key] = row
	}
	row.TasksAssigned = clampZero(row.TasksAssigned + dAssigned)
	row.TasksInProgress = clampZero(row.TasksInProgress + dInProgress)
	row.TasksCompleted = clampZero(row.TasksCompleted + dCompleted)
	return nil
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func (r *fakePerformanceRepository) IncrementAssigned(userID, date string) error {
	return r.add(userID, date, 1, 0, 0)
}

func (r *fakePerformanceRepository) DecrementAssigned(userID, date string) error {
	return r.add(userID, date, -1, 0, 0)
}

func (r *fakePerformanceRepository) IncrementInProgress(userID, date string) error {
	return r.add(userID, date, 0, 1, 0)
}

func (r *fakePerformanceRepository) DecrementInProgress(userID, date string) error {
	return r.add(userID, date, 0, -1, 0)
}

func (r *fakePerformanceRepository) IncrementCompleted(userID, date string) error {
	return r.add(userID, date, 0, 0, 1)
}

func (r *fakePerformanceRepository) DecrementCompleted(userID, date string) error {
	return r.add(userID, date, 0, 0, -1)
}

func (r *fakePerformanceRepository) Get(userID, date string) (*entity.UserPerformance, error) {
	row, ok := r.rows[perfKey(userID, date)]
	if !ok {
		return &entity.UserPerformance{UserID: userID, MetricDate: date}, nil
	}
	clone := *row
	return &clone, nil
}

func (r *fakePerformanceRepository) TopPerformers(date string, limit int) ([]*model.TopPerformer, error) {
	var performers []*model.TopPerformer
	for _, row := range r.rows {
		if row.MetricDate != date || row.TasksCompleted == 0 {
			continue
		}
		performers = append(performers, &model.TopPerformer{
			UserID:    row.UserID,
			Completed: row.TasksCompleted,
		})
	}
	sort.Slice(performers, func(i, j int) bool { return performers[i].Completed > performers[j].Completed })
	if limit > 0 && len(performers) > limit {
		performers = performers[:limit]
	}
	return performers, nil
}

// ========== 每日量仓库 ==========

type fakeVolumeRepository struct {
	rows map[string]*entity.WorkflowDailyVolume
}

func volumeKey(workflowType constant.WorkflowType, date string, analystID *string) string {
	analyst := "<null>"
	if analystID != nil {
		analyst = *analystID
	}
	return fmt.Sprintf("%s|%s|%s", workflowType, date, analyst)
}

func (r *fakeVolumeRepository) upsert(workflowType constant.WorkflowType, date string, analystID *string) *entity.WorkflowDailyVolume {
	key := volumeKey(workflowType, date, analystID)
	row, ok := r.rows[key]
	if !ok {
		row = &entity.WorkflowDailyVolume{
			WorkflowType: workflowType,
			Date:         date,
			AnalystID:    analystID,
		}
		r.rows[key] = row
	}
	return row
}

func (r *fakeVolumeRepository) Increment(workflowType constant.WorkflowType, date string, analystID *string, qty int) error {
	row := r.upsert(workflowType, date, analystID)
	row.Quantity = clampZero(row.Quantity + qty)
	return nil
}

func (r *fakeVolumeRepository) Decrement(workflowType constant.WorkflowType, date string, analystID *string, qty int) error {
	row := r.upsert(workflowType, date, analystID)
	row.Quantity = clampZero(row.Quantity - qty)
	return nil
}

func (r *fakeVolumeRepository) Get(workflowType constant.WorkflowType, date string, analystID *string) (*entity.WorkflowDailyVolume, error) {
	row, ok := r.rows[volumeKey(workflowType, date, analystID)]
	if !ok {
		return &entity.WorkflowDailyVolume{WorkflowType: workflowType, Date: date, AnalystID: analystID}, nil
	}
	clone := *row
	return &clone, nil
}

func (r *fakeVolumeRepository) Set(workflowType constant.WorkflowType, date string, analystID *string, qty int) (*entity.WorkflowDailyVolume, error) {
	row := r.upsert(workflowType, date, analystID)
	row.Quantity = qty
	clone := *row
	return &clone, nil
}

func (r *fakeVolumeRepository) List(condition *model.VolumeListCondition) ([]*entity.WorkflowDailyVolume, error) {
	var results []*entity.WorkflowDailyVolume
	for _, row := range r.rows {
		if condition != nil {
			if condition.Date != nil && row.Date != *condition.Date {
				continue
			}
			if condition.WorkflowType != nil && row.WorkflowType != *condition.WorkflowType {
				continue
			}
			if condition.AnalystID != nil {
				if row.AnalystID == nil || *row.AnalystID != *condition.AnalystID {
					continue
				}
			}
		}
		clone := *row
		results = append(results, &clone)
	}
	return results, nil
}

// ========== 工作流配置仓库 ==========

type fakeWorkflowConfigRepository struct {
	configs map[int64]*entity.WorkflowConfig
	nextID  int64
}

func (r *fakeWorkflowConfigRepository) Insert(config *entity.WorkflowConfig) error {
	r.nextID++
	config.ID = r.nextID
	clone := *config
	r.configs[config.ID] = &clone
	return nil
}

func (r *fakeWorkflowConfigRepository) Get(configID int64) (*entity.WorkflowConfig, error) {
	stored, ok := r.configs[configID]
	if !ok {
		return nil, nil
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeWorkflowConfigRepository) GetByName(name string) (*entity.WorkflowConfig, error) {
	for _, stored := range r.configs {
		if stored.WorkflowName == name {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkflowConfigRepository) List(_ *model.Pager) ([]*entity.WorkflowConfig, error) {
	var results []*entity.WorkflowConfig
	for _, stored := range r.configs {
		clone := *stored
		results = append(results, &clone)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (r *fakeWorkflowConfigRepository) Update(configID int64, req *model.UpdateWorkflowCondition) error {
	stored, ok := r.configs[configID]
	if !ok {
		return nil
	}
	if req.WorkflowName != nil {
		stored.WorkflowName = *req.WorkflowName
	}
	if req.WorkflowType != nil {
		stored.WorkflowType = *req.WorkflowType
	}
	if req.IsActive != nil {
		stored.IsActive = *req.IsActive
	}
	return nil
}

func (r *fakeWorkflowConfigRepository) Delete(configID int64) error {
	delete(r.configs, configID)
	return nil
}

// ========== 用户仓库 ==========

type fakeUserRepository struct {
	users map[string]*entity.User
}

func (r *fakeUserRepository) Insert(user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) Get(userID string) (*entity.User, error) {
	stored, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeUserRepository) GetByEmail(email string) (*entity.User, error) {
	for _, stored := range r.users {
		if stored.Email == email {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) GetByUsername(username string) (*entity.User, error) {
	for _, stored := range r.users {
		if stored.Username == username {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) List(_ *model.Pager) ([]*entity.User, error) {
	var results []*entity.User
	for _, stored := range r.users {
		clone := *stored
		results = append(results, &clone)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (r *fakeUserRepository) Update(userID string, req *model.UpdateUserCondition) error {
	stored, ok := r.users[userID]
	if !ok {
		return nil
	}
	if req.Email != nil {
		stored.Email = *req.Email
	}
	if req.FullName != nil {
		stored.FullName = *req.FullName
	}
	if req.Role != nil {
		stored.Role = *req.Role
	}
	if req.IsActive != nil {
		stored.IsActive = *req.IsActive
	}
	if req.LastLogin != nil {
		stored.LastLogin = req.LastLogin
	}
	return nil
}

func (r *fakeUserRepository) Delete(userID string) error {
	delete(r.users, userID)
	return nil
}

// ========== 通知仓库 ==========

type fakeNotificationRepository struct {
	notifications []*entity.Notification
	nextID        int64
}

func (r *fakeNotificationRepository) Insert(notification *entity.Notification) error {
	r.nextID++
	notification.ID = r.nextID
	notification.CreatedAt = time.Now()
	clone := *notification
	r.notifications = append(r.notifications, &clone)
	return nil
}

func (r *fakeNotificationRepository) ListByUser(userID string, limit int) ([]*entity.Notification, error) {
	var results []*entity.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].UserID != userID {
			continue
		}
		clone := *r.notifications[i]
		results = append(results, &clone)
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

func (r *fakeNotificationRepository) MarkRead(notificationID int64, userID string) (bool, error) {
	for _, stored := range r.notifications {
		if stored.ID == notificationID && stored.UserID == userID {
			stored.IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepository) MarkAllRead(userID string) error {
	for _, stored := range r.notifications {
		if stored.UserID == userID {
			stored.IsRead = true
		}
	}
	return nil
}
