package constant

// =============================================
// 任务状态常量
// =============================================

// TaskStatus 任务状态类型
type TaskStatus string

const (
	// TaskStatusPending 待处理
	TaskStatusPending TaskStatus = "Pending"
	// TaskStatusInProgress 进行中
	TaskStatusInProgress TaskStatus = "In Progress"
	// TaskStatusCompleted 已完成
	TaskStatusCompleted TaskStatus = "Completed"
	// TaskStatusUnderReview 审核中
	TaskStatusUnderReview TaskStatus = "Under Review"
	// TaskStatusPaused 已暂停
	TaskStatusPaused TaskStatus = "Paused"
)

// String 返回状态的字符串值
func (s TaskStatus) String() string {
	return string(s)
}

// IsValid 检查状态是否有效
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusUnderReview, TaskStatusPaused:
		return true
	}
	return false
}

// =============================================
// 任务优先级常量
// =============================================

// TaskPriority 任务优先级类型
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "Low"
	TaskPriorityMedium   TaskPriority = "Medium"
	TaskPriorityHigh     TaskPriority = "High"
	TaskPriorityCritical TaskPriority = "Critical"
)

// String 返回优先级的字符串值
func (p TaskPriority) String() string {
	return string(p)
}

// IsValid 检查优先级是否有效
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

// =============================================
// 任务类型常量
// =============================================

// TaskType 任务类型
type TaskType string

const (
	TaskTypeTierI     TaskType = "Tier I"
	TaskTypeTierII    TaskType = "Tier II"
	TaskTypeAudit     TaskType = "Audit"
	TaskTypeDataEntry TaskType = "Data Entry"
	TaskTypeReview    TaskType = "Review"
	TaskTypeStrategy  TaskType = "Strategy"
	TaskTypeAnalysis  TaskType = "Analysis"
)

// String 返回任务类型的字符串值
func (t TaskType) String() string {
	return string(t)
}

// IsValid 检查任务类型是否有效
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeTierI, TaskTypeTierII, TaskTypeAudit, TaskTypeDataEntry, TaskTypeReview, TaskTypeStrategy, TaskTypeAnalysis:
		return true
	}
	return false
}

// =============================================
// 用户角色常量
// =============================================

// UserRole 用户角色类型
type UserRole string

const (
	// UserRoleAdmin 管理员
	UserRoleAdmin UserRole = "admin"
	// UserRoleManager 经理
	UserRoleManager UserRole = "manager"
	// UserRoleAnalyst 分析师
	UserRoleAnalyst UserRole = "analyst"
)

// String 返回角色的字符串值
func (r UserRole) String() string {
	return string(r)
}

// IsValid 检查角色是否有效
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleAnalyst:
		return true
	}
	return false
}

// IsElevated 是否为高权限角色（admin/manager）
func (r UserRole) IsElevated() bool {
	return r == UserRoleAdmin || r == UserRoleManager
}

// =============================================
// 工作流类型常量
// =============================================

// WorkflowType 工作流类型
type WorkflowType string

const (
	WorkflowTypePending           WorkflowType = "Pending"
	WorkflowTypeUCC               WorkflowType = "UCC"
	WorkflowTypeJudgements        WorkflowType = "Judgements"
	WorkflowTypeChapter11         WorkflowType = "Chapter11"
	WorkflowTypeChapter7          WorkflowType = "Chapter7"
	WorkflowTypeTradeTapes        WorkflowType = "Trade Tapes"
	WorkflowTypeVolume            WorkflowType = "Volume"
	WorkflowTypeTarget            WorkflowType = "Target"
	WorkflowTypeCreditApplication WorkflowType = "Credit Application"
	WorkflowTypeTradeReference    WorkflowType = "Trade Reference"
	WorkflowTypeLiens             WorkflowType = "Liens"
	WorkflowTypeAgingTracker      WorkflowType = "Aging Tracker"
	WorkflowTypeQSR               WorkflowType = "QSR"
	WorkflowTypeMLP               WorkflowType = "MLP"
	WorkflowTypePACA              WorkflowType = "PACA"
	WorkflowTypeTNT               WorkflowType = "TNT"
	WorkflowTypeCRA               WorkflowType = "CRA"
	WorkflowTypeMSA               WorkflowType = "MSA"
	WorkflowTypeBondWatch         WorkflowType = "Bond Watch"
	WorkflowTypeTrackRatings      WorkflowType = "Track Ratings"
)

// String 返回工作流类型的字符串值
func (w WorkflowType) String() string {
	return string(w)
}

// IsValid 检查工作流类型是否有效
func (w WorkflowType) IsValid() bool {
	switch w {
	case WorkflowTypePending, WorkflowTypeUCC, WorkflowTypeJudgements, WorkflowTypeChapter11,
		WorkflowTypeChapter7, WorkflowTypeTradeTapes, WorkflowTypeVolume, WorkflowTypeTarget,
		WorkflowTypeCreditApplication, WorkflowTypeTradeReference, WorkflowTypeLiens,
		WorkflowTypeAgingTracker, WorkflowTypeQSR, WorkflowTypeMLP, WorkflowTypePACA,
		WorkflowTypeTNT, WorkflowTypeCRA, WorkflowTypeMSA, WorkflowTypeBondWatch,
		WorkflowTypeTrackRatings:
		return true
	}
	return false
}

// =============================================
// 通知类型常量
// =============================================

// NotificationType 通知类型
type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)

// String 返回通知类型的字符串值
func (n NotificationType) String() string {
	return string(n)
}

// IsValid 检查通知类型是否有效
func (n NotificationType) IsValid() bool {
	switch n {
	case NotificationTypeInfo, NotificationTypeSuccess, NotificationTypeWarning, NotificationTypeError:
		return true
	}
	return false
}

// =============================================
// 默认配置常量
// =============================================

const (
	// DefaultTargetQty 默认目标数量
	DefaultTargetQty = 1
	// DefaultSlaHours 默认 SLA 小时数
	DefaultSlaHours = 72
	// DefaultTopPerformerLimit 仪表盘展示的最佳表现者数量
	DefaultTopPerformerLimit = 5
	// DefaultNotificationLimit 通知列表默认条数
	DefaultNotificationLimit = 50
)
