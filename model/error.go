package model

import (
	"fmt"
	"net/http"
	"regexp"

	log "github.com/sirupsen/logrus"
)

// 错误码按类别分段：
//   2000xx 资源不存在
//   2001xx 无权限
//   2002xx 非法状态流转
//   2003xx 参数/校验错误
//   2004xx 内部错误
const (
	ErrorTaskNotFound         = 200001
	ErrorUserNotFound         = 200002
	ErrorWorkflowNotFound     = 200003
	ErrorNotificationNotFound = 200004

	ErrorNoPermission        = 200101
	ErrorNotTaskOwner        = 200102
	ErrorCompletedTaskLocked = 200103

	ErrorTaskNotPending    = 200201
	ErrorTaskNotInProgress = 200202
	ErrorTaskCompleted     = 200203

	ErrorParams             = 200301
	ErrorInvalidStatus      = 200302
	ErrorInvalidTaskType    = 200303
	ErrorInvalidPriority    = 200304
	ErrorInvalidWorkflow    = 200305
	ErrorEmptyTaskIDs       = 200306
	ErrorWorkflowNameExists = 200307
	ErrorEmailExists        = 200308
	ErrorUsernameExists     = 200309
	ErrorInvalidRole        = 200310

	ErrorDB      = 200401
	ErrorNewRepo = 200402
)

var ErrorMessages = map[int]string{
	ErrorTaskNotFound:         "任务不存在",
	ErrorUserNotFound:         "用户不存在",
	ErrorWorkflowNotFound:     "工作流不存在",
	ErrorNotificationNotFound: "通知不存在",

	ErrorNoPermission:        "无操作权限",
	ErrorNotTaskOwner:        "只能操作分配给自己的任务",
	ErrorCompletedTaskLocked: "已完成任务仅 admin/manager 可编辑",

	ErrorTaskNotPending:    "仅未分配的待处理任务可认领",
	ErrorTaskNotInProgress: "仅进行中任务可取消认领",
	ErrorTaskCompleted:     "任务已完成",

	ErrorParams:             "参数错误",
	ErrorInvalidStatus:      "任务状态值无效",
	ErrorInvalidTaskType:    "任务类型无效",
	ErrorInvalidPriority:    "任务优先级无效",
	ErrorInvalidWorkflow:    "工作流类型无效",
	ErrorEmptyTaskIDs:       "任务 id 列表为空",
	ErrorWorkflowNameExists: "工作流名称已存在",
	ErrorEmailExists:        "邮箱已被注册",
	ErrorUsernameExists:     "用户名已被占用",
	ErrorInvalidRole:        "用户角色无效",

	ErrorDB:      "db error",
	ErrorNewRepo: "新建 repo 失败",
}

type Error struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	InnerError error  `json:"inner_error"`
}

func (err Error) Error() string {
	return err.Message
}

func (err Error) String() string {
	return err.InnerError.Error()
}

func NewError(code int, innerError error) *Error {
	if innerError != nil {
		var re = regexp.MustCompile(`[\n\t]+`)
		innerErrorString := re.ReplaceAllString(fmt.Sprintf("%+v", innerError), " ")
		log.Errorf("NewError code:%d, message:%s, innerError:%+v\n", code, ErrorMessages[code], innerErrorString)
	}
	return &Error{
		Code:       code,
		Message:    ErrorMessages[code],
		InnerError: nil,
	}
}

func NewErrorWithMessage(code int, message string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		InnerError: nil,
	}
}

// HTTPStatus 按错误码分段映射 http 状态码
func (err Error) HTTPStatus() int {
	switch err.Code / 100 {
	case 2000:
		return http.StatusNotFound
	case 2001:
		return http.StatusForbidden
	case 2002:
		return http.StatusConflict
	case 2003:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
