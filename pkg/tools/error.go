package tools

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrorWithPrintContext defer 关闭资源时打印关闭失败的上下文，
// 不吞错也不中断主流程
func ErrorWithPrintContext(closeFunc func() error, format string, args ...interface{}) {
	if err := closeFunc(); err != nil {
		context := fmt.Sprintf(format, args...)
		log.Errorf("error closing resource: %s, error: %v", context, err)
	}
}
