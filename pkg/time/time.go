package time

import (
	"time"
)

const (
	TimeFormatCommonStyleDay = "2006-01-02"          //台账日期键统一用这个模版
	TimeFormatCommonStyleMin = "2006-01-02 15:04"    //到分钟级别，时间格式化模版
	TimeFormatCommonStyleSec = "2006-01-02 15:04:05" //到秒级别，时间格式化模版
)

func GetNowTimeByFormat(format string) string {
	return time.Now().Format(format)
}

// Today 当日台账日期键
func Today() string {
	return time.Now().Format(TimeFormatCommonStyleDay)
}
