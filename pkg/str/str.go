package str

import (
	"strconv"
	"strings"
)

// StringToIntOrDefault 字符串转 int，空串或转换失败时落回默认值（csv 缺列场景）
func StringToIntOrDefault(str string, defaultValue int) int {
	trimmed := strings.TrimSpace(str)
	if trimmed == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(trimmed)
	if err != nil {
		return defaultValue
	}
	return i
}
