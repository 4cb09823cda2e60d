package middleware

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chelaniparth/arms11/config"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader    = "X-Request-ID"
	RequestIDInLogName = "request_id"

	// csv 上传走 multipart，请求体不进日志
	contentTypeMultipart = "multipart/form-data"

	maxLoggedBodyBytes = 1024 * 5
)

// Logger 请求日志中间件，请求体是否入日志由 app.log.request 控制
func Logger(ctx *gin.Context) {
	start := time.Now().UTC()
	path := ctx.Request.URL.Path

	request := ""
	if config.GetInstance().GetBoolOrDefault(config.ApplicationLogRequest, false) &&
		!strings.HasPrefix(ctx.ContentType(), contentTypeMultipart) &&
		ctx.Request.Body != nil {
		bodyBytes, _ := io.ReadAll(ctx.Request.Body)
		ctx.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var err error
		request, err = readBody(io.NopCloser(bytes.NewBuffer(bodyBytes)))
		if err != nil {
			logrus.Errorf("read body bytes err:%v", err)
		}
	}

	ip := ctx.ClientIP()

	ctx.Next()

	end := time.Now().UTC()
	latency := end.Sub(start)
	status := ctx.Writer.Status()
	entry := logrus.NewEntry(logrus.StandardLogger())
	if requestID, ok := ctx.Get(RequestIDHeader); ok {
		entry = entry.WithField(RequestIDInLogName, requestID)
	}
	entry.Infof("%s| %d| %s| %s| %s |request: %s", ctx.Request.Method, status, latency, ip, path, request)
}

func readBody(reader io.Reader) (string, error) {
	buf := new(bytes.Buffer)
	_, err := buf.ReadFrom(reader)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if buf.Len() > maxLoggedBodyBytes {
		return fmt.Sprintf("request size too big, request len = %v", buf.Len()), nil
	}
	return buf.String(), nil
}
