package task

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain 给配置单例喂一份临时配置，导入逻辑要读行数上限
func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "task_service_test_*")
	if err != nil {
		panic(err)
	}
	content := "import:\n  maxRows: 5000\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(content), 0o600); err != nil {
		panic(err)
	}
	_ = os.Setenv("CONFIG_PATH", tmpDir)

	code := m.Run()
	_ = os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestParseImportRows(t *testing.T) {
	csvContent := "company_name, document_type ,task_type,Target Qty\n" +
		"Acme Corp,UCC Filing,Tier I,3\n" +
		"Globex Inc,Judgement,Audit\n"

	rows, err := parseImportRows(strings.NewReader(csvContent))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// 列名两侧空白被裁掉
	assert.Equal(t, "Acme Corp", rows[0][constant.ImportFieldCompanyName])
	assert.Equal(t, "UCC Filing", rows[0][constant.ImportFieldDocumentType])
	assert.Equal(t, "3", rows[0][constant.ImportFieldTargetQty])

	// 短行缺失的列不报错，取值为空
	assert.Equal(t, "Globex Inc", rows[1][constant.ImportFieldCompanyName])
	assert.Equal(t, "", rows[1][constant.ImportFieldTargetQty])
}

func TestParseImportRowsEmptyFile(t *testing.T) {
	rows, err := parseImportRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestImportRequiresElevated(t *testing.T) {
	service, factory := newTestService(t)
	analyst := factory.addUser("analyst1", constant.UserRoleAnalyst)

	_, serviceErr := service.Import(context.Background(), "tasks.csv", strings.NewReader(""), analyst)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorNoPermission, serviceErr.Code)
}

func TestImportRejectsNonCsvFilename(t *testing.T) {
	service, factory := newTestService(t)
	admin := factory.addUser("admin1", constant.UserRoleAdmin)

	_, serviceErr := service.Import(context.Background(), "tasks.xlsx", strings.NewReader(""), admin)
	require.NotNil(t, serviceErr)
	assert.Equal(t, model.ErrorParams, serviceErr.Code)
}

func TestImportCreatesTasks(t *testing.T) {
	service, factory := newTestService(t)
	admin := factory.addUser("admin1", constant.UserRoleAdmin)
	factory.addWorkflow("UCC Monitoring", constant.WorkflowTypeUCC)

	csvContent := "company_name,document_type,task_type,priority,Status,Workflow,Target Qty,Achieved Qty\n" +
		"Acme Corp,UCC Filing,Tier I,High,Completed,UCC Monitoring,3,5\n" +
		"Globex Inc,Judgement,Audit,Bogus,Archived,,2,0\n" +
		",Lien,Tier II,Low,Pending,,1,0\n"

	report, serviceErr := service.Import(context.Background(), "tasks.CSV", strings.NewReader(csvContent), admin)
	require.Nil(t, serviceErr)

	assert.Equal(t, 3, report.TotalProcessed)
	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 1, report.FailedCount)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Row 3")
	assert.Contains(t, report.Errors[0], constant.ImportFieldCompanyName)

	tasks, err := factory.tasks.ListAll()
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	var acme, globex int
	for i, stored := range tasks {
		switch stored.CompanyName {
		case "Acme Corp":
			acme = i
		case "Globex Inc":
			globex = i
		}
	}

	// 导入的任务自动分配给上传者
	require.NotNil(t, tasks[acme].AssignedUserID)
	assert.Equal(t, admin.ID, *tasks[acme].AssignedUserID)
	assert.Equal(t, constant.TaskStatusCompleted, tasks[acme].Status)
	assert.NotNil(t, tasks[acme].CompletedAt)
	assert.Equal(t, constant.TaskPriorityHigh, tasks[acme].Priority)
	require.NotNil(t, tasks[acme].WorkflowConfigID)

	// 非法状态/优先级落回默认值
	assert.Equal(t, constant.TaskStatusPending, tasks[globex].Status)
	assert.Equal(t, constant.TaskPriorityMedium, tasks[globex].Priority)
	assert.Nil(t, tasks[globex].WorkflowConfigID)
	assert.Nil(t, tasks[globex].CompletedAt)

	// 带工作流的行按 achieved（为 0 取 target）记上传者当日的量
	assert.Equal(t, 5, factory.volume(constant.WorkflowTypeUCC, today(), &admin.ID))
}

func TestImportFallbackQuantities(t *testing.T) {
	service, factory := newTestService(t)
	admin := factory.addUser("admin1", constant.UserRoleAdmin)
	factory.addWorkflow("UCC Monitoring", constant.WorkflowTypeUCC)

	// 数量列非数字时落回默认 target，achieved 0 时量按 target 记
	csvContent := "company_name,document_type,task_type,Workflow,Target Qty,Achieved Qty\n" +
		"Acme Corp,UCC Filing,Tier I,UCC Monitoring,lots,0\n"

	report, serviceErr := service.Import(context.Background(), "tasks.csv", strings.NewReader(csvContent), admin)
	require.Nil(t, serviceErr)
	assert.Equal(t, 1, report.SuccessCount)

	tasks, err := factory.tasks.ListAll()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, constant.DefaultTargetQty, tasks[0].TargetQty)
	assert.Equal(t, constant.DefaultTargetQty, factory.volume(constant.WorkflowTypeUCC, today(), &admin.ID))
}

func TestImportUnknownWorkflowName(t *testing.T) {
	service, factory := newTestService(t)
	admin := factory.addUser("admin1", constant.UserRoleAdmin)

	csvContent := "company_name,document_type,task_type,Workflow\n" +
		"Acme Corp,UCC Filing,Tier I,No Such Workflow\n"

	report, serviceErr := service.Import(context.Background(), "tasks.csv", strings.NewReader(csvContent), admin)
	require.Nil(t, serviceErr)
	assert.Equal(t, 1, report.SuccessCount)

	// 查不到的工作流名不算错，按无关联任务导入，也不记量
	tasks, err := factory.tasks.ListAll()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Nil(t, tasks[0].WorkflowConfigID)
	assert.Empty(t, factory.volumes.rows)
}
