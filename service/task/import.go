package task

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chelaniparth/arms11/config"
	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	"github.com/chelaniparth/arms11/pkg/str"
	"github.com/chelaniparth/arms11/pkg/tools"
	log "github.com/sirupsen/logrus"
)

// defaultImportMaxRows 单次导入行数上限默认值
const defaultImportMaxRows = 5000

// Import 批量导入 CSV 任务，仅 admin/manager 可用。逐行校验，失败行记入
// 报告继续处理，整批一个事务提交。导入的任务自动分配给上传者；带工作流
// 关联的行按 achieved_qty（为 0 取 target_qty）登记上传者当日的量。
func (s *Service) Import(ctx context.Context, filename string, reader io.Reader, actor *entity.User) (*model.ImportReport, *model.Error) {
	if actor == nil || !actor.Role.IsElevated() {
		return nil, model.NewError(model.ErrorNoPermission, fmt.Errorf("import requires admin or manager role"))
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("invalid file format: %s, expect csv", filename))
	}

	rows, parseErr := parseImportRows(reader)
	if parseErr != nil {
		return nil, model.NewError(model.ErrorParams, parseErr)
	}
	maxRows := config.GetInstance().GetIntOrDefault(config.ImportMaxRows, defaultImportMaxRows)
	if len(rows) > maxRows {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("too many rows: %d, max %d", len(rows), maxRows))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "import tasks session")

	repos, serviceErr := s.newRepos(session)
	if serviceErr != nil {
		return nil, serviceErr
	}

	if err := session.Begin(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	coordinator := newSyncCoordinator(repos)
	report := &model.ImportReport{Errors: []string{}}

	for index, row := range rows {
		rowNumber := index + 1
		if err := s.importRow(repos, coordinator, row, actor); err != nil {
			log.Warnf("import row %d failed: %v", rowNumber, err)
			report.Errors = append(report.Errors, fmt.Sprintf("Row %d: %s", rowNumber, err.Error()))
			continue
		}
		report.SuccessCount++
	}

	report.FailedCount = len(report.Errors)
	report.TotalProcessed = report.SuccessCount + report.FailedCount

	if err := session.Commit(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	log.Infof("tasks imported, success=%d, failed=%d, actor=%s", report.SuccessCount, report.FailedCount, actor.ID)
	return report, nil
}

// parseImportRows 解析 CSV，首行作为列名
func parseImportRows(reader io.Reader) ([]model.ImportRow, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	var rows []model.ImportRow
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}

		row := model.ImportRow{}
		for i, column := range header {
			if i < len(record) {
				row[strings.TrimSpace(column)] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (s *Service) importRow(repos *taskRepos, coordinator *syncCoordinator, row model.ImportRow, actor *entity.User) error {
	for _, field := range []string{constant.ImportFieldCompanyName, constant.ImportFieldDocumentType, constant.ImportFieldTaskType} {
		if row[field] == constant.EmptyString {
			return fmt.Errorf("missing required field: %s", field)
		}
	}

	taskType := constant.TaskType(row[constant.ImportFieldTaskType])
	if !taskType.IsValid() {
		return fmt.Errorf("invalid task_type '%s'", row[constant.ImportFieldTaskType])
	}

	// 按名称反查工作流配置，查不到不算错，按无关联任务导入
	var workflowConfigID *int64
	if workflowName := row[constant.ImportFieldWorkflow]; workflowName != constant.EmptyString {
		workflowConfig, err := repos.workflow.GetByName(workflowName)
		if err != nil {
			return fmt.Errorf("failed to lookup workflow '%s': %w", workflowName, err)
		}
		if workflowConfig != nil {
			workflowConfigID = &workflowConfig.ID
		}
	}

	// 状态值非法时静默落回 Pending
	status := constant.TaskStatus(row[constant.ImportFieldStatus])
	if !status.IsValid() {
		status = constant.TaskStatusPending
	}

	priority := constant.TaskPriority(row[constant.ImportFieldPriority])
	if !priority.IsValid() {
		priority = constant.TaskPriorityMedium
	}

	// 数量列缺失或非法时落回默认值，不让单行导入失败
	targetQty := str.StringToIntOrDefault(row[constant.ImportFieldTargetQty], constant.DefaultTargetQty)
	if targetQty <= 0 {
		targetQty = constant.DefaultTargetQty
	}
	achievedQty := str.StringToIntOrDefault(row[constant.ImportFieldAchievedQty], 0)
	if achievedQty < 0 {
		achievedQty = 0
	}

	newTask := &entity.Task{
		TaskType:           taskType,
		CompanyName:        row[constant.ImportFieldCompanyName],
		DocumentType:       row[constant.ImportFieldDocumentType],
		Priority:           priority,
		Status:             status,
		Description:        row[constant.ImportFieldDescription],
		Notes:              row[constant.ImportFieldNotes],
		SlaHours:           constant.DefaultSlaHours,
		TargetQty:          targetQty,
		AchievedQty:        achievedQty,
		AssignedUserID:     &actor.ID,
		WorkflowConfigID:   workflowConfigID,
		CustomWorkflowName: row[constant.ImportFieldCustomWorkflw],
	}
	if status == constant.TaskStatusCompleted {
		now := time.Now()
		newTask.CompletedAt = &now
	}

	if err := repos.task.Insert(newTask); err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	qty := achievedQty
	if qty <= 0 {
		qty = targetQty
	}
	return coordinator.applyIntakeVolume(newTask, &actor.ID, today(), qty)
}
