package constant

const (
	DefaultPageLimit = 100
)

const (
	EmptyString = ""
)

// CSV 导入列名常量
const (
	ImportFieldCompanyName   = "company_name"
	ImportFieldDocumentType  = "document_type"
	ImportFieldTaskType      = "task_type"
	ImportFieldPriority      = "priority"
	ImportFieldDescription   = "description"
	ImportFieldNotes         = "notes"
	ImportFieldWorkflow      = "Workflow"
	ImportFieldStatus        = "Status"
	ImportFieldTargetQty     = "Target Qty"
	ImportFieldAchievedQty   = "Achieved Qty"
	ImportFieldCustomWorkflw = "custom_workflow_name"
)
