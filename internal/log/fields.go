package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldPath      = "path"
	FieldLine      = "line"
	FieldAccount   = "account"
	FieldPerson    = "person"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldCount     = "count"
	FieldSkipped   = "skipped"
	FieldPeriod    = "period"
	FieldView      = "view"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentImport    = "import"
	ComponentBreakdown = "breakdown"
	ComponentPlanner   = "planner"
	ComponentWorkspace = "workspace"
	ComponentSnapshot  = "snapshot"
	ComponentService   = "service"
)
