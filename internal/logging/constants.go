package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across commands, the HTTP
// server and the valuation engine.
const (
	FieldComponent  = "component"
	FieldFile       = "file_path"
	FieldBackend    = "backend"
	FieldFormat     = "format"
	FieldEntity     = "entity"
	FieldEntityID   = "entity_id"
	FieldAccountID  = "account_id"
	FieldReference  = "reference"
	FieldMissingID  = "missing_id"
	FieldMonth      = "month"
	FieldCurrency   = "currency"
	FieldGroupBy    = "group_by"
	FieldRange      = "range"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldAddr       = "addr"
	FieldMethod     = "method"
	FieldPath       = "path"
)
