// Package log defines standard attribute keys for dataset loading and
// partitioning operations.
//
// Using these keys keeps records consistent across the table and dataset
// packages, so benchmark logs can be filtered by workload, role, or shape.
// Keys follow a hierarchical naming convention (e.g. "dataset.role",
// "data.rows").

package log

// Workload and operation context.
const (
	// WorkloadKey identifies the named workload a dataset belongs to.
	// Examples: "higgs_2m", "epsilon_80k"
	WorkloadKey = "workload.name"

	// RoleKey identifies the dataset partition being processed.
	// Standard values: "train", "test", "full", "index"
	RoleKey = "dataset.role"

	// OperationKey specifies the pipeline operation being performed.
	// Standard values: "load", "load_slice", "partition", "csv_parse"
	OperationKey = "dataset.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "table", "dataset"
	ComponentKey = "dataset.component"
)

// Data shape and characteristics.
const (
	// PathKey is the on-disk path of the file being loaded.
	PathKey = "data.path"

	// RowsKey is the number of observations (rows) in a table.
	RowsKey = "data.rows"

	// ColsKey is the number of columns in a table.
	ColsKey = "data.cols"

	// FeaturesKey is the configured number of feature columns.
	FeaturesKey = "data.features"

	// ResponsesKey is the configured number of response columns.
	ResponsesKey = "data.responses"

	// BlocksKey is the number of row blocks a slice was partitioned into.
	BlocksKey = "data.blocks"

	// TableTypeKey is the storage-type tag of the tables being produced.
	// Examples: "homogen_float32", "homogen_float64"
	TableTypeKey = "data.table_type"

	// LabeledKey reports whether a slice carries response blocks.
	LabeledKey = "data.labeled"
)

// Performance metrics.
const (
	// DurationMsKey records the execution time of an operation in
	// milliseconds.
	DurationMsKey = "perf.duration_ms"

	// MemoryUsageKey records memory usage in bytes during the operation.
	MemoryUsageKey = "perf.memory_bytes"
)

// Error context.
const (
	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "CannotOpenFileError", "CannotReadCSVError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Populated automatically by ErrFmtHandler.
	StacktraceKey = StacktraceAttrKey
)
