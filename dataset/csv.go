package dataset

import (
	"os"
	"time"

	"github.com/strogo/oneDAL/core/table"
	perrs "github.com/strogo/oneDAL/pkg/errors"
	"github.com/strogo/oneDAL/pkg/log"
)

// DatasetFromCSV accumulates file paths and shape metadata for a workload
// and drives the load-and-partition pipeline. It is a recipe consumed
// exactly once by Load; setters are fluent and mutate the builder in place.
type DatasetFromCSV struct {
	pathToFull  string
	pathToTrain string
	pathToTest  string
	pathToIndex string

	numFeatures  int
	numResponses int
	numBlocks    int
	numTries     int

	labeled        bool
	onErrorMessage string
}

// NewDatasetFromCSV creates a builder with a single block and labeled
// loading enabled. The labeled path is only taken once a response count is
// configured.
func NewDatasetFromCSV() *DatasetFromCSV {
	return &DatasetFromCSV{
		numBlocks: 1,
		numTries:  1,
		labeled:   true,
	}
}

// PathToFull sets the path of the full partition's file.
func (c *DatasetFromCSV) PathToFull(value string) *DatasetFromCSV {
	c.pathToFull = value
	return c
}

// PathToTrain sets the path of the train partition's file.
func (c *DatasetFromCSV) PathToTrain(value string) *DatasetFromCSV {
	c.pathToTrain = value
	return c
}

// PathToTest sets the path of the test partition's file.
func (c *DatasetFromCSV) PathToTest(value string) *DatasetFromCSV {
	c.pathToTest = value
	return c
}

// PathToIndex sets the path of the index partition's file.
func (c *DatasetFromCSV) PathToIndex(value string) *DatasetFromCSV {
	c.pathToIndex = value
	return c
}

// NumFeatures sets the number of feature columns.
func (c *DatasetFromCSV) NumFeatures(numFeatures int) *DatasetFromCSV {
	c.numFeatures = numFeatures
	return c
}

// NumResponses sets the number of response columns.
func (c *DatasetFromCSV) NumResponses(numResponses int) *DatasetFromCSV {
	c.numResponses = numResponses
	return c
}

// NumBlocks sets the number of row blocks each slice is partitioned into.
func (c *DatasetFromCSV) NumBlocks(numBlocks int) *DatasetFromCSV {
	c.numBlocks = numBlocks
	return c
}

// NumTries sets the repetition count for repeated-measurement algorithms.
func (c *DatasetFromCSV) NumTries(numTries int) *DatasetFromCSV {
	c.numTries = numTries
	return c
}

// Regression marks the dataset as a single-response regression problem.
func (c *DatasetFromCSV) Regression() *DatasetFromCSV {
	c.numResponses = 1
	return c
}

// Unlabeled forces label-free loading even when a response count was set.
func (c *DatasetFromCSV) Unlabeled() *DatasetFromCSV {
	c.labeled = false
	return c
}

// OnError appends a diagnostic message to load failures, typically a hint
// on how to obtain the workload's files.
func (c *DatasetFromCSV) OnError(message string) *DatasetFromCSV {
	c.onErrorMessage = message
	return c
}

// Load reads the configured files into partitioned slices of the given
// storage type and assembles the Dataset. The four slots load strictly in
// sequence (train, test, full, index) and the first failure aborts the
// whole call: no partial Dataset is ever returned.
func (c *DatasetFromCSV) Load(typ table.Type) (*Dataset, error) {
	start := time.Now()
	logger := log.GetLogger().With(
		log.ComponentKey, "dataset",
		log.TableTypeKey, typ.String(),
	)

	trainSlice, err := c.loadSlice("train", c.pathToTrain, typ, logger)
	if err != nil {
		return nil, err
	}
	testSlice, err := c.loadSlice("test", c.pathToTest, typ, logger)
	if err != nil {
		return nil, err
	}
	fullSlice, err := c.loadSlice("full", c.pathToFull, typ, logger)
	if err != nil {
		return nil, err
	}
	indexSlice, err := c.loadSlice("index", c.pathToIndex, typ, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("dataset loaded",
		log.OperationKey, "load",
		log.FeaturesKey, c.numFeatures,
		log.ResponsesKey, c.numResponses,
		log.BlocksKey, c.numBlocks,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return NewDatasetWithIndex(trainSlice, testSlice, fullSlice, indexSlice).
		SetNumResponses(c.numResponses).
		SetNumTries(c.numTries).
		SetNumFeatures(c.numFeatures), nil
}

// loadSlice loads one partition slot. An unset path yields an empty slice:
// absent roles are legal.
func (c *DatasetFromCSV) loadSlice(role, path string, typ table.Type, logger log.Logger) (DataSlice, error) {
	if path == "" {
		return EmptySlice(), nil
	}

	withResponses := c.labeled && c.numResponses > 0
	if withResponses && c.numFeatures == 0 {
		return DataSlice{}, perrs.NewCannotLoadDatasetError(path,
			"number of features undefined. To load a CSV dataset with responses NumFeatures must be specified")
	}

	if !canOpenFile(path) {
		return DataSlice{}, perrs.NewCannotOpenFileError(path, c.onErrorMessage)
	}

	var (
		slice DataSlice
		err   error
	)
	if withResponses {
		slice, err = c.loadWithResponseVariable(path, typ)
	} else {
		slice, err = c.loadNoResponseVariable(path, typ)
	}
	if err != nil {
		logger.Error("slice load failed",
			log.OperationKey, "load_slice",
			log.RoleKey, role,
			log.PathKey, path,
			log.ErrAttr(err),
		)
		return DataSlice{}, err
	}

	cols := 0
	if x, xerr := slice.X(); xerr == nil {
		cols = x.Cols()
	}
	logger.Info("slice loaded",
		log.OperationKey, "load_slice",
		log.RoleKey, role,
		log.PathKey, path,
		log.RowsKey, totalRows(slice),
		log.ColsKey, cols,
		log.BlocksKey, slice.NumBlocks(),
		log.LabeledKey, slice.Labeled(),
	)
	return slice, nil
}

// loadNoResponseVariable streams the whole file into one feature table.
// The table infers its width from the first record when no feature count
// was configured.
func (c *DatasetFromCSV) loadNoResponseVariable(path string, typ table.Type) (DataSlice, error) {
	x, err := table.Create(typ, c.numFeatures, 0, table.DoNotAllocate)
	if err != nil {
		return DataSlice{}, err
	}

	if err := c.parseInto(path, x); err != nil {
		return DataSlice{}, err
	}

	return NewSlice(x, c.numBlocks, typ)
}

// loadWithResponseVariable splits each record between a feature table and a
// response table through a joined view, populating both in one pass over
// the file.
func (c *DatasetFromCSV) loadWithResponseVariable(path string, typ table.Type) (DataSlice, error) {
	x, err := table.Create(typ, c.numFeatures, 0, table.DoNotAllocate)
	if err != nil {
		return DataSlice{}, err
	}
	y, err := table.Create(typ, c.numResponses, 0, table.DoNotAllocate)
	if err != nil {
		return DataSlice{}, err
	}
	xy, err := table.NewMerged(x, y)
	if err != nil {
		return DataSlice{}, err
	}

	if err := c.parseInto(path, xy); err != nil {
		return DataSlice{}, err
	}

	return NewLabeledSlice(x, y, c.numBlocks, typ)
}

// parseInto runs the CSV parse with panic recovery, so malformed inputs
// can never take down a benchmark binary.
func (c *DatasetFromCSV) parseInto(path string, dst table.Table) error {
	appender, ok := dst.(table.RowAppender)
	if !ok {
		return perrs.NewCannotLoadDatasetError(path,
			"table type "+dst.Type().String()+" does not support streaming load")
	}

	return perrs.SafeExecute("csv parse", func() error {
		_, err := table.NewCSVSource(path).LoadAll(appender)
		return err
	})
}

// canOpenFile checks that the path resolves to a readable file.
func canOpenFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// totalRows sums the row counts of a slice's feature blocks.
func totalRows(s DataSlice) int {
	rows := 0
	for i := 0; i < s.NumBlocks(); i++ {
		if x, err := s.XBlock(i); err == nil {
			rows += x.Rows()
		}
	}
	return rows
}
