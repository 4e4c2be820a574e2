package dataset

import (
	perrs "github.com/strogo/oneDAL/pkg/errors"
)

// Dataset aggregates up to four partitions of a workload's data under fixed
// roles plus the scalar metadata benchmark fixtures consult. It is built
// once by a loader, read-only for the remainder of a benchmark run, and torn
// down between cases through Clear.
type Dataset struct {
	trainSlice DataSlice
	testSlice  DataSlice
	fullSlice  DataSlice
	indexSlice DataSlice

	numFeatures  int
	numResponses int
	numTries     int
}

// NewDatasetFromFull creates a dataset with only the full partition
// populated.
func NewDatasetFromFull(full DataSlice) *Dataset {
	return &Dataset{fullSlice: full}
}

// NewDataset creates a dataset with train and test partitions.
func NewDataset(train, test DataSlice) *Dataset {
	return &Dataset{trainSlice: train, testSlice: test}
}

// NewDatasetWithFull creates a dataset with train, test and full partitions.
func NewDatasetWithFull(train, test, full DataSlice) *Dataset {
	return &Dataset{trainSlice: train, testSlice: test, fullSlice: full}
}

// NewDatasetWithIndex creates a dataset with all four partitions.
func NewDatasetWithIndex(train, test, full, index DataSlice) *Dataset {
	return &Dataset{
		trainSlice: train,
		testSlice:  test,
		fullSlice:  full,
		indexSlice: index,
	}
}

// Full returns the full partition.
func (d *Dataset) Full() (DataSlice, error) {
	if d.fullSlice.Empty() {
		return DataSlice{}, perrs.NewEmptySliceError("full", "")
	}
	return d.fullSlice, nil
}

// Train returns the train partition.
func (d *Dataset) Train() (DataSlice, error) {
	if d.trainSlice.Empty() {
		return DataSlice{}, perrs.NewEmptySliceError("train", "")
	}
	return d.trainSlice, nil
}

// Test returns the test partition.
func (d *Dataset) Test() (DataSlice, error) {
	if d.testSlice.Empty() {
		return DataSlice{}, perrs.NewEmptySliceError("test", "")
	}
	return d.testSlice, nil
}

// Index returns the index partition.
func (d *Dataset) Index() (DataSlice, error) {
	if d.indexSlice.Empty() {
		return DataSlice{}, perrs.NewEmptySliceError("index", "")
	}
	return d.indexSlice, nil
}

// FullOrTrain prefers the full partition and falls back to train.
func (d *Dataset) FullOrTrain() (DataSlice, error) {
	if d.HasFull() {
		return d.Full()
	}
	if d.HasTrain() {
		return d.Train()
	}
	return DataSlice{}, perrs.NewEmptySliceError("full|train", "")
}

// FullOrTest prefers the full partition and falls back to test.
func (d *Dataset) FullOrTest() (DataSlice, error) {
	if d.HasFull() {
		return d.Full()
	}
	if d.HasTest() {
		return d.Test()
	}
	return DataSlice{}, perrs.NewEmptySliceError("full|test", "")
}

// HasFull reports whether the full partition is populated.
func (d *Dataset) HasFull() bool {
	return !d.fullSlice.Empty()
}

// HasTrain reports whether the train partition is populated.
func (d *Dataset) HasTrain() bool {
	return !d.trainSlice.Empty()
}

// HasTest reports whether the test partition is populated.
func (d *Dataset) HasTest() bool {
	return !d.testSlice.Empty()
}

// SetNumResponses records the response count and returns the dataset for
// chaining.
func (d *Dataset) SetNumResponses(numResponses int) *Dataset {
	d.numResponses = numResponses
	return d
}

// SetNumTries records the repetition count for repeated-measurement
// algorithms and returns the dataset for chaining.
func (d *Dataset) SetNumTries(numTries int) *Dataset {
	d.numTries = numTries
	return d
}

// SetNumFeatures records the feature count and returns the dataset for
// chaining.
func (d *Dataset) SetNumFeatures(numFeatures int) *Dataset {
	d.numFeatures = numFeatures
	return d
}

// NumResponses returns the stored response count, zero if unset.
func (d *Dataset) NumResponses() int {
	return d.numResponses
}

// NumTries returns the stored repetition count, zero if unset.
func (d *Dataset) NumTries() int {
	return d.numTries
}

// NumFeatures returns the stored feature count, zero if unset.
func (d *Dataset) NumFeatures() int {
	return d.numFeatures
}

// Clear releases all four partitions.
func (d *Dataset) Clear() {
	d.trainSlice.Clear()
	d.testSlice.Clear()
	d.fullSlice.Clear()
	d.indexSlice.Clear()
}
