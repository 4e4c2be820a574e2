// Package onedal provides the dataset plumbing for algorithm benchmarking:
// typed in-memory tables with scoped row views, deep-copy row partitioning
// and CSV workload loading.
//
// # Quick Start
//
// Load a labeled CSV workload split into four row blocks:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/strogo/oneDAL/core/table"
//	    "github.com/strogo/oneDAL/dataset"
//	)
//
//	func main() {
//	    w := dataset.NewWorkload("higgs")
//
//	    ds, err := dataset.NewDatasetFromCSV().
//	        PathToTrain(w.PathToDataset("higgs_train.csv")).
//	        PathToTest(w.PathToDataset("higgs_test.csv")).
//	        NumFeatures(28).
//	        Regression().
//	        NumBlocks(4).
//	        Load(table.HomogenFloat64)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    train, err := ds.FullOrTrain()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("training blocks:", train.NumBlocks())
//	}
//
// # Packages
//
//   - core/table: typed tables, scoped row views, joined views, the table
//     factory and CSV sources
//   - core/parallel: worker helpers used by the partitioner
//   - dataset: slices, datasets, the CSV loading pipeline and workload
//     path resolution
//   - pkg/errors: typed errors with stack traces
//   - pkg/log: structured logging
package onedal
