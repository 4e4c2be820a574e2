package dataset

import (
	"os"
	"path/filepath"
	"sync"
)

// RootPathEnv is the environment variable holding the process-wide root
// directory workloads resolve against.
const RootPathEnv = "DALBENCH_ROOT"

var (
	rootMu   sync.RWMutex
	rootSet  bool
	rootPath string
)

// RootPath returns the process-wide dataset root directory. It defaults to
// the DALBENCH_ROOT environment variable on first use and is stable after
// that unless overridden through SetRootPath.
func RootPath() string {
	rootMu.RLock()
	if rootSet {
		path := rootPath
		rootMu.RUnlock()
		return path
	}
	rootMu.RUnlock()

	rootMu.Lock()
	defer rootMu.Unlock()
	if !rootSet {
		rootPath = os.Getenv(RootPathEnv)
		rootSet = true
	}
	return rootPath
}

// SetRootPath overrides the dataset root directory. Intended for CLI
// bootstrap and tests.
func SetRootPath(path string) {
	rootMu.Lock()
	defer rootMu.Unlock()
	rootPath = path
	rootSet = true
}

// Workload resolves on-disk locations for a named dataset under the
// process-wide root directory.
type Workload struct {
	name string
}

// NewWorkload creates a workload handle for the given name.
func NewWorkload(name string) Workload {
	return Workload{name: name}
}

// Name returns the workload name.
func (w Workload) Name() string {
	return w.name
}

// Path returns the workload's directory: <root>/workloads/<name>.
func (w Workload) Path() string {
	return filepath.Join(RootPath(), "workloads", w.name)
}

// PathToDataset returns the location of one of the workload's dataset
// files: <root>/workloads/<name>/dataset/<fileName>.
func (w Workload) PathToDataset(fileName string) string {
	return filepath.Join(RootPath(), "workloads", w.name, "dataset", fileName)
}
