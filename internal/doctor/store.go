package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/premkumr/ybmetrics/internal/lock"
)

// StoreDirCheck verifies the snapshot store's directory exists and is writable.
type StoreDirCheck struct {
	StorePath string
}

func (c *StoreDirCheck) Name() string     { return "store_dir" }
func (c *StoreDirCheck) Category() string { return CategoryStore }

func (c *StoreDirCheck) Run(context.Context) CheckResult {
	dir := filepath.Dir(c.StorePath)

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Store directory does not exist: %s", dir),
			Suggestion: "Run with --fix to create it, or point --store-path elsewhere",
			Fixable:    true,
		}
	}
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot access store directory: %v", err),
			Suggestion: "Check permissions on " + dir,
		}
	}
	if !info.IsDir() {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Store parent is not a directory: %s", dir),
			Suggestion: "Point --store-path at a file inside a directory",
		}
	}

	tmp, err := os.CreateTemp(dir, ".ybmetrics-doctor-*")
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Store directory is not writable: %s", dir),
			Suggestion: "Check permissions, or point --store-path elsewhere",
		}
	}
	tmp.Close()
	os.Remove(tmp.Name())

	msg := fmt.Sprintf("Store %s (will be created)", c.StorePath)
	if st, err := os.Stat(c.StorePath); err == nil {
		msg = fmt.Sprintf("Store %s (%d bytes)", c.StorePath, st.Size())
	}
	return CheckResult{Name: c.Name(), Status: StatusPass, Message: msg}
}

// Fix creates the missing store directory.
func (c *StoreDirCheck) Fix() error {
	return os.MkdirAll(filepath.Dir(c.StorePath), 0755)
}

// StoreLockCheck reports whether another process holds the store's lock.
type StoreLockCheck struct {
	StorePath string
}

func (c *StoreLockCheck) Name() string     { return "store_lock" }
func (c *StoreLockCheck) Category() string { return CategoryStore }

func (c *StoreLockCheck) Run(context.Context) CheckResult {
	path := lock.PathFor(c.StorePath)

	st, err := lock.Inspect(path)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot read lock file: %v", err),
			Suggestion: "Check permissions on " + path,
		}
	}

	switch {
	case st == nil:
		return CheckResult{Name: c.Name(), Status: StatusPass, Message: "Store is not locked"}
	case st.Stale:
		msg := "Stale lock file left by a dead process"
		if st.Holder != nil {
			msg = fmt.Sprintf("Stale lock file left by %s", st.Holder)
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    msg,
			Suggestion: "Run with --fix to remove " + path,
			Fixable:    true,
		}
	case st.Holder == nil:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Lock file is unreadable, another process may be starting",
			Suggestion: "Re-run in a few seconds",
		}
	default:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Store locked by %s for %s", st.Holder, st.Holder.Age().Round(time.Second)),
			Suggestion: "monitor and clean will refuse to start until it exits",
		}
	}
}

// Fix removes the lock file when it is still stale.
func (c *StoreLockCheck) Fix() error {
	path := lock.PathFor(c.StorePath)
	st, err := lock.Inspect(path)
	if err != nil || st == nil || !st.Stale {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// NewStoreChecks creates the store directory and lock checks.
func NewStoreChecks(storePath string) []Check {
	return []Check{
		&StoreDirCheck{StorePath: storePath},
		&StoreLockCheck{StorePath: storePath},
	}
}
