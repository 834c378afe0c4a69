package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	yberrors "github.com/premkumr/ybmetrics/internal/errors"
)

// UnreadableGrace is how long a lock file that cannot be parsed is still
// honored. Younger unreadable files may belong to a process that is starting.
const UnreadableGrace = 5 * time.Second

// Lock is a held instance lock file. Only one monitor may own a snapshot
// store at a time.
type Lock struct {
	Path string
	Info *LockInfo
}

// PathFor returns the lock file guarding the store at storePath.
func PathFor(storePath string) string {
	return storePath + ".lock"
}

// Acquire creates the lock file at path, failing if a live process holds it.
// Lock files left behind by a dead process on this host, or unreadable ones
// older than UnreadableGrace, are removed and acquisition is retried once.
func Acquire(path, command string) (*Lock, error) {
	info := NewLockInfo(command)

	for attempt := 0; attempt < 2; attempt++ {
		err := create(path, info)
		if err == nil {
			return &Lock{Path: path, Info: info}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, yberrors.WrapWithCode(err, yberrors.ErrLock,
				"Failed to create lock file "+path,
				"Check permissions on the store directory")
		}

		holder, readErr := readHolder(path)
		switch {
		case os.IsNotExist(readErr):
			// released between create and read
			continue
		case readErr != nil:
			if !abandoned(path) {
				return nil, yberrors.WrapWithCode(ErrLocked, yberrors.ErrLock,
					"Another metrics process is starting",
					fmt.Sprintf("Lock file %s is unreadable; retry in a few seconds.", path))
			}
		case !isStale(holder, info.Hostname):
			return nil, yberrors.WrapWithCode(ErrLocked, yberrors.ErrLock,
				"Another metrics process is running",
				fmt.Sprintf("Lock held by: %s. Stop it, or remove %s if it is gone.", holder, path))
		}

		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, yberrors.WrapWithCode(err, yberrors.ErrLock,
				"Failed to remove stale lock file "+path,
				"Remove it manually")
		}
	}

	return nil, yberrors.WrapWithCode(ErrLocked, yberrors.ErrLock,
		"Lock file keeps reappearing: "+path,
		"Another metrics process may be starting at the same time")
}

// Release removes the lock file if it still belongs to this process.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := readHolder(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if holder.PID != l.Info.PID || holder.Hostname != l.Info.Hostname {
		return nil
	}
	return os.Remove(l.Path)
}

// create publishes info at path, failing with os.ErrExist if it already
// exists. The record is written to a temp file and hard-linked into place,
// so path never holds a partial record.
func create(path string, info *LockInfo) error {
	data, err := info.Marshal()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Link(tmp.Name(), path)
}

func readHolder(path string) (*LockInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLockInfo(data)
}

// abandoned reports whether an unreadable lock file is older than
// UnreadableGrace.
func abandoned(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return os.IsNotExist(err)
	}
	return time.Since(fi.ModTime()) > UnreadableGrace
}

// isStale reports whether holder is a dead process on this host. Locks from
// other hosts (shared filesystems) are never considered stale.
func isStale(holder *LockInfo, hostname string) bool {
	if holder.Hostname != hostname {
		return false
	}
	if holder.PID <= 0 {
		return true
	}
	return !processAlive(holder.PID)
}

func processAlive(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = p.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

// Status describes the lock file guarding a store without acquiring it.
// Holder is nil when the file cannot be parsed.
type Status struct {
	Holder *LockInfo
	Stale  bool
}

// Inspect reads the lock file at path. It returns a nil Status when no lock
// file exists. An unparseable lock file has no holder and is stale only once
// it is older than UnreadableGrace.
func Inspect(path string) (*Status, error) {
	holder, err := readHolder(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		var perr *os.PathError
		if errors.As(err, &perr) {
			return nil, err
		}
		return &Status{Stale: abandoned(path)}, nil
	}
	self := NewLockInfo("")
	return &Status{Holder: holder, Stale: isStale(holder, self.Hostname)}, nil
}
