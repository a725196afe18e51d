package hostfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/hnrobert/lusers/internal/logger"
)

// locks holds one mutex per path for the life of the process.
var locks sync.Map

func lockPath(path string) func() {
	v, _ := locks.LoadOrStore(filepath.Clean(path), &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func ReadFile(path string) ([]byte, error) {
	defer lockPath(path)()
	return os.ReadFile(path)
}

func EnsureDir(path string, perm os.FileMode) error {
	defer lockPath(path)()
	return os.MkdirAll(path, perm)
}

// WriteFileAtomic replaces path with data through a synced temp file in the
// same directory. The parent directory must exist.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	defer lockPath(path)()

	dir := filepath.Dir(path)
	tmpName, err := writeTemp(dir, data, perm)
	if err != nil {
		return fmt.Errorf("write temp file for %s: %w", path, err)
	}
	defer func() { _ = os.Remove(tmpName) }()

	if err := os.Rename(tmpName, path); err != nil {
		// Bind-mounted targets cannot be replaced by rename.
		if !errors.Is(err, syscall.EBUSY) && !errors.Is(err, syscall.EXDEV) && !errors.Is(err, syscall.EPERM) {
			return err
		}
		logger.Warn("hostfs: rename onto %s failed (%v); rewriting in place", path, err)
		return rewriteInPlace(path, data, perm)
	}
	syncDir(dir)
	return nil
}

func writeTemp(dir string, data []byte, perm os.FileMode) (string, error) {
	tmp, err := os.CreateTemp(dir, ".lusers-*")
	if err != nil {
		return "", err
	}
	name := tmp.Name()
	err = func() error {
		if _, err := tmp.Write(data); err != nil {
			return err
		}
		if err := tmp.Chmod(perm); err != nil {
			return err
		}
		return tmp.Sync()
	}()
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}

func rewriteInPlace(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	_ = f.Sync()
	return f.Close()
}

func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
