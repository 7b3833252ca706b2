// Package export writes export files into the export directory without
// clobbering earlier exports, holding a per-user lock while it writes.
package export

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// LockName is the file name of the per-user export lock.
const LockName = "export.lock"

// Options controls Write.
type Options struct {
	// Overwrite replaces an existing file with different content instead of
	// picking a numbered name.
	Overwrite bool
	// LockTimeout bounds the wait for the export lock (default 5s).
	LockTimeout time.Duration
	// LockPath overrides the lock file location (default DefaultLockPath).
	LockPath string
}

// Result describes where the data ended up.
type Result struct {
	Path      string
	Unchanged bool // an identical file already existed; nothing was written
	Renamed   bool // name was taken by different content; a numbered name was used
}

// Write stores data as dir/name.
//
//   - name absent                       → written as is
//   - name present with identical bytes → left alone (Unchanged)
//   - name present with other bytes     → "name (1).ext", "name (2).ext", …
//     unless opts.Overwrite is set
func Write(dir, name string, data []byte, opts Options) (*Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create export dir %s: %w", dir, err)
	}
	unlock, err := acquireLock(opts.LockPath, opts.LockTimeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	dst := filepath.Join(dir, name)
	res := &Result{Path: dst}
	for n := 1; ; n++ {
		if _, err := os.Stat(res.Path); os.IsNotExist(err) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("cannot stat %s: %w", res.Path, err)
		}
		same, err := sameContent(res.Path, data)
		if err != nil {
			return nil, fmt.Errorf("md5 %s: %w", res.Path, err)
		}
		if same {
			res.Unchanged = true
			return res, nil
		}
		if opts.Overwrite {
			break
		}
		res.Path = numberedPath(dst, n)
		res.Renamed = true
	}

	if err := os.WriteFile(res.Path, data, 0o644); err != nil {
		return nil, fmt.Errorf("cannot write %s: %w", res.Path, err)
	}
	return res, nil
}

// numberedPath inserts " (n)" before the final extension.
//
//	transactions_business_export.csv → transactions_business_export (2).csv
func numberedPath(original string, n int) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)
	return base + " (" + strconv.Itoa(n) + ")" + ext
}

// sameContent reports whether the file at path holds exactly data.
func sameContent(path string, data []byte) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return false, err
	}
	want := md5.Sum(data)
	return bytes.Equal(h.Sum(nil), want[:]), nil
}

// acquireLock obtains the export lock, polling until timeout.
func acquireLock(lockPath string, timeout time.Duration) (func(), error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if lockPath == "" {
		p, err := DefaultLockPath()
		if err != nil {
			return nil, err
		}
		lockPath = p
	}
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire export lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("another export is in progress (lock: %s)", lockPath)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// DefaultLockPath returns the per-user lock path, in the user cache dir when
// there is one and under ~/.tagsheet otherwise. Export directories never get
// a lock file.
func DefaultLockPath() (string, error) {
	if cacheDir, err := os.UserCacheDir(); err == nil && cacheDir != "" {
		dir := filepath.Join(cacheDir, "tagsheet")
		if err := os.MkdirAll(dir, 0o755); err == nil {
			return filepath.Join(dir, LockName), nil
		}
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dir := filepath.Join(home, ".tagsheet")
		if err := os.MkdirAll(dir, 0o755); err == nil {
			return filepath.Join(dir, LockName), nil
		}
	}
	return "", fmt.Errorf("cannot determine writable lock directory")
}
