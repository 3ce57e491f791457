package node

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mwantia/contentvfs/log"
)

// fsLog is used by the filesystem helpers below. The read-side helpers
// don't carry their own Manager reference; the write-side helpers
// (WriteTextFile, WriteFile, CreateDirectories) are Manager methods
// because they check the node chain's write permission. The read-side
// ones are deliberately package-level because spec.md lists them as
// standalone filesystem helpers the rest of the system consumes
// directly, mirroring the upstream free functions (Exists, IsDirectory,
// ReadTextFile, ...) that sit alongside, but outside, the Node::Manager
// class.
var fsLog = log.NewLogger("node/fsops", log.Warn, "", false)

// SetLogger replaces the logger used by the filesystem helper
// functions (Exists, ReadTextFile, ...). Intended to be called once at
// startup so these helpers share the host application's log sink.
func SetLogger(logger *log.Logger) {
	if logger != nil {
		fsLog = logger
	}
}

// utf8BOM is the three-byte UTF-8 byte-order-mark some definition files
// and text assets are saved with.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Exists reports whether absPath exists on the filesystem. Never
// raises; filesystem errors are logged and treated as non-existence.
func Exists(absPath string) bool {
	_, err := os.Stat(absPath)
	if err != nil {
		if !os.IsNotExist(err) {
			fsLog.Warn("stat %s: %v", absPath, err)
		}
		return false
	}
	return true
}

// IsDirectory reports whether absPath exists and is a directory.
func IsDirectory(absPath string) bool {
	info, err := os.Stat(absPath)
	if err != nil {
		if !os.IsNotExist(err) {
			fsLog.Warn("stat %s: %v", absPath, err)
		}
		return false
	}
	return info.IsDir()
}

// IsRegularFile reports whether absPath exists and is a regular file.
func IsRegularFile(absPath string) bool {
	info, err := os.Stat(absPath)
	if err != nil {
		if !os.IsNotExist(err) {
			fsLog.Warn("stat %s: %v", absPath, err)
		}
		return false
	}
	return info.Mode().IsRegular()
}

// IsEmpty reports whether absPath is empty: for a directory, it
// contains no entries other than . and ..; for any other object, its
// size is 0.
func IsEmpty(absPath string) bool {
	info, err := os.Stat(absPath)
	if err != nil {
		if !os.IsNotExist(err) {
			fsLog.Warn("stat %s: %v", absPath, err)
		}
		return false
	}

	if info.IsDir() {
		entries, err := os.ReadDir(absPath)
		if err != nil {
			fsLog.Warn("readdir %s: %v", absPath, err)
			return false
		}
		return len(entries) == 0
	}

	return info.Size() == 0
}

// LastWriteTime returns the last modification time for absPath, or the
// zero time if it doesn't exist or can't be stat'd.
func LastWriteTime(absPath string) time.Time {
	info, err := os.Stat(absPath)
	if err != nil {
		if !os.IsNotExist(err) {
			fsLog.Warn("stat %s: %v", absPath, err)
		}
		return time.Time{}
	}
	return info.ModTime()
}

// PathsInDir returns every filesystem object found beneath absDirPath,
// excluding "." and "..", optionally recursing into sub-directories.
func PathsInDir(absDirPath string, recursive bool) []string {
	return PathsInDirFiltered(absDirPath, nil, recursive)
}

// PathsInDirFiltered behaves like PathsInDir but only includes entries
// for which pred returns true. A nil pred matches everything.
func PathsInDirFiltered(absDirPath string, pred func(string) bool, recursive bool) []string {
	var found []string

	err := filepath.WalkDir(absDirPath, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			fsLog.Warn("walk %s: %v", p, err)
			return nil
		}
		if p == absDirPath {
			return nil
		}
		if pred == nil || pred(p) {
			found = append(found, p)
		}
		if !recursive && d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		fsLog.Error("failed to enumerate %s: %v", absDirPath, err)
		return nil
	}

	return found
}

// FilesInDir returns every regular file found beneath dirPath,
// optionally filtered by a required (dot-prefixed) extension.
func FilesInDir(dirPath string, recursive bool, extension string) []string {
	return PathsInDirFiltered(dirPath, func(p string) bool {
		if !IsRegularFile(p) {
			return false
		}
		if extension == "" {
			return true
		}
		return strings.EqualFold(filepath.Ext(p), extension)
	}, recursive)
}

// EraseFile removes a regular file from the filesystem. Returns true
// if absPath was an existing regular file that was erased.
func EraseFile(absPath string) bool {
	if !IsRegularFile(absPath) {
		return false
	}
	if err := os.Remove(absPath); err != nil {
		fsLog.Error("remove %s: %v", absPath, err)
		return false
	}
	return true
}

// ReadTextFile reads absPath as UTF-8 text, stripping a leading
// byte-order-mark if present, and returns its contents.
func ReadTextFile(absPath string) (string, bool) {
	var contents string
	ok := ReadFile(absPath, func(r io.Reader) bool {
		data, err := io.ReadAll(r)
		if err != nil {
			fsLog.Error("read %s: %v", absPath, err)
			return false
		}
		data = bytes.TrimPrefix(data, utf8BOM)
		contents = string(data)
		return true
	})
	return contents, ok
}

// ReadFile opens absPath and streams its contents through handler,
// returning whether the open succeeded and handler returned true.
func ReadFile(absPath string, handler func(io.Reader) bool) bool {
	f, err := os.Open(absPath)
	if err != nil {
		fsLog.Warn("open %s: %v", absPath, err)
		return false
	}
	defer f.Close()

	return handler(bufio.NewReader(f))
}

// WriteTextFile writes contents to absPath as UTF-8 text, requiring
// that the target's node chain permit writes.
func (m *Manager) WriteTextFile(absPath, contents string) bool {
	return m.WriteFile(absPath, func(w io.Writer) bool {
		_, err := io.WriteString(w, contents)
		if err != nil {
			fsLog.Error("write %s: %v", absPath, err)
			return false
		}
		return true
	})
}

// WriteFile opens (creating if necessary) absPath for writing and
// streams handler's output into it. Refuses relative paths and paths
// whose node chain does not permit writes.
func (m *Manager) WriteFile(absPath string, handler func(io.Writer) bool) bool {
	node := m.Emplace(absPath)
	if node == nil {
		fsLog.Error("no node for %s", absPath)
		return false
	}
	if node.IsRelative() {
		fsLog.Error("refusing to write relative path %s", absPath)
		return false
	}
	if !node.Writeable() {
		fsLog.Error("permission denied writing %s", absPath)
		return false
	}

	f, err := os.Create(absPath)
	if err != nil {
		fsLog.Error("create %s: %v", absPath, err)
		return false
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	ok := handler(w)
	if ok {
		ok = w.Flush() == nil
	}

	node.ResetStatus()
	return ok
}

// CreateDirectories creates targetPath and any missing parent
// directories. Refuses relative paths and paths whose node chain does
// not permit writes, matching WriteFile.
func (m *Manager) CreateDirectories(targetPath string) bool {
	node := m.Emplace(targetPath)
	if node == nil {
		fsLog.Error("no node for %s", targetPath)
		return false
	}
	if node.IsRelative() {
		fsLog.Error("refusing to create relative path %s", targetPath)
		return false
	}
	if !node.Writeable() {
		fsLog.Error("permission denied creating %s", targetPath)
		return false
	}

	if err := os.MkdirAll(targetPath, 0o755); err != nil {
		fsLog.Error("mkdir -p %s: %v", targetPath, err)
		return false
	}

	node.ResetStatus()
	return true
}
