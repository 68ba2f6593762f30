package setupfirebase

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// PathVar is the name of the search path variable.
const PathVar = "PATH"

// Environment is the process environment the installation reads from and
// writes to.
type Environment interface {
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
	// Environ returns every variable as a NAME=value pair.
	Environ() []string
}

// OSEnvironment reads and mutates the environment of the current process.
type OSEnvironment struct{}

func (OSEnvironment) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (OSEnvironment) Setenv(key, value string) error      { return os.Setenv(key, value) }
func (OSEnvironment) Environ() []string                   { return os.Environ() }

// MapEnvironment is an in-memory [Environment].
type MapEnvironment struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapEnvironment returns an environment seeded with vars.
func NewMapEnvironment(vars map[string]string) *MapEnvironment {
	env := MapEnvironment{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		env.vars[k] = v
	}
	return &env
}

func (m *MapEnvironment) LookupEnv(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.vars[key]
	return value, ok
}

func (m *MapEnvironment) Setenv(key, value string) error {
	if key == "" || strings.ContainsAny(key, "=\x00") {
		return fmt.Errorf("invalid environment variable name %q", key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.vars[key] = value
	return nil
}

// Environ returns the variables as sorted NAME=value pairs.
func (m *MapEnvironment) Environ() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	vars := make([]string, 0, len(m.vars))
	for k, v := range m.vars {
		vars = append(vars, k+"="+v)
	}
	sort.Strings(vars)
	return vars
}

// PrependPath puts dir in front of the search path of env.
func PrependPath(env Environment, dir string) error {
	value := dir
	if current, ok := env.LookupEnv(PathVar); ok && current != "" {
		value = dir + string(os.PathListSeparator) + current
	}

	if err := env.Setenv(PathVar, value); err != nil {
		return fmt.Errorf("failed to update %s: %w", PathVar, err)
	}
	return nil
}

// ErrNotFound is returned by [LookPath] when no executable matches.
var ErrNotFound = errors.New("executable file not found in PATH")

// LookPath searches the search path of env for an executable called name and
// returns its path. Empty entries resolve to the working directory.
func LookPath(env Environment, name string) (string, error) {
	if strings.Contains(name, "/") {
		if err := executable(name); err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		return name, nil
	}

	searchpath, _ := env.LookupEnv(PathVar)
	for _, dir := range filepath.SplitList(searchpath) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		if executable(candidate) == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

func executable(file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return fs.ErrPermission
	}

	if info.Mode()&0o111 == 0 {
		return fs.ErrPermission
	}

	return nil
}
