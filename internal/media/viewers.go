package media

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

//go:embed viewers.toml
var viewersTOML []byte

// ViewerDefinition describes how to invoke one image viewer.
type ViewerDefinition struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	Command     string   `toml:"command,omitempty"`
	Args        []string `toml:"args,omitempty"`
}

type viewersFile struct {
	Viewers map[string]ViewerDefinition `toml:"viewers"`
}

// ViewerRegistry maps viewer names to invocations.
type ViewerRegistry struct {
	viewers map[string]ViewerDefinition
	goos    string
}

// NewViewerRegistry loads the built-in definitions and merges
// ~/.config/crossover/viewers.toml on top when present.
func NewViewerRegistry() (*ViewerRegistry, error) {
	r, err := parseViewers(viewersTOML)
	if err != nil {
		return nil, err
	}
	if home, err := os.UserHomeDir(); err == nil {
		r.mergeFile(filepath.Join(home, ".config", "crossover", "viewers.toml"))
	}
	return r, nil
}

func parseViewers(data []byte) (*ViewerRegistry, error) {
	var f viewersFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing viewers.toml: %w", err)
	}
	if f.Viewers == nil {
		f.Viewers = map[string]ViewerDefinition{}
	}
	return &ViewerRegistry{viewers: f.Viewers, goos: runtime.GOOS}, nil
}

func (r *ViewerRegistry) mergeFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	user, err := parseViewers(data)
	if err != nil {
		return
	}
	for name, def := range user.viewers {
		r.viewers[name] = def
	}
}

// Command builds the invocation of viewer for target. Unknown viewers are
// run as-is with target as the only argument.
func (r *ViewerRegistry) Command(viewer, target string) (*exec.Cmd, error) {
	def, ok := r.viewers[viewer]
	if !ok {
		return exec.Command(viewer, target), nil
	}

	if !r.supports(def) {
		return nil, fmt.Errorf("%s not supported on %s", viewer, r.goos)
	}

	name := viewer
	if def.Command != "" {
		name = def.Command
	}
	args := append(append([]string(nil), def.Args...), target)
	return exec.Command(name, args...), nil
}

func (r *ViewerRegistry) supports(def ViewerDefinition) bool {
	if len(def.Platforms) == 0 {
		return true
	}
	for _, p := range def.Platforms {
		if p == r.goos {
			return true
		}
	}
	return false
}

// Executable returns the binary that must be on PATH for viewer.
func (r *ViewerRegistry) Executable(viewer string) string {
	if def, ok := r.viewers[viewer]; ok && def.Command != "" {
		return def.Command
	}
	return viewer
}
