package media

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/pders01/crossover/internal/config"
	"github.com/pders01/crossover/internal/debuglog"
)

// Launcher opens preview images in an external viewer.
type Launcher struct {
	viewer   string
	registry *ViewerRegistry
	start    func(*exec.Cmd) error
}

func NewLauncher(cfg *config.Config) *Launcher {
	registry, err := NewViewerRegistry()
	if err != nil {
		// Continue with bare commands if the definitions can't be loaded
		registry = &ViewerRegistry{viewers: map[string]ViewerDefinition{}, goos: runtime.GOOS}
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = cfg.Media.Darwin
	case "linux":
		candidates = cfg.Media.Linux
	case "windows":
		candidates = cfg.Media.Windows
	default:
		candidates = cfg.Media.Linux
	}

	viewer := findCommand(registry, candidates...)
	if viewer == "" {
		viewer = cfg.Media.DefaultOpener
	}

	return &Launcher{
		viewer:   viewer,
		registry: registry,
		start:    startDetached,
	}
}

// Viewer returns the viewer Open will use.
func (l *Launcher) Viewer() string {
	return l.viewer
}

// Open shows imageURL in the configured viewer without waiting for it.
func (l *Launcher) Open(imageURL string) error {
	if err := checkImageURL(imageURL); err != nil {
		return err
	}
	if l.viewer == "" {
		return fmt.Errorf("no image viewer found")
	}

	cmd, err := l.registry.Command(l.viewer, imageURL)
	if err != nil {
		return err
	}

	debuglog.WithFields(map[string]interface{}{"component": "media", "viewer": l.viewer}).
		Infof("opening %s", imageURL)

	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", l.viewer, err)
	}
	return nil
}

func checkImageURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("no preview image")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid image URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("image URL must use http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("image URL must have a hostname")
	}
	return nil
}

// startDetached starts GUI viewers in the background and reaps them.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func findCommand(r *ViewerRegistry, viewers ...string) string {
	for _, v := range viewers {
		if _, err := exec.LookPath(r.Executable(v)); err == nil {
			return v
		}
	}
	return ""
}
