package media

import (
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/pders01/crossover/internal/config"
)

func TestEmbeddedViewersParse(t *testing.T) {
	r, err := parseViewers(viewersTOML)
	if err != nil {
		t.Fatalf("embedded viewers.toml: %v", err)
	}
	for _, name := range []string{"open", "feh", "eog", "xdg-open", "start"} {
		if _, ok := r.viewers[name]; !ok {
			t.Errorf("missing built-in viewer %q", name)
		}
	}
}

func TestRegistryCommand(t *testing.T) {
	r, err := parseViewers(viewersTOML)
	if err != nil {
		t.Fatal(err)
	}
	target := "https://image.tmdb.org/t/p/w500/poster.jpg"

	r.goos = "linux"
	cmd, err := r.Command("feh", target)
	if err != nil {
		t.Fatalf("Command(feh) error = %v", err)
	}
	want := []string{"feh", "--scale-down", "--auto-zoom", "--title", "crossover preview", target}
	if !equalArgs(cmd.Args, want) {
		t.Errorf("feh args = %v, want %v", cmd.Args, want)
	}

	if _, err := r.Command("open", target); err == nil {
		t.Error("open should not be supported on linux")
	}

	r.goos = "windows"
	cmd, err = r.Command("start", target)
	if err != nil {
		t.Fatalf("Command(start) error = %v", err)
	}
	want = []string{"cmd", "/c", "start", "", target}
	if !equalArgs(cmd.Args, want) {
		t.Errorf("start args = %v, want %v", cmd.Args, want)
	}
	if got := r.Executable("start"); got != "cmd" {
		t.Errorf("Executable(start) = %s, want cmd", got)
	}

	cmd, err = r.Command("my-viewer", target)
	if err != nil {
		t.Fatalf("unknown viewer should pass through, got %v", err)
	}
	if !equalArgs(cmd.Args, []string{"my-viewer", target}) {
		t.Errorf("pass-through args = %v", cmd.Args)
	}
}

func TestUserViewersOverride(t *testing.T) {
	r, err := parseViewers(viewersTOML)
	if err != nil {
		t.Fatal(err)
	}
	user, err := parseViewers([]byte(`
[viewers.feh]
platforms = ["linux"]
args = ["-F"]
`))
	if err != nil {
		t.Fatal(err)
	}
	for name, def := range user.viewers {
		r.viewers[name] = def
	}

	r.goos = "linux"
	cmd, err := r.Command("feh", "https://books.google.com/cover.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if !equalArgs(cmd.Args, []string{"feh", "-F", "https://books.google.com/cover.jpg"}) {
		t.Errorf("override args = %v", cmd.Args)
	}
}

func TestLauncherOpen(t *testing.T) {
	cfg := config.TestConfig()
	l := NewLauncher(cfg)

	var started *exec.Cmd
	l.start = func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}
	l.viewer = "my-viewer"

	if err := l.Open("https://image.tmdb.org/t/p/w500/poster.jpg"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if started == nil {
		t.Fatal("Open() did not start a viewer")
	}
	if started.Args[len(started.Args)-1] != "https://image.tmdb.org/t/p/w500/poster.jpg" {
		t.Errorf("viewer started with %v", started.Args)
	}
}

func TestLauncherOpenRejectsBadURLs(t *testing.T) {
	l := NewLauncher(config.TestConfig())
	l.viewer = "my-viewer"
	l.start = func(*exec.Cmd) error {
		t.Fatal("viewer must not start for an invalid URL")
		return nil
	}

	for _, raw := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "https://"} {
		if err := l.Open(raw); err == nil {
			t.Errorf("Open(%q) should fail", raw)
		}
	}
}

func TestLauncherStartFailure(t *testing.T) {
	l := NewLauncher(config.TestConfig())
	l.viewer = "my-viewer"
	l.start = func(*exec.Cmd) error { return errors.New("exec: not found") }

	if err := l.Open("https://image.tmdb.org/t/p/w500/poster.jpg"); err == nil {
		t.Error("Open() should surface start failures")
	}
}

func TestNewLauncherFallsBackToDefaultOpener(t *testing.T) {
	cfg := config.TestConfig()
	cfg.Media.Darwin = []string{"no-such-viewer-xyz"}
	cfg.Media.Linux = []string{"no-such-viewer-xyz"}
	cfg.Media.Windows = []string{"no-such-viewer-xyz"}
	cfg.Media.DefaultOpener = "fallback-opener"

	l := NewLauncher(cfg)
	if l.Viewer() != "fallback-opener" {
		t.Errorf("Viewer() = %s, want fallback-opener on %s", l.Viewer(), runtime.GOOS)
	}
}

func equalArgs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
