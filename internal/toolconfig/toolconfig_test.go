package toolconfig

import (
	"path/filepath"
	"testing"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/internal/sysaccess"
)

func setupManager(t *testing.T) (*Manager, *sysaccess.Memory) {
	t.Helper()
	t.Setenv("PROMPTDECK_HOME", "/home/tester")
	mem := sysaccess.NewMemory()
	return NewManager(mem), mem
}

func TestReadMissingConfigReturnsNil(t *testing.T) {
	mgr, _ := setupManager(t)

	cfg, err := mgr.Read(config.ToolClaude, scope.User, "")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if cfg != nil {
		t.Fatalf("missing config must read as nil, got %#v", cfg)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	mgr, _ := setupManager(t)

	in := ToolConfig{
		Version: Version,
		Prompts: []catalog.Record{{Name: "deploy", Content: "ship"}},
	}
	if err := mgr.Write(config.ToolCodex, scope.User, "", in); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out, err := mgr.Read(config.ToolCodex, scope.User, "")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if out == nil {
		t.Fatal("config must exist after write")
	}
	if out.Version != Version || len(out.Prompts) != 1 || out.Prompts[0].Name != "deploy" {
		t.Fatalf("unexpected config: %#v", out)
	}
	if out.LastModified.IsZero() {
		t.Fatal("write must stamp lastModified")
	}
}

func TestReadCorruptConfigFails(t *testing.T) {
	mgr, mem := setupManager(t)

	path := config.ToolConfigPath(config.ToolClaude, scope.User, "")
	if err := mem.MakeDirectory(filepath.Dir(path), true); err != nil {
		t.Fatalf("MakeDirectory failed: %v", err)
	}
	if err := mem.WriteTextFile(path, "{ not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, err := mgr.Read(config.ToolClaude, scope.User, ""); err == nil {
		t.Fatal("corrupt config must be an error, not nil")
	}
}

func TestSetupCreatesLayoutAndDefaultConfig(t *testing.T) {
	mgr, mem := setupManager(t)

	root, err := mgr.Setup(config.ToolClaude, scope.User, "")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if root != filepath.Join("/home/tester", ".claude") {
		t.Fatalf("unexpected root %q", root)
	}

	for _, dir := range []string{"prompts", "projects", "settings"} {
		ok, err := mem.PathExists(filepath.Join(root, dir))
		if err != nil || !ok {
			t.Fatalf("expected %s directory under %s (ok=%v err=%v)", dir, root, ok, err)
		}
	}

	cfg, err := mgr.Read(config.ToolClaude, scope.User, "")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if cfg == nil || cfg.Version != Version || len(cfg.Prompts) != 0 {
		t.Fatalf("unexpected default config: %#v", cfg)
	}
}

func TestSetupKeepsExistingConfig(t *testing.T) {
	mgr, _ := setupManager(t)

	if err := mgr.Write(config.ToolCodex, scope.User, "", ToolConfig{
		Version: Version,
		Prompts: []catalog.Record{{Name: "keep-me"}},
	}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, err := mgr.Setup(config.ToolCodex, scope.User, ""); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	cfg, err := mgr.Read(config.ToolCodex, scope.User, "")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if cfg == nil || len(cfg.Prompts) != 1 || cfg.Prompts[0].Name != "keep-me" {
		t.Fatalf("setup must not overwrite an existing config: %#v", cfg)
	}
}

func TestSetupProjectScopeUsesProjectRoot(t *testing.T) {
	mgr, mem := setupManager(t)

	root, err := mgr.Setup(config.ToolCodex, scope.Project, "/work/app")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if root != filepath.Join("/work/app", ".codex") {
		t.Fatalf("unexpected root %q", root)
	}
	ok, err := mem.PathExists(filepath.Join(root, "templates"))
	if err != nil || !ok {
		t.Fatalf("expected templates directory (ok=%v err=%v)", ok, err)
	}
}
