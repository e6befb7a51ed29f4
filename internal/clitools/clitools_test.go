package clitools

import (
	"reflect"
	"testing"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/internal/sysaccess"
)

func TestVersionTrimsOutput(t *testing.T) {
	mem := sysaccess.NewMemory()
	mem.ProcessOutput["codex --version"] = "codex-cli 0.29.0\n"
	mgr := NewManager(mem)

	version, err := mgr.Version(config.ToolCodex)
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if version != "codex-cli 0.29.0" {
		t.Fatalf("unexpected version %q", version)
	}
	if !mgr.Installed(config.ToolCodex) {
		t.Fatal("tool with a version must report installed")
	}
}

func TestInstalledFalseWhenProbeFails(t *testing.T) {
	mgr := NewManager(sysaccess.NewMemory())

	if mgr.Installed(config.ToolClaude) {
		t.Fatal("unscripted probe must report not installed")
	}
	if _, err := mgr.Version(config.ToolClaude); err == nil {
		t.Fatal("Version must fail when the binary does not respond")
	}
}

func TestVersionRejectsEmptyOutput(t *testing.T) {
	mem := sysaccess.NewMemory()
	mem.ProcessOutput["claude --version"] = "  \n"
	mgr := NewManager(mem)

	if _, err := mgr.Version(config.ToolClaude); err == nil {
		t.Fatal("blank version output must be an error")
	}
}

func TestInstallAndUpdateRunNpm(t *testing.T) {
	mem := sysaccess.NewMemory()
	mem.ProcessOutput["npm install -g @openai/codex"] = "added 1 package"
	mem.ProcessOutput["npm update -g @openai/codex"] = "updated 1 package"
	mgr := NewManager(mem)

	if err := mgr.Install(config.ToolCodex); err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if err := mgr.Update(config.ToolCodex); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := mgr.Install(config.ToolClaude); err == nil {
		t.Fatal("unscripted npm install must fail")
	}
}

func TestLaunchCommandPerMode(t *testing.T) {
	argv, err := LaunchCommand(config.ToolCodex, catalog.LaunchNormal)
	if err != nil {
		t.Fatalf("LaunchCommand failed: %v", err)
	}
	if !reflect.DeepEqual(argv, []string{"codex"}) {
		t.Fatalf("unexpected normal argv %v", argv)
	}

	argv, err = LaunchCommand(config.ToolCodex, catalog.LaunchBypass)
	if err != nil {
		t.Fatalf("LaunchCommand failed: %v", err)
	}
	want := []string{"codex", "--dangerously-bypass-approvals-and-sandbox"}
	if !reflect.DeepEqual(argv, want) {
		t.Fatalf("unexpected bypass argv %v", argv)
	}

	// claude has no bypass flag; bypass mode degrades to a normal launch.
	argv, err = LaunchCommand(config.ToolClaude, catalog.LaunchBypass)
	if err != nil {
		t.Fatalf("LaunchCommand failed: %v", err)
	}
	if !reflect.DeepEqual(argv, []string{"claude"}) {
		t.Fatalf("unexpected claude argv %v", argv)
	}

	if _, err := LaunchCommand(config.Tool("cursor"), catalog.LaunchNormal); err == nil {
		t.Fatal("unknown tool must be rejected")
	}
}

func TestParseEnvironment(t *testing.T) {
	env, err := ParseEnvironment("NODE_ENV=development\n\n# comment\nPORT=3000\nEMPTY=\n")
	if err != nil {
		t.Fatalf("ParseEnvironment failed: %v", err)
	}
	want := []string{"NODE_ENV=development", "PORT=3000", "EMPTY="}
	if !reflect.DeepEqual(env, want) {
		t.Fatalf("unexpected env %v", env)
	}
}

func TestParseEnvironmentRejectsMalformedLines(t *testing.T) {
	for _, text := range []string{"NOEQUALS", "=value"} {
		if _, err := ParseEnvironment(text); err == nil {
			t.Fatalf("line %q must be rejected", text)
		}
	}
}
