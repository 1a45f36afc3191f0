package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.crispy.sh/pkg/config"
	"src.crispy.sh/pkg/killring"
	"src.crispy.sh/pkg/prog"
	. "src.crispy.sh/pkg/prog/progtest"
)

func TestProgram_Errors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	rc := filepath.Join(t.TempDir(), "rc.yaml")
	os.WriteFile(rc, []byte("prompt: ''\n"), 0644)

	Test(t, Program{},
		ThatCrispy("-norc", "foo").
			ExitsWith(2).
			WritesStderrContaining("crispy takes no arguments\nUsage:"),
		ThatCrispy("-norc").
			ExitsWith(2).
			WritesStderr("crispy must be run in a terminal\n"),
		ThatCrispy("-rc", "/no/such/rc.yaml").
			ExitsWith(2).
			WritesStderrContaining("can't load rc file"),
		ThatCrispy("-rc", rc).
			ExitsWith(2).
			WritesStderrContaining("prompt must not be empty"),
		ThatCrispy("-norc", "-backend", "gui").
			ExitsWith(2).
			WritesStderrContaining(`unknown backend "gui"`),
	)
}

func TestLoadConfig(t *testing.T) {
	rc := filepath.Join(t.TempDir(), "rc.yaml")
	os.WriteFile(rc, []byte("backend: tcell\nkitty-keyboard: true\nlog: rc.log\n"), 0644)

	cfg, err := loadConfig(&prog.Flags{
		RC:    rc,
		Debug: prog.OptionalBool{Given: true, Value: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := config.Default()
	want.Backend = config.BackendTcell
	want.KittyKeyboard = true
	want.Debug = true
	want.Log = "rc.log"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}

	cfg, err = loadConfig(&prog.Flags{
		RC:      rc,
		Backend: config.BackendVT,
		Kitty:   prog.OptionalBool{Given: true, Value: false},
		Log:     "flag.log",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != config.BackendVT || cfg.KittyKeyboard || cfg.Log != "flag.log" {
		t.Errorf("flags did not override rc file: %+v", cfg)
	}
}

func TestLoadConfig_NoRc(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	os.MkdirAll(filepath.Join(dir, "crispy"), 0755)
	os.WriteFile(filepath.Join(dir, "crispy", "rc.yaml"), []byte("debug: true\n"), 0644)

	cfg, err := loadConfig(&prog.Flags{})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Errorf("default rc file not read")
	}
	cfg, err = loadConfig(&prog.Flags{NoRc: true})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Debug {
		t.Errorf("rc file read despite -norc")
	}
}

func TestOpenKillRing(t *testing.T) {
	r, err := openKillRing(config.KillRing{Size: 2})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(*killring.Memory); !ok {
		t.Errorf("got %T, want *killring.Memory", r)
	}

	db := filepath.Join(t.TempDir(), "kill.db")
	r, err = openKillRing(config.KillRing{Size: 2, DB: db})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if _, ok := r.(*killring.DB); !ok {
		t.Errorf("got %T, want *killring.DB", r)
	}
}
