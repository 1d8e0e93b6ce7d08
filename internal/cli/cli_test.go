package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/rackwatch/pkg/store"
)

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"run", "layout", "solve", "history", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestRunCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	out := filepath.Join(dir, "images")
	db := filepath.Join(dir, "history.db")

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"run",
		"--racks", "3",
		"--rounds", "2",
		"--model", "solvers",
		"--format", "svg,json",
		"--out", out,
		"--db", db,
	})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{"data_center0.svg", "data_center0.json", "data_center1.svg", "data_center1.json"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}

	st, err := store.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	runs, err := st.Runs(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Status != store.StatusDone {
		t.Errorf("runs = %+v", runs)
	}
}

func TestLayoutThenSolve(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.json")
	out := filepath.Join(dir, "images")

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"layout", "--racks", "3", "--model", "solvers", "-o", scenePath})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("layout: %v", err)
	}

	root = New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"solve", scenePath, "--rounds", "1", "--no-cache", "--format", "json", "--out", out})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("solve: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "data_center0.json")); err != nil {
		t.Errorf("missing artifact: %v", err)
	}
}

func TestHistoryRequiresDB(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"history"})
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("history without --db should fail")
	}
}
