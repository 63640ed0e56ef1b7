package normalize_test

import (
	"context"
	"path/filepath"
	"testing"

	"platter/internal/services/normalize"
	"platter/internal/testsupport"
)

type fakeExecutor struct {
	binary string
	args   []string
	lines  []string
	err    error
}

func (f *fakeExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	f.binary = binary
	f.args = args
	for _, line := range f.lines {
		onLine(line)
	}
	return f.err
}

func TestLevelRunsBatchMode(t *testing.T) {
	dir := t.TempDir()
	one := filepath.Join(dir, "01.wav")
	two := filepath.Join(dir, "02.wav")
	testsupport.WriteFile(t, one, 64)
	testsupport.WriteFile(t, two, 64)

	exec := &fakeExecutor{lines: []string{"Computing levels...", " 01.wav: 52% done"}}
	client, err := normalize.New("normalize", 60, normalize.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var output []string
	if err := client.Level(context.Background(), []string{one, two}, func(line string) {
		output = append(output, line)
	}); err != nil {
		t.Fatalf("Level: %v", err)
	}

	if exec.args[0] != "-b" {
		t.Fatalf("batch flag missing: %v", exec.args)
	}
	if exec.args[1] != one || exec.args[2] != two {
		t.Fatalf("file order not preserved: %v", exec.args)
	}
	if len(output) != 2 || output[0] != "Computing levels..." {
		t.Fatalf("output not forwarded: %v", output)
	}
}

func TestLevelRejectsMissingInputs(t *testing.T) {
	client, err := normalize.New("normalize", 0, normalize.WithExecutor(&fakeExecutor{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := client.Level(context.Background(), []string{"/nope/missing.wav"}, nil); err == nil {
		t.Fatal("expected error for missing input")
	}
	if err := client.Level(context.Background(), nil, nil); err == nil {
		t.Fatal("expected error for empty file list")
	}
}
