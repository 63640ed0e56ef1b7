package wodim_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"platter/internal/services/wodim"
	"platter/internal/testsupport"
)

type fakeExecutor struct {
	args  []string
	lines []string
	err   error
}

func (f *fakeExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	f.args = args
	for _, line := range f.lines {
		onLine(line)
	}
	return f.err
}

func stagedFiles(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	files := make([]string, 0, n)
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, "track.wav")
		if n > 1 {
			path = filepath.Join(dir, "track"+string(rune('0'+i))+".wav")
		}
		testsupport.WriteFile(t, path, 64)
		files = append(files, path)
	}
	return files
}

func TestBurnBuildsDAOArgs(t *testing.T) {
	exec := &fakeExecutor{}
	client, err := wodim.New("wodim", 600, wodim.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	files := stagedFiles(t, 2)
	req := wodim.Request{Device: "/dev/sr0", Speed: 8, Eject: true, Files: files}
	if err := client.Burn(context.Background(), req, nil, nil); err != nil {
		t.Fatalf("Burn: %v", err)
	}

	joined := strings.Join(exec.args, " ")
	want := "-v -eject -dao -pad speed=8 dev=/dev/sr0 -audio " + strings.Join(files, " ")
	if joined != want {
		t.Fatalf("args = %q, want %q", joined, want)
	}
}

func TestBurnOmitsOptionalFlags(t *testing.T) {
	exec := &fakeExecutor{}
	client, err := wodim.New("wodim", 0, wodim.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req := wodim.Request{Device: "/dev/sr1", Files: stagedFiles(t, 1)}
	if err := client.Burn(context.Background(), req, nil, nil); err != nil {
		t.Fatalf("Burn: %v", err)
	}

	joined := strings.Join(exec.args, " ")
	if strings.Contains(joined, "-eject") || strings.Contains(joined, "speed=") {
		t.Fatalf("optional flags present unexpectedly: %s", joined)
	}
	if !strings.Contains(joined, "dev=/dev/sr1") {
		t.Fatalf("device flag missing: %s", joined)
	}
}

func TestBurnParsesTrackProgress(t *testing.T) {
	exec := &fakeExecutor{lines: []string{
		"wodim: Operation starts.",
		"Track 01:    0 of   38 MB written.",
		"Track 01:   19 of   38 MB written (fifo 100%) [buf  99%]   4.0x.",
		"Track 02:   21 of   21 MB written (fifo 100%) [buf  98%]   4.1x.",
		"Fixating...",
	}}
	client, err := wodim.New("wodim", 0, wodim.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var progress []wodim.TrackProgress
	var output []string
	req := wodim.Request{Device: "/dev/sr0", Files: stagedFiles(t, 1)}
	if err := client.Burn(context.Background(), req, func(p wodim.TrackProgress) {
		progress = append(progress, p)
	}, func(line string) {
		output = append(output, line)
	}); err != nil {
		t.Fatalf("Burn: %v", err)
	}

	if len(progress) != 3 {
		t.Fatalf("expected 3 progress updates, got %d: %+v", len(progress), progress)
	}
	if progress[1].Track != 1 || progress[1].WrittenMB != 19 || progress[1].TotalMB != 38 {
		t.Fatalf("unexpected update: %+v", progress[1])
	}
	if pct := progress[1].Percent(); pct != 50 {
		t.Fatalf("Percent() = %v, want 50", pct)
	}
	if len(output) != 2 || output[1] != "Fixating..." {
		t.Fatalf("non-progress output not forwarded: %v", output)
	}
}

func TestBurnSurfacesFailureContext(t *testing.T) {
	exec := &fakeExecutor{
		err:   errors.New("exit status 254"),
		lines: []string{"wodim: Cannot open SCSI driver!"},
	}
	client, err := wodim.New("wodim", 0, wodim.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req := wodim.Request{Device: "/dev/sr0", Files: stagedFiles(t, 1)}
	err = client.Burn(context.Background(), req, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "Cannot open SCSI driver") {
		t.Fatalf("tool output not surfaced: %v", err)
	}
}

func TestBurnValidatesRequest(t *testing.T) {
	client, err := wodim.New("wodim", 0, wodim.WithExecutor(&fakeExecutor{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := client.Burn(context.Background(), wodim.Request{Files: stagedFiles(t, 1)}, nil, nil); err == nil {
		t.Fatal("expected error for missing device")
	}
	if err := client.Burn(context.Background(), wodim.Request{Device: "/dev/sr0"}, nil, nil); err == nil {
		t.Fatal("expected error for empty file list")
	}
	if err := client.Burn(context.Background(), wodim.Request{Device: "/dev/sr0", Files: []string{"/nope.wav"}}, nil, nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}
