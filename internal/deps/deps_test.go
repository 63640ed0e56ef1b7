package deps_test

import (
	"testing"

	"platter/internal/deps"
	"platter/internal/testsupport"
)

func TestCheckBinariesFindsStubbedTools(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	statuses := deps.CheckBinaries(deps.Requirements(cfg))
	if len(statuses) != 5 {
		t.Fatalf("expected 5 statuses, got %d", len(statuses))
	}
	for _, status := range statuses {
		if !status.Available {
			t.Errorf("%s unavailable: %s", status.Name, status.Detail)
		}
	}
	if missing := deps.MissingRequired(statuses); len(missing) != 0 {
		t.Fatalf("unexpected missing: %v", missing)
	}
}

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "wodim", Command: "definitely-not-a-real-binary-xyz"},
		{Name: "eject", Command: "also-not-real", Optional: true},
		{Name: "blank", Command: "   "},
	})

	if statuses[0].Available || statuses[0].Detail == "" {
		t.Fatalf("missing binary not reported: %+v", statuses[0])
	}
	if statuses[2].Detail != "command not configured" {
		t.Fatalf("blank command not reported: %+v", statuses[2])
	}

	missing := deps.MissingRequired(statuses)
	if len(missing) != 2 || missing[0] != "wodim" || missing[1] != "blank" {
		t.Fatalf("unexpected missing set: %v", missing)
	}
}
