package viz

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/san-kum/whatif/internal/config"
	"github.com/san-kum/whatif/internal/dice"
	"github.com/san-kum/whatif/internal/experiment"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1050, "1,050"},
		{8573.8, "8,573.8"},
		{0, "0"},
		{72.5, "72.5"},
		{-3, "-3"},
	}

	for _, tt := range tests {
		if got := Number(tt.in); got != tt.want {
			t.Errorf("Number(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := utf8.RuneCountInString(stripANSI(Sparkline([]float64{1, 2, 3, 4}, 4))); got != 4 {
		t.Errorf("expected 4 runes, got %d", got)
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("expected placeholder, got %q", got)
	}
	if got := utf8.RuneCountInString(stripANSI(Sparkline(make([]float64, 200), 20))); got != 20 {
		t.Errorf("expected sampling to width 20, got %d", got)
	}
}

func TestTrialLine(t *testing.T) {
	tests := []struct {
		trial dice.Trial
		want  string
	}{
		{dice.Trial{Guess: 3, Roll: 3, Outcome: dice.Win}, "win"},
		{dice.Trial{Guess: 3, Roll: 5, Outcome: dice.Lose}, "shows 5"},
		{dice.Trial{Guess: 70, Outcome: dice.InvalidGuess}, "invalid guess"},
	}

	for _, tt := range tests {
		if got := TrialLine(tt.trial); !strings.Contains(got, tt.want) {
			t.Errorf("TrialLine(%+v) = %q, missing %q", tt.trial, got, tt.want)
		}
	}
}

func TestTrialReporter(t *testing.T) {
	var buf bytes.Buffer
	game := dice.NewGame(&dice.Scripted{Faces: []int{4}})
	game.AddObserver(TrialReporter(&buf))

	game.Session([]int{4, 70})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
}

func TestWriteBatch(t *testing.T) {
	var buf bytes.Buffer
	b := dice.Batch{Guess: 3, Trials: 600, Wins: 104, Expected: 100, Biased: true}

	if err := WriteBatch(&buf, b); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"600", "104", "100", "biased towards"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "invalid") {
		t.Error("invalid row shown without invalid trials")
	}
}

func TestWriteReport(t *testing.T) {
	report, err := experiment.New(config.GetPreset("forest-logging"), experiment.NewRegistry(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, report, 10); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"No Conservation", "Active Conservation", "FINAL", "TROUGH"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
