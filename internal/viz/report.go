package viz

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/whatif/internal/dice"
	"github.com/san-kum/whatif/internal/experiment"
)

// TrialLine describes one trial the way the console shows it.
func TrialLine(t dice.Trial) string {
	switch t.Outcome {
	case dice.Win:
		return fmt.Sprintf("guess %d, the die shows %d: %s", t.Guess, t.Roll, WinStyle.Render("you win!"))
	case dice.Lose:
		return fmt.Sprintf("guess %d, the die shows %d: %s", t.Guess, t.Roll, LoseStyle.Render("you lose"))
	default:
		return fmt.Sprintf("guess %d: %s", t.Guess, InvalidStyle.Render(fmt.Sprintf("invalid guess, choose a number between 1 and %d", dice.Sides)))
	}
}

// TrialReporter prints every trial to w.
func TrialReporter(w io.Writer) dice.Observer {
	return dice.ObserverFunc(func(t dice.Trial) {
		fmt.Fprintln(w, TrialLine(t))
	})
}

func Verdict(b dice.Batch) string {
	if b.Biased {
		return InvalidStyle.Render("biased towards the guess")
	}
	return WinStyle.Render("not biased")
}

// WriteBatch prints the summary of a bias experiment.
func WriteBatch(w io.Writer, b dice.Batch) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%d\n", MetricLabel.Render("guess"), b.Guess)
	fmt.Fprintf(tw, "%s\t%s\n", MetricLabel.Render("trials"), Number(float64(b.Trials)))
	fmt.Fprintf(tw, "%s\t%s\n", MetricLabel.Render("correct guesses"), MetricValue.Render(Number(float64(b.Wins))))
	fmt.Fprintf(tw, "%s\t%s\n", MetricLabel.Render("expected"), Number(b.Expected))
	if b.Invalid > 0 {
		fmt.Fprintf(tw, "%s\t%s\n", MetricLabel.Render("invalid"), Number(float64(b.Invalid)))
	}
	fmt.Fprintf(tw, "%s\t%s\n", MetricLabel.Render("verdict"), Verdict(b))
	return tw.Flush()
}

// WriteReport prints one row per scenario with its metrics and a sparkline.
func WriteReport(w io.Writer, r *experiment.Report, sparkWidth int) error {
	fmt.Fprintln(w, HeaderStyle.Render(r.Chart.Title))

	names := metricNames(r)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "SCENARIO\t%s\tTREND\n", strings.ToUpper(strings.Join(names, "\t")))
	for _, run := range r.Runs {
		cells := make([]string, len(names))
		for i, name := range names {
			cells[i] = Number(run.Metrics[name])
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", run.Label, strings.Join(cells, "\t"), Sparkline(run.Series, sparkWidth))
	}
	return tw.Flush()
}

func metricNames(r *experiment.Report) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, run := range r.Runs {
		for name := range run.Metrics {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
