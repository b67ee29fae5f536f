package dice

// Batch summarizes repeated trials of a fixed guess.
type Batch struct {
	Guess    int
	Trials   int
	Wins     int
	Invalid  int
	Expected float64
	Biased   bool
}

// Batch runs n trials of guess and compares the win count with n/6.
func (g *Game) Batch(n, guess int) Batch {
	if n < 0 {
		n = 0
	}

	b := Batch{Guess: guess, Trials: n}
	for i := 0; i < n; i++ {
		switch g.Check(guess).Outcome {
		case Win:
			b.Wins++
		case InvalidGuess:
			b.Invalid++
		}
	}

	b.Expected = ExpectedWins(n)
	b.Biased = Biased(b.Wins, n)
	return b
}

// ExpectedWins is the mean win count of n fair trials.
func ExpectedWins(n int) float64 {
	return float64(n) / Sides
}

// Biased reports whether wins exceed the fair expectation. It is a plain
// greater-than check with no variance or confidence interval: a fair die
// is flagged roughly half the time.
func Biased(wins, n int) bool {
	return float64(wins) > ExpectedWins(n)
}
