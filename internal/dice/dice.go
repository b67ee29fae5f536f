// Package dice runs guess-the-roll trials against a six-sided die and checks
// batches of them for bias.
package dice

import "fmt"

const Sides = 6

// Outcome is the result of one guess. InvalidGuess means no roll happened.
type Outcome int

const (
	Lose Outcome = iota
	Win
	InvalidGuess
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	case InvalidGuess:
		return "invalid"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Trial records one guess. Roll is 0 when the guess was invalid.
type Trial struct {
	Guess   int
	Roll    int
	Outcome Outcome
}

// Observer sees every trial as it happens.
type Observer interface {
	OnTrial(t Trial)
}

type ObserverFunc func(t Trial)

func (f ObserverFunc) OnTrial(t Trial) { f(t) }

func ValidGuess(guess int) bool {
	return guess >= 1 && guess <= Sides
}

type Game struct {
	src       Source
	observers []Observer
}

func NewGame(src Source) *Game {
	return &Game{src: src}
}

func (g *Game) AddObserver(o Observer) { g.observers = append(g.observers, o) }

// Check rolls once and compares against guess. An out-of-range guess is
// reported as InvalidGuess without drawing from the source.
func (g *Game) Check(guess int) Trial {
	t := Trial{Guess: guess, Outcome: InvalidGuess}
	if ValidGuess(guess) {
		t.Roll = g.src.IntN(Sides) + 1
		t.Outcome = Lose
		if t.Roll == guess {
			t.Outcome = Win
		}
	}

	for _, o := range g.observers {
		o.OnTrial(t)
	}
	return t
}

// Session checks each guess in turn. Invalid guesses do not stop the loop.
func (g *Game) Session(guesses []int) []Trial {
	trials := make([]Trial, 0, len(guesses))
	for _, guess := range guesses {
		trials = append(trials, g.Check(guess))
	}
	return trials
}
