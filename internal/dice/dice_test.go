package dice_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/whatif/internal/dice"
)

var _ = Describe("Game", func() {
	var (
		src  *dice.Scripted
		game *dice.Game
	)

	Describe("Check", func() {
		BeforeEach(func() {
			src = &dice.Scripted{Faces: []int{3}}
			game = dice.NewGame(src)
		})

		It("wins when the roll matches the guess", func() {
			t := game.Check(3)
			Expect(t.Outcome).To(Equal(dice.Win))
			Expect(t.Roll).To(Equal(3))
			Expect(src.Draws).To(Equal(1))
		})

		DescribeTable("loses on any other face",
			func(face int) {
				src.Faces = []int{face}
				t := dice.NewGame(src).Check(3)
				Expect(t.Outcome).To(Equal(dice.Lose))
				Expect(t.Roll).To(Equal(face))
			},
			Entry("one", 1),
			Entry("two", 2),
			Entry("four", 4),
			Entry("five", 5),
			Entry("six", 6),
		)

		DescribeTable("rejects out-of-range guesses without rolling",
			func(guess int) {
				t := game.Check(guess)
				Expect(t.Outcome).To(Equal(dice.InvalidGuess))
				Expect(t.Roll).To(BeZero())
				Expect(src.Draws).To(BeZero())
			},
			Entry("seventy", 70),
			Entry("zero", 0),
			Entry("negative", -1),
			Entry("seven", 7),
		)

		It("reports every trial to observers", func() {
			var seen []dice.Trial
			game.AddObserver(dice.ObserverFunc(func(t dice.Trial) { seen = append(seen, t) }))

			game.Check(3)
			game.Check(70)

			Expect(seen).To(HaveLen(2))
			Expect(seen[1].Outcome).To(Equal(dice.InvalidGuess))
		})
	})

	Describe("Session", func() {
		It("keeps going after invalid guesses", func() {
			src = &dice.Scripted{Faces: []int{2, 5, 6, 3}}
			game = dice.NewGame(src)

			trials := game.Session([]int{2, 4, 6, 70, 3, -1})

			Expect(trials).To(HaveLen(6))
			outcomes := make([]dice.Outcome, len(trials))
			for i, t := range trials {
				outcomes[i] = t.Outcome
			}
			Expect(outcomes).To(Equal([]dice.Outcome{
				dice.Win, dice.Lose, dice.Win, dice.InvalidGuess, dice.Win, dice.InvalidGuess,
			}))
			Expect(src.Draws).To(Equal(4))
		})
	})

	Describe("Batch", func() {
		It("computes the expected count as trials over six", func() {
			b := dice.NewGame(&dice.Scripted{Faces: []int{1}}).Batch(600, 3)
			Expect(b.Trials).To(Equal(600))
			Expect(b.Expected).To(Equal(100.0))
			Expect(b.Wins).To(BeZero())
			Expect(b.Biased).To(BeFalse())
		})

		It("flags a batch with more wins than expected", func() {
			// 101 wins in 600: one winning face every sixth roll plus one extra
			faces := make([]int, 600)
			for i := range faces {
				faces[i] = 1
				if i%6 == 0 || i == 1 {
					faces[i] = 3
				}
			}
			b := dice.NewGame(&dice.Scripted{Faces: faces}).Batch(600, 3)
			Expect(b.Wins).To(Equal(101))
			Expect(b.Biased).To(BeTrue())
		})

		It("does not flag a batch exactly at expectation", func() {
			faces := []int{3, 1, 2, 4, 5, 6}
			b := dice.NewGame(&dice.Scripted{Faces: faces}).Batch(600, 3)
			Expect(b.Wins).To(Equal(100))
			Expect(b.Biased).To(BeFalse())
		})

		It("counts invalid trials and never flags them", func() {
			src = &dice.Scripted{Faces: []int{3}}
			b := dice.NewGame(src).Batch(10, 70)
			Expect(b.Invalid).To(Equal(10))
			Expect(b.Wins).To(BeZero())
			Expect(b.Biased).To(BeFalse())
			Expect(src.Draws).To(BeZero())
		})

		It("treats a negative trial count as empty", func() {
			b := dice.NewGame(&dice.Scripted{Faces: []int{3}}).Batch(-5, 3)
			Expect(b.Trials).To(BeZero())
			Expect(b.Biased).To(BeFalse())
		})
	})
})

var _ = Describe("Biased", func() {
	It("is a plain comparison, not a significance test", func() {
		// one win over expectation is already "biased"
		Expect(dice.Biased(101, 600)).To(BeTrue())
		Expect(dice.Biased(100, 600)).To(BeFalse())
		Expect(dice.Biased(99, 600)).To(BeFalse())
	})

	It("is flagged for a fair die about half the time", func() {
		flagged := 0
		for seed := uint64(0); seed < 200; seed++ {
			if dice.NewGame(dice.NewSource(seed)).Batch(600, 3).Biased {
				flagged++
			}
		}
		Expect(flagged).To(BeNumerically(">", 40))
		Expect(flagged).To(BeNumerically("<", 160))
	})
})

var _ = Describe("Outcome", func() {
	It("names each outcome", func() {
		Expect(dice.Win.String()).To(Equal("win"))
		Expect(dice.Lose.String()).To(Equal("lose"))
		Expect(dice.InvalidGuess.String()).To(Equal("invalid"))
	})
})

var _ = Describe("NewSource", func() {
	It("replays the same rolls for the same seed", func() {
		a := dice.NewGame(dice.NewSource(42)).Session([]int{1, 2, 3, 4, 5, 6})
		b := dice.NewGame(dice.NewSource(42)).Session([]int{1, 2, 3, 4, 5, 6})
		Expect(a).To(Equal(b))
		for _, t := range a {
			Expect(t.Roll).To(BeNumerically(">=", 1))
			Expect(t.Roll).To(BeNumerically("<=", 6))
		}
	})
})
