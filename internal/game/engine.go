// Package game holds the sorting-game session state, free of any
// network or terminal concern: a fixed-size hand of cards drawn from the
// eligible pool, and the running tally flushed by an explicit save.
package game

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/samroche/recyco/pkg/domain"
)

// HandSize is the number of cards in play at any time. Every resolved
// action replaces the sorted card one-for-one, so the hand keeps this
// size as long as the pool is at least this large.
const HandSize = 7

// Engine owns one game session: created when the play view loads,
// mutated on every sort action, zeroed on a successful save.
type Engine struct {
	pool []domain.Item
	hand []domain.Item
	rng  *rand.Rand
	now  func() time.Time

	points    int
	correct   int
	attempts  int
	startedAt time.Time
}

// Option tweaks a new Engine. Used by tests to pin randomness and time.
type Option func(*Engine)

// WithRand injects a deterministic random source.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithNow injects a clock.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New starts a session over the given pool. The initial hand is a
// shuffle-then-take draw without replacement; a pool smaller than
// HandSize yields a smaller hand.
func New(pool []domain.Item, opts ...Option) *Engine {
	e := &Engine{
		pool: slices.Clone(pool),
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.startedAt = e.now()
	e.dealHand()
	return e
}

// PlayablePool flattens the rule set down to the items of the three
// playable bins, in bin order.
func PlayablePool(rules domain.RuleSet) []domain.Item {
	var pool []domain.Item
	for _, bin := range domain.PlayableBins {
		pool = append(pool, rules[bin]...)
	}
	return pool
}

func (e *Engine) dealHand() {
	shuffled := slices.Clone(e.pool)
	e.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	n := min(HandSize, len(shuffled))
	e.hand = shuffled[:n]
}

// Outcome is the result of one resolved sort action.
type Outcome struct {
	Item       string
	ChosenBin  string
	CorrectBin string
	Correct    bool
}

// Resolve records a sort action. Both input modalities (pick-up-and-drop
// and tap-tap) funnel through here, so their state transitions are
// identical by construction: attempts always increment; correct count
// and points increment only on a match. The sorted card leaves the hand
// and a replacement is drawn independently from the full pool, repeats
// allowed.
func (e *Engine) Resolve(correctBin, chosenBin, itemName string) Outcome {
	e.attempts++
	correct := correctBin == chosenBin
	if correct {
		e.points++
		e.correct++
	}
	e.replace(itemName)
	return Outcome{
		Item:       itemName,
		ChosenBin:  chosenBin,
		CorrectBin: correctBin,
		Correct:    correct,
	}
}

// replace swaps the named card for a fresh draw. An unknown name leaves
// the hand untouched, preserving the size invariant.
func (e *Engine) replace(itemName string) {
	idx := slices.IndexFunc(e.hand, func(it domain.Item) bool {
		return it.Name == itemName
	})
	if idx < 0 || len(e.pool) == 0 {
		return
	}
	e.hand = slices.Delete(e.hand, idx, idx+1)
	e.hand = append(e.hand, e.pool[e.rng.IntN(len(e.pool))])
}

// Hand returns the cards currently in play.
func (e *Engine) Hand() []domain.Item {
	return slices.Clone(e.hand)
}

// Points returns the unsaved session points.
func (e *Engine) Points() int { return e.points }

// CorrectCount returns the number of correctly sorted items this session.
func (e *Engine) CorrectCount() int { return e.correct }

// Attempts returns the number of sort actions this session, right or wrong.
func (e *Engine) Attempts() int { return e.attempts }

// Report snapshots the session for submission. Duration runs from
// session start to now.
func (e *Engine) Report() domain.ScoreReport {
	return domain.ScoreReport{
		Points:       e.points,
		CorrectItems: e.correct,
		TotalItems:   e.attempts,
		DurationMS:   e.now().Sub(e.startedAt).Milliseconds(),
	}
}

// ResetSession zeroes the tally and restarts the timer. Called after a
// successful save; a failed save keeps the counters so a retry resubmits
// the same session.
func (e *Engine) ResetSession() {
	e.points = 0
	e.correct = 0
	e.attempts = 0
	e.startedAt = e.now()
}
