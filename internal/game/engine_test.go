package game

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samroche/recyco/pkg/domain"
)

func testPool(n int) []domain.Item {
	bins := domain.PlayableBins
	pool := make([]domain.Item, n)
	for i := range pool {
		pool[i] = domain.Item{
			Name: fmt.Sprintf("item-%02d", i),
			Bin:  bins[i%len(bins)],
		}
	}
	return pool
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestPlayablePool(t *testing.T) {
	rules := domain.RuleSet{
		"jaune":       {{Name: "bouteille", Bin: "jaune"}},
		"verte":       {{Name: "bocal", Bin: "verte"}},
		"bleue":       {{Name: "journal", Bin: "bleue"}},
		"dechetterie": {{Name: "batterie", Bin: "dechetterie"}},
	}
	pool := PlayablePool(rules)
	require.Len(t, pool, 3, "non-playable bins stay out of the pool")
	for _, it := range pool {
		assert.Contains(t, domain.PlayableBins, it.Bin)
	}
}

func TestNewDealsHandWithoutReplacement(t *testing.T) {
	e := New(testPool(20), WithRand(testRand()))

	hand := e.Hand()
	require.Len(t, hand, HandSize)

	seen := make(map[string]bool, len(hand))
	for _, it := range hand {
		assert.False(t, seen[it.Name], "initial draw must not repeat %s", it.Name)
		seen[it.Name] = true
	}
}

func TestNewWithSmallPool(t *testing.T) {
	e := New(testPool(3), WithRand(testRand()))
	assert.Len(t, e.Hand(), 3)
}

func TestResolveCountersProperty(t *testing.T) {
	rng := testRand()
	e := New(testPool(15), WithRand(rng))

	for i := 0; i < 50; i++ {
		hand := e.Hand()
		card := hand[rng.IntN(len(hand))]
		chosen := domain.PlayableBins[rng.IntN(len(domain.PlayableBins))]

		attempts, correct, points := e.Attempts(), e.CorrectCount(), e.Points()
		out := e.Resolve(card.Bin, chosen, card.Name)

		assert.Equal(t, attempts+1, e.Attempts(), "attempts increment on every action")
		if card.Bin == chosen {
			assert.True(t, out.Correct)
			assert.Equal(t, correct+1, e.CorrectCount())
			assert.Equal(t, points+1, e.Points())
		} else {
			assert.False(t, out.Correct)
			assert.Equal(t, correct, e.CorrectCount())
			assert.Equal(t, points, e.Points())
		}
	}
}

func TestResolveKeepsHandSize(t *testing.T) {
	rng := testRand()
	e := New(testPool(15), WithRand(rng))

	for i := 0; i < 100; i++ {
		hand := e.Hand()
		card := hand[rng.IntN(len(hand))]
		e.Resolve(card.Bin, domain.BinJaune, card.Name)
		require.Len(t, e.Hand(), HandSize, "hand size invariant after resolve %d", i)
	}
}

func TestResolveRemovesSortedCard(t *testing.T) {
	// Sort the first card and check the original instance left the hand.
	e := New(testPool(8), WithRand(testRand()))
	card := e.Hand()[0]
	e.Resolve(card.Bin, card.Bin, card.Name)

	count := 0
	for _, it := range e.Hand() {
		if it.Name == card.Name {
			count++
		}
	}
	// The replacement draw may legitimately re-draw the same item, but
	// the original instance was removed first.
	assert.LessOrEqual(t, count, 1)
}

func TestResolveUnknownItemLeavesHand(t *testing.T) {
	e := New(testPool(15), WithRand(testRand()))
	before := e.Hand()

	out := e.Resolve(domain.BinJaune, domain.BinJaune, "pas-dans-la-main")

	assert.True(t, out.Correct, "scoring still applies")
	assert.Equal(t, before, e.Hand())
}

func TestReportAndReset(t *testing.T) {
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	e := New(testPool(15), WithRand(testRand()), WithNow(now))

	card := e.Hand()[0]
	e.Resolve(card.Bin, card.Bin, card.Name)
	other := e.Hand()[1]
	wrong := domain.BinJaune
	if other.Bin == wrong {
		wrong = domain.BinVerte
	}
	e.Resolve(other.Bin, wrong, other.Name)

	clock = clock.Add(90 * time.Second)
	report := e.Report()
	assert.Equal(t, 1, report.Points)
	assert.Equal(t, 1, report.CorrectItems)
	assert.Equal(t, 2, report.TotalItems)
	assert.Equal(t, int64(90_000), report.DurationMS)

	e.ResetSession()
	assert.Zero(t, e.Points())
	assert.Zero(t, e.CorrectCount())
	assert.Zero(t, e.Attempts())

	clock = clock.Add(5 * time.Second)
	assert.Equal(t, int64(5_000), e.Report().DurationMS, "reset restarts the session timer")
}
