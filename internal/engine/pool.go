package engine

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/tartampluch/showtime/internal/config"
)

// sumOfNineTokens is the canonical set of two-digit strings whose digits add up to 9.
var sumOfNineTokens = [...]string{"09", "18", "27", "36", "45", "54", "63", "72", "81", "90"}

// SumOfNineTokens returns a copy of the canonical token set.
func SumOfNineTokens() []string {
	out := make([]string, len(sumOfNineTokens))
	copy(out, sumOfNineTokens[:])
	return out
}

// SumOfNinePool hands out the canonical tokens in a random order without
// repeats until all ten have been issued, then reshuffles.
type SumOfNinePool struct {
	rng    *rand.Rand
	tokens []string
}

// NewSumOfNinePool creates a freshly shuffled pool.
// A nil rng falls back to a time-seeded generator.
func NewSumOfNinePool(rng *rand.Rand) *SumOfNinePool {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	p := &SumOfNinePool{rng: rng}
	p.Reset()
	return p
}

// Reset discards the remaining tokens and draws a new permutation of the full set.
func (p *SumOfNinePool) Reset() {
	p.tokens = SumOfNineTokens()
	p.rng.Shuffle(len(p.tokens), func(i, j int) {
		p.tokens[i], p.tokens[j] = p.tokens[j], p.tokens[i]
	})
	slog.Debug(config.MsgPoolInit, slog.String(config.LogKeyComponent, config.CompEngine))
}

// Next pops one token. An empty pool is refilled before popping.
func (p *SumOfNinePool) Next() string {
	if len(p.tokens) == 0 {
		slog.Debug(config.MsgPoolExhausted, slog.String(config.LogKeyComponent, config.CompEngine))
		p.Reset()
	}
	last := len(p.tokens) - 1
	tok := p.tokens[last]
	p.tokens = p.tokens[:last]
	slog.Debug(config.MsgTokenIssued,
		slog.String(config.LogKeyComponent, config.CompEngine),
		slog.String(config.LogKeyToken, tok),
		slog.Int(config.LogKeyRemaining, len(p.tokens)),
	)
	return tok
}

// Remaining reports how many tokens can be issued before the next reshuffle.
func (p *SumOfNinePool) Remaining() int {
	return len(p.tokens)
}

// DynamicToken is the non-consuming token shown on the live lap.
// It cycles with the centiseconds so the display animates without draining the pool.
func DynamicToken(d time.Duration) string {
	ms := clampMillis(d)
	return sumOfNineTokens[(ms%1000/10)%10]
}
