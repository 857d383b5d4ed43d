package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/showtime/internal/engine"
)

// completed builds a ledger with an active lap followed by completed laps of
// the given raw durations (storage order, newest first).
func completed(raws ...int) []engine.LapRecord {
	laps := []engine.LapRecord{{}}
	for _, r := range raws {
		laps = append(laps, engine.LapRecord{Raw: time.Duration(r) * time.Millisecond})
	}
	return laps
}

func TestFastestSlowest(t *testing.T) {
	tests := []struct {
		name    string
		laps    []engine.LapRecord
		ok      bool
		fastest int
		slowest int
	}{
		{"Empty", nil, false, 0, 0},
		{"ActiveOnly", completed(), false, 0, 0},
		{"SingleCompleted", completed(500), false, 0, 0},
		{"AllEqual", completed(500, 500), false, 0, 0},
		{"Distinct", completed(300, 700, 500), true, 1, 2},
		{"TiesMarkFirst", completed(200, 100, 100, 300, 300), true, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fastest, slowest, ok := engine.FastestSlowest(tt.laps)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.fastest, fastest, "fastest index")
				assert.Equal(t, tt.slowest, slowest, "slowest index")
			}
		})
	}
}

func TestFastestSlowest_IgnoresActiveLap(t *testing.T) {
	laps := completed(300, 700)
	laps[0].Raw = time.Millisecond // active lap would be fastest if counted

	fastest, slowest, ok := engine.FastestSlowest(laps)
	assert.True(t, ok)
	assert.Equal(t, 1, fastest)
	assert.Equal(t, 2, slowest)
}

func TestMarks(t *testing.T) {
	marks := engine.Marks(completed(300, 700, 500))
	assert.Equal(t, []engine.Mark{engine.MarkNone, engine.MarkFastest, engine.MarkSlowest, engine.MarkNone}, marks)

	marks = engine.Marks(completed(500, 500))
	for _, m := range marks {
		assert.Equal(t, engine.MarkNone, m)
	}
}

func TestLedger_PushAndTotals(t *testing.T) {
	var l engine.Ledger
	assert.True(t, l.Empty())
	assert.Nil(t, l.Active())
	assert.Zero(t, l.PreviousTotal())

	l.Push(engine.LapRecord{})
	l.Push(engine.LapRecord{Total: 2 * time.Second})
	l.Laps()[0].Total = time.Hour // copies must not alias

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 2*time.Second, l.Active().Total)
	assert.Zero(t, l.PreviousTotal())

	l.Clear()
	assert.True(t, l.Empty())
}
