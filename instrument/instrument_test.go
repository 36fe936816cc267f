package instrument

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestTimers(t *testing.T) {
	{ // Concurrent tallies add up
		var (
			timers = NewTimers()
			wg     sync.WaitGroup
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tl := NewTally(timers)
				tl.Add(RiemannSolver, time.Millisecond)
				tl.Add(WENOInterpolation, 2*time.Millisecond)
				tl.Flush()
			}()
		}
		wg.Wait()
		assert.Equal(t, 8*time.Millisecond, timers.Elapsed(RiemannSolver))
		assert.Equal(t, 16*time.Millisecond, timers.Elapsed(WENOInterpolation))
		assert.Equal(t, int64(8), timers.Calls(RiemannSolver))
		assert.Equal(t, int64(0), timers.Calls(ComputeSource))
		timers.Reset()
		assert.Equal(t, time.Duration(0), timers.Elapsed(RiemannSolver))
	}
	{ // Start charges elapsed time
		timers := NewTimers()
		tl := NewTally(timers)
		stop := tl.Start(ReconstructFlux)
		time.Sleep(time.Millisecond)
		stop()
		tl.Flush()
		assert.True(t, timers.Elapsed(ReconstructFlux) >= time.Millisecond)
	}
	{ // A nil reporter records nothing
		tl := NewTally(nil)
		tl.Start(ComputeSource)()
		tl.Add(ComputeSource, time.Second)
		tl.Flush()
		Nop{}.Record(ComputeSource, time.Second)
	}
	{ // Log emits one entry per used section
		logger, hook := test.NewNullLogger()
		timers := NewTimers()
		timers.Record(CharacteristicDecomposition, time.Second)
		timers.Record(ComputeSource, time.Second)
		timers.Log(logger)
		assert.Equal(t, 2, len(hook.AllEntries()))
		assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
		assert.Equal(t, "Compute source", hook.LastEntry().Data["section"])
	}
}

func TestCountInstructions(t *testing.T) {
	var ran bool
	_, err := CountInstructions(func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Skipf("perf events unavailable: %v", err)
	}
	assert.True(t, ran)
}
