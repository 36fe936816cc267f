package instrument

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

type Section uint8

const (
	CharacteristicDecomposition Section = iota
	WENOInterpolation
	RiemannSolver
	ReconstructFlux
	ComputeSource
	NumSections
)

var SectionPrintNames = []string{
	"Characteristic decomposition",
	"WENO interpolation",
	"Riemann solver",
	"Reconstruct flux",
	"Compute source",
}

func (s Section) Print() (txt string) {
	txt = SectionPrintNames[s]
	return
}

// Reporter receives elapsed time per section. Implementations must be safe
// for concurrent use.
type Reporter interface {
	Record(s Section, d time.Duration)
}

type Nop struct{}

func (Nop) Record(Section, time.Duration) {}

// Timers accumulates time and call counts per section
type Timers struct {
	elapsed [NumSections]atomic.Int64
	calls   [NumSections]atomic.Int64
}

func NewTimers() *Timers { return &Timers{} }

func (t *Timers) Record(s Section, d time.Duration) {
	t.elapsed[s].Add(int64(d))
	t.calls[s].Add(1)
}

func (t *Timers) Elapsed(s Section) time.Duration { return time.Duration(t.elapsed[s].Load()) }

func (t *Timers) Calls(s Section) int64 { return t.calls[s].Load() }

func (t *Timers) Reset() {
	for s := range t.elapsed {
		t.elapsed[s].Store(0)
		t.calls[s].Store(0)
	}
}

func (t *Timers) Print() {
	for s := Section(0); s < NumSections; s++ {
		fmt.Printf("%-30s %12v %10d\n", s.Print(), t.Elapsed(s), t.Calls(s))
	}
}

func (t *Timers) Log(log logrus.FieldLogger) {
	for s := Section(0); s < NumSections; s++ {
		if t.Calls(s) == 0 {
			continue
		}
		log.WithFields(logrus.Fields{
			"section": s.Print(),
			"elapsed": t.Elapsed(s),
			"calls":   t.Calls(s),
		}).Info("timer")
	}
}

// Tally accumulates locally for one goroutine and flushes to a Reporter, so
// hot loops do not contend on the shared counters
type Tally struct {
	r       Reporter
	elapsed [NumSections]time.Duration
}

func NewTally(r Reporter) *Tally { return &Tally{r: r} }

// Start returns a function that charges the time since Start to section s
func (t *Tally) Start(s Section) func() {
	if t.r == nil {
		return func() {}
	}
	t0 := time.Now()
	return func() { t.elapsed[s] += time.Since(t0) }
}

func (t *Tally) Add(s Section, d time.Duration) {
	if t.r != nil {
		t.elapsed[s] += d
	}
}

func (t *Tally) Flush() {
	if t.r == nil {
		return
	}
	for s, d := range t.elapsed {
		if d > 0 {
			t.r.Record(Section(s), d)
		}
		t.elapsed[s] = 0
	}
}
