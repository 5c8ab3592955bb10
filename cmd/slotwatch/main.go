// Command slotwatch runs a demo workload against the stackbox lifecycle
// and watches the events it emits - as structured logs by default, or as
// a live TUI with -i.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/stackbox-go/stackbox"
	"github.com/stackbox-go/stackbox/raw"
	"github.com/stackbox-go/stackbox/trace"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		duration    = flag.Duration("for", 5*time.Second, "How long to run the workload")
		rate        = flag.Duration("rate", 50*time.Millisecond, "Delay between workload steps")
		seed        = flag.Int64("seed", 0, "Workload seed (0 = time-based)")
	)
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "interactive mode needs a terminal; rerun without -i")
			os.Exit(1)
		}
		if err := runInteractive(*rate, *seed); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*duration, *rate, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(duration, rate time.Duration, seed int64) error {
	log, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	obs := trace.NewZapObserver(log)
	var counters trace.Counters
	stackbox.Subscribe(obs)
	stackbox.Subscribe(&counters)
	defer stackbox.Unsubscribe(obs)
	defer stackbox.Unsubscribe(&counters)

	rng := rand.New(rand.NewSource(seed))
	deadline := time.Now().Add(duration)
	for time.Now().Before(deadline) {
		step(rng)
		time.Sleep(rate)
	}

	t := counters.Snapshot()
	fmt.Printf("\nplaced:    %d\n", t.Placed)
	fmt.Printf("dropped:   %d\n", t.Dropped)
	fmt.Printf("moved out: %d\n", t.MovedOut)
	fmt.Printf("widened:   %d\n", t.Widened)
	fmt.Printf("leaked:    %d\n", t.Leaked)
	fmt.Printf("replaced:  %d\n", t.Replaced)
	fmt.Printf("live:      %d\n", t.Live())
	if t.Live() != 0 {
		return fmt.Errorf("workload leaked %d obligations", t.Live())
	}
	return nil
}

// session is the workload's boxed value.
type session struct {
	buf [48]byte
	id  uint32
}

func (s *session) Drop() {
	// Destructor work stands in for closing a real resource.
	for i := range s.buf {
		s.buf[i] = 0
	}
}

// frame is the pointer-free payload for the raw reservation path.
type frame struct {
	Magic uint32
	Seq   uint32
}

// step exercises one random lifecycle path end to end.
func step(rng *rand.Rand) {
	id := rng.Uint32()
	switch rng.Intn(6) {
	case 0: // plain place and drop
		var slot stackbox.Slot[session]
		stackbox.New(&slot, session{id: id}).Drop()
	case 1: // move out, settle by hand
		var slot stackbox.Slot[session]
		s := stackbox.New(&slot, session{id: id}).IntoInner()
		s.Drop()
	case 2: // widen, dispatch, drop erased
		var slot stackbox.Slot[session]
		d := stackbox.Unsize(stackbox.New(&slot, session{id: id}))
		if p, ok := stackbox.Ref[session](d); ok {
			p.buf[0] = byte(id)
		}
		d.Drop()
	case 3: // in-place replace, then drop
		var slot stackbox.Slot[session]
		box := stackbox.New(&slot, session{id: id})
		box.Replace(func(old session) session {
			old.Drop()
			return session{id: old.id + 1}
		})
		box.Drop()
	case 4: // call-once closure
		var slot stackbox.Slot[session]
		once := stackbox.OnceOf(stackbox.New(&slot, session{id: id}), func(s session) uint32 {
			defer s.Drop()
			return s.id
		})
		_ = once.Call()
	case 5: // raw reservation, branch, map
		slot := raw.Reserve(32, 8)
		box := raw.Place(slot, frame{Magic: 0xF00D, Seq: id})
		box = raw.Map(box, func(f frame) frame {
			f.Seq++
			return f
		})
		box.Drop()
	}
}
