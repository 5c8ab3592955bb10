// Package trace provides ready-made observers for slot lifecycle events.
//
// Register an observer with stackbox.Subscribe to watch handle activity;
// the core emits events only while at least one observer is registered,
// so tracing costs nothing when off.
//
// ZapObserver logs every transition at debug level:
//
//	log, _ := zap.NewDevelopment()
//	obs := trace.NewZapObserver(log)
//	stackbox.Subscribe(obs)
//	defer stackbox.Unsubscribe(obs)
//
// Counters keeps an atomic tally, useful for leak checks in tests and for
// live inspection (cmd/slotwatch renders it):
//
//	var c trace.Counters
//	stackbox.Subscribe(&c)
//	// ... exercise handles ...
//	if live := c.Snapshot().Live(); live != 0 {
//	    t.Fatalf("%d outstanding obligations", live)
//	}
package trace
