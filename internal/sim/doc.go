// Package sim owns the backdrop's frame loop and its resource lifecycle.
//
// A [Scheduler] moves through three states:
//
//	Idle --Start--> Running --Stop--> Stopped
//
// [Scheduler.Start] acquires the host surface, registers the resize and
// pointer-move listeners and seeds the particle pool. It returns a [Disposer]
// that owns the listener handles and the pending frame; releasing it is the
// same as calling [Scheduler.Stop]. [Scheduler.Run] is an explicit loop that
// checks the stop token before waiting for a frame and again before ticking,
// so no tick runs once teardown has begun.
//
// # Example
//
//	sched := sim.New(host, sim.DefaultOptions(seed))
//	d, err := sched.Start()
//	if err != nil {
//	    return err
//	}
//	defer d.Release()
//	return sched.Run(ctx)
package sim
