package quizstats

import "sync/atomic"

var globalCollector atomic.Pointer[Collector]

func SetGlobal(collector *Collector) {
	globalCollector.Store(collector)
}

func Global() *Collector {
	return globalCollector.Load()
}

func SnapshotGlobal() Snapshot {
	if collector := globalCollector.Load(); collector != nil {
		return collector.Snapshot()
	}
	return Snapshot{}
}

// The helpers below are no-ops until SetGlobal installs a collector.

func RecordIssued() {
	if collector := globalCollector.Load(); collector != nil {
		collector.AddIssued()
	}
}

func RecordResolved(correct bool) {
	if collector := globalCollector.Load(); collector != nil {
		collector.AddResolved(correct)
	}
}

func RecordRejected() {
	if collector := globalCollector.Load(); collector != nil {
		collector.AddRejected()
	}
}

func RecordSwept(n int) {
	if collector := globalCollector.Load(); collector != nil {
		collector.AddSwept(n)
	}
}

func RecordDropped() {
	if collector := globalCollector.Load(); collector != nil {
		collector.AddDropped()
	}
}

func RecordStream() {
	if collector := globalCollector.Load(); collector != nil {
		collector.AddStream()
	}
}

func AddRX(bytes int) {
	if collector := globalCollector.Load(); collector != nil {
		collector.AddRX(bytes)
	}
}

func AddTX(bytes int) {
	if collector := globalCollector.Load(); collector != nil {
		collector.AddTX(bytes)
	}
}
