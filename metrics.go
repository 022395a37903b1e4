package tickscan

import "time"

// MetricsCollector defines an interface for collecting operational
// metrics. Implement this interface to integrate with monitoring
// systems like Prometheus; tickscan itself carries no exporter.
type MetricsCollector interface {
	// RecordScan is called once per scan. records is the number of data
	// records consumed, matched the number passing the source filter,
	// skipped the number dropped under PolicySkip. err is nil on
	// success.
	RecordScan(records, matched, skipped uint64, bytesRead int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordScan(uint64, uint64, uint64, int64, time.Duration, error) {}
