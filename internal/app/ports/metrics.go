package ports

// OpMetrics records per-command outcomes for the KPI endpoint.
type OpMetrics interface {
	RecordSuccess(opType string)
	RecordRejected(opType string)
	RecordFailure(opType string)
}
