package reporting

const (
	// maxHeaderLag and maxAuditLag bound how far behind the audit may be and still count as synced.
	maxHeaderLag = 2
	maxAuditLag  = 3

	DefaultPegEventsLimit = 25
	MaxPegEventsLimit     = 100
)
