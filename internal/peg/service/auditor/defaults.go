package auditor

import "time"

const (
	defaultPollInterval       = 30 * time.Second
	defaultConfirmationOffset = 1
	defaultFastPathWindow     = 150
	defaultWorkers            = 8

	// maxSyncLag is how many unvalidated headers the base node may have before audits pause.
	maxSyncLag = 2
)
