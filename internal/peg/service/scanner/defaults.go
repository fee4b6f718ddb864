package scanner

import "time"

const (
	defaultPollInterval = 30 * time.Second
	defaultWorkers      = 4

	kindPegIn  = "peg_in"
	kindPegOut = "peg_out"
	kindBurn   = "burn"

	scriptTypeNullData = "nulldata"
)
