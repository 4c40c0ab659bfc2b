package almanac

import (
	"time"

	"cloudeng.io/net/ratecontrol"
)

// NewPacer returns a Pacer allowing one request per interval, or nil when
// interval is not positive. The controller is safe for concurrent use, so one
// pacer can be shared by every pipeline talking to the same service.
func NewPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return nil
	}
	return ratecontrol.New(ratecontrol.WithRequestsPerTick(interval, 1))
}
