package leader

import (
	"github.com/uber-go/tally"
)

type electionMetrics struct {
	Start            tally.Counter
	Stop             tally.Counter
	Resigned         tally.Counter
	GainedLeadership tally.Counter
	LostLeadership   tally.Counter
	IsLeader         tally.Gauge
	Running          tally.Gauge
	Error            tally.Counter
}

func newElectionMetrics(scope tally.Scope, hostname string) electionMetrics {
	s := scope.Tagged(map[string]string{"hostname": hostname})

	return electionMetrics{
		Start:            s.Counter("start"),
		Stop:             s.Counter("stop"),
		Resigned:         s.Counter("resigned"),
		GainedLeadership: s.Counter("gained_leadership"),
		LostLeadership:   s.Counter("lost_leadership"),
		IsLeader:         s.Gauge("is_leader"),
		Running:          s.Gauge("running"),
		Error:            s.Counter("error"),
	}
}
