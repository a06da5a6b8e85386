package leader

// Nomination is the set of callbacks to handle leadership changes.
type Nomination interface {
	// GainedLeadershipCallback is invoked when this node becomes the leader
	GainedLeadershipCallback() error
	// LostLeadershipCallback is invoked when this node loses leadership
	LostLeadershipCallback() error
	// ShutDownCallback is invoked when the candidate stops campaigning
	ShutDownCallback() error
	// GetID returns the unique identifier this node campaigns under
	GetID() string
}

// Candidate campaigns to become the leader of a role.
type Candidate interface {
	IsLeader() bool
	Start() error
	Stop() error
	Resign()
}
