package models

// Decision is the three-state approval flag used across teams, projects and
// work logs. It starts as Pending and moves to Approved or Rejected exactly
// once; there is no transition back.
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// Decided reports whether a reviewer has recorded a final decision.
func (d Decision) Decided() bool {
	return d == DecisionApproved || d == DecisionRejected
}
