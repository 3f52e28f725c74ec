package model

// Verdict is the result of one evaluation. It is consumed immediately by the
// remediation step and the output writer, then discarded.
type Verdict struct {
	Spam     bool
	Reason   Reason
	Evidence Evidence
	Score    Score
	Scored   bool // False when the decision was made before scoring.
}
