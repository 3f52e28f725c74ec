package model

// Labels, lock reason and comment applied to a pull request judged as spam.
const (
	LabelInvalid   = "invalid"
	LabelSpam      = "spam"
	LockReasonSpam = "spam"

	SpamComment = "This pull request has been closed and marked invalid because it appears to be Hacktoberfest-related spam."
)

// RemediationStep is a single platform mutation. Only the fields relevant to
// Kind are set.
type RemediationStep struct {
	Kind       StepKind
	Labels     []string
	Body       string
	LockReason string
}

// StepOutcome reports what happened to one step of a remediation plan.
type StepOutcome struct {
	Step    RemediationStep
	Err     error
	Skipped bool // A previous step failed, so this one was never attempted.
}

// Succeeded reports whether the step ran without error.
func (o StepOutcome) Succeeded() bool {
	return !o.Skipped && o.Err == nil
}

// PlanRemediation returns the ordered steps for a spam pull request. The
// aggressive plan additionally labels it "spam" and locks the conversation.
func PlanRemediation(aggressive bool) []RemediationStep {
	labels := []string{LabelInvalid}
	if aggressive {
		labels = append(labels, LabelSpam)
	}

	steps := []RemediationStep{
		{Kind: StepAddLabels, Labels: labels},
		{Kind: StepClose},
		{Kind: StepComment, Body: SpamComment},
	}
	if aggressive {
		steps = append(steps, RemediationStep{Kind: StepLock, LockReason: LockReasonSpam})
	}
	return steps
}
