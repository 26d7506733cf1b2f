// Package pipeline maps the backend's agent_state onto the coarse progress
// stages shown on a campaign page. It does not validate transitions.
package pipeline

type Stage string

const (
	StageBrief    Stage = "brief"
	StageStrategy Stage = "strategy"
	StageCreators Stage = "creators"
	StageOutreach Stage = "outreach"
	StageActive   Stage = "active"
	StageDone     Stage = "done"
)

// Stages in display order.
var Stages = []Stage{StageBrief, StageStrategy, StageCreators, StageOutreach, StageActive, StageDone}

var labels = map[Stage]string{
	StageBrief:    "Brief",
	StageStrategy: "Strategy",
	StageCreators: "Creators",
	StageOutreach: "Outreach",
	StageActive:   "Active",
	StageDone:     "Done",
}

var byAgentState = map[string]Stage{
	"brief_received":             StageBrief,
	"strategy_draft":             StageStrategy,
	"awaiting_brief_approval":    StageStrategy,
	"creator_discovery":          StageCreators,
	"awaiting_creator_approval":  StageCreators,
	"outreach_draft":             StageOutreach,
	"awaiting_outreach_approval": StageOutreach,
	"outreach_in_prog":           StageOutreach,
	"negotiation":                StageOutreach,
	"awaiting_terms_approval":    StageOutreach,
	"payment_pending":            StageActive,
	"campaign_active":            StageActive,
	"completed":                  StageDone,
}

// StageOf returns the stage for agentState. Unknown or empty states fall
// back to StageBrief.
func StageOf(agentState string) Stage {
	if s, ok := byAgentState[agentState]; ok {
		return s
	}
	return StageBrief
}

// Index is the zero-based position of s in Stages, 0 for unknown stages.
func Index(s Stage) int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return 0
}

func Label(s Stage) string {
	if l, ok := labels[s]; ok {
		return l
	}
	return labels[StageBrief]
}

// Progress describes where a campaign sits in the pipeline.
type Progress struct {
	Stage Stage  `json:"stage"`
	Label string `json:"label"`
	Index int    `json:"index"`
	Total int    `json:"total"`
}

// ProgressOf accepts a nil agent state, which the backend sends for
// campaigns that never started.
func ProgressOf(agentState *string) Progress {
	state := ""
	if agentState != nil {
		state = *agentState
	}
	s := StageOf(state)
	return Progress{Stage: s, Label: Label(s), Index: Index(s), Total: len(Stages)}
}
