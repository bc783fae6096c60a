package dto

import "time"

type PlanRequest struct {
	Commit  bool           `json:"commit"`
	Options OptionsRequest `json:"options"`
}

type CommitFailureResponse struct {
	ReportID string `json:"report_id"`
	Reason   string `json:"reason"`
}

type CommitResponse struct {
	Committed []string                `json:"committed"`
	Failed    []CommitFailureResponse `json:"failed"`
}

type PlanResponse struct {
	RunID     string          `json:"run_id"`
	CreatedAt time.Time       `json:"created_at"`
	Commit    *CommitResponse `json:"commit,omitempty"`
	OptimizeResponse
}

type DriverCommitResponse struct {
	RunID  string          `json:"run_id"`
	Commit *CommitResponse `json:"commit"`
	DriverRouteResponse
}
