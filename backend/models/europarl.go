package models

import "time"

// VoteTally is the outcome of a plenary vote on a decision
type VoteTally struct {
	Favor      int `json:"favor"`
	Against    int `json:"against"`
	Abstention int `json:"abstention"`
}

// ActivityStamp is the date and kind of the most recent procedure activity
type ActivityStamp struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

// LegislativeProcedure is the citizen-facing projection of an upstream
// procedure. It is derived on demand and never persisted beyond the cache TTL.
type LegislativeProcedure struct {
	ID           string         `json:"id"`
	Reference    string         `json:"reference"`
	Title        string         `json:"title"`
	Summary      string         `json:"summary,omitempty"`
	Type         string         `json:"type"`
	Subjects     []string       `json:"subjects"`
	Status       string         `json:"status"`
	LastActivity *ActivityStamp `json:"lastActivity,omitempty"`
	Votes        *VoteTally     `json:"votes,omitempty"`
	SourceURL    string         `json:"sourceUrl,omitempty"`
}

// TimelineEvent is one step of a procedure's activity history
type TimelineEvent struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ProcedureDetail is the resolved view of a single reference
type ProcedureDetail struct {
	Reference    string          `json:"reference"`
	Title        string          `json:"title"`
	Summary      string          `json:"summary,omitempty"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	LastActivity *ActivityStamp  `json:"lastActivity,omitempty"`
	Timeline     []TimelineEvent `json:"timeline"`
	SourceURL    string          `json:"sourceUrl,omitempty"`
}

// PlenarySession is an upcoming or past plenary meeting
type PlenarySession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Type      string    `json:"type"`
}
