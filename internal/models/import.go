package models

// ReportType identifies a downloadable admin report
type ReportType string

const (
	ReportUserActivity   ReportType = "user-activity"
	ReportSwapStatistics ReportType = "swap-statistics"
	ReportFeedbackLogs   ReportType = "feedback-logs"
)

// ValidReportTypes defines the reports the export service can produce
var ValidReportTypes = map[ReportType]bool{
	ReportUserActivity:   true,
	ReportSwapStatistics: true,
	ReportFeedbackLogs:   true,
}

// ValidFormats defines the supported export and import encodings
var ValidFormats = map[string]bool{
	"ndjson": true,
	"json":   true,
	"csv":    true,
}

// ValidationError represents a single validation error
type ValidationError struct {
	Line    int         `json:"line,omitempty"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ImportResult summarizes a bulk profile import
type ImportResult struct {
	TotalRecords    int               `json:"total_records"`
	SuccessfulCount int               `json:"successful"`
	SkippedCount    int               `json:"skipped"`
	FailedCount     int               `json:"failed"`
	DurationMs      int64             `json:"duration_ms"`
	Errors          []ValidationError `json:"errors,omitempty"`
}

// SwapStatistics is one row of the swap statistics report
type SwapStatistics struct {
	Skill     string `json:"skill"`
	Offered   int    `json:"offered"`
	Requested int    `json:"requested"`
	Pending   int    `json:"pending"`
	Accepted  int    `json:"accepted"`
	Rejected  int    `json:"rejected"`
}

// UserActivity is one row of the user activity report
type UserActivity struct {
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	JoinedAt      string `json:"joined_at"`
	IsPublic      bool   `json:"is_public"`
	IsBanned      bool   `json:"is_banned"`
	ReportCount   int    `json:"report_count"`
	SkillsOffered int    `json:"skills_offered"`
	SkillsWanted  int    `json:"skills_wanted"`
	SentSwaps     int    `json:"sent_swaps"`
	ReceivedSwaps int    `json:"received_swaps"`
	AcceptedSwaps int    `json:"accepted_swaps"`
}
