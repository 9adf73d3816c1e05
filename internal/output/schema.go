package output

import (
	"encoding/json"
	"io"
	"time"
)

// ErrorResponse is the standard JSON error format
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// NewError creates a new error response
func NewError(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// NewErrorWithCode creates a new error response with a code
func NewErrorWithCode(code, msg string) ErrorResponse {
	return ErrorResponse{Error: msg, Code: code}
}

// TimestampedResponse adds a timestamp to any response
type TimestampedResponse struct {
	GeneratedAt time.Time `json:"generated_at"`
}

// NewTimestamped creates a timestamped response base
func NewTimestamped() TimestampedResponse {
	return TimestampedResponse{GeneratedAt: Timestamp()}
}

// Timestamp returns the current time in UTC, truncated to seconds.
func Timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// SectionItem is one section in list output
type SectionItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	SlideCount  int      `json:"slide_count"`
	Slides      []string `json:"slides"`
}

// ListResponse is the output format for the list command
type ListResponse struct {
	TimestampedResponse
	Deck     string        `json:"deck"`
	Title    string        `json:"title"`
	Sections []SectionItem `json:"sections"`
	Count    int           `json:"count"`
}

// WarningItem is a single validation warning
type WarningItem struct {
	Section string `json:"section"`
	Slide   string `json:"slide,omitempty"`
	Message string `json:"message"`
}

// ValidateResponse is the output format for the validate command
type ValidateResponse struct {
	TimestampedResponse
	Valid    bool          `json:"valid"`
	Error    string        `json:"error,omitempty"`
	Sections int           `json:"sections"`
	Slides   int           `json:"slides"`
	Warnings []WarningItem `json:"warnings"`
}

// SlideTiming is one row of rehearsal stats
type SlideTiming struct {
	Slide     string `json:"slide"`
	Index     int    `json:"index"`
	Views     int    `json:"views"`
	AverageMs int64  `json:"average_ms"`
	LongestMs int64  `json:"longest_ms"`
}

// SectionTimings groups rehearsal stats per section
type SectionTimings struct {
	Section string        `json:"section"`
	TotalMs int64         `json:"total_ms"`
	Slides  []SlideTiming `json:"slides"`
}

// StatsResponse is the output format for the stats command
type StatsResponse struct {
	TimestampedResponse
	Deck     string           `json:"deck"`
	Sections []SectionTimings `json:"sections"`
}

// VersionResponse is the output format for the version command
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
