package dto

// Severity classifies an error response: DATA means the caller's input was at
// fault, FATAL means the service failed.
type Severity string

const (
	SeverityData  Severity = "DATA"
	SeverityFatal Severity = "FATAL"
)

// ErrorMessage is the JSON body returned for every failed request.
type ErrorMessage struct {
	Message  string   `json:"message"`
	Field    string   `json:"field,omitempty"`
	Severity Severity `json:"severity"`
	Type     string   `json:"type"`
}
