package domain

// AlertSeverity orders alerts for display.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
	SeverityInfo     AlertSeverity = "info"
	SeveritySuccess  AlertSeverity = "success"
)

// SystemAlert is an operational alert derived from entity snapshots. It is
// recomputed on every evaluation and never stored. ID is rule name plus
// entity id, so repeated evaluations produce the same ids.
type SystemAlert struct {
	ID       string         `json:"id"`
	Rule     string         `json:"rule"`
	Severity AlertSeverity  `json:"severity"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Action   *AlertAction   `json:"action,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// AlertAction points the console at the screen that resolves an alert.
type AlertAction struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}
