package dto

// Per-user outcome of a digest cycle.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Messages returned by the cron endpoint.
const (
	MessageNoUsersScheduled = "No users scheduled for this time"
	MessageCycleCompleted   = "Cron job completed"
)

// UserResult records what happened to one selected user.
type UserResult struct {
	UserID  string `json:"userId"`
	Status  string `json:"status"`
	Tickers *int   `json:"tickers,omitempty"`
}

// CycleReport is the JSON summary returned by the cron endpoint.
type CycleReport struct {
	Message        string       `json:"message"`
	Time           string       `json:"time"`
	Day            string       `json:"day"`
	UsersProcessed int          `json:"usersProcessed"`
	Results        []UserResult `json:"results,omitempty"`
}
