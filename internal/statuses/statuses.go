package statuses

// Game lifecycle statuses stored in the game document.
const (
	StatusWaitOpponent = "wait_opponent"
	StatusActive       = "active"
	StatusCompleted    = "completed"
)
