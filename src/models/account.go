package models

// Account represents a single brokerage account owned by a user.
// Its Balance always mirrors the ending balance of the most recently
// written trading daily book entry for the account, or the initial
// value supplied at creation when no entries exist yet.
type Account struct {
	ID      int64   `json:"id"`
	UserID  int64   `json:"user_id"`
	Name    string  `json:"name"`
	Purpose string  `json:"purpose"`
	Broker  string  `json:"broker"`
	Balance float64 `json:"balance"`
}

// AccountPayload is the request body for creating or replacing an account.
// Account updates are full overwrites: every field must be present.
type AccountPayload struct {
	Name    string  `json:"name"`
	Purpose string  `json:"purpose"`
	Broker  string  `json:"broker"`
	Balance float64 `json:"balance"`
}

// AccountWithBalance is a lightweight projection of an account used to
// populate the account dropdown when creating a daily book entry.
type AccountWithBalance struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}
