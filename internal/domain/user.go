package domain

// Account types.
const (
	AccountTraveler = "traveler"
	AccountProvider = "provider"
)

// User identifies the owner of a session. Email is the key for every per-user
// collection.
type User struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	AccountType string `json:"accountType"`
}
