package domain

// Owner is the application entity that holds subscriptions and is billed for them
type Owner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
