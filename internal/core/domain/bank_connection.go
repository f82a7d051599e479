package domain

// BankConnectionStatus is the health of an externally managed institution link.
type BankConnectionStatus string

const (
	ConnectionActive            BankConnectionStatus = "active"
	ConnectionError             BankConnectionStatus = "error"
	ConnectionPendingDisconnect BankConnectionStatus = "pending_disconnect"
)

// LinkedAccount is a sub-account exposed by a bank connection.
// IsLinked is true once the sub-account has been matched to a local Account with the same ID.
type LinkedAccount struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Mask     string `json:"mask,omitempty"` // Last digits of the account number
	IsLinked bool   `json:"isLinked"`
}

// BankConnection is a link to a financial institution managed by the bank-linking aggregator.
type BankConnection struct {
	ID              string               `json:"id"`
	Status          BankConnectionStatus `json:"status"`
	InstitutionName string               `json:"institutionName"`
	Accounts        []LinkedAccount      `json:"accounts"`
}
