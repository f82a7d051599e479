package domain

// QueryKind names a query of the remote data service. Together with its variables it forms a cache key.
type QueryKind uint8

const (
	QueryAccounts QueryKind = iota + 1
	QueryAccount
	QueryTotalBalance
	QueryDashboardStats
	QueryTransactions
	QueryRecentTransactions
	QueryCategories
	QueryAnalytics
	QueryTwoFactorStatus
	QueryBankConnections

	queryKindEnd
)

var queryKindNames = map[QueryKind]string{
	QueryAccounts:           "GetAccounts",
	QueryAccount:            "GetAccount",
	QueryTotalBalance:       "GetTotalBalance",
	QueryDashboardStats:     "GetDashboardStats",
	QueryTransactions:       "GetTransactions",
	QueryRecentTransactions: "GetRecentTransactions",
	QueryCategories:         "GetCategories",
	QueryAnalytics:          "GetAnalytics",
	QueryTwoFactorStatus:    "GetTwoFactorStatus",
	QueryBankConnections:    "GetBankConnections",
}

// AllQueryKinds returns every query kind in declaration order.
func AllQueryKinds() []QueryKind {
	out := make([]QueryKind, 0, int(queryKindEnd)-1)
	for k := QueryAccounts; k < queryKindEnd; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is a declared query kind.
func (k QueryKind) Valid() bool {
	return k >= QueryAccounts && k < queryKindEnd
}

func (k QueryKind) String() string {
	if name, ok := queryKindNames[k]; ok {
		return name
	}
	return "UnknownQuery"
}

// MutationKind names a mutation of the remote data service.
type MutationKind uint8

const (
	MutationCreateAccount MutationKind = iota + 1
	MutationUpdateAccount
	MutationDeleteAccount
	MutationCreateTransaction
	MutationUpdateTransaction
	MutationDeleteTransaction
	MutationSendSetupCode
	MutationEnableTwoFactor
	MutationDisableTwoFactor
	MutationRegenerateBackupCodes
	MutationLoginStep1
	MutationLoginStep2

	mutationKindEnd
)

var mutationKindNames = map[MutationKind]string{
	MutationCreateAccount:         "CreateAccount",
	MutationUpdateAccount:         "UpdateAccount",
	MutationDeleteAccount:         "DeleteAccount",
	MutationCreateTransaction:     "CreateTransaction",
	MutationUpdateTransaction:     "UpdateTransaction",
	MutationDeleteTransaction:     "DeleteTransaction",
	MutationSendSetupCode:         "SendSetupCode",
	MutationEnableTwoFactor:       "EnableTwoFactor",
	MutationDisableTwoFactor:      "DisableTwoFactor",
	MutationRegenerateBackupCodes: "RegenerateBackupCodes",
	MutationLoginStep1:            "LoginStep1",
	MutationLoginStep2:            "LoginStep2",
}

// AllMutationKinds returns every mutation kind in declaration order.
func AllMutationKinds() []MutationKind {
	out := make([]MutationKind, 0, int(mutationKindEnd)-1)
	for k := MutationCreateAccount; k < mutationKindEnd; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is a declared mutation kind.
func (k MutationKind) Valid() bool {
	return k >= MutationCreateAccount && k < mutationKindEnd
}

func (k MutationKind) String() string {
	if name, ok := mutationKindNames[k]; ok {
		return name
	}
	return "UnknownMutation"
}
