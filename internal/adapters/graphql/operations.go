package graphql

// operation is one named GraphQL operation of the remote data service. Field is the key of its
// result under "data".
type operation struct {
	Name     string
	Field    string
	Document string
	Public   bool // Callable without a session
}

const (
	accountFields     = `id type name institution balance lastSynced`
	transactionFields = `id accountId amount type category merchant description date`
	sessionFields     = `accessToken userId expiresAt`
)

var (
	opGetAccounts = operation{
		Name:     "GetAccounts",
		Field:    "accounts",
		Document: `query GetAccounts { accounts { ` + accountFields + ` } }`,
	}
	opGetAccount = operation{
		Name:     "GetAccount",
		Field:    "account",
		Document: `query GetAccount($id: ID!) { account(id: $id) { ` + accountFields + ` } }`,
	}
	opGetTotalBalance = operation{
		Name:     "GetTotalBalance",
		Field:    "totalBalance",
		Document: `query GetTotalBalance { totalBalance }`,
	}
	opGetDashboardStats = operation{
		Name:     "GetDashboardStats",
		Field:    "dashboardStats",
		Document: `query GetDashboardStats { dashboardStats { totalBalance monthlyIncome monthlyExpenses accountCount } }`,
	}
	opGetTransactions = operation{
		Name:  "GetTransactions",
		Field: "transactions",
		Document: `query GetTransactions($filters: TransactionFilterInput, $pagination: PaginationInput, $sort: TransactionSortInput) {
  transactions(filters: $filters, pagination: $pagination, sort: $sort) {
    edges { node { ` + transactionFields + ` } }
    pageInfo { hasNextPage }
  }
}`,
	}
	opGetRecentTransactions = operation{
		Name:     "GetRecentTransactions",
		Field:    "recentTransactions",
		Document: `query GetRecentTransactions($limit: Int) { recentTransactions(limit: $limit) { ` + transactionFields + ` } }`,
	}
	opGetCategories = operation{
		Name:     "GetCategories",
		Field:    "categories",
		Document: `query GetCategories { categories { name } }`,
	}
	opGetAnalytics = operation{
		Name:     "GetAnalytics",
		Field:    "analytics",
		Document: `query GetAnalytics { analytics { spendingByCategory { category total } } }`,
	}
	opGetTwoFactorStatus = operation{
		Name:     "GetTwoFactorStatus",
		Field:    "twoFactorStatus",
		Document: `query GetTwoFactorStatus { twoFactorStatus { emailEnabled smsEnabled emailVerified phoneVerified phoneNumber backupCodesRemaining } }`,
	}
	opGetBankConnections = operation{
		Name:     "GetBankConnections",
		Field:    "bankConnections",
		Document: `query GetBankConnections { bankConnections { id status institutionName accounts { id name mask isLinked } } }`,
	}

	opCreateAccount = operation{
		Name:     "CreateAccount",
		Field:    "createAccount",
		Document: `mutation CreateAccount($input: CreateAccountInput!) { createAccount(input: $input) { ` + accountFields + ` } }`,
	}
	opUpdateAccount = operation{
		Name:     "UpdateAccount",
		Field:    "updateAccount",
		Document: `mutation UpdateAccount($id: ID!, $input: UpdateAccountInput!) { updateAccount(id: $id, input: $input) { ` + accountFields + ` } }`,
	}
	opDeleteAccount = operation{
		Name:     "DeleteAccount",
		Field:    "deleteAccount",
		Document: `mutation DeleteAccount($id: ID!) { deleteAccount(id: $id) }`,
	}
	opCreateTransaction = operation{
		Name:     "CreateTransaction",
		Field:    "createTransaction",
		Document: `mutation CreateTransaction($input: CreateTransactionInput!) { createTransaction(input: $input) { ` + transactionFields + ` } }`,
	}
	opUpdateTransaction = operation{
		Name:     "UpdateTransaction",
		Field:    "updateTransaction",
		Document: `mutation UpdateTransaction($id: ID!, $input: UpdateTransactionInput!) { updateTransaction(id: $id, input: $input) { ` + transactionFields + ` } }`,
	}
	opDeleteTransaction = operation{
		Name:     "DeleteTransaction",
		Field:    "deleteTransaction",
		Document: `mutation DeleteTransaction($id: ID!) { deleteTransaction(id: $id) }`,
	}
	opSendSetupCode = operation{
		Name:     "SendSetupCode",
		Field:    "sendSetupCode",
		Document: `mutation SendSetupCode($type: TwoFactorType!, $phoneNumber: String) { sendSetupCode(type: $type, phoneNumber: $phoneNumber) }`,
	}
	opEnableTwoFactor = operation{
		Name:     "EnableTwoFactor",
		Field:    "enableTwoFactor",
		Document: `mutation EnableTwoFactor($type: TwoFactorType!, $code: String!) { enableTwoFactor(type: $type, code: $code) }`,
	}
	opDisableTwoFactor = operation{
		Name:     "DisableTwoFactor",
		Field:    "disableTwoFactor",
		Document: `mutation DisableTwoFactor($type: TwoFactorType!, $code: String!) { disableTwoFactor(type: $type, code: $code) }`,
	}
	opRegenerateBackupCodes = operation{
		Name:     "RegenerateBackupCodes",
		Field:    "regenerateBackupCodes",
		Document: `mutation RegenerateBackupCodes($password: String!) { regenerateBackupCodes(password: $password) }`,
	}
	opLoginStep1 = operation{
		Name:  "LoginStep1",
		Field: "loginStep1",
		Document: `mutation LoginStep1($email: String!, $password: String!) {
  loginStep1(email: $email, password: $password) {
    session { ` + sessionFields + ` }
    pending { pendingToken availableFactors issuedAt }
  }
}`,
		Public: true,
	}
	opLoginStep2 = operation{
		Name:     "LoginStep2",
		Field:    "loginStep2",
		Document: `mutation LoginStep2($pendingToken: String!, $code: String!, $type: TwoFactorType!) { loginStep2(pendingToken: $pendingToken, code: $code, type: $type) { ` + sessionFields + ` } }`,
		Public:   true,
	}
)

// Variable shapes shared by client and server.
type (
	idVars struct {
		ID string `json:"id"`
	}
	limitVars struct {
		Limit int `json:"limit"`
	}
	inputVars[T any] struct {
		Input T `json:"input"`
	}
	updateVars[T any] struct {
		ID    string `json:"id"`
		Input T      `json:"input"`
	}
	setupCodeVars struct {
		Type        string  `json:"type"`
		PhoneNumber *string `json:"phoneNumber,omitempty"`
	}
	factorCodeVars struct {
		Type string `json:"type"`
		Code string `json:"code"`
	}
	passwordVars struct {
		Password string `json:"password"`
	}
	credentialsVars struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	secondFactorVars struct {
		PendingToken string `json:"pendingToken"`
		Code         string `json:"code"`
		Type         string `json:"type"`
	}
)
