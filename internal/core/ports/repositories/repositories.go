package repositories

// RemoteDataService is the full contract the client core consumes from the remote data service.
// Each concern is its own interface so services can depend on the narrowest one.
type RemoteDataService interface {
	AccountRemoteFacade
	TransactionRemoteFacade
	DashboardReader
	TwoFactorRemoteFacade
	LoginRemote
	BankConnectionReader
}

// RemoteProvider holds the remote interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RemoteProvider struct {
	Accounts        AccountRemoteFacade
	Transactions    TransactionRemoteFacade
	Dashboard       DashboardReader
	TwoFactor       TwoFactorRemoteFacade
	Login           LoginRemote
	BankConnections BankConnectionReader
}

// NewRemoteProvider fans a single RemoteDataService implementation out to every concern.
func NewRemoteProvider(remote RemoteDataService) RemoteProvider {
	return RemoteProvider{
		Accounts:        remote,
		Transactions:    remote,
		Dashboard:       remote,
		TwoFactor:       remote,
		Login:           remote,
		BankConnections: remote,
	}
}
