package mapping

import (
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/SscSPs/spendwise_client/internal/dto"
)

// ToAccountResponse converts a domain Account to an AccountResponse DTO
func ToAccountResponse(a domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:          a.ID,
		Type:        a.Type,
		Name:        a.Name,
		Institution: a.Institution,
		Balance:     a.Balance,
		LastSynced:  a.LastSynced,
		Manual:      a.IsManual(),
	}
}

// ToAccountResponses converts a slice of domain Accounts
func ToAccountResponses(accounts []domain.Account) []dto.AccountResponse {
	res := make([]dto.AccountResponse, len(accounts))
	for i, a := range accounts {
		res[i] = ToAccountResponse(a)
	}
	return res
}

// ToCreateAccountInput converts a CreateAccountRequest to the domain input
func ToCreateAccountInput(req dto.CreateAccountRequest) domain.CreateAccountInput {
	return domain.CreateAccountInput{
		Name:        req.Name,
		Type:        req.Type,
		Balance:     req.Balance,
		Institution: req.Institution,
	}
}

// ToUpdateAccountInput converts an UpdateAccountRequest to the domain input
func ToUpdateAccountInput(req dto.UpdateAccountRequest) domain.UpdateAccountInput {
	return domain.UpdateAccountInput{
		Name:        req.Name,
		Institution: req.Institution,
		Balance:     req.Balance,
	}
}

// ToConnectionStateResponse flattens a reconciled connection state.
func ToConnectionStateResponse(state domain.ConnectionState) dto.ConnectionStateResponse {
	if state == nil {
		state = domain.Manual{}
	}
	res := dto.ConnectionStateResponse{
		Kind:         state.Kind(),
		OffersReauth: domain.OffersReauth(state),
	}
	if ref, ok := domain.RefOf(state); ok {
		res.ConnectionID = ref.ConnectionID
		res.Mask = ref.Mask
	}
	return res
}

// ToAccountsOverviewResponse converts the accounts page
func ToAccountsOverviewResponse(o *domain.AccountsOverview) dto.AccountsOverviewResponse {
	res := dto.AccountsOverviewResponse{
		Groups:    make([]dto.AccountGroupResponse, 0, len(o.Groups)),
		Summary:   o.Summary,
		Conflicts: o.Conflicts,
		Loading:   o.Loading,
	}
	for _, g := range o.Groups {
		group := dto.AccountGroupResponse{
			Type:     g.Type,
			Label:    g.Label,
			Total:    g.Total,
			Accounts: make([]dto.AccountStatusResponse, len(g.Accounts)),
		}
		for i, st := range g.Accounts {
			group.Accounts[i] = dto.AccountStatusResponse{
				AccountResponse: ToAccountResponse(st.Account),
				Connection:      ToConnectionStateResponse(st.Connection),
			}
		}
		res.Groups = append(res.Groups, group)
	}
	return res
}
