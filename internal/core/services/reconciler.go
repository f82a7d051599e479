package services

import (
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Reconciliation is the connection state of every account, plus the accounts more than one connection claims.
type Reconciliation struct {
	States    map[string]domain.ConnectionState
	Conflicts []domain.ConnectionConflict
}

// StateOf returns the state of accountID, Manual for an account that was not part of the input.
func (r Reconciliation) StateOf(accountID string) domain.ConnectionState {
	if s, ok := r.States[accountID]; ok {
		return s
	}
	return domain.Manual{}
}

// Reconcile matches accounts to bank connection sub-accounts by identifier. Connections are scanned in the
// given order and the first one holding a linked sub-account with the account's ID decides its state; an
// account no connection claims is Manual. Neither input is modified.
func Reconcile(accounts []domain.Account, connections []domain.BankConnection) Reconciliation {
	claims := make(map[string][]int)
	refs := make(map[string]domain.ConnectionRef)
	for ci, conn := range connections {
		for _, sub := range conn.Accounts {
			if !sub.IsLinked {
				continue
			}
			owners := claims[sub.ID]
			if len(owners) > 0 && owners[len(owners)-1] == ci {
				continue
			}
			if len(owners) == 0 {
				refs[sub.ID] = domain.ConnectionRef{ConnectionID: conn.ID, Mask: sub.Mask}
			}
			claims[sub.ID] = append(owners, ci)
		}
	}

	out := Reconciliation{States: make(map[string]domain.ConnectionState, len(accounts))}
	for _, acc := range accounts {
		owners, ok := claims[acc.ID]
		if !ok {
			out.States[acc.ID] = domain.Manual{}
			continue
		}
		out.States[acc.ID] = stateFor(connections[owners[0]].Status, refs[acc.ID])
		if len(owners) > 1 {
			ids := make([]string, len(owners))
			for i, ci := range owners {
				ids[i] = connections[ci].ID
			}
			out.Conflicts = append(out.Conflicts, domain.ConnectionConflict{AccountID: acc.ID, ConnectionIDs: ids})
		}
	}
	return out
}

// stateFor maps a connection status to a state. An unknown status is treated like an error so that the
// user is offered re-authentication rather than a false "connected".
func stateFor(status domain.BankConnectionStatus, ref domain.ConnectionRef) domain.ConnectionState {
	switch status {
	case domain.ConnectionActive:
		return domain.Connected{ConnectionRef: ref}
	case domain.ConnectionPendingDisconnect:
		return domain.PendingDisconnect{ConnectionRef: ref}
	default:
		return domain.NeedsReauth{ConnectionRef: ref}
	}
}

// GroupAccountsByType groups accounts in the order checking, savings, credit, investment.
// Empty groups are left out and accounts keep their input order within a group.
func GroupAccountsByType(accounts []domain.Account, rec Reconciliation) []domain.AccountGroup {
	byType := make(map[domain.AccountType][]domain.AccountStatus)
	for _, acc := range accounts {
		byType[acc.Type] = append(byType[acc.Type], domain.AccountStatus{Account: acc, Connection: rec.StateOf(acc.ID)})
	}

	groups := make([]domain.AccountGroup, 0, len(domain.AccountTypes))
	for _, t := range domain.AccountTypes {
		members := byType[t]
		if len(members) == 0 {
			continue
		}
		total := decimal.Zero
		for _, m := range members {
			total = total.Add(m.Account.Balance)
		}
		groups = append(groups, domain.AccountGroup{Type: t, Label: t.Label(), Accounts: members, Total: total})
	}
	return groups
}
