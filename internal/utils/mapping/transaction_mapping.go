package mapping

import (
	"fmt"
	"time"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/SscSPs/spendwise_client/internal/dto"
	"github.com/shopspring/decimal"
)

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO
func ToTransactionResponse(t domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Amount:      t.Amount,
		Type:        t.Type,
		Category:    t.Category,
		Merchant:    t.Merchant,
		Description: t.Description,
		Date:        t.Date,
	}
}

// ToTransactionResponses converts a slice of domain Transactions
func ToTransactionResponses(txs []domain.Transaction) []dto.TransactionResponse {
	res := make([]dto.TransactionResponse, len(txs))
	for i, t := range txs {
		res[i] = ToTransactionResponse(t)
	}
	return res
}

// ToCreateTransactionInput converts a CreateTransactionRequest to the domain input
func ToCreateTransactionInput(req dto.CreateTransactionRequest) domain.CreateTransactionInput {
	return domain.CreateTransactionInput{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Merchant:    req.Merchant,
		Description: req.Description,
		Date:        req.Date,
	}
}

// ToUpdateTransactionInput converts an UpdateTransactionRequest to the domain input
func ToUpdateTransactionInput(req dto.UpdateTransactionRequest) domain.UpdateTransactionInput {
	return domain.UpdateTransactionInput{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Merchant:    req.Merchant,
		Description: req.Description,
		Date:        req.Date,
	}
}

// ToTransactionViewResponse converts the accumulated listing
func ToTransactionViewResponse(v *domain.TransactionView) dto.TransactionViewResponse {
	return dto.TransactionViewResponse{
		Items:         ToTransactionResponses(v.Items),
		Filters:       v.Filters,
		Sort:          v.Sort,
		Page:          v.Page,
		Limit:         v.Limit,
		HasNextPage:   v.HasNextPage,
		NextPageToken: v.NextPageToken,
		Loading:       v.Loading,
	}
}

const dateOnly = "2006-01-02"

// parseDate accepts RFC 3339 or a bare date. A bare end date covers the whole day.
func parseDate(field, raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a date (YYYY-MM-DD) or RFC 3339 time", apperrors.ErrValidation, field)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a number", apperrors.ErrValidation, field)
	}
	return d, nil
}

// ToFilterPatch converts the filter query parameters. It reports whether any filter parameter was present.
func ToFilterPatch(p dto.ListTransactionsParams) (domain.FilterPatch, bool, error) {
	var patch domain.FilterPatch
	present := len(p.Unset) > 0

	patch.Search = p.Search
	patch.Category = p.Category
	patch.AccountID = p.AccountID
	present = present || p.Search != nil || p.Category != nil || p.AccountID != nil

	if p.Type != nil {
		present = true
		if *p.Type == "" {
			patch.Unset = append(patch.Unset, domain.FilterType)
		} else {
			t := domain.TransactionType(*p.Type)
			if !t.Valid() {
				return patch, true, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, *p.Type)
			}
			patch.Type = &t
		}
	}

	dates := []struct {
		field    domain.FilterField
		raw      *string
		endOfDay bool
		dst      **time.Time
	}{
		{domain.FilterStartDate, p.StartDate, false, &patch.StartDate},
		{domain.FilterEndDate, p.EndDate, true, &patch.EndDate},
	}
	for _, d := range dates {
		if d.raw == nil {
			continue
		}
		present = true
		if *d.raw == "" {
			patch.Unset = append(patch.Unset, d.field)
			continue
		}
		t, err := parseDate(string(d.field), *d.raw, d.endOfDay)
		if err != nil {
			return patch, true, err
		}
		*d.dst = &t
	}

	amounts := []struct {
		field domain.FilterField
		raw   *string
		dst   **decimal.Decimal
	}{
		{domain.FilterMinAmount, p.MinAmount, &patch.MinAmount},
		{domain.FilterMaxAmount, p.MaxAmount, &patch.MaxAmount},
	}
	for _, a := range amounts {
		if a.raw == nil {
			continue
		}
		present = true
		if *a.raw == "" {
			patch.Unset = append(patch.Unset, a.field)
			continue
		}
		v, err := parseAmount(string(a.field), *a.raw)
		if err != nil {
			return patch, true, err
		}
		*a.dst = &v
	}

	for _, f := range p.Unset {
		patch.Unset = append(patch.Unset, domain.FilterField(f))
	}
	return patch, present, nil
}

// ToTransactionSort merges the sort query parameters into current. It reports whether any was present.
func ToTransactionSort(p dto.ListTransactionsParams, current domain.TransactionSort) (domain.TransactionSort, bool) {
	if p.SortField == nil && p.SortOrder == nil {
		return current, false
	}
	if p.SortField != nil {
		current.Field = domain.SortField(*p.SortField)
	}
	if p.SortOrder != nil {
		current.Order = domain.SortOrder(*p.SortOrder)
	}
	return current, true
}
