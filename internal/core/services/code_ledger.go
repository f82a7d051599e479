package services

import (
	"fmt"
	"sync"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/blake2b"
)

const codeLedgerSize = 256

// CodeLedger remembers fingerprints of verification codes that were already accepted, so the same code is
// never presented twice from this client. Every entry belongs to a scope (the pending login token, or the
// setup-code request of an enrollment): a code that was accepted once is only refused again within its scope.
type CodeLedger struct {
	mu   sync.Mutex
	key  []byte
	used *lru.Cache[[blake2b.Size256]byte, struct{}]
}

// NewCodeLedger creates a ledger keyed with key (at most 64 bytes).
func NewCodeLedger(key []byte) (*CodeLedger, error) {
	used, err := lru.New[[blake2b.Size256]byte, struct{}](codeLedgerSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create code ledger: %w", err)
	}
	return &CodeLedger{key: key, used: used}, nil
}

func (l *CodeLedger) fingerprint(scope string, factor domain.FactorType, code string) [blake2b.Size256]byte {
	var out [blake2b.Size256]byte
	msg := []byte(scope + "|" + string(factor) + "|" + code)
	h, err := blake2b.New256(l.key)
	if err != nil {
		// only possible with a key over 64 bytes
		return blake2b.Sum256(msg)
	}
	h.Write(msg)
	copy(out[:], h.Sum(nil))
	return out
}

// Seen reports whether code was already accepted for factor within scope.
func (l *CodeLedger) Seen(scope string, factor domain.FactorType, code string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used.Contains(l.fingerprint(scope, factor, code))
}

// Remember marks code as accepted for factor within scope.
func (l *CodeLedger) Remember(scope string, factor domain.FactorType, code string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.used.Add(l.fingerprint(scope, factor, code), struct{}{})
}
