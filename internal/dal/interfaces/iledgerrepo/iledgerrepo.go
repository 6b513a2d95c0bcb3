package iledgerrepo

import (
	"context"

	"github.com/eatech/platform/internal/service/models/ledger"
)

// ILedgerRepository is an interface for the ledger postgres repository.
type ILedgerRepository interface {
	Insert(ctx context.Context, e ledger.Entry) error
}
