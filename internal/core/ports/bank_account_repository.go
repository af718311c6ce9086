package ports

import "context"

// BankAccountRepository exposes the single bank-account query the back office needs.
type BankAccountRepository interface {
	ExistsByRIB(ctx context.Context, rib string) (bool, error)
}

// RIBCache remembers RIBs known to exist. Only positive answers are cached:
// an account opened after a negative lookup must be found on the next one.
type RIBCache interface {
	// Has reports whether rib is cached as existing; false means ask the store.
	Has(ctx context.Context, rib string) (bool, error)
	MarkExists(ctx context.Context, rib string) error
}

// AccountService answers bank-account existence questions.
type AccountService interface {
	Exists(ctx context.Context, rib string) (bool, error)
}
