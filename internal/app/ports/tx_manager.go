package ports

import "context"

// TxManager runs fn atomically against the repositories. Repositories pick
// the transaction up from the context fn receives.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
