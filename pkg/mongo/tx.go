package mongo

import (
	"context"
)

// TxRunner executes a function inside one MongoDB session transaction. Used
// for checkout, cart mutations and token issuance so that every write within
// fn commits or rolls back as a unit.
type TxRunner struct{}

func NewTxRunner() TxRunner {
	return TxRunner{}
}

func (TxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := GetClient().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, fn(ctx)
	})
	return err
}
