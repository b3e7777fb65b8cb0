package core

import "context"

// Session runs fn as one indivisible unit: every store write made with the
// passed context commits together, or none does
type Session interface {
	Tx(ctx context.Context, fn func(ctx context.Context) error) error
}
