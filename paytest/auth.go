package paytest

import (
	"context"
	"fmt"

	paysplit "github.com/v-stickykeys/paysplit"
)

// Auth is a mock implementing the x.Authenticator interface.
//
// This structure authenticates any of the referenced conditions. You can
// use either the Signer or Signers attribute (or both). Each time all
// signers, regardless of the attribute, are considered.
type Auth struct {
	// Signer represents the authentication of a single signer,
	// a convenience attribute for tests with one signer.
	Signer paysplit.Condition

	// Signers represents the authentication of multiple signers.
	Signers []paysplit.Condition
}

func (a *Auth) GetConditions(paysplit.Context) []paysplit.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx paysplit.Context, addr paysplit.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing the x.Authenticator interface, storing
// and retrieving permissions from the context.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx paysplit.Context, permissions ...paysplit.Condition) paysplit.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), permissions)
}

func (a *CtxAuth) GetConditions(ctx paysplit.Context) []paysplit.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]paysplit.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []paysplit.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx paysplit.Context, addr paysplit.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

type ctxAuthKey string
