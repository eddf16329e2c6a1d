// Package x holds the contracts shared by the extension packages, most
// importantly the Authenticator used to resolve who signed a transaction.
package x

import (
	paysplit "github.com/v-stickykeys/paysplit"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in any authentication system, rather than
// hard-coding one for all extensions.
type Authenticator interface {
	// GetConditions reveals all conditions fulfilled.
	GetConditions(paysplit.Context) []paysplit.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(paysplit.Context, paysplit.Address) bool
}

// MultiAuth chains together many authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all conditions from all authenticators.
func (m MultiAuth) GetConditions(ctx paysplit.Context) []paysplit.Condition {
	var res []paysplit.Condition
	for _, impl := range m.impls {
		if add := impl.GetConditions(ctx); len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any authenticator supports this address.
func (m MultiAuth) HasAddress(ctx paysplit.Context, addr paysplit.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any authenticator.
func GetAddresses(ctx paysplit.Context, auth Authenticator) []paysplit.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]paysplit.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first condition fulfilled, or nil if none.
func MainSigner(ctx paysplit.Context, auth Authenticator) paysplit.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}
