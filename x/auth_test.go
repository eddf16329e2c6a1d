package x_test

import (
	"context"
	"testing"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/paytest"
	"github.com/v-stickykeys/paysplit/paytest/assert"
	"github.com/v-stickykeys/paysplit/x"
)

func TestChainAuth(t *testing.T) {
	alice := paytest.NewCondition()
	bob := paytest.NewCondition()
	carl := paytest.NewCondition()

	auth := x.ChainAuth(
		&paytest.Auth{Signer: alice},
		&paytest.Auth{Signers: []paysplit.Condition{bob, carl}},
	)

	ctx := context.Background()
	conds := auth.GetConditions(ctx)
	assert.Equal(t, 3, len(conds))

	assert.Equal(t, true, auth.HasAddress(ctx, alice.Address()))
	assert.Equal(t, true, auth.HasAddress(ctx, carl.Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, paytest.NewAddress()))
}

func TestGetAddresses(t *testing.T) {
	alice := paytest.NewCondition()
	bob := paytest.NewCondition()
	auth := &paytest.Auth{Signers: []paysplit.Condition{alice, bob}}

	addrs := x.GetAddresses(context.Background(), auth)
	assert.Equal(t, 2, len(addrs))
	assert.Equal(t, alice.Address(), addrs[0])
	assert.Equal(t, bob.Address(), addrs[1])
}

func TestMainSigner(t *testing.T) {
	alice := paytest.NewCondition()
	ctx := context.Background()

	signer := x.MainSigner(ctx, &paytest.Auth{Signer: alice})
	assert.Equal(t, alice, signer)

	assert.Nil(t, x.MainSigner(ctx, &paytest.Auth{}))
}
