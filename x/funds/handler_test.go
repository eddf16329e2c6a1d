package funds

import (
	"context"
	"testing"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/app"
	"github.com/v-stickykeys/paysplit/errors"
	"github.com/v-stickykeys/paysplit/paytest"
	"github.com/v-stickykeys/paysplit/paytest/assert"
	"github.com/v-stickykeys/paysplit/store"
)

func TestSendHandler(t *testing.T) {
	alice := paytest.NewCondition()
	bob := paytest.NewCondition()

	cases := map[string]struct {
		signers     []paysplit.Condition
		msg         *SendMsg
		initBalance int64
		wantErr     *errors.Error
		wantSrc     int64
		wantDst     int64
	}{
		"source defaults to the main signer": {
			signers:     []paysplit.Condition{alice},
			msg:         &SendMsg{Destination: bob.Address(), Amount: 3},
			initBalance: 10,
			wantSrc:     7,
			wantDst:     3,
		},
		"explicit source must be signed": {
			signers:     []paysplit.Condition{bob},
			msg:         &SendMsg{Source: alice.Address(), Destination: bob.Address(), Amount: 3},
			initBalance: 10,
			wantErr:     errors.ErrUnauthorized,
		},
		"no signer": {
			signers:     nil,
			msg:         &SendMsg{Destination: bob.Address(), Amount: 3},
			initBalance: 10,
			wantErr:     errors.ErrUnauthorized,
		},
		"invalid amount": {
			signers:     []paysplit.Condition{alice},
			msg:         &SendMsg{Destination: bob.Address(), Amount: 0},
			initBalance: 10,
			wantErr:     errors.ErrAmount,
		},
		"insufficient funds": {
			signers:     []paysplit.Condition{alice},
			msg:         &SendMsg{Destination: bob.Address(), Amount: 100},
			initBalance: 10,
			wantErr:     errors.ErrInsufficientAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			auth := &paytest.CtxAuth{Key: "auth"}
			rt := app.NewRouter()
			RegisterRoutes(rt, auth, ctrl)

			if tc.initBalance > 0 {
				assert.Nil(t, ctrl.IssueFunds(db, alice.Address(), tc.initBalance))
			}

			ctx := auth.SetConditions(context.Background(), tc.signers...)
			tx := &paytest.Tx{Msg: tc.msg}

			_, err := rt.Deliver(ctx, db, tx)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			src, err := ctrl.Balance(db, alice.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSrc, src)
			dst, err := ctrl.Balance(db, bob.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantDst, dst)
		})
	}
}
