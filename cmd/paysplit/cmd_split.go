package main

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/v-stickykeys/paysplit/errors"
	"github.com/v-stickykeys/paysplit/x/split"
)

func cmdCreateSplitter(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a new splitter instance and print its instance number. The
recipient set is immutable, declare it carefully.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl         = fl.String("db", "paysplit.db", "Path to the database file.")
		recipientsFl = fl.String("recipients", "", "Comma separated <hex address>:<share> declarations. Shares must sum to 100.")
	)
	fl.Parse(args)

	recipients, err := parseRecipients(*recipientsFl)
	if err != nil {
		return errors.Wrap(err, "recipients")
	}

	en, err := openEngine(*dbFl)
	if err != nil {
		return err
	}
	defer en.Close()

	tx := &cliTx{msg: &split.CreateMsg{Recipients: recipients}}
	res, err := en.handler.Deliver(context.Background(), en.db, tx)
	if err != nil {
		return err
	}
	fmt.Fprintln(output, binary.BigEndian.Uint64(res.Data))
	return nil
}

func cmdShowSplitter(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print the configuration and the current bookkeeping state of a splitter
instance as JSON.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl = fl.String("db", "paysplit.db", "Path to the database file.")
		idFl = fl.Uint64("id", 0, "Splitter instance number.")
	)
	fl.Parse(args)

	en, err := openEngine(*dbFl)
	if err != nil {
		return err
	}
	defer en.Close()

	id := splitterID(*idFl)
	pool := split.PoolAccount(id)

	type recipientState struct {
		Address string `json:"address"`
		Share   int32  `json:"share"`
		Owed    int64  `json:"owed"`
		Change  int64  `json:"change"`
	}
	var state struct {
		Pool        string           `json:"pool"`
		PoolBalance int64            `json:"pool_balance"`
		Recipients  []recipientState `json:"recipients"`
		TotalOwed   int64            `json:"total_owed"`
		TotalChange int64            `json:"total_change"`
	}

	recipients, err := split.RecipientsOf(en.db, id)
	if err != nil {
		return err
	}
	for _, r := range recipients {
		owed, err := split.BalanceOf(en.db, id, r.Address)
		if err != nil {
			return err
		}
		change, err := split.ChangeOf(en.db, id, r.Address)
		if err != nil {
			return err
		}
		state.Recipients = append(state.Recipients, recipientState{
			Address: r.Address.String(),
			Share:   r.Share,
			Owed:    owed,
			Change:  change,
		})
	}
	totals, err := split.TotalsOf(en.db, id)
	if err != nil {
		return err
	}
	state.Pool = pool.String()
	state.TotalOwed = totals.Owed
	state.TotalChange = totals.Change
	if state.PoolBalance, err = en.ctrl.Balance(en.db, pool); err != nil {
		return err
	}

	pretty, err := json.MarshalIndent(state, "", "\t")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}

func cmdDeposit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Deposit an amount into a splitter instance. In the default accrual mode
the computed payouts are credited and must be withdrawn later. With the
-push flag every payout is transferred to its recipient within this call.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl       = fl.String("db", "paysplit.db", "Path to the database file.")
		idFl       = fl.Uint64("id", 0, "Splitter instance number.")
		fromFl     = fl.String("from", "", "Name of the depositing account.")
		amountFl   = fl.Int64("amount", 0, "Amount to deposit, in whole value units.")
		pushFl     = fl.Bool("push", false, "Pay every recipient inline instead of accruing.")
		disperseFl = fl.Bool("disperse", false, "Accrue and drain all balances in the same call.")
	)
	fl.Parse(args)

	en, err := openEngine(*dbFl, userCondition(*fromFl))
	if err != nil {
		return err
	}
	defer en.Close()

	var tx cliTx
	if *pushFl {
		tx.msg = &split.PushDepositMsg{SplitterID: splitterID(*idFl), Amount: *amountFl}
	} else {
		tx.msg = &split.AccrueDepositMsg{SplitterID: splitterID(*idFl), Amount: *amountFl, Disperse: *disperseFl}
	}
	_, err = en.handler.Deliver(context.Background(), en.db, &tx)
	return err
}

func cmdWithdraw(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Transfer the accrued balance of a recipient out of the splitter pool. A
zero balance is a successful no-op.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl        = fl.String("db", "paysplit.db", "Path to the database file.")
		idFl        = fl.Uint64("id", 0, "Splitter instance number.")
		fromFl      = fl.String("from", "", "Name of the calling account.")
		recipientFl = flAddress(fl, "recipient", "", "Hex address of the recipient to withdraw for.")
	)
	fl.Parse(args)

	en, err := openEngine(*dbFl, userCondition(*fromFl))
	if err != nil {
		return err
	}
	defer en.Close()

	tx := &cliTx{msg: &split.WithdrawMsg{SplitterID: splitterID(*idFl), Recipient: *recipientFl}}
	_, err = en.handler.Deliver(context.Background(), en.db, tx)
	return err
}

func cmdDisperse(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Withdraw for every recipient of a splitter instance, in declaration
order. Recipients with an empty balance are skipped.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl   = fl.String("db", "paysplit.db", "Path to the database file.")
		idFl   = fl.Uint64("id", 0, "Splitter instance number.")
		fromFl = fl.String("from", "", "Name of the calling account.")
	)
	fl.Parse(args)

	en, err := openEngine(*dbFl, userCondition(*fromFl))
	if err != nil {
		return err
	}
	defer en.Close()

	tx := &cliTx{msg: &split.DisperseMsg{SplitterID: splitterID(*idFl)}}
	_, err = en.handler.Deliver(context.Background(), en.db, tx)
	return err
}
