package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/v-stickykeys/paysplit/x/funds"
)

func cmdAddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print the hex address derived from an account name. Use the address in
recipient declarations and transfer destinations.
		`)
		fl.PrintDefaults()
	}
	nameFl := fl.String("name", "", "Name of the account.")
	fl.Parse(args)

	fmt.Fprintln(output, userCondition(*nameFl).Address())
	return nil
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print the wallet balance of an account.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl      = fl.String("db", "paysplit.db", "Path to the database file.")
		addressFl = flAddress(fl, "address", "", "Hex address of the account.")
	)
	fl.Parse(args)

	en, err := openEngine(*dbFl)
	if err != nil {
		return err
	}
	defer en.Close()

	balance, err := en.ctrl.Balance(en.db, *addressFl)
	if err != nil {
		return err
	}
	fmt.Fprintln(output, balance)
	return nil
}

func cmdIssueFunds(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Credit an account with new value units. This command mints, use it only
to set up a local playground database.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl      = fl.String("db", "paysplit.db", "Path to the database file.")
		addressFl = flAddress(fl, "address", "", "Hex address of the account to credit.")
		amountFl  = fl.Int64("amount", 0, "Amount to credit, in whole value units.")
	)
	fl.Parse(args)

	en, err := openEngine(*dbFl)
	if err != nil {
		return err
	}
	defer en.Close()

	return en.ctrl.IssueFunds(en.db, *addressFl, *amountFl)
}

func cmdSendFunds(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Transfer value units from one account to another.
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl     = fl.String("db", "paysplit.db", "Path to the database file.")
		fromFl   = fl.String("from", "", "Name of the source account.")
		dstFl    = flAddress(fl, "dst", "", "Hex address of the destination account.")
		amountFl = fl.Int64("amount", 0, "Amount to transfer, in whole value units.")
	)
	fl.Parse(args)

	en, err := openEngine(*dbFl, userCondition(*fromFl))
	if err != nil {
		return err
	}
	defer en.Close()

	tx := &cliTx{msg: &funds.SendMsg{Destination: *dstFl, Amount: *amountFl}}
	_, err = en.handler.Deliver(context.Background(), en.db, tx)
	return err
}
