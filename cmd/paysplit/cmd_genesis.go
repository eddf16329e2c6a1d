package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
	"github.com/v-stickykeys/paysplit/x/funds"
	"github.com/v-stickykeys/paysplit/x/split"
)

func cmdInitGenesis(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Initialize a database from a genesis declaration file. The file is a JSON
document with a "funds" section of initial wallet balances and a "split"
section of splitter instances, for example:

  {
    "funds": [{"address": "<hex>", "balance": 1000}],
    "split": [{"recipients": [{"address": "<hex>", "share": 100}]}]
  }
		`)
		fl.PrintDefaults()
	}
	var (
		dbFl      = fl.String("db", "paysplit.db", "Path to the database file.")
		genesisFl = fl.String("genesis", "genesis.json", "Path to the genesis declaration file.")
	)
	fl.Parse(args)

	raw, err := os.ReadFile(*genesisFl)
	if err != nil {
		return errors.Wrapf(err, "cannot read genesis file %q", *genesisFl)
	}
	var opts paysplit.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrap(err, "cannot parse genesis file")
	}

	en, err := openEngine(*dbFl)
	if err != nil {
		return err
	}
	defer en.Close()

	inits := []paysplit.Initializer{
		&funds.Initializer{},
		&split.Initializer{},
	}
	for _, ini := range inits {
		if err := ini.FromGenesis(opts, en.db); err != nil {
			return err
		}
	}
	return nil
}
