package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
	"github.com/v-stickykeys/paysplit/x/split"
)

// flAddress returns a value that is being initialized with given default
// value and optionally overwritten by a command line argument if provided.
// This function follows Go's flag package convention. If given value
// cannot be deserialized to the required type, the process is terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *paysplit.Address {
	var a paysplit.Address
	if defaultVal != "" {
		var err error
		a, err = paysplit.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// parseRecipients deserializes a comma separated list of
// <hex address>:<share> declarations, in declaration order.
func parseRecipients(enc string) ([]*split.Recipient, error) {
	var (
		addrs  []paysplit.Address
		shares []int32
	)
	for _, chunk := range strings.Split(enc, ",") {
		pair := strings.SplitN(strings.TrimSpace(chunk), ":", 2)
		if len(pair) != 2 {
			return nil, errors.Wrapf(errors.ErrInput, "expected <address>:<share>, got %q", chunk)
		}
		addr, err := paysplit.ParseAddress(pair[0])
		if err != nil {
			return nil, errors.Wrapf(err, "address %q", pair[0])
		}
		share, err := strconv.ParseInt(pair[1], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "share %q", pair[1])
		}
		addrs = append(addrs, addr)
		shares = append(shares, int32(share))
	}
	return split.NewRecipients(addrs, shares)
}
