//go:build tools
// +build tools

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github/chapool/wallet-session/internal/provider"
)

func main() {
	var (
		url     = flag.String("url", "", "Wallet JSON-RPC endpoint")
		prompt  = flag.Bool("prompt", false, "Use eth_requestAccounts instead of eth_accounts")
		timeout = flag.Duration("timeout", time.Minute, "Request timeout")
	)
	flag.Parse()

	if *url == "" {
		fmt.Println("Error: url is required")
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	p, err := provider.NewRPCProvider(ctx, "wallet", []string{*url}, 0)
	if err != nil {
		fmt.Printf("Error creating provider: %v\n", err)
		os.Exit(1)
	}
	defer p.Close()

	var accounts []string
	if *prompt {
		fmt.Printf("Requesting accounts from %s, confirm in the wallet...\n", *url)
		accounts, err = p.RequestAccounts(ctx)
	} else {
		accounts, err = p.Accounts(ctx)
	}
	if err != nil {
		if code, ok := provider.Code(err); ok {
			fmt.Printf("Wallet rejected the request (%d): %v\n", code, errors.Cause(err))
		} else {
			fmt.Printf("Error requesting accounts: %v\n", err)
		}
		os.Exit(1)
	}

	if len(accounts) == 0 {
		fmt.Println("No accounts authorized.")
		return
	}

	fmt.Println(strings.Join(accounts, "\n"))
}
