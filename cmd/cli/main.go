package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/amirasaad/onramp/infra/initializer"
	"github.com/amirasaad/onramp/pkg/config"
	"github.com/amirasaad/onramp/pkg/provider"
	"github.com/amirasaad/onramp/pkg/ramp"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  status <provider> <user_id> <chain_id>
  deposit <provider> <user_id> <chain_id> <currency> <account_address>
  crypto-deposit <provider> <user_id> <chain_id> <crypto_currency> <network> <account_address>
  onboard <provider> <user_id> [persona_scope]`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Println("Failed to load configuration:", err)
		os.Exit(1)
	}
	ctx := context.Background()
	deps, err := initializer.InitializeDependencies(ctx, cfg)
	if err != nil {
		fmt.Println("Failed to initialize dependencies:", err)
		os.Exit(1)
	}
	defer deps.Close() //nolint: errcheck

	if err := runCommand(ctx, os.Stdout, deps.Registry, deps.Store, os.Args[1:]); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func runCommand(
	ctx context.Context,
	out io.Writer,
	registry *provider.Registry,
	store provider.CustomerStore,
	args []string,
) error {
	if len(args) < 3 {
		return fmt.Errorf("missing arguments\n%s", usage)
	}
	cmd, name, userID := args[0], args[1], args[2]
	p, err := registry.Get(name)
	if err != nil {
		return err
	}
	customerID, err := store.GetCustomerID(ctx, userID, p.Name())
	if err != nil {
		return err
	}
	rest := args[3:]

	switch cmd {
	case "status":
		if len(rest) < 1 {
			return fmt.Errorf("status requires <chain_id>")
		}
		chainID, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid chain id: %w", err)
		}
		var input provider.ProviderInput = provider.NewCustomer{UserID: userID, ChainID: chainID}
		if customerID != "" {
			input = provider.ExistingCustomer{UserID: userID, CustomerID: customerID, ChainID: chainID}
		}
		info, err := p.GetProvider(ctx, input)
		if err != nil {
			return err
		}
		return printJSON(out, info)
	case "deposit":
		if len(rest) < 3 {
			return fmt.Errorf("deposit requires <chain_id> <currency> <account_address>")
		}
		chainID, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid chain id: %w", err)
		}
		details, err := p.GetDepositDetails(ctx, &provider.DepositParams{
			ChainID:        chainID,
			Currency:       strings.ToUpper(rest[1]),
			AccountAddress: rest[2],
			CustomerID:     customerID,
		})
		if err != nil {
			return err
		}
		return printJSON(out, details)
	case "crypto-deposit":
		if len(rest) < 4 {
			return fmt.Errorf("crypto-deposit requires <chain_id> <crypto_currency> <network> <account_address>")
		}
		chainID, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid chain id: %w", err)
		}
		details, err := p.GetCryptoDepositDetails(ctx, &provider.CryptoDepositParams{
			ChainID:        chainID,
			CryptoCurrency: strings.ToUpper(rest[1]),
			Network:        ramp.Network(strings.ToUpper(rest[2])),
			AccountAddress: rest[3],
			CustomerID:     customerID,
		})
		if err != nil {
			return err
		}
		return printJSON(out, details)
	case "onboard":
		params := &provider.OnboardingParams{UserID: userID, CustomerID: customerID}
		if len(rest) > 0 {
			params.PersonaScope = rest[0]
		}
		if err := p.Onboarding(ctx, params); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out, "onboarding submitted")
		return err
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
