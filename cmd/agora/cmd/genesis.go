package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	cmdcommon "github.com/agoranet/agora/cmd/agora/common"
	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/ledger"
	"github.com/agoranet/agora/lib/storage"
)

const (
	initialBalance = "1,000,000,000,000"
)

var (
	flagBalance string = common.GetENVValue("AGORA_GENESIS_BALANCE", initialBalance)
)

func init() {
	var genesisCmd = &cobra.Command{
		Use:   "genesis <address>",
		Short: "initialize a new ledger",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			flagName, err := MakeGenesis(args[0], flagBalance, flagStorageConfigString)
			if len(flagName) != 0 || err != nil {
				cmdcommon.PrintFlagsError(c, flagName, err)
			}

			fmt.Println("successfully issued the supply")
		},
	}

	genesisCmd.Flags().StringVar(&flagBalance, "balance", flagBalance, "full supply issued to the genesis account")
	genesisCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")

	rootCmd.AddCommand(genesisCmd)
}

//
// Issue the full supply to the provided account.
//
// This function is separate, and public, to allow it to be used from `run`
// so that `--genesis` provides the same behavior (defaults, error messages).
//
// Returns:
//   If an error happened, returns a tuple of (string, error).
//   The string argument represents the name of the flag which errored,
//   and error is the more detailed error.
//   Note that only one needs be non-`nil` for it to be considered an error.
//
func MakeGenesis(address, balanceStr, storageURI string) (string, error) {
	if len(address) == 0 {
		return "<address>", errors.New("<address> must be given")
	}

	if len(balanceStr) == 0 {
		balanceStr = initialBalance
	}

	balance, err := cmdcommon.ParseAmountFromString(balanceStr)
	if err != nil {
		return "--balance", err
	}

	// Use the default value
	if len(storageURI) == 0 {
		// We try to get the env value first, before doing IO which could fail
		storageURI = common.GetENVValue("AGORA_STORAGE", "")
		// No env, use the default (current directory)
		if len(storageURI) == 0 {
			if currentDirectory, err := os.Getwd(); err == nil {
				if currentDirectory, err = filepath.Abs(currentDirectory); err == nil {
					storageURI = fmt.Sprintf("file://%s/db", currentDirectory)
				}
			}
			if len(storageURI) == 0 {
				return "--storage", err
			}
		}
	}

	storageConfig, err := storage.NewConfigFromString(storageURI)
	if err != nil {
		return "--storage", err
	}

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		return "--storage", fmt.Errorf("failed to initialize storage: %v", err)
	}
	defer st.Close()

	if err := ledger.NewLedger(st, nil).IssueSupply(address, balance); err != nil {
		return "<address>", err
	}

	return "", nil
}
