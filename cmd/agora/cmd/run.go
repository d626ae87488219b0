package cmd

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"

	logging "github.com/inconshreveable/log15"
	isatty "github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter"

	cmdcommon "github.com/agoranet/agora/cmd/agora/common"
	"github.com/agoranet/agora/lib/api"
	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/governance"
	"github.com/agoranet/agora/lib/ledger"
	"github.com/agoranet/agora/lib/storage"
)

const defaultBind string = "0.0.0.0:12345"
const defaultLogLevel logging.Lvl = logging.LvlInfo

var (
	flagBind      string = common.GetENVValue("AGORA_BIND", defaultBind)
	flagLogLevel  string = common.GetENVValue("AGORA_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput string = common.GetENVValue("AGORA_LOG_OUTPUT", "")

	flagRateLimitAPI        cmdcommon.ListFlags
	flagStorageConfigString string
)

var (
	runCmd *cobra.Command

	storageConfig *storage.Config
	conf          common.Config
	logLevel      logging.Lvl
	log           logging.Logger
)

func init() {
	var err error
	var flagGenesis string

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run agora server",
		Run: func(c *cobra.Command, args []string) {
			// If `--genesis` was provided, perform `agora genesis` before
			// starting the server. This allows one-step startup from scratch,
			// quite useful for testing.
			if len(flagGenesis) != 0 {
				var balanceStr string
				csv := strings.Split(flagGenesis, ",")
				if len(csv) > 2 {
					cmdcommon.PrintFlagsError(runCmd, "--genesis",
						errors.New("--genesis expects address[,balance], but more than 2 commas detected"))
				}
				if len(csv) == 2 {
					balanceStr = csv[1]
				}
				flagName, err := MakeGenesis(csv[0], balanceStr, flagStorageConfigString)
				if len(flagName) != 0 || err != nil {
					cmdcommon.PrintFlagsError(c, flagName, err)
				}
			}

			parseFlagsRun()

			runServer()
			return
		},
	}

	// storage
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--storage", err)
	}
	flagStorageConfigString = common.GetENVValue("AGORA_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	runCmd.Flags().StringVar(&flagGenesis, "genesis", flagGenesis, "performs the 'genesis' command before running the server. Syntax: address[,balance]")
	runCmd.Flags().StringVar(&flagBind, "bind", flagBind, "address to listen on ('0.0.0.0:12345')")
	runCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	runCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	runCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	runCmd.Flags().Var(&flagRateLimitAPI, "rate-limit-api", "rate limit for the API endpoints: [<ip>=]<limit>-<period>, ex: '100-M' '1.2.3.4=1000-M'")

	rootCmd.AddCommand(runCmd)
}

// parseFlagRateLimit turns the repeatable `[<ip>=]<limit>-<period>` values
// into one RateLimitRule; a value without an ip replaces the default rate.
func parseFlagRateLimit(l cmdcommon.ListFlags, defaultRate limiter.Rate) (rule common.RateLimitRule, err error) {
	if len(l) < 1 {
		rule = common.NewRateLimitRule(defaultRate)
		return
	}

	var givenRate limiter.Rate
	var hasDefault bool

	byIPAddress := map[string]limiter.Rate{}
	for _, s := range l {
		sl := strings.SplitN(s, "=", 2)

		var ip, r string
		if len(sl) < 2 {
			r = s
		} else {
			ip, r = sl[0], sl[1]
		}

		if len(ip) > 0 && net.ParseIP(ip) == nil {
			err = fmt.Errorf("invalid ip address: '%s'", ip)
			return
		}

		var rate limiter.Rate
		if rate, err = limiter.NewRateFromFormatted(r); err != nil {
			return
		}

		if len(ip) > 0 {
			byIPAddress[ip] = rate
		} else {
			givenRate = rate
			hasDefault = true
		}
	}

	if !hasDefault {
		givenRate = defaultRate
	}

	rule = common.NewRateLimitRule(givenRate)
	rule.ByIPAddress = byIPAddress

	return
}

func parseFlagsRun() {
	var err error

	if len(flagBind) < 1 {
		cmdcommon.PrintFlagsError(runCmd, "--bind", errors.New("must be given"))
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--storage", err)
	}

	conf = common.NewConfig()
	if conf.RateLimitRuleAPI, err = parseFlagRateLimit(flagRateLimitAPI, common.RateLimitAPI); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--rate-limit-api", err)
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		cmdcommon.PrintFlagsError(runCmd, "--log-level", err)
	}

	var logHandler logging.Handler

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = common.JsonFormatEx(false, true)
	}
	logHandler = logging.StreamHandler(os.Stdout, formatter)

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, common.JsonFormatEx(false, true)); err != nil {
			cmdcommon.PrintFlagsError(runCmd, "--log-output", err)
		}
	}

	logHandler = logging.CallerFileHandler(logHandler)

	log = logging.New("module", "main")
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))

	ledger.SetLogging(logLevel, logHandler)
	governance.SetLogging(logLevel, logHandler)
	api.SetLogging(logLevel, logHandler)

	log.Info("Starting Agora")

	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tbind", flagBind)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)
	parsedFlags = append(parsedFlags, "\n\trate-limit-api", flagRateLimitAPI.String())

	log.Debug("parsed flags:", parsedFlags...)
}

func runServer() {
	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// The ledger and the voting engine share one critical section: a
	// transfer and the clamp-down it causes are observed as a single step.
	mtx := &sync.Mutex{}
	lg := ledger.NewLedger(st, mtx)

	engine, err := governance.NewVotingEngine(st, lg, conf, mtx)
	if err != nil {
		log.Crit("failed to initialize the voting engine", "error", err)
		os.Exit(1)
	}
	lg.SetTransferHandler(engine.BalanceChanged)

	apiHandler := api.NewNetworkHandlerAPI(lg, engine, st)
	server := api.NewServer(flagBind, apiHandler.Handler(conf), os.Stdout)

	g := &run.Group{}
	{
		g.Add(func() error {
			return server.Start()
		}, func(error) {
			server.Stop()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return cmdcommon.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		log.Info("shutting down", "reason", err)
	}
}
