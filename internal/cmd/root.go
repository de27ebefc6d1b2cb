package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"github.com/vvatanabe/shiptracker"
	"github.com/vvatanabe/shiptracker/internal/config"
	"github.com/vvatanabe/shiptracker/internal/logging"
	"go.uber.org/zap"
)

// CreateHostFunc builds the host a command runs against. The returned func releases the host's store.
type CreateHostFunc func(ctx context.Context, cfg config.Config, logger *zap.Logger, publisher shiptracker.Publisher) (*shiptracker.Host, func(), error)

type CommandFactory struct {
	CreateHost CreateHostFunc
	Stdin      io.Reader
	Stdout     io.Writer
}

var defaultCommandFactory = CommandFactory{
	CreateHost: createHost,
	Stdin:      os.Stdin,
	Stdout:     os.Stdout,
}

var root = defaultCommandFactory.CreateRootCommand(flgs)

func (f CommandFactory) stdout() io.Writer {
	if f.Stdout == nil {
		return os.Stdout
	}
	return f.Stdout
}

func (f CommandFactory) stdin() io.Reader {
	if f.Stdin == nil {
		return os.Stdin
	}
	return f.Stdin
}

// open resolves the configuration of c, then builds its logger and host.
func (f CommandFactory) open(ctx context.Context, c *cobra.Command, flgs *Flags, publisher shiptracker.Publisher) (*shiptracker.Host, config.Config, *zap.Logger, func(), error) {
	cfg, err := resolveConfig(c, flgs)
	if err != nil {
		return nil, cfg, nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogMode)
	if err != nil {
		return nil, cfg, nil, nil, fmt.Errorf("failed to build logger: %v", err)
	}
	host, cleanup, err := f.CreateHost(ctx, cfg, logger, publisher)
	if err != nil {
		_ = logger.Sync()
		return nil, cfg, nil, nil, err
	}
	release := func() {
		if cleanup != nil {
			cleanup()
		}
		_ = logger.Sync()
	}
	return host, cfg, logger, release, nil
}

func (f CommandFactory) CreateRootCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:     "shiptracker",
		Short:   "Shiptracker is an append-only ledger of shipments",
		Long:    `Shiptracker is an append-only ledger of shipments with status lookup.`,
		Version: "",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := f.stdout()
			defer fmt.Fprintf(w, "... Interactive is ending\n\n\n")

			fmt.Fprintln(w, "===========================================================")
			fmt.Fprintln(w, ">> Welcome to Shiptracker CLI! [INTERACTIVE MODE]")
			fmt.Fprintln(w, "===========================================================")
			fmt.Fprintln(w, "for help, enter one of the following: ? or h or help")
			fmt.Fprintln(w, "all commands in CLIs need to be typed in lowercase")
			fmt.Fprintln(w, "")

			ctx := context.Background()
			host, cfg, _, release, err := f.open(ctx, cmd, flgs, &printPublisher{w: w})
			if err != nil {
				return fmt.Errorf("... %v\n", err)
			}
			defer release()

			fmt.Fprintln(w, "... Ledger is properly opened!")

			fmt.Fprintf(w, "Ledger: %s\n", cfg.Ledger)
			fmt.Fprintf(w, "Backend: %s\n", cfg.Backend)
			switch cfg.Backend {
			case config.BackendDynamoDB:
				fmt.Fprintf(w, "TableName: %s\n", cfg.TableName)
				fmt.Fprintf(w, "EndpointURL: %s\n", cfg.EndpointURL)
			case config.BackendSQLite:
				fmt.Fprintf(w, "SQLitePath: %s\n", cfg.SQLitePath)
			}
			fmt.Fprintln(w, "")

			c := Interactive{
				Host: host,
				Out:  w,
			}

			scanner := bufio.NewScanner(f.stdin())
			for {
				fmt.Fprint(w, "\n>> Enter command: ")

				if !scanner.Scan() {
					break
				}
				input := scanner.Text()
				if input == "" {
					continue
				}

				command, params, err := ParseInput(input)
				if err != nil {
					printError(w, err)
					continue
				}
				switch command {
				case "":
					continue
				case "quit", "q":
					return nil
				default:
					c.Run(ctx, command, params)
				}
			}
			return scanner.Err()
		},
	}
}

// ParseInput splits a line of the interactive mode into a lowercase command and its parameters.
// Parameters follow shell quoting, so "Blue Widget" is one parameter and "" is an empty one.
func ParseInput(input string) (command string, params []string, err error) {
	arr, err := shlex.Split(input)
	if err != nil {
		return "", nil, err
	}

	if len(arr) == 0 {
		return "", nil, nil
	}

	command = strings.ToLower(arr[0])

	if len(arr) > 1 {
		params = arr[1:]
	}
	return command, params, nil
}

func Execute() {
	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	setDefaultFlags(root, flgs)
}
