package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vvatanabe/shiptracker"
	"github.com/vvatanabe/shiptracker/internal/constant"
	"github.com/vvatanabe/shiptracker/internal/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (f CommandFactory) CreateServeCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger over HTTP",
		Long:  `Serve the ledger over HTTP until interrupted. Every notification of the ledger is logged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			broker := shiptracker.NewBroker(constant.DefaultSubscriberBuffer)
			defer broker.Close()

			host, cfg, logger, release, err := f.open(ctx, cmd, flgs, broker)
			if err != nil {
				return err
			}
			defer release()

			sub := broker.Subscribe(constant.DefaultSubscriberBuffer)
			srv := server.New(host, logger)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Run(gctx, cfg.ListenAddr)
			})
			g.Go(func() error {
				<-gctx.Done()
				broker.Close()
				return nil
			})
			g.Go(func() error {
				for n := range sub.C {
					logger.Info("notification",
						zap.Uint64("seq", n.Seq),
						zap.String("type", string(n.Type)),
						zap.Any("event", n.Event),
						zap.String("emitted_at", n.EmittedAt))
				}
				if dropped := sub.Dropped(); dropped > 0 {
					logger.Warn("notifications dropped", zap.Uint64("count", dropped))
				}
				return nil
			})
			return g.Wait()
		},
	}
}

func init() {
	c := defaultCommandFactory.CreateServeCommand(flgs)
	setDefaultFlags(c, flgs)
	c.Flags().StringVar(&flgs.ListenAddr, flagMap.ListenAddr.Name, flagMap.ListenAddr.Value, flagMap.ListenAddr.Usage)
	root.AddCommand(c)
}
