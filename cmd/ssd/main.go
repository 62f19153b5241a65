// vi: sw=4 ts=4:

/*

	Mnemonic:	ssd
	Abstract:	The Synchronisation Server daemon: starts the single
				registry dispatch goroutine (internal/ss) and the Unix
				socket listener (internal/transport) that bridges to it,
				replacing main/tegu.go's startup sequence (parse flags,
				allocate manager channels, start each manager's
				goroutine, start the HTTP listener).

				Command line flags:
					-C config	-- TOML config file
					-s sock		-- socket path (overrides config)
					-f fifo-dir	-- FIFO directory (overrides config)
					-v			-- verbose (raise log level)
	Date:		31 July 2026
	Author:		rendez contributors
*/

package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/att/rendez/internal/config"
	"github.com/att/rendez/internal/logging"
	"github.com/att/rendez/internal/ss"
	"github.com/att/rendez/internal/transport"
)

func main() {
	root := &cobra.Command{
		Use:   "ssd",
		Short: "Synchronisation Server daemon",
		RunE:  run,
	}

	root.Flags().StringP("config", "C", "", "TOML config file")
	root.Flags().StringP("sock", "s", "", "Unix socket path (overrides config)")
	root.Flags().StringP("fifo-dir", "f", "", "FIFO directory (overrides config)")
	root.Flags().BoolP("verbose", "v", false, "raise log level")
	_ = viper.BindPFlags(root.Flags())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if sock := viper.GetString("sock"); sock != "" {
		cfg.Server.SockPath = sock
	}
	if dir := viper.GetString("fifo-dir"); dir != "" {
		cfg.Server.FifoDir = dir
	}
	if viper.GetBool("verbose") {
		cfg.Server.LogLevel = 2
	}

	sheep := logging.New(cfg.Server.LogLevel, os.Stderr)
	sheep.SetPrefix("ssd")

	_ = os.Remove(cfg.Server.SockPath)
	ln, err := net.Listen("unix", cfg.Server.SockPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.SockPath, err)
	}
	defer ln.Close()

	srv := ss.NewServer(sheep)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)

	tsrv := &transport.Server{
		Listener: ln,
		ReqCh:    srv.ReqCh,
		ErrKind:  ss.KindOf,
		Log:      sheep,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)

	serveErr := make(chan error, 1)
	go func() { serveErr <- tsrv.Serve() }()

	sheep.Baa(0, "ssd listening on %s", cfg.Server.SockPath)

	select {
	case sig := <-sigCh:
		sheep.Baa(0, "received %s, shutting down", sig)
	case err := <-serveErr:
		if err != nil {
			sheep.Baa(0, "listener stopped: %v", err)
		}
	}
	return nil
}
