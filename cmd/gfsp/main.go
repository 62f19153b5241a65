// vi: sw=4 ts=4:

/*

	Mnemonic:	gfsp
	Abstract:	The client FSM driver: parses an .aut file, registers its
				alphabet with the Synchronisation Server, publishes its
				initial sensitivities, and loops on its notification FIFO
				firing transitions -- the Go replacement for GFSP/main.c's
				init_process/run/handle_sigint.

				Usage: gfsp <automaton-file> <prefix> [-s sock]
	Date:		31 July 2026
	Author:		rendez contributors
*/

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/att/rendez/internal/fsm"
	"github.com/att/rendez/internal/logging"
	"github.com/att/rendez/internal/notify"
	"github.com/att/rendez/internal/transport"
)

func main() {
	var sockPath string
	var fifoDir string

	root := &cobra.Command{
		Use:   "gfsp <automaton-file> <prefix>",
		Short: "GFSP client FSM driver",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], sockPath, fifoDir)
		},
	}
	root.Flags().StringVarP(&sockPath, "sock", "s", "/tmp/rendez.sock", "Synchronisation Server socket path")
	root.Flags().StringVarP(&fifoDir, "fifo-dir", "f", "/tmp", "directory to create this process's FIFO in")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(autFile, prefix, sockPath, fifoDir string) error {
	sheep := logging.New(1, os.Stderr)
	sheep.SetPrefix("gfsp")

	data, err := os.ReadFile(autFile)
	if err != nil {
		return fmt.Errorf("read automaton file %s: %w", autFile, err)
	}
	automaton, err := fsm.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parse automaton file %s: %w", autFile, err)
	}

	fifoPath := notify.Path(fifoDir)
	if err := notify.Create(fifoPath); err != nil {
		return fmt.Errorf("create fifo: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%d", filepath.Base(autFile), os.Getpid())
	client := transport.NewClient(sockPath)

	cleanup := func() {
		if err := client.Delete(endpoint); err != nil {
			sheep.Baa(0, "delete on exit failed: %v", err)
		}
		if err := notify.Remove(fifoPath); err != nil {
			sheep.Baa(0, "fifo cleanup failed: %v", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	go func() {
		sig := <-sigCh
		sheep.Baa(0, "received %s, cleaning up", sig)
		cleanup()
		os.Exit(0)
	}()
	defer cleanup()

	ssIndices, err := client.AddAlphabet(endpoint, prefix, automaton.Alphabet, fifoPath)
	if err != nil {
		return fmt.Errorf("add alphabet: %w", err)
	}
	if err := automaton.BindAlphabet(ssIndices); err != nil {
		return fmt.Errorf("bind alphabet: %w", err)
	}
	automaton.Dump(sheep)

	if err := client.UpdateSensitivities(endpoint, automaton.Sensitivities()); err != nil {
		return fmt.Errorf("initial sensitivity update: %w", err)
	}
	sheep.Baa(1, "registered %d actions, entering notification loop", len(automaton.Alphabet))

	for {
		transitionIndex, err := notify.Receive(fifoPath)
		if err != nil {
			return fmt.Errorf("fifo receive: %w", err)
		}
		sheep.Baa(1, "transition %d synced", transitionIndex)

		if err := automaton.ChangeState(transitionIndex); err != nil {
			sheep.Baa(0, "change state failed: %v", err)
			continue
		}
		if err := client.UpdateSensitivities(endpoint, automaton.Sensitivities()); err != nil {
			return fmt.Errorf("sensitivity update: %w", err)
		}
	}
}
