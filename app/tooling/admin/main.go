// This program performs administrative tasks against a ledger store while
// the node is offline.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/conf/v3"
	"github.com/sanikak2004/builder-quantum-den-sub002/app/tooling/admin/commands"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/genesis"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/state"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/storage"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

type config struct {
	conf.Version
	Args    conf.Args
	Storage string `conf:"default:disk,help:memory|disk|badger"`
	DBPath  string `conf:"default:zblock/blocks"`
	Genesis string `conf:"default:zblock/genesis.json"`
}

func main() {

	// Construct the application logger.
	log, err := logger.New("ADMIN")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	cfg := config{
		Version: conf.Version{
			Build: build,
			Desc:  "KYC ledger administration",
		},
	}

	const prefix = "ADMIN"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	return processCommands(cfg, log)
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(cfg config, log *zap.SugaredLogger) error {
	strg, err := storage.Open(cfg.Storage, cfg.DBPath)
	if err != nil {
		return err
	}

	switch cfg.Args.Num(0) {
	case "reset":
		defer strg.Close()
		if err := commands.Reset(strg); err != nil {
			return fmt.Errorf("resetting store: %w", err)
		}
		return nil

	case "blocks", "validate":

	default:
		strg.Close()
		fmt.Println("commands: blocks [number] | validate | reset")
		return nil
	}

	gen, err := genesis.Load(cfg.Genesis)
	switch {
	case errors.Is(err, os.ErrNotExist):
		gen = genesis.Default()
	case err != nil:
		strg.Close()
		return fmt.Errorf("loading genesis: %w", err)
	}

	ev := func(v string, args ...any) {
		log.Debugw(fmt.Sprintf(v, args...))
	}

	st, err := state.New(state.Config{
		Genesis:   gen,
		Storage:   strg,
		EvHandler: ev,
	})
	if err != nil {
		strg.Close()
		return err
	}
	defer st.Shutdown()

	switch cfg.Args.Num(0) {
	case "blocks":
		if err := commands.Blocks(cfg.Args.Num(1), st); err != nil {
			return fmt.Errorf("listing blocks: %w", err)
		}
	case "validate":
		if err := commands.Validate(st); err != nil {
			return fmt.Errorf("validating chain: %w", err)
		}
	}

	return nil
}
