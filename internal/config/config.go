// vi: sw=4 ts=4:

/*

	Mnemonic:	config
	Abstract:	Typed TOML configuration for cmd/ssd, replacing
				tegu.go's cfg_data["section"]["key"] string-map lookups
				(scattered across agent.go, fq_mgr.go, res_mgr.go) with one
				struct loaded via github.com/BurntSushi/toml.
	Date:		31 July 2026
	Author:		rendez contributors
*/

package config

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// Server is the [server] section of an ssd config file.
type Server struct {
	// SockPath is the Unix domain socket cmd/ssd listens on.
	SockPath string `toml:"sock_path"`

	// FifoDir names a FIFO directory. cmd/ssd loads and checks it but
	// creates no FIFOs and does not use it further; each gfsp client
	// creates its own FIFO in the directory given by its --fifo-dir flag.
	FifoDir string `toml:"fifo_dir"`

	// LogLevel is the initial Baa level of the root logger (0 = quiet).
	LogLevel uint `toml:"log_level"`
}

// Config is the top-level shape of an ssd TOML config file.
type Config struct {
	Server Server `toml:"server"`
}

// Default mirrors the values tegu.go falls back to when no -C file is
// given: a socket under /tmp, FIFOs alongside it, level 1 logging.
func Default() Config {
	return Config{
		Server: Server{
			SockPath: "/tmp/rendez.sock",
			FifoDir:  "/tmp",
			LogLevel: 1,
		},
	}
}

// Load reads and decodes a TOML config file at path, starting from
// Default() so a partial file only overrides what it mentions.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "decode config %s", path)
	}
	if cfg.Server.SockPath == "" {
		return Config{}, errors.New("config: server.sock_path must not be empty")
	}
	if cfg.Server.FifoDir == "" {
		return Config{}, errors.New("config: server.fifo_dir must not be empty")
	}
	return cfg, nil
}
