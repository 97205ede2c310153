// handles serve flags and the optional arena.yaml overlay
package config

import (
	"flag"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains all tunable server parameters.
// These can be overridden via arena.yaml and serve flags.
type Config struct {
	Host string `yaml:"host"` // Interface to bind (default: all interfaces)
	Port int    `yaml:"port"` // TCP port to listen on (default: 8000)
	Root string `yaml:"root"` // Directory served as the site root (default: ".")

	Watch bool `yaml:"watch"` // Enable the live-reload watcher (default: false)
	Gzip  bool `yaml:"gzip"`  // Enable gzip response compression (default: true)

	Debounce        time.Duration `yaml:"debounce"`        // File watcher debounce (default: 300ms)
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"` // Server shutdown timeout (default: 5s)
}

// Default returns the default server configuration.
func Default() *Config {
	return &Config{
		Host: "",
		Port: 8000,
		Root: ".",

		Watch: false,
		Gzip:  true,

		Debounce:        300 * time.Millisecond,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load builds the configuration from defaults, an optional arena.yaml
// in the working directory, and finally the serve flags in args.
func Load(args []string) *Config {
	cfg := Default()

	if data, err := os.ReadFile("arena.yaml"); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			// Parse error, fall back to defaults
			cfg = Default()
		}
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	fs.StringVar(&cfg.Host, "host", cfg.Host, "The host/IP to bind to (empty = all interfaces)")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The port to listen on")
	fs.StringVar(&cfg.Root, "root", cfg.Root, "The directory to serve")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "Enable auto-reload on file changes")
	fs.BoolVar(&cfg.Gzip, "gzip", cfg.Gzip, "Enable gzip compression")
	_ = fs.Parse(args)

	cfg.validate()
	return cfg
}

// validate ensures configuration values are within reasonable bounds
func (c *Config) validate() {
	// Port 0 is kept as-is: the listener then picks a free port
	if c.Port < 0 || c.Port > 65535 {
		c.Port = 8000
	}
	if c.Root == "" {
		c.Root = "."
	}
	if c.Debounce <= 0 {
		c.Debounce = 300 * time.Millisecond
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
}

// Addr returns the host:port address to listen on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
