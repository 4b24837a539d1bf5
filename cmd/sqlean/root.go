package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nerrad567/sqlean-go/internal/bundle"
	"github.com/nerrad567/sqlean-go/internal/driver"
	"github.com/nerrad567/sqlean-go/internal/infrastructure/config"
	"github.com/nerrad567/sqlean-go/internal/infrastructure/logging"
)

const (
	// defaultConfigPath is used when neither --config nor SQLEAN_CONFIG is given.
	defaultConfigPath = "sqlean.yaml"

	// configEnv names the environment variable holding the config path.
	configEnv = "SQLEAN_CONFIG"
)

// ErrUnknownModule is returned when extensions.enable names a module this
// build does not know.
var ErrUnknownModule = errors.New("unknown module")

// app carries state shared by the subcommands once the root command has
// loaded configuration.
type app struct {
	configPath string
	envFile    string
	cfg        *config.Config
	log        *logging.Logger
	out        io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{out: stdout}

	root := &cobra.Command{
		Use:   "sqlean",
		Short: "SQLite with the sqlean extension bundle",
		Long: `sqlean opens SQLite databases through a driver that activates the
sqlean function modules on every connection.

Modules are selected with SQLEAN_ENABLE (all or, with "0", none) or with
one SQLEAN_ENABLE_<MODULE> variable per module. When none of them is set,
the extensions section of the config file is used instead.`,
		Version:      fmt.Sprintf("%s (bundle %s, commit %s)", version, bundle.Version, commit),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate(`{{printf "sqlean version %s\n" .Version}}`)

	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		fmt.Sprintf("config file (default $%s or %s)", configEnv, defaultConfigPath))

	root.PersistentFlags().StringVar(&a.envFile, "env-file", "",
		fmt.Sprintf("dotenv file with SQLEAN_* variables (default %s, if present)", config.DefaultEnvFile))

	root.AddCommand(newPlanCmd(a))
	root.AddCommand(newQueryCmd(a))
	root.AddCommand(newVersionCmd(a))

	return root
}

// setup loads the env file and configuration, installs the logger on the
// driver and applies the extensions section to the environment.
func (a *app) setup(stderr io.Writer) error {
	envFile, required := a.envFile, true
	if envFile == "" {
		envFile, required = config.DefaultEnvFile, false
	}
	if err := config.LoadEnvFile(envFile, required); err != nil {
		return err
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	a.log = logging.NewWithWriter(cfg.Logging, bundle.Version, logOutput(cfg.Logging, a.out, stderr))
	driver.SetLogger(a.log.With("component", "bundle"))

	if err := applyExtensions(cfg.Extensions, bundle.OSEnv, a.log); err != nil {
		return fmt.Errorf("applying extensions config: %w", err)
	}
	return nil
}

// loadConfig reads the explicit config path strictly; the default path may
// be missing.
func (a *app) loadConfig() (*config.Config, error) {
	path := a.configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(defaultConfigPath)
}

func logOutput(cfg config.LoggingConfig, stdout, stderr io.Writer) io.Writer {
	if strings.EqualFold(cfg.Output, "stdout") {
		return stdout
	}
	return stderr
}

// applyExtensions sets the sqlean variables from the config file. It does
// nothing when env already carries any of them.
func applyExtensions(ext config.ExtensionsConfig, env bundle.LookupFunc, log *logging.Logger) error {
	if bundle.Configured(env) {
		log.Debug("sqlean environment set, ignoring extensions config")
		return nil
	}

	switch {
	case ext.DisableAll:
		return bundle.DisableAll()
	case ext.EnableAll():
		return bundle.EnableAll()
	case len(ext.Enable) == 0:
		return nil
	}

	names := bundle.Names()
	excluded := bundle.Excluded()
	for _, name := range ext.Enable {
		name = strings.ToLower(name)
		switch {
		case slices.Contains(names, name):
		case slices.Contains(excluded, name):
			log.Warn("module not available on this platform", "module", name)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownModule, name)
		}
	}
	return bundle.Enable(ext.Enable...)
}
