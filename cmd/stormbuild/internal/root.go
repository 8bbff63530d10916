package internal

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/magefile/mage/mg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the stormbuild version (set via -ldflags).
var Version = "dev"

const envPrefix = "STORMBUILD"

var (
	cfgFile string
	verbose bool

	rootCmd = newRootCmd()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stormbuild",
		Short: "stormbuild compiles the stormpy extension modules",
		Long: `stormbuild compiles the native extension modules of stormpy with CMake.

Extensions are declared in a TOML manifest. Each source directory is
configured once into its own work directory; every extension is then built
as a separate CMake target.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (toml, yaml or json)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output and stream toolchain output")

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newListCmd())
	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(mg.ExitStatus(err))
	}
}

// newViper returns a viper instance bound to cmd's flags, STORMBUILD_*
// environment variables and the --config file, in that order of precedence.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// newLogger returns the CLI logger writing to w. Debug output is enabled by
// --verbose.
func newLogger(v *viper.Viper, w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "stormbuild",
		ReportTimestamp: true,
	})
	if v.GetBool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
