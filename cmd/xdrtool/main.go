package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/USEPA/rsigserver-sub001/cmd"
	"github.com/USEPA/rsigserver-sub001/pkg/logging"
)

// rootMain is the entry point for the root command.
func rootMain(command *cobra.Command, _ []string) error {
	// If no commands were given, then print help information and bail. We
	// don't have to worry about warning about arguments being present here
	// (cobra will enforce this for us).
	command.Help()
	return nil
}

// rootCommand is the root command.
var rootCommand = &cobra.Command{
	Use:   "xdrtool",
	Short: "Inspect and move portable binary subset data",
	Run:   cmd.Mainify(rootMain),
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Apply the requested logging level.
		if level, ok := logging.NameToLevel(rootConfiguration.logLevel); ok {
			logging.SetLevel(level)
		} else {
			cmd.Warning("unknown log level '" + rootConfiguration.logLevel + "'")
		}
	},
}

// rootConfiguration stores configuration for the root command.
var rootConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// logLevel encodes the logging level as a string.
	logLevel string
	// configurationPath is the path of the tool configuration file.
	configurationPath string
}

func init() {
	// Disable alphabetical sorting of commands in help output.
	cobra.EnableCommandSorting = false

	// Wire up flags for the root command itself.
	rootCommand.Flags().BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")

	// Wire up root command flags.
	persistent := rootCommand.PersistentFlags()
	persistent.StringVar(&rootConfiguration.logLevel, "log-level", "warn", "Set the logging level (disabled|error|warn|info|debug)")
	persistent.StringVar(&rootConfiguration.configurationPath, "config", defaultConfigurationPath, "Set the tool configuration file")

	// Register commands.
	rootCommand.AddCommand(
		infoCommand,
		catCommand,
		generateCommand,
		sendCommand,
		receiveCommand,
		versionCommand,
	)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
