package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/USEPA/rsigserver-sub001/cmd"
	"github.com/USEPA/rsigserver-sub001/pkg/logging"
	"github.com/USEPA/rsigserver-sub001/pkg/must"
	"github.com/USEPA/rsigserver-sub001/pkg/stream"
	"github.com/USEPA/rsigserver-sub001/pkg/subset"
)

// receiveMain is the entry point for the receive command.
func receiveMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 1 {
		return errors.New("exactly one output file must be specified")
	}

	// Resolve the listening port from configuration and flags.
	configuration, err := loadConfiguration(rootConfiguration.configurationPath)
	if err != nil {
		return err
	}
	if command.Flags().Changed("port") {
		configuration.Port = receiveConfiguration.port
	}

	// Listen and block until a peer connects, then defer closure of the
	// connection.
	peer, err := stream.OpenServerSocket(configuration.Port)
	if err != nil {
		return errors.Wrap(err, "unable to accept peer")
	}
	defer must.Close(peer, logging.RootLogger.Sublogger("receive"))

	// Open the output file and defer its closure.
	output, err := stream.OpenFile(arguments[0], stream.ModeWrite)
	if err != nil {
		return errors.Wrap(err, "unable to open output file")
	}
	defer must.Close(output, logging.RootLogger.Sublogger("receive"))

	// Move the subset.
	if err := subset.Copy(peer, output); err != nil {
		return errors.Wrap(err, "unable to receive subset")
	}

	// Report the outcome.
	fmt.Printf("Received %s into %s\n", humanize.Bytes(uint64(output.Size())), output.Name())
	return nil
}

// receiveCommand is the receive command.
var receiveCommand = &cobra.Command{
	Use:   "receive <file>",
	Short: "Accept one peer connection and store the received subset",
	Run:   cmd.Mainify(receiveMain),
}

// receiveConfiguration stores configuration for the receive command.
var receiveConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// port is the listening port.
	port uint16
}

func init() {
	// Grab a handle for the command line flags.
	flags := receiveCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&receiveConfiguration.help, "help", "h", false, "Show help information")

	// Wire up receive command flags.
	flags.Uint16Var(&receiveConfiguration.port, "port", 0, "Set the listening port (overrides configuration)")
}
