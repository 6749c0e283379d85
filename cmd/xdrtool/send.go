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

// sendMain is the entry point for the send command.
func sendMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 1 {
		return errors.New("exactly one subset file must be specified")
	}

	// Resolve the peer address from configuration and flags.
	configuration, err := loadConfiguration(rootConfiguration.configurationPath)
	if err != nil {
		return err
	}
	if command.Flags().Changed("host") {
		configuration.Host = sendConfiguration.host
	}
	if command.Flags().Changed("port") {
		configuration.Port = sendConfiguration.port
	}

	// Open the subset file and defer its closure.
	source, err := stream.OpenFile(arguments[0], stream.ModeRead)
	if err != nil {
		return errors.Wrap(err, "unable to open subset file")
	}
	defer must.Close(source, logging.RootLogger.Sublogger("send"))
	size := source.Size()

	// Connect to the peer and defer closure of the connection.
	peer, err := stream.OpenClientSocket(configuration.Host, configuration.Port)
	if err != nil {
		return errors.Wrap(err, "unable to connect to peer")
	}
	defer must.Close(peer, logging.RootLogger.Sublogger("send"))

	// Move the subset.
	if err := subset.Copy(source, peer); err != nil {
		return errors.Wrap(err, "unable to send subset")
	}

	// Report the outcome.
	fmt.Printf("Sent %s to %s\n", humanize.Bytes(uint64(size)), peer.Name())
	return nil
}

// sendCommand is the send command.
var sendCommand = &cobra.Command{
	Use:   "send <file>",
	Short: "Send a subset file to a listening peer",
	Run:   cmd.Mainify(sendMain),
}

// sendConfiguration stores configuration for the send command.
var sendConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// host is the peer host.
	host string
	// port is the peer port.
	port uint16
}

func init() {
	// Grab a handle for the command line flags.
	flags := sendCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&sendConfiguration.help, "help", "h", false, "Show help information")

	// Wire up send command flags.
	flags.StringVar(&sendConfiguration.host, "host", "", "Set the peer host (overrides configuration)")
	flags.Uint16Var(&sendConfiguration.port, "port", 0, "Set the peer port (overrides configuration)")
}
