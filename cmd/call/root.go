package call

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/lab-instruments/golxi/cmd/util"
	"github.com/lab-instruments/golxi/rpc/common"
	"github.com/lab-instruments/golxi/rpc/vxi11"
)

var (
	conn    net.Conn
	channel *vxi11.Channel

	// CallCommands represents the call command group
	CallCommands = &cobra.Command{
		Use:                "call",
		Short:              "Send raw VXI-11 RPCs to an instrument",
		PersistentPreRunE:  setupChannel,
		PersistentPostRunE: teardownChannel,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags to the call command
	util.SetupRPCClientFlags(CallCommands)

	// Channel selection for raw calls
	CallCommands.PersistentFlags().String("channel", "core", util.WrapString("VXI-11 channel to address (core, abort, interrupt)"))

	// Add subcommands
	CallCommands.AddCommand(sendCmd)
	CallCommands.AddCommand(pingCmd)
}

// programNumber maps the channel flag to its VXI-11 program number
func programNumber(channel string) (uint32, error) {
	switch channel {
	case "core":
		return vxi11.CoreProgram, nil
	case "abort":
		return vxi11.AbortProgram, nil
	case "interrupt":
		return vxi11.InterruptProgram, nil
	default:
		return 0, fmt.Errorf("invalid channel %s (must be core, abort or interrupt)", channel)
	}
}

// setupChannel dials the instrument and creates the RPC channel
func setupChannel(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration
	config := util.GetClientConfig()
	common.InitLoggers(*config)

	program, err := programNumber(viper.GetString("channel"))
	if err != nil {
		return err
	}

	// Dial the instrument
	connector, err := util.GetConnector()
	if err != nil {
		return err
	}
	conn, err = connector.Connect(*config)
	if err != nil {
		return err
	}

	// Create the channel with the configured pacing
	channel = vxi11.NewChannel(conn, program)
	if config.RateLimit > 0 {
		channel.SetRateLimit(rate.Limit(config.RateLimit), config.RateBurst)
	}

	return nil
}

// teardownChannel fails any still-pending calls and closes the connection
func teardownChannel(_ *cobra.Command, _ []string) error {
	if channel != nil {
		channel.Fail()
	}
	if conn != nil {
		return conn.Close()
	}
	return nil
}
