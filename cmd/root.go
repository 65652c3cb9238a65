package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lab-instruments/golxi/cmd/call"
	"github.com/lab-instruments/golxi/cmd/util"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "golxi",
		Short: "VXI-11 instrument control over Sun RPC",
		Long: fmt.Sprintf(`golxi (v%s)

A Sun RPC / XDR client stack for controlling LAN test and measurement
instruments over the VXI-11 protocol.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of golxi",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("golxi v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(call.CallCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
