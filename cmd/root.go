package cmd

import (
	"fmt"
	"github.com/ValentinKolb/pine/cmd/mem"
	"github.com/ValentinKolb/pine/cmd/serve"
	"github.com/ValentinKolb/pine/cmd/util"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "0.1.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "pine",
		Short: "remote memory inspection for emulators",
		Long: fmt.Sprintf(`pine (v%s)

Reads and writes the memory of a running emulator over its local
IPC socket, one command at a time or many commands in a single batch.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of pine",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pine v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(mem.Commands...)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "auto", util.WrapString("transport to use (auto, unix, tcp). auto uses unix sockets and tcp on windows"))
	key = "log-level"
	RootCmd.PersistentFlags().String(key, "warn", util.WrapString("level at which logs are written to stderr (debug, info, warn, error)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
