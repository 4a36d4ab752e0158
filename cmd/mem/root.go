package mem

import (
	"github.com/ValentinKolb/pine/cmd/util"
	"github.com/ValentinKolb/pine/rpc/client"
	"github.com/spf13/cobra"
)

var (
	rpcClient *client.Client

	// Commands are the memory commands, they are added to the root command
	Commands = []*cobra.Command{readCmd, writeCmd, batchCmd, shellCmd, perfTestCmd}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	for _, cmd := range Commands {
		// Add common RPC flags to every memory command
		util.SetupRPCClientFlags(cmd)
		cmd.PersistentPreRunE = setupClient
	}

	key := "width"
	readCmd.Flags().Int(key, 4, util.WrapString("Width of the value in bytes (1, 2, 4 or 8)"))
	writeCmd.Flags().Int(key, 4, util.WrapString("Width of the value in bytes (1, 2, 4 or 8)"))
}

// setupClient initializes the RPC client
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	if err := util.InitLogging(); err != nil {
		return err
	}

	// Get client configuration and transport
	config, err := util.GetClientConfig()
	if err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	// Create the client
	rpcClient, err = client.NewRPCClient(*config, t)

	return err
}
