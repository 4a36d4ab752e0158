package serve

import (
	"errors"
	"fmt"
	cmdUtil "github.com/ValentinKolb/pine/cmd/util"
	"github.com/ValentinKolb/pine/lib/memory"
	"github.com/ValentinKolb/pine/rpc/common"
	"github.com/ValentinKolb/pine/rpc/server"
	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the reference server",
		Long:    `Start a reference server that answers the memory protocol from an emulated address space. It can be used to develop and test tools without a running emulator. The configuration can be set via command line flags or environment variables. The format of the environment variables is PINE_<flag> (e.g. PINE_MEMORY_SIZE=1024)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitClientConfig)

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("The socket path or address to listen on. Defaults to /tmp/pcsx2.sock for unix and 127.0.0.1:28011 for tcp"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 0, cmdUtil.WrapString("Read/write deadline per request in seconds (0 disables it)"))

	key = "memory-size"
	ServeCmd.PersistentFlags().Uint64(key, 32*1024, cmdUtil.WrapString("Size of the emulated address space in KB"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Address of the http server exposing /metrics in Prometheus format (e.g. localhost:9100, empty disables it)"))

	cmdUtil.SetupSocketFlags(ServeCmd)
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if err := cmdUtil.InitLogging(); err != nil {
		return err
	}

	endpoint, err := cmdUtil.GetEndpoint()
	if err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Endpoint = endpoint
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.MemorySize = viper.GetUint64("memory-size") * 1024
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.SocketConf, serveCmdConfig.TCPConf = cmdUtil.GetSocketConf()

	if serveCmdConfig.MemorySize == 0 {
		return fmt.Errorf("memory size must be greater than 0")
	}
	if serveCmdConfig.MemorySize > memory.MaxSize {
		return fmt.Errorf("memory size must not exceed %d KB", memory.MaxSize/1024)
	}

	return nil
}

// run starts the reference server
func run(_ *cobra.Command, _ []string) error {

	// Parse the transport
	t, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	serv := server.NewRPCServer(
		*serveCmdConfig,
		t,
		memory.NewPagedMemory(serveCmdConfig.MemorySize),
	)

	if err := serv.Listen(); err != nil {
		return err
	}

	// Expose metrics
	if serveCmdConfig.MetricsEndpoint != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
			metrics.WritePrometheus(w, true)
		})
		go func() {
			server.Logger.Infof("Serving metrics on http://%s/metrics", serveCmdConfig.MetricsEndpoint)
			if err := http.ListenAndServe(serveCmdConfig.MetricsEndpoint, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				server.Logger.Errorf("Metrics server failed: %v", err)
			}
		}()
	}

	// Shut down on SIGINT / SIGTERM
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		server.Logger.Infof("Shutting down")
		_ = serv.Close()
	}()

	fmt.Printf("Serving on %s\n", serv.Endpoint())
	return serv.Serve()
}
