package mem

import (
	"encoding/csv"
	"fmt"
	"github.com/ValentinKolb/pine/cmd/util"
	"github.com/ValentinKolb/pine/rpc/client"
	"github.com/ValentinKolb/pine/rpc/common"
	"github.com/ValentinKolb/pine/rpc/message"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool comparing immediate and batched round trips",
		Long:    "",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfBaseAddress uint32 = 0x00100000
	perfNumThreads         = 1
	perfAddrSpread         = 100
	perfBatchSize          = 64
	perfSkip               = make([]string, 0)

	perfPercentiles = []float64{0.5, 0.95, 0.99}
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. write,batch-mixed)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 1, util.WrapString("Number of threads to use for the benchmark"))
	key = "batch-size"
	perfTestCmd.Flags().Int(key, 64, util.WrapString("How many commands one batch of the batch benchmarks contains"))
	key = "addresses"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different 8 byte aligned addresses to use for the tests"))
	key = "base-address"
	perfTestCmd.Flags().String(key, "0x00100000", util.WrapString("First address used by the tests. Memory from there on is overwritten!"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfAddrSpread = max(viper.GetInt("addresses"), 1)
	perfNumThreads = max(viper.GetInt("threads"), 1)
	perfBatchSize = min(max(viper.GetInt("batch-size"), 1), message.MaxBatchCommands)
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	base, err := ParseAddress(viper.GetString("base-address"))
	if err != nil {
		return err
	}
	if err := checkPerfRange(base, perfAddrSpread); err != nil {
		return err
	}
	perfBaseAddress = base

	return nil
}

// checkPerfRange rejects address ranges that would run past the 32-bit
// address space. Every benchmark address is 8 byte aligned to the base.
func checkPerfRange(base uint32, spread int) error {
	if end := uint64(base) + uint64(spread)*8; end > math.MaxUint32+1 {
		return fmt.Errorf("%d addresses from base 0x%08x exceed the 32-bit address space", spread, base)
	}
	return nil
}

// perfResult is the outcome of one benchmark
type perfResult struct {
	name     string
	result   testing.BenchmarkResult
	latency  gometrics.Timer
	commands int // commands per op
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for the memory protocol")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	config := rpcClient.Config()
	fmt.Println(config.String())
	fmt.Printf("Threads: %d, Batch Size: %d, Addresses: %d\n", perfNumThreads, perfBatchSize, perfAddrSpread)
	fmt.Println()

	// Fail early if the emulator is not reachable
	if _, err := rpcClient.ReadWidth(perfBaseAddress, 4); err != nil {
		return fmt.Errorf("emulator not reachable: %w", err)
	}

	fmt.Println("starting tests...")

	results := []perfResult{
		benchmark("read", 1, func(i int) error {
			_, err := client.Read[uint32](rpcClient, perfAddress(i))
			return err
		}),
		benchmark("write", 1, func(i int) error {
			return client.Write[uint32](rpcClient, perfAddress(i), uint32(i))
		}),
		benchmark("batch-read", perfBatchSize, func(i int) error {
			return runBatch(i, func(b *client.Batch, addr uint32, _ int) error {
				return client.BatchRead[uint32](b, addr)
			})
		}),
		benchmark("batch-mixed", perfBatchSize, func(i int) error {
			return runBatch(i, func(b *client.Batch, addr uint32, j int) error {
				if j%2 == 0 {
					return client.BatchWrite[uint32](b, addr, uint32(j))
				}
				return client.BatchRead[uint32](b, addr)
			})
		}),
	}

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, config); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// benchmark runs op in parallel and records the latency of every call
func benchmark(name string, commands int, op func(i int) error) perfResult {
	timer := gometrics.NewTimer()

	result := testing.Benchmark(func(b *testing.B) {
		if shouldSkip(name) {
			return
		}

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				start := time.Now()
				if err := op(counter); err != nil {
					log.Printf("(%s) - error: %v\n", name, err)
				}
				timer.UpdateSince(start)
				counter++
			}
		})
	})

	r := perfResult{name: name, result: result, latency: timer, commands: commands}
	printResult(r)
	return r
}

// runBatch builds a batch of perfBatchSize commands with add and executes it
func runBatch(i int, add func(b *client.Batch, addr uint32, j int) error) error {
	b := rpcClient.Begin()
	defer b.Discard()

	for j := 0; j < perfBatchSize; j++ {
		if err := add(b, perfAddress(i+j), j); err != nil {
			return err
		}
	}

	plan, err := b.Finalize()
	if err != nil {
		return err
	}
	_, err = rpcClient.Execute(plan)
	return err
}

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	return slices.Contains(perfSkip, test)
}

// perfAddress returns the i-th test address (with wraparound)
func perfAddress(i int) uint32 {
	return perfBaseAddress + uint32(i%perfAddrSpread)*8
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(r perfResult) {
	if r.result.N == 0 || r.result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", r.name)
		return
	}

	nsPerOp := math.Max(float64(r.result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)
	cmdsPerSec := opsPerSec * float64(r.commands)

	ps := r.latency.Percentiles(perfPercentiles)

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\t%.0f cmds/sec\tp50=%s p95=%s p99=%s\n",
		r.name, nsPerOp, time.Duration(nsPerOp), opsPerSec, cmdsPerSec,
		time.Duration(ps[0]), time.Duration(ps[1]), time.Duration(ps[2]))
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results []perfResult, config common.ClientConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "CommandsPerOp", "Skipped",
		"P50Ns", "P95Ns", "P99Ns",
		"Endpoint", "TimeoutSec", "Transport",
		"Threads", "BatchSize", "Addresses",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for _, r := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if r.result.N == 0 || r.result.NsPerOp() == 0 {
			skipped = "true"
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(r.result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}
		ps := r.latency.Percentiles(perfPercentiles)

		row := []string{
			r.name,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			strconv.Itoa(r.commands),
			skipped,
			fmt.Sprintf("%.0f", ps[0]),
			fmt.Sprintf("%.0f", ps[1]),
			fmt.Sprintf("%.0f", ps[2]),
			config.Transport.Endpoint,
			strconv.Itoa(config.TimeoutSecond),
			viper.GetString("transport"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfBatchSize),
			strconv.Itoa(perfAddrSpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", r.name, err)
		}
	}

	return nil
}
