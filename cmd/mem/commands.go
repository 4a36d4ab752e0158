package mem

import (
	"fmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	readCmd = &cobra.Command{
		Use:   "read [address]",
		Short: "Reads a value from memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := ParseAddress(args[0])
			if err != nil {
				return err
			}
			op := Op{Width: viper.GetInt("width"), Address: address}

			results, err := RunOps(rpcClient, []Op{op})
			if err != nil {
				return err
			}
			fmt.Println(results[0])
			return nil
		},
	}
	writeCmd = &cobra.Command{
		Use:   "write [address] [value]",
		Short: "Writes a value to memory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := ParseAddress(args[0])
			if err != nil {
				return err
			}
			width := viper.GetInt("width")
			value, err := ParseValue(args[1], width)
			if err != nil {
				return err
			}

			op := Op{Write: true, Width: width, Address: address, Value: value}
			if _, err := RunOps(rpcClient, []Op{op}); err != nil {
				return err
			}
			fmt.Printf("%s written successfully\n", op)
			return nil
		},
	}
	batchCmd = &cobra.Command{
		Use:   "batch [op]...",
		Short: "Sends several reads and writes in one message",
		Long: `Sends several reads and writes in one message. The commands are executed
in the given order. Ops have the form r<width>@<address> for reads and
w<width>@<address>=<value> for writes, the width is given in bytes.

Example: pine batch w1@0x00347D34=7 r2@0x00347D34`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := ParseOps(args)
			if err != nil {
				return err
			}
			results, err := RunOps(rpcClient, ops)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Println(r)
			}
			fmt.Printf("%d commands executed successfully\n", len(ops))
			return nil
		},
	}
)
