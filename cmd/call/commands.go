package call

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lab-instruments/golxi/rpc/sunrpc"
)

var (
	sendCmd = &cobra.Command{
		Use:   "send [procedure] [body]",
		Short: "Sends one RPC and prints the reply body",
		Long: `Sends one RPC with the given procedure number and optional body,
waits for the matching reply and prints its body. The body is taken as
text unless --hex is set; the reply is printed as text unless --out-hex
is set.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			procedure, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("procedure must be a number: %w", err)
			}

			var body sunrpc.Opaque
			if len(args) == 2 {
				if viper.GetBool("hex") {
					raw, err := hex.DecodeString(args[1])
					if err != nil {
						return fmt.Errorf("invalid hex body: %w", err)
					}
					body = raw
				} else {
					body = sunrpc.Opaque(args[1])
				}
			}

			ctx, cancel := context.WithTimeout(context.Background(),
				time.Duration(viper.GetInt("timeout"))*time.Second)
			defer cancel()

			reply, err := channel.Roundtrip(ctx, uint32(procedure), body)
			if err != nil {
				return err
			}

			if viper.GetBool("out-hex") {
				fmt.Println(hex.EncodeToString(reply))
			} else {
				fmt.Println(reply.String())
			}
			return nil
		},
	}

	pingCmd = &cobra.Command{
		Use:   "ping",
		Short: "Checks that the instrument answers RPCs at all",
		Long: `Sends procedure 0 (the null procedure every Sun RPC program must
implement) and reports whether a reply came back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(context.Background(),
				time.Duration(viper.GetInt("timeout"))*time.Second)
			defer cancel()

			start := time.Now()
			if _, err := channel.Roundtrip(ctx, 0, nil); err != nil {
				return err
			}
			fmt.Printf("instrument answered in %v\n", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
)

func init() {
	sendCmd.Flags().Bool("hex", false, "Interpret the body argument as hex")
	sendCmd.Flags().Bool("out-hex", false, "Print the reply body as hex")
}
