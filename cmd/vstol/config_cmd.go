package main

import (
	"fmt"

	"github.com/spf13/cobra"

	vconfig "github.com/pirl-unc/vstol-go/internal/config"
)

// newConfigCmd exposes get/set/show sub-commands over the persisted
// ~/.vstol.yaml configuration.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, get, or set persisted vstol configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.vstol.yaml. Stored values are shown and read back by this command; they do not change the flag defaults of other sub-commands.",
		Example: `  vstol config                             # show all config
  vstol config set num_threads 8           # store a value under num_threads
  vstol config get num_threads             # read it back`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := vconfig.Show()
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := vconfig.Set(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("set %s = %s in %s\n", args[0], args[1], path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Read a persisted configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			val := vconfig.Get(args[0])
			if val == nil {
				return fmt.Errorf("key %q is not set", args[0])
			}
			fmt.Println(val)
			return nil
		},
	})

	return cmd
}
