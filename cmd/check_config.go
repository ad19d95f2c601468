package cmd

import (
	"fmt"
	"os"

	"github.com/frahmantamala/donation-gateway/internal/processor"
	"github.com/spf13/cobra"
)

// checkConfigCmd validates the merchant and gateway configuration without
// starting the server, so a bad deploy fails before it takes traffic.
var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate gateway and processor configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}

		registry, err := processor.NewRegistry(cfg.Processors)
		if err != nil {
			fmt.Fprintf(os.Stderr, "processors: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("gateway: %s\n", cfg.Gateway.BaseURL)
		for _, name := range registry.Names() {
			proc, _ := registry.Get(name)
			fmt.Printf("processor %q: terminal %s, branding %q, max payments %d\n",
				proc.Name, proc.Credentials.Terminal, proc.Nickname, proc.MaxPayments)
		}
	},
}
