package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bundlescan/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	debug    bool
	noBanner bool
	version  = "1.0.0"
)

var rootCmd = &cobra.Command{
	Use:   "bundlescan",
	Short: "Regex recon over JavaScript bundles",
	Long: `bundlescan - load a bundled JavaScript file and run a table of labeled
regular expressions and keyword lookups over its raw text to surface API
endpoints, parameter keys and category codes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(os.Stderr, debug)
		if !noBanner {
			utils.PrintBanner(version)
		}
	},
}

func Execute() {
	utils.InitLogger(os.Stderr, false)

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		utils.Warning.Println("Interrupt received, stopping...")
		cancel()
	}()

	code := run(ctx, os.Args[1:])
	cancel()
	os.Exit(code)
}

// run executes the command line and returns the process exit status.
func run(ctx context.Context, args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		utils.Error.Println(err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML pattern table (see 'bundlescan presets show default')")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVar(&noBanner, "no-banner", false, "Do not print the banner")
}
