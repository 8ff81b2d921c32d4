package cmd

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"bundlescan/pkg/crawler"
	"bundlescan/pkg/utils"

	"github.com/spf13/cobra"
)

var bundlesCmd = &cobra.Command{
	Use:   "bundles",
	Short: "List the JavaScript bundles a page loads",
	Long: `Fetch a page and list the script bundles it references, so one can be
picked for 'bundlescan scan'. With --save every bundle is downloaded:

  bundlescan bundles -u https://www.example.com/ --same-host --save ./rev`,
	RunE: runBundles,
}

func init() {
	rootCmd.AddCommand(bundlesCmd)

	bundlesCmd.Flags().StringP("url", "u", "", "Page URL (required)")
	bundlesCmd.Flags().String("save", "", "Download every bundle into this directory")
	bundlesCmd.Flags().Bool("same-host", false, "Only keep bundles served from the page's host")
	addFetchFlags(bundlesCmd)

	bundlesCmd.MarkFlagRequired("url")
}

func runBundles(cmd *cobra.Command, args []string) error {
	pageURL, _ := cmd.Flags().GetString("url")
	saveDir, _ := cmd.Flags().GetString("save")
	sameHost, _ := cmd.Flags().GetBool("same-host")

	base, err := url.Parse(pageURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") {
		return fmt.Errorf("invalid page URL %q", pageURL)
	}

	f, err := newFetcher(cmd, utils.DefaultFetchConfig())
	if err != nil {
		return err
	}

	html, err := fetchWithSpinner(cmd.Context(), f, pageURL)
	if err != nil {
		return err
	}

	finder := crawler.NewScriptFinder()
	finder.SameHostOnly = sameHost
	scripts, err := finder.FindScripts(html, base)
	if err != nil {
		return fmt.Errorf("parse %s: %w", pageURL, err)
	}

	if len(scripts) == 0 {
		utils.Warning.Println("No script bundles found")
		return nil
	}
	utils.Success.Printf("Found %d bundles\n", len(scripts))

	for _, s := range scripts {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}

	if saveDir == "" {
		return nil
	}
	if err := os.MkdirAll(saveDir, 0700); err != nil {
		return err
	}

	for _, s := range scripts {
		dest := filepath.Join(saveDir, bundleFilename(s))
		n, err := f.Download(cmd.Context(), s, dest)
		if err != nil {
			utils.Error.Printf("Failed to download %s: %v\n", s, err)
			continue
		}
		utils.Info.Printf("Saved %s (%d bytes)\n", dest, n)
	}
	return nil
}

// bundleFilename names a downloaded bundle after the last path segment of
// its URL.
func bundleFilename(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return utils.SanitizeFilename(raw)
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" {
		name = u.Host + ".js"
	}
	return utils.SanitizeFilename(name)
}
