package cmd

import (
	"fmt"
	"strings"

	"bundlescan/pkg/client"
	"bundlescan/pkg/utils"

	"github.com/spf13/cobra"
)

// addFetchFlags registers the HTTP options shared by commands that download.
func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("header", "H", nil, "Custom headers (e.g. -H 'Authorization: Bearer token')")
	cmd.Flags().String("cookies", "", "Session cookies (e.g. 'session=abc; token=xyz')")
	cmd.Flags().String("proxy", "", "Proxy URL (e.g. http://127.0.0.1:8080)")
	cmd.Flags().String("timeout", "", "Request timeout (e.g. 30s)")
	cmd.Flags().BoolP("insecure", "K", false, "Skip TLS certificate verification")
}

// newFetcher applies fetch flags on top of cfg and builds a client.
func newFetcher(cmd *cobra.Command, cfg utils.FetchConfig) (*client.Fetcher, error) {
	customHeaders, _ := cmd.Flags().GetStringArray("header")
	cookies, _ := cmd.Flags().GetString("cookies")
	proxy, _ := cmd.Flags().GetString("proxy")
	timeout, _ := cmd.Flags().GetString("timeout")
	insecure, _ := cmd.Flags().GetBool("insecure")

	if cookies != "" {
		cfg.Cookies = cookies
	}
	if proxy != "" {
		cfg.Proxy = proxy
	}
	if timeout != "" {
		cfg.Timeout = timeout
	}
	if insecure {
		cfg.VerifyTLS = false
	}

	headers := make(map[string]string, len(cfg.Headers)+len(customHeaders))
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	for _, h := range customHeaders {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid header %q, expected 'Name: value'", h)
		}
		key := strings.TrimSpace(parts[0])
		headers[key] = strings.TrimSpace(parts[1])
		utils.Debug.Printf("Custom header: %s\n", key)
	}
	cfg.Headers = headers

	return client.NewFetcher(cfg)
}
