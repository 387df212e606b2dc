package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcelsud/discord-sale-notifier/order"
	"github.com/marcelsud/discord-sale-notifier/settings/file"
)

/* validate-settings - Standalone CLI tool to validate settings.yaml
 * Usage: go run ./cmd/validate-settings [settings.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	settingsFile := "settings.yaml"
	if len(os.Args) > 1 {
		settingsFile = os.Args[1]
	}

	fmt.Printf("Validating settings file: %s\n", settingsFile)
	fmt.Println(strings.Repeat("-", 50))

	data, err := os.ReadFile(settingsFile)
	if err != nil {
		fail(err)
	}
	st, err := file.Parse(data)
	if err != nil {
		fail(err)
	}
	if err := st.Validate(); err != nil {
		fail(err)
	}

	fmt.Printf("✓ VALIDATION PASSED\n\n")
	if st.DefaultWebhookURL == "" {
		fmt.Println("Default webhook: (not set)")
	} else {
		fmt.Printf("Default webhook: %s\n", st.DefaultWebhookURL)
	}

	fmt.Printf("\nNotifying on %d status(es):\n", len(st.EnabledStatuses))
	for _, key := range st.EnabledStatuses {
		target := st.WebhookFor(key)
		if target == "" {
			target = "(no webhook, nothing will be sent)"
		}
		fmt.Printf("  %-20s %-16s %s  %s\n", key, order.ParseStatus(key).Label(), st.ColorStringFor(key), target)
	}
	os.Exit(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
