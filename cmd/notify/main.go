package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/marcelsud/discord-sale-notifier/config"
	"github.com/marcelsud/discord-sale-notifier/internal/app"
	"github.com/marcelsud/discord-sale-notifier/internal/logger"
	"github.com/marcelsud/discord-sale-notifier/notification"
)

/* notify - runs the sale notification for one order, as a checkpoint would
 * Usage: go run ./cmd/notify [-strict] <order_id>
 * Exit codes: 0 = sent or skipped, 1 = configuration error, 2 = delivery failed (or any skip with -strict)
 */

func main() {
	strict := flag.Bool("strict", false, "exit non-zero unless the notification was sent")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: notify [-strict] <order_id>")
		os.Exit(1)
	}
	orderID, err := strconv.ParseInt(flag.Arg(0), 10, 64)
	if err != nil || orderID <= 0 {
		fmt.Fprintf(os.Stderr, "invalid order id %q\n", flag.Arg(0))
		os.Exit(1)
	}

	outcome, err := run(orderID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("order %d: %s\n", orderID, outcome)
	os.Exit(exitCode(outcome, *strict))
}

func run(orderID int64) (notification.Outcome, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return 0, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return 0, err
	}
	defer log.Sync()

	ctx := context.Background()
	a, err := app.New(cfg, nil, log)
	if err != nil {
		return 0, err
	}
	defer a.Close(ctx)

	return a.Notifier.Notify(ctx, orderID), nil
}

// exitCode is 2 when delivery failed, or in strict mode when a precondition skipped it
func exitCode(outcome notification.Outcome, strict bool) int {
	switch {
	case outcome == notification.DeliveryFailed:
		return 2
	case outcome.Skipped() && strict:
		return 2
	default:
		return 0
	}
}
