// Demo runs the canonical simulator scenario: Bobby and Carol pay each other,
// become friends, and Bobby's feed is printed to stdout.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/julianpalmerio/minivenmo/internal/repository/memory"
	"github.com/julianpalmerio/minivenmo/internal/service/account"
	"github.com/julianpalmerio/minivenmo/internal/service/feed"
	"github.com/julianpalmerio/minivenmo/internal/service/payment"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	storage := memory.NewStorage()
	accounts := account.NewService(storage)
	payments := payment.NewService(storage, payment.StubCharger{}, nil)
	feeds := feed.NewService(storage, nil)

	if _, err := accounts.CreateUser(ctx, "Bobby", decimal.NewFromFloat(5.00), "4111111111111111"); err != nil {
		return err
	}
	if _, err := accounts.CreateUser(ctx, "Carol", decimal.NewFromFloat(10.00), "4242424242424242"); err != nil {
		return err
	}

	// Bobby's 5.00 covers the coffee, settles from balance.
	// Payment errors are printed and the run continues.
	if _, err := payments.Pay(ctx, "Bobby", "Carol", decimal.NewFromFloat(5.00), "Coffee"); err != nil {
		fmt.Println(err)
	}

	// Carol holds 15.00 after the coffee, settles from balance too
	if _, err := payments.Pay(ctx, "Carol", "Bobby", decimal.NewFromFloat(15.00), "Lunch"); err != nil {
		fmt.Println(err)
	}

	if err := feeds.AddFriend(ctx, "Bobby", "Carol"); err != nil {
		return err
	}

	events, err := feeds.Feed(ctx, "Bobby")
	if err != nil {
		return err
	}

	for _, line := range feed.RenderFeed(events) {
		fmt.Println(line)
	}

	return nil
}
