package vitrine_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aretw0/vitrine"
	"github.com/aretw0/vitrine/pkg/clock"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/ports"
)

// ExampleApp_NewChat walks the bundled chatbot script with a manual clock.
func ExampleApp_NewChat() {
	clk := clock.NewManual(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	app, err := vitrine.New(vitrine.WithClock(clk))
	if err != nil {
		log.Fatal(err)
	}

	chat := app.NewChat(ports.EffectHandlerFunc(func(_ context.Context, e domain.Effect) error {
		fmt.Println("open:", e.Href())
		return nil
	}))
	if err := chat.Start(); err != nil {
		log.Fatal(err)
	}
	clk.Advance(800 * time.Millisecond)
	fmt.Println(chat.Current().Options[2].Label)

	// Buy a machine, then Buy online.
	_ = chat.Select(context.Background(), 2)
	clk.Advance(1800 * time.Millisecond)
	fmt.Println(chat.Current().ID)
	_ = chat.Select(context.Background(), 0)
	clk.Advance(1500 * time.Millisecond)

	// Output:
	// Buy a machine
	// buy-process
	// open: https://forms.gle/LQwMAdZdsjA54Ytn8
}

// ExampleApp_NewCarousel shows auto-advance pausing after a manual move.
func ExampleApp_NewCarousel() {
	clk := clock.NewManual(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	app, err := vitrine.New(vitrine.WithClock(clk))
	if err != nil {
		log.Fatal(err)
	}

	hero, err := app.NewCarousel("hero")
	if err != nil {
		log.Fatal(err)
	}
	defer hero.Close()

	clk.Advance(10 * time.Second)
	fmt.Println("after 10s:", hero.Snapshot().State.ActiveIndex)

	hero.Prev()
	clk.Advance(15 * time.Second)
	fmt.Println("paused:", hero.Snapshot().State.ActiveIndex, hero.Snapshot().AutoAdvance)

	// Output:
	// after 10s: 1
	// paused: 0 false
}
