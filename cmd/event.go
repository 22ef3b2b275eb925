package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/moneymappr/internal/core/common/datetime"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/frahmantamala/moneymappr/internal/core/events"
	"github.com/frahmantamala/moneymappr/internal/messaging/amqp"
	"github.com/frahmantamala/moneymappr/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Manage events: publish sample domain events, optionally forwarding them to the message broker`,
}

var publishEventCmd = &cobra.Command{
	Use:       "publish [event-type]",
	Short:     "Publish a sample event",
	Long:      `Publish a sample domain event to the event bus for testing and debugging`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: events.AllEventTypes(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishSampleEvent(cmd.Context(), args[0])
	},
}

var (
	eventAmount   string
	eventCategory string
	eventDate     string
	eventAMQPURL  string
	eventExchange string
)

// sampleEvent builds an event of the given type from the command flags.
func sampleEvent(eventType string) (events.Event, error) {
	amount, err := decimal.NewFromString(eventAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid --amount: %w", err)
	}
	cat, err := category.Parse(eventCategory)
	if err != nil {
		return nil, err
	}
	date, err := datetime.ParseDate(eventDate)
	if err != nil {
		return nil, err
	}

	switch eventType {
	case events.EventTypeTransactionCreated, events.EventTypeTransactionUpdated, events.EventTypeTransactionDeleted:
		return events.NewTransactionEvent(eventType, uuid.New(), amount, cat, date), nil
	case events.EventTypeBudgetSaved:
		return events.NewBudgetSavedEvent(uuid.New(), cat, date.MonthKey(), amount), nil
	default:
		return nil, fmt.Errorf("unknown event type %q: must be one of %v", eventType, events.AllEventTypes())
	}
}

func publishSampleEvent(ctx context.Context, eventType string) error {
	lg := logger.LoggerWrapper()

	event, err := sampleEvent(eventType)
	if err != nil {
		return err
	}

	eventBus := events.NewEventBus(lg)
	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		lg.Info("sample handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	if eventAMQPURL != "" {
		forwarder, err := amqp.Dial(eventAMQPURL, eventExchange, lg)
		if err != nil {
			return err
		}
		defer forwarder.Close()
		forwarder.RegisterEventHandlers(eventBus)
	}

	lg.Info("publishing sample event", "event_type", eventType, "event_id", event.EventID())

	if err := eventBus.Publish(ctx, event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := eventBus.Wait(waitCtx); err != nil {
		return fmt.Errorf("event handlers did not finish: %w", err)
	}

	lg.Info("sample event published successfully")
	return nil
}

func init() {
	publishEventCmd.Flags().StringVar(&eventAmount, "amount", "42.50", "Amount carried by the event")
	publishEventCmd.Flags().StringVar(&eventCategory, "category", string(category.Food), "Category carried by the event")
	publishEventCmd.Flags().StringVar(&eventDate, "date", time.Now().Format(datetime.DateLayout), "Transaction date (YYYY-MM-DD)")
	publishEventCmd.Flags().StringVar(&eventAMQPURL, "amqp-url", "", "Also forward the event to this AMQP broker")
	publishEventCmd.Flags().StringVar(&eventExchange, "exchange", "moneymappr.events", "AMQP exchange for forwarded events")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
