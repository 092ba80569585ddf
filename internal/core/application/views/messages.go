package views

import (
	"fmt"
	"strings"
	"time"

	"makanapa/internal/core/domain/model/dialogue"
	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/core/ports"
)

const timeLayout = "2006-01-02 15:04:05"

func text(s string) ports.Message {
	return ports.Message{Text: s}
}

func column(buttons ...ports.Button) [][]ports.Button {
	rows := make([][]ports.Button, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []ports.Button{b})
	}
	return rows
}

func Welcome() ports.Message {
	return ports.Message{
		Text: "Welcome to makanApa the IIUM e-Hailing Bot! Please choose your delivery type:",
		Keyboard: column(
			ports.Button{Label: "Food Delivery", Tag: ServiceTag(order.Food)},
			ports.Button{Label: "Item Delivery", Tag: ServiceTag(order.Item)},
		),
	}
}

func Blocked() ports.Message {
	return text("You have been blocked from using the service.")
}

func StartHint() ports.Message {
	return text("Type /start to create a new order.")
}

func UseButtons() ports.Message {
	return text("Please choose one of the options above, or type /cancel to stop.")
}

func DialogueCancelled() ports.Message {
	return text("Order cancelled. Type /start to create a new order.")
}

func GenericFailure() ports.Message {
	return text("Something went wrong, please try again.")
}

// CategoryMenu asks for the location group of one leg.
func CategoryMenu(leg Leg) ports.Message {
	prompt := "Please choose the PICKUP location:"
	if leg == DropOff {
		prompt = "Please choose the DELIVERY location:"
	}

	buttons := make([]ports.Button, 0, len(dialogue.Categories()))
	for _, c := range dialogue.Categories() {
		buttons = append(buttons, ports.Button{Label: c.Title(), Tag: CategoryTag(leg, c)})
	}
	return ports.Message{Text: prompt, Keyboard: column(buttons...)}
}

// PlaceMenu lists the closed choices of a mahallah category.
func PlaceMenu(leg Leg, places []string) ports.Message {
	prompt := "Please choose the specific Mahallah:"
	if leg == DropOff {
		prompt = "Please choose the specific DELIVERY Mahallah:"
	}

	buttons := make([]ports.Button, 0, len(places))
	for _, p := range places {
		buttons = append(buttons, ports.Button{Label: p, Tag: PlaceTag(leg, p)})
	}
	return ports.Message{Text: prompt, Keyboard: column(buttons...)}
}

func PlacePrompt(leg Leg) ports.Message {
	if leg == DropOff {
		return text("Please type the DELIVERY location:")
	}
	return text("Please type the PICKUP location:")
}

func Summary(draft dialogue.Draft) ports.Message {
	return ports.Message{
		Text: fmt.Sprintf(
			"📋 Order Summary:\nDelivery Type: %s\nFrom: %s\nTo: %s\n\nWould you like to confirm this order?",
			draft.Kind.Title(), draft.From, draft.To,
		),
		Keyboard: [][]ports.Button{{
			{Label: "✅ Confirm", Tag: ConfirmTag},
			{Label: "❌ Cancel", Tag: DiscardTag},
		}},
	}
}

func routeLines(o *order.Order) string {
	return fmt.Sprintf(
		"Type  : %s\nFrom : %s\nTo      : %s\nTime : %s",
		o.Kind().Title(), o.From(), o.To(), FormatTime(o.CreatedAt()),
	)
}

func orderSummary(o *order.Order) string {
	return fmt.Sprintf(
		"📋 Order Summary:\nOrder ID: #%s\nDelivery Type: %s\nFrom: %s\nTo: %s\nTime: %s",
		o.ID(), o.Kind().Title(), o.From(), o.To(), FormatTime(o.CreatedAt()),
	)
}

// RunnerPost is the claimable notice in the runner channel.
func RunnerPost(o *order.Order) ports.Message {
	return ports.Message{
		Text:     fmt.Sprintf("🆕 New Order #%s\n\n%s", o.ID(), routeLines(o)),
		Keyboard: [][]ports.Button{{{Label: "Accept Order", Tag: AcceptTag(o.ID())}}},
	}
}

// OrderPosted acknowledges a published order to its customer.
func OrderPosted(o *order.Order) ports.Message {
	return ports.Message{
		Text: "✅ Your order has been posted to runners! " +
			"You will be notified when a runner accepts your order.\n\n" +
			orderSummary(o) +
			"\n\nIf you want to cancel the order, click the button below.",
		Keyboard: [][]ports.Button{{{Label: "❌ Cancel Order", Tag: CancelOrderTag(o.ID())}}},
	}
}

func PublishFailed() ports.Message {
	return text("There was an error posting your order to runners. Please try again or contact support.")
}

// RunnerPostAccepted replaces the runner post once the order is claimed.
func RunnerPostAccepted(o *order.Order, runner kernel.Handle) ports.Message {
	return text(fmt.Sprintf("#%s\n\n%s\n\n✅ Accepted by %s", o.ID(), routeLines(o), runner.Mention(runnerOf(o))))
}

// CustomerAccepted tells the customer who claimed the order.
func CustomerAccepted(o *order.Order, runner kernel.Handle) ports.Message {
	return text(fmt.Sprintf(
		"✅ Accepted by %s\n\n%s\n\nThe order is now being processed.",
		runner.Mention(runnerOf(o)), orderSummary(o),
	))
}

// RunnerAssignment is the direct message to the winning runner.
func RunnerAssignment(o *order.Order, customer kernel.Handle) ports.Message {
	return text(fmt.Sprintf(
		"You have accepted the order #%s.\nCustomer's username: %s\nPlease contact the customer for further details.",
		o.ID(), customer.Mention(o.CustomerID()),
	))
}

// NoLongerAvailable marks a runner's view of an order someone else got first.
func NoLongerAvailable(current string) ports.Message {
	const notice = "❌ This order is no longer available."
	if strings.TrimSpace(current) == "" {
		return text(notice)
	}
	return text(current + "\n\n" + notice)
}

func OrderCancelled() ports.Message {
	return text("Your order has been cancelled.")
}

func RunnerPostCancelled(o *order.Order) ports.Message {
	return text(fmt.Sprintf("Order #%s has been cancelled by the user.\n\n%s", o.ID(), routeLines(o)))
}

func CannotBeCancelled() ports.Message {
	return text("This order cannot be cancelled.")
}

// FormatTime renders timestamps the way every message shows them.
func FormatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func runnerOf(o *order.Order) kernel.UserID {
	if id := o.RunnerID(); id != nil {
		return *id
	}
	return 0
}
