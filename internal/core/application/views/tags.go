// Package views renders lifecycle and dialogue state into platform-neutral
// messages and owns the vocabulary of button tags those messages carry.
package views

import (
	"errors"
	"fmt"
	"strings"

	"makanapa/internal/core/domain/model/dialogue"
	"makanapa/internal/core/domain/model/order"
)

const (
	ConfirmTag = "confirm"
	DiscardTag = "cancel"

	acceptPrefix      = "accept_"
	cancelOrderPrefix = "cancel_"
	pickupPlacePrefix = "from_"
	dropOffPrefix     = "to_"
)

var ErrUnknownTag = errors.New("unknown button tag")

// Leg is one end of the route being collected.
type Leg int

const (
	Pickup Leg = iota
	DropOff
)

func AcceptTag(id order.ID) string {
	return acceptPrefix + id.String()
}

func CancelOrderTag(id order.ID) string {
	return cancelOrderPrefix + id.String()
}

// ParseAcceptTag extracts the order id from an accept_<id> tag.
func ParseAcceptTag(tag string) (order.ID, bool) {
	return parseOrderTag(tag, acceptPrefix)
}

// ParseCancelOrderTag extracts the order id from a cancel_<id> tag. The bare
// dialogue tag "cancel" is not an order tag.
func ParseCancelOrderTag(tag string) (order.ID, bool) {
	return parseOrderTag(tag, cancelOrderPrefix)
}

func parseOrderTag(tag, prefix string) (order.ID, bool) {
	raw, ok := strings.CutPrefix(tag, prefix)
	if !ok {
		return order.ID{}, false
	}
	id, err := order.ParseID(raw)
	if err != nil {
		return order.ID{}, false
	}
	return id, true
}

func ServiceTag(kind order.DeliveryKind) string {
	return kind.String()
}

// CategoryTag is the bare category name at pickup and to_<category> at drop-off.
func CategoryTag(leg Leg, category dialogue.Category) string {
	if leg == DropOff {
		return dropOffPrefix + string(category)
	}
	return string(category)
}

func PlaceTag(leg Leg, place string) string {
	if leg == DropOff {
		return dropOffPrefix + place
	}
	return pickupPlacePrefix + place
}

func ParseCategoryTag(leg Leg, tag string) (dialogue.Category, error) {
	raw := tag
	if leg == DropOff {
		var ok bool
		if raw, ok = strings.CutPrefix(tag, dropOffPrefix); !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownTag, tag)
		}
	}
	return dialogue.ParseCategory(raw)
}

func ParsePlaceTag(leg Leg, tag string) (string, error) {
	prefix := pickupPlacePrefix
	if leg == DropOff {
		prefix = dropOffPrefix
	}
	place, ok := strings.CutPrefix(tag, prefix)
	if !ok || place == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return place, nil
}
