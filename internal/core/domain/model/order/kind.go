package order

import (
	"fmt"
	"strings"

	"makanapa/internal/pkg/errs"
)

// DeliveryKind is what the runner is asked to carry.
type DeliveryKind string

const (
	Food DeliveryKind = "food"
	Item DeliveryKind = "item"
)

// ParseDeliveryKind accepts exactly "food" or "item".
func ParseDeliveryKind(s string) (DeliveryKind, error) {
	kind := DeliveryKind(s)
	if err := kind.Validate(); err != nil {
		return "", err
	}
	return kind, nil
}

func (k DeliveryKind) Validate() error {
	if k != Food && k != Item {
		return errs.NewValueIsInvalidErrorWithCause("delivery kind", fmt.Errorf("%q is not food or item", string(k)))
	}
	return nil
}

func (k DeliveryKind) String() string {
	return string(k)
}

// Title is the capitalized form shown in messages.
func (k DeliveryKind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}
