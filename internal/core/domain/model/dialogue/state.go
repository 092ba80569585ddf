package dialogue

import (
	"fmt"

	"makanapa/internal/pkg/errs"
)

type State int

const (
	StateUnknown State = iota
	ChoosingService
	ChoosingFromCategory
	ChoosingFromPlace
	TypingFromPlace
	ChoosingToCategory
	ChoosingToPlace
	TypingToPlace
	ConfirmingOrder
)

func getStateStrings() map[State]string {
	return map[State]string{
		StateUnknown:         "unknown",
		ChoosingService:      "choosing_service",
		ChoosingFromCategory: "choosing_from_category",
		ChoosingFromPlace:    "choosing_from_place",
		TypingFromPlace:      "typing_from_place",
		ChoosingToCategory:   "choosing_to_category",
		ChoosingToPlace:      "choosing_to_place",
		TypingToPlace:        "typing_to_place",
		ConfirmingOrder:      "confirming_order",
	}
}

func ParseState(s string) (State, error) {
	for state, str := range getStateStrings() {
		if state != StateUnknown && str == s {
			return state, nil
		}
	}
	return StateUnknown, errs.NewValueIsInvalidErrorWithCause("dialogue state", fmt.Errorf("%q is not a valid state", s))
}

func (s State) Validate() error {
	if s < ChoosingService || s > ConfirmingOrder {
		return errs.NewValueIsInvalidErrorWithCause("dialogue state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return getStateStrings()[StateUnknown]
}

// AwaitsText reports whether the step expects a typed location rather than a button.
func (s State) AwaitsText() bool {
	return s == TypingFromPlace || s == TypingToPlace
}
