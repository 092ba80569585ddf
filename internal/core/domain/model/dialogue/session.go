package dialogue

import (
	"errors"
	"fmt"
	"strings"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/pkg/errs"
)

var (
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")
	ErrUnexpectedInput         = errors.New("input does not belong to the current dialogue step")
)

// Session is the conversation that collects one order draft from one requester.
// It walks a fixed sequence of states:
//
//	ChoosingService
//	  -> ChoosingFromCategory -> ChoosingFromPlace | TypingFromPlace
//	  -> ChoosingToCategory   -> ChoosingToPlace   | TypingToPlace
//	  -> ConfirmingOrder
//
// Session follows these invariants:
//   - Every step method accepts input only in its own state and returns
//     ErrUnexpectedInput otherwise, leaving the session untouched
//   - A closed-choice category (sister or brother mahallah) leads to a place
//     from the Catalog; the other categories lead to free text
//   - Free-text places are trimmed and must not be empty
//   - Draft is available only in ConfirmingOrder
//
// A session holds no timers. Restarting or abandoning the dialogue is done by
// replacing or deleting it in the session store.
//
// Example:
//
//	s, _ := dialogue.NewSession(requesterID)
//	_ = s.ChooseService(order.Food)
//	_ = s.ChooseFromCategory(dialogue.InCampus)
//	_ = s.TypeFromPlace("Block A")
//	_ = s.ChooseToCategory(dialogue.SisterMahallah)
//	_ = s.ChooseToPlace(dialogue.DefaultCatalog(), "Safiyyah")
//	draft, err := s.Draft()
type Session struct {
	requesterID  kernel.UserID
	state        State
	kind         order.DeliveryKind
	fromCategory Category
	from         string
	toCategory   Category
	to           string

	isConstructed bool
}

// Snapshot is the flat form a session store persists.
type Snapshot struct {
	RequesterID  kernel.UserID
	State        State
	Kind         order.DeliveryKind
	FromCategory Category
	From         string
	ToCategory   Category
	To           string
}

// Draft is a fully collected order description waiting for confirmation.
type Draft struct {
	CustomerID kernel.UserID
	Kind       order.DeliveryKind
	From       string
	To         string
}

// NewSession opens an empty dialogue at ChoosingService.
//
// Parameters:
//   - requesterID: the customer the draft will belong to (must be valid)
//
// Returns:
//   - *Session: a session waiting for the delivery kind
//   - error: the validation error of requesterID
func NewSession(requesterID kernel.UserID) (*Session, error) {
	if err := requesterID.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		requesterID:   requesterID,
		state:         ChoosingService,
		isConstructed: true,
	}, nil
}

// RestoreSession rebuilds a session read back from a store. It does not replay
// the steps, so it only checks that each field is plausible on its own.
func RestoreSession(s Snapshot) (*Session, error) {
	session, err := NewSession(s.RequesterID)
	if err != nil {
		return nil, err
	}
	if err := s.State.Validate(); err != nil {
		return nil, err
	}
	if s.Kind != "" {
		if err := s.Kind.Validate(); err != nil {
			return nil, err
		}
	}
	for _, c := range []Category{s.FromCategory, s.ToCategory} {
		if c == "" {
			continue
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	session.state = s.State
	session.kind = s.Kind
	session.fromCategory = s.FromCategory
	session.from = s.From
	session.toCategory = s.ToCategory
	session.to = s.To
	return session, nil
}

func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

func (s *Session) RequesterID() kernel.UserID { return s.requesterID }
func (s *Session) State() State               { return s.state }
func (s *Session) Kind() order.DeliveryKind   { return s.kind }
func (s *Session) FromCategory() Category     { return s.fromCategory }
func (s *Session) From() string               { return s.from }
func (s *Session) ToCategory() Category       { return s.toCategory }
func (s *Session) To() string                 { return s.to }

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		RequesterID:  s.requesterID,
		State:        s.state,
		Kind:         s.kind,
		FromCategory: s.fromCategory,
		From:         s.from,
		ToCategory:   s.toCategory,
		To:           s.to,
	}
}

func (s *Session) ChooseService(kind order.DeliveryKind) error {
	if err := s.expect(ChoosingService); err != nil {
		return err
	}
	if err := kind.Validate(); err != nil {
		return err
	}
	s.kind = kind
	s.state = ChoosingFromCategory
	return nil
}

// ChooseFromCategory picks the pickup category and branches to a closed list of
// places or to free text, depending on the category.
func (s *Session) ChooseFromCategory(category Category) error {
	if err := s.expect(ChoosingFromCategory); err != nil {
		return err
	}
	if err := category.Validate(); err != nil {
		return err
	}
	s.fromCategory = category
	if category.IsClosedChoice() {
		s.state = ChoosingFromPlace
	} else {
		s.state = TypingFromPlace
	}
	return nil
}

func (s *Session) ChooseFromPlace(catalog *Catalog, place string) error {
	if err := s.expect(ChoosingFromPlace); err != nil {
		return err
	}
	if !catalog.Contains(s.fromCategory, place) {
		return errs.NewValueIsInvalidErrorWithCause("pickup place",
			fmt.Errorf("%q is not listed under %s", place, s.fromCategory))
	}
	s.from = place
	s.state = ChoosingToCategory
	return nil
}

func (s *Session) TypeFromPlace(text string) error {
	if err := s.expect(TypingFromPlace); err != nil {
		return err
	}
	place := strings.TrimSpace(text)
	if place == "" {
		return errs.NewValueIsRequiredError("pickup place")
	}
	s.from = place
	s.state = ChoosingToCategory
	return nil
}

func (s *Session) ChooseToCategory(category Category) error {
	if err := s.expect(ChoosingToCategory); err != nil {
		return err
	}
	if err := category.Validate(); err != nil {
		return err
	}
	s.toCategory = category
	if category.IsClosedChoice() {
		s.state = ChoosingToPlace
	} else {
		s.state = TypingToPlace
	}
	return nil
}

// ChooseToPlace completes the drop-off leg from the catalog.
//
// Returns:
//   - ErrUnexpectedInput when the session is not waiting for a drop-off place
//   - a ValueIsInvalid error when place is not listed under the chosen category
func (s *Session) ChooseToPlace(catalog *Catalog, place string) error {
	if err := s.expect(ChoosingToPlace); err != nil {
		return err
	}
	if !catalog.Contains(s.toCategory, place) {
		return errs.NewValueIsInvalidErrorWithCause("drop-off place",
			fmt.Errorf("%q is not listed under %s", place, s.toCategory))
	}
	s.to = place
	s.state = ConfirmingOrder
	return nil
}

func (s *Session) TypeToPlace(text string) error {
	if err := s.expect(TypingToPlace); err != nil {
		return err
	}
	place := strings.TrimSpace(text)
	if place == "" {
		return errs.NewValueIsRequiredError("drop-off place")
	}
	s.to = place
	s.state = ConfirmingOrder
	return nil
}

// Draft returns the collected order. It is only available once both legs are resolved.
func (s *Session) Draft() (Draft, error) {
	if err := s.expect(ConfirmingOrder); err != nil {
		return Draft{}, err
	}
	return Draft{
		CustomerID: s.requesterID,
		Kind:       s.kind,
		From:       s.from,
		To:         s.to,
	}, nil
}

func (s *Session) expect(state State) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.state != state {
		return fmt.Errorf("%w: waiting for %s, not %s", ErrUnexpectedInput, s.state, state)
	}
	return nil
}
