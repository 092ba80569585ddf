package kernel

import (
	"fmt"
	"strconv"

	"makanapa/internal/pkg/errs"
)

// UserID is the numeric identity the messaging platform assigns to a person.
// Customers and runners are keyed by it, and a private chat with a person uses
// the same number as its chat id.
type UserID int64

// NewUserID validates a raw platform id. Zero is never assigned by the platform.
func NewUserID(raw int64) (UserID, error) {
	id := UserID(raw)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

func (id UserID) Validate() error {
	if id == 0 {
		return errs.NewValueIsRequiredError("user id")
	}
	return nil
}

func (id UserID) Int64() int64 {
	return int64(id)
}

func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Handle is a person's public username on the messaging platform, without the
// leading "@". It may be empty for users who never set one.
type Handle string

// Mention renders the handle the way people address each other in chat. Users
// without a username are addressed by id so the text never ends up blank.
func (h Handle) Mention(fallback UserID) string {
	if h == "" {
		return fmt.Sprintf("user %d", fallback)
	}
	return "@" + string(h)
}
