package order

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"makanapa/internal/pkg/errs"
)

// idTimeLayout renders the creation instant as YYMMDD_HHMMSS.
const idTimeLayout = "060102_150405"

var idPattern = regexp.MustCompile(`^\d{6}_\d{6}_[1-9]\d*$`)

// ID identifies an order as "YYMMDD_HHMMSS_<seq>". The sequence part alone is
// unique, so IDs never collide even when two orders share a second. IDs contain
// only digits and underscores and are safe inside button action tags.
type ID struct {
	value string
}

// NewID derives the identifier for an order created at createdAt that drew seq
// from the sequence generator.
func NewID(createdAt time.Time, seq int64) (ID, error) {
	if createdAt.IsZero() {
		return ID{}, errs.NewValueIsRequiredError("created at")
	}
	if seq <= 0 {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("sequence", fmt.Errorf("%d is not positive", seq))
	}
	return ID{value: createdAt.Format(idTimeLayout) + "_" + strconv.FormatInt(seq, 10)}, nil
}

// ParseID validates an identifier received from outside, such as a button tag.
func ParseID(s string) (ID, error) {
	if !idPattern.MatchString(s) {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%q is malformed", s))
	}
	return ID{value: s}, nil
}

func (id ID) String() string {
	return id.value
}

// Seq returns the sequence component.
func (id ID) Seq() int64 {
	i := strings.LastIndexByte(id.value, '_')
	if i < 0 {
		return 0
	}
	seq, err := strconv.ParseInt(id.value[i+1:], 10, 64)
	if err != nil {
		return 0
	}
	return seq
}

func (id ID) IsEqual(other ID) bool {
	return id.value == other.value
}

func (id ID) Validate() error {
	if id.value == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	return nil
}
