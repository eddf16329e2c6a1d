package split

import "github.com/v-stickykeys/paysplit/errors"

var (
	// ErrShareCount is returned when recipients and shares are declared
	// as two lists of different length.
	ErrShareCount = errors.Register(150, "recipient and share count mismatch")

	// ErrShareRange is returned when a share is outside of the valid
	// 1-100 percent range.
	ErrShareRange = errors.Register(151, "share out of range")

	// ErrShareSum is returned when the declared shares do not sum to
	// exactly 100 percent.
	ErrShareSum = errors.Register(152, "shares do not sum to 100")

	// ErrReentrancy is returned when a caller enters the withdrawal path
	// again before its previous call completed.
	ErrReentrancy = errors.Register(153, "reentrant withdrawal")
)
