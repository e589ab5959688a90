package voting

import "errors"

// Expected, user-correctable conditions. Handlers map these to HTTP
// responses; anything else coming out of the controller is a storage
// fault.
var (
	ErrAssetNotFound    = errors.New("asset not found")
	ErrLimitExceeded    = errors.New("ballot limit reached (5)")
	ErrVotingClosed     = errors.New("voting closed for category")
	ErrAlreadySubmitted = errors.New("ballot already submitted for category")
	ErrEmptyBallot      = errors.New("ballot has no items")
	ErrOverLimit        = errors.New("ballot holds more than 5 items")
)
