package subscription

import "context"

// Checker answers whether a user is entitled to a feature. Business denials
// are reported in the Decision; an error means the user store could not be
// read.
type Checker interface {
	CheckAccess(ctx context.Context, userID int64, feature Feature) (*Decision, error)
}
