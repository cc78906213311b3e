package petri

import (
	"fmt"

	"github.com/gopetri/apn/adt"
)

// TokenAbsentError reports that Consume was asked to remove a token a place
// does not currently hold.
type TokenAbsentError struct {
	Place string
	Token *adt.Term
}

func (e *TokenAbsentError) Error() string {
	return fmt.Sprintf("place %s: token %s is not present in the marking", e.Place, e.Token)
}

// NotFireableError reports that Fire was called on a transition whose
// Enabled is false, or that FireRandom found no fireable transition.
type NotFireableError struct {
	Transition string
}

func (e *NotFireableError) Error() string {
	if e.Transition == "" {
		return "no transition is currently fireable"
	}
	return fmt.Sprintf("transition %s is not fireable", e.Transition)
}

// TokenSortError reports that Produce was asked to deposit a token whose
// sort does not match the place's declared sort.
type TokenSortError struct {
	Place string
	Want  *adt.Sort
	Got   *adt.Sort
}

func (e *TokenSortError) Error() string {
	return fmt.Sprintf("place %s: token has sort %s, expected %s", e.Place, e.Got, e.Want)
}

// ArcEndpointError reports a malformed net structure: at Net.AddArc time,
// both endpoints the same kind or an endpoint not registered in the net. It
// is also returned for a duplicate place or transition name, by Net.Fire for
// a transition not registered in the net, and by Net.Validate for an arc
// whose place is not registered.
type ArcEndpointError struct {
	Reason string
}

func (e *ArcEndpointError) Error() string {
	return "arc: " + e.Reason
}
