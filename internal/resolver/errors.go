package resolver

import "fmt"

// Side tells which end of a trip a failure refers to.
type Side string

const (
	SideOrigin      Side = "origin"
	SideDestination Side = "destination"
)

// Reason is the machine-readable cause of a failed resolution.
type Reason string

const (
	ReasonInvalidRequest       Reason = "invalid_request"
	ReasonOriginMissing        Reason = "origin_missing"
	ReasonDestinationMissing   Reason = "destination_missing"
	ReasonStationNotRecognized Reason = "station_not_recognized"
	ReasonNoRoute              Reason = "no_route"
)

// Failure is the typed result of a request that could not be resolved. It is a normal
// outcome, never a fault of the engine.
type Failure struct {
	Reason  Reason
	Side    Side
	Message string
}

func (f *Failure) Error() string {
	if f.Side != "" {
		return fmt.Sprintf("%s (%s): %s", f.Reason, f.Side, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Reason, f.Message)
}

// Is matches failures by reason. A target without a side matches either side.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	if !ok {
		return false
	}
	return t.Reason == f.Reason && (t.Side == "" || t.Side == f.Side)
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidRequest       = &Failure{Reason: ReasonInvalidRequest, Message: "the request is not valid"}
	ErrOriginMissing        = &Failure{Reason: ReasonOriginMissing, Message: "no origin station was detected"}
	ErrDestinationMissing   = &Failure{Reason: ReasonDestinationMissing, Message: "no destination station was detected"}
	ErrStationNotRecognized = &Failure{Reason: ReasonStationNotRecognized, Message: "station not recognized"}
	ErrNoRoute              = &Failure{Reason: ReasonNoRoute, Message: "no route found"}
)

// NewFailure builds a failure for a reason with its stock message.
func NewFailure(reason Reason) *Failure {
	switch reason {
	case ReasonInvalidRequest:
		return &Failure{Reason: reason, Message: ErrInvalidRequest.Message}
	case ReasonOriginMissing:
		return &Failure{Reason: reason, Side: SideOrigin, Message: ErrOriginMissing.Message}
	case ReasonDestinationMissing:
		return &Failure{Reason: reason, Side: SideDestination, Message: ErrDestinationMissing.Message}
	case ReasonNoRoute:
		return &Failure{Reason: reason, Message: ErrNoRoute.Message}
	default:
		return &Failure{Reason: reason, Message: string(reason)}
	}
}

func notRecognized(side Side) *Failure {
	return &Failure{
		Reason:  ReasonStationNotRecognized,
		Side:    side,
		Message: fmt.Sprintf("the %s station is not valid", side),
	}
}
