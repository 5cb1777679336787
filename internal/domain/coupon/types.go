package coupon

// Type classifies how a coupon came into existence.
type Type string

const (
	TypeOfficial  Type = "official"
	TypeAffiliate Type = "affiliate"
	TypeInvite    Type = "invite"
)

func (t Type) Valid() bool {
	switch t {
	case TypeOfficial, TypeAffiliate, TypeInvite:
		return true
	}
	return false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Reason is a first-class usability outcome. These are expected, frequent,
// user-facing results and are never modelled as errors.
type Reason string

const (
	ReasonNotFound          Reason = "not_found"
	ReasonInactive          Reason = "inactive"
	ReasonNotStarted        Reason = "not_started"
	ReasonExpired           Reason = "expired"
	ReasonMaxTotalReached   Reason = "max_total_reached"
	ReasonMaxPerUserReached Reason = "max_per_user_reached"
	ReasonUserIDRequired    Reason = "user_id_required"
	ReasonCategoryMismatch  Reason = "category_mismatch"
	ReasonHandlerRejected   Reason = "handler_rejected"
)

// Decision is the outcome of a usability evaluation.
type Decision struct {
	Usable bool
	Reason Reason
}

func Usable() Decision {
	return Decision{Usable: true}
}

func NotUsable(r Reason) Decision {
	return Decision{Usable: false, Reason: r}
}
