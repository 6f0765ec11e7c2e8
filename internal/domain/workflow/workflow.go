// Package workflow holds the approval state machines for membership,
// chapter affiliation, and opportunity listings.
//
// The two user-facing lifecycles are deliberately modeled as separate
// tagged states instead of inferring "pending" from field presence:
//
//   - MembershipState: the user's standing in the network as a whole.
//   - ChapterLinkState: the user's request to join or transfer to a
//     specific chapter. Independent of MembershipState; both can be
//     pending at once (a transfer request from an already-active member),
//     and one decision resolves both.
//
// All transitions are idempotent: deciding a state that is not pending is
// a no-op, which makes concurrent duplicate approvals harmless.
package workflow

// Decision is a reviewer's disposition of a pending item.
type Decision string

const (
	Approve Decision = "approve"
	Reject  Decision = "reject"
)

// ParseDecision validates a decision string from a form or URL.
func ParseDecision(s string) (Decision, bool) {
	switch Decision(s) {
	case Approve, Reject:
		return Decision(s), true
	default:
		return "", false
	}
}

// MembershipState is the lifecycle state of a user's network membership.
type MembershipState string

const (
	MembershipPending  MembershipState = "Pending"
	MembershipActive   MembershipState = "Active"
	MembershipInactive MembershipState = "Inactive"
	MembershipInvalid  MembershipState = "Invalid"
	MembershipRejected MembershipState = "Rejected"
)

// ValidMembershipState reports whether s is a state the edit flow may set.
func ValidMembershipState(s MembershipState) bool {
	switch s {
	case MembershipPending, MembershipActive, MembershipInactive,
		MembershipInvalid, MembershipRejected:
		return true
	}
	return false
}

// Pending reports whether the membership awaits a decision.
func (s MembershipState) Pending() bool { return s == MembershipPending }

// ChapterLinkState is the lifecycle state of a user's chapter join or
// transfer request.
type ChapterLinkState string

const (
	ChapterLinkNone     ChapterLinkState = ""
	ChapterLinkPending  ChapterLinkState = "pending"
	ChapterLinkApproved ChapterLinkState = "approved"
	ChapterLinkRejected ChapterLinkState = "rejected"
)

// Pending reports whether the chapter link awaits a decision.
func (s ChapterLinkState) Pending() bool { return s == ChapterLinkPending }

// NeedsReview reports whether a user with the given states belongs in the
// pending-approvals queue. A record leaves the queue exactly when neither
// lifecycle is pending.
func NeedsReview(m MembershipState, c ChapterLinkState) bool {
	return m.Pending() || c.Pending()
}

// Decide applies a single reviewer decision to both lifecycles. Each
// transition applies independently and only if that lifecycle is pending,
// so one decision resolves a dual-pending record in a single step.
// It returns the resulting states and whether anything changed.
func Decide(m MembershipState, c ChapterLinkState, d Decision) (MembershipState, ChapterLinkState, bool) {
	changed := false
	if m.Pending() {
		switch d {
		case Approve:
			m = MembershipActive
		case Reject:
			m = MembershipRejected
		}
		changed = true
	}
	if c.Pending() {
		switch d {
		case Approve:
			c = ChapterLinkApproved
		case Reject:
			c = ChapterLinkRejected
		}
		changed = true
	}
	return m, c, changed
}

// OpportunityStatus is the review state of a submitted opportunity.
type OpportunityStatus string

const (
	// OpportunityLegacy marks documents created before the status field
	// existed. They are treated as approved; the default is explicit here
	// rather than inferred from absence at each call site.
	OpportunityLegacy   OpportunityStatus = ""
	OpportunityPending  OpportunityStatus = "pending"
	OpportunityApproved OpportunityStatus = "approved"
	OpportunityRejected OpportunityStatus = "rejected"
)

// OpportunityVisible reports whether an opportunity with the given status
// appears on the public board. Approved and legacy (no status) records are
// visible; pending and rejected are not.
func OpportunityVisible(s OpportunityStatus) bool {
	return s == OpportunityApproved || s == OpportunityLegacy
}

// DecideOpportunity applies a reviewer decision to an opportunity. Only a
// pending opportunity can transition; anything else is a no-op.
func DecideOpportunity(s OpportunityStatus, d Decision) (OpportunityStatus, bool) {
	if s != OpportunityPending {
		return s, false
	}
	switch d {
	case Approve:
		return OpportunityApproved, true
	case Reject:
		return OpportunityRejected, true
	}
	return s, false
}
