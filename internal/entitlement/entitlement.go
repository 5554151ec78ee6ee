// Package entitlement decides what a user may see and buy. It is the
// single authority consulted before a selection toggle or a checkout
// proceed; no other package re-implements these rules.
package entitlement

import "edustore/internal/domain"

// Status of a subject relative to a user.
type Status int

const (
	Purchasable Status = iota
	Owned
)

func (s Status) String() string {
	if s == Owned {
		return "owned"
	}
	return "purchasable"
}

// Visibility of a single video part.
type Visibility int

const (
	Locked Visibility = iota
	Unlocked
)

func (v Visibility) String() string {
	if v == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// SubjectStatus resolves how a subject is presented to the user. A subject
// is Owned when its id is in the user's purchased set; admins browse
// everything as Owned.
func SubjectStatus(user domain.User, subjectID string) Status {
	if user.IsAdmin() || user.Owns(subjectID) {
		return Owned
	}
	return Purchasable
}

// CanSelect reports whether a subject may enter the shopping selection.
// Only actual purchases block selection; the rule holds for every role
// (an admin's selection is stopped later, at checkout).
func CanSelect(user domain.User, subjectID string) bool {
	return !user.Owns(subjectID)
}

// VideoVisibility resolves whether a part plays for the user. A free part
// is unlocked for everyone regardless of ownership (free samples);
// otherwise visibility mirrors the owning subject's status.
func VideoVisibility(user domain.User, v domain.Video) Visibility {
	if v.IsFree {
		return Unlocked
	}
	if SubjectStatus(user, v.SubjectID) == Owned {
		return Unlocked
	}
	return Locked
}

// Decision is the checkout gate's answer. A refused checkout is not an
// error: Message carries the informational text shown to the user.
type Decision struct {
	Allowed bool
	Reason  Reason
	Message string
}

type Reason int

const (
	ReasonOK Reason = iota
	ReasonEmptySelection
	ReasonAdminAccount
)

// AuthorizeCheckout gates the proceed-to-pay action. An empty selection is
// refused outright; an admin is refused with an informational message and
// no navigation happens.
func AuthorizeCheckout(user domain.User, selected []string) Decision {
	if len(selected) == 0 {
		return Decision{
			Reason:  ReasonEmptySelection,
			Message: "Select at least one subject to continue.",
		}
	}
	if user.IsAdmin() {
		return Decision{
			Reason:  ReasonAdminAccount,
			Message: "You are an admin, you don't need to purchase courses!",
		}
	}
	return Decision{Allowed: true, Reason: ReasonOK}
}
