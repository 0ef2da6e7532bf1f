// Package model defines the domain entities and the closed enumerations
// shared by the repository and handler layers. Statuses, roles and quarters
// are typed strings validated at the boundary so that free-text values never
// reach persistence.
package model

import "strings"

// Role is an account role stored in users.role.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleOfficer Role = "officer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOfficer
}

// ParseRole normalizes raw input into a Role. The boolean is false when the
// value is not a member of the enumeration.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Quarter is a calendar quarter used to periodize registrations and
// statistics (Q1..Q4).
type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

// Valid reports whether q is one of Q1..Q4.
func (q Quarter) Valid() bool {
	switch q {
	case Q1, Q2, Q3, Q4:
		return true
	}
	return false
}

// ParseQuarter accepts "q1".."q4" in any case.
func ParseQuarter(s string) (Quarter, bool) {
	q := Quarter(strings.ToUpper(strings.TrimSpace(s)))
	return q, q.Valid()
}

// QuarterOfMonth maps a month (1..12) to its calendar quarter.
func QuarterOfMonth(month int) Quarter {
	switch {
	case month <= 3:
		return Q1
	case month <= 6:
		return Q2
	case month <= 9:
		return Q3
	default:
		return Q4
	}
}

// RecordStatus is the review state of a PWD record.
type RecordStatus string

const (
	RecordPending  RecordStatus = "pending"
	RecordApproved RecordStatus = "approved"
	RecordDeclined RecordStatus = "declined"
)

// Valid reports whether s is a member of the record status enumeration.
func (s RecordStatus) Valid() bool {
	switch s {
	case RecordPending, RecordApproved, RecordDeclined:
		return true
	}
	return false
}

// ParseRecordStatus normalizes raw input into a RecordStatus.
func ParseRecordStatus(s string) (RecordStatus, bool) {
	v := RecordStatus(strings.ToLower(strings.TrimSpace(s)))
	return v, v.Valid()
}

// RequestStatus is the workflow state of an assistance request. Requests
// progress pending -> review -> ready_to_access -> assessed, or move to
// declined at any admin-reviewed stage.
type RequestStatus string

const (
	RequestPending       RequestStatus = "pending"
	RequestReview        RequestStatus = "review"
	RequestReadyToAccess RequestStatus = "ready_to_access"
	RequestAssessed      RequestStatus = "assessed"
	RequestDeclined      RequestStatus = "declined"
)

// Valid reports whether s is a member of the request status enumeration.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestReview, RequestReadyToAccess, RequestAssessed, RequestDeclined:
		return true
	}
	return false
}

// ParseRequestStatus normalizes raw input into a RequestStatus.
func ParseRequestStatus(s string) (RequestStatus, bool) {
	v := RequestStatus(strings.ToLower(strings.TrimSpace(s)))
	return v, v.Valid()
}

// Gender is the recorded gender of a beneficiary.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is a member of the gender enumeration.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ParseGender normalizes raw input into a Gender.
func ParseGender(s string) (Gender, bool) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	return g, g.Valid()
}
