// Package domain contains core concepts of the local echo system.
// This file defines room members as seen by the membership snapshot.
package domain

type Membership string

const (
	MembershipJoin   Membership = "join"
	MembershipInvite Membership = "invite"
	MembershipLeave  Membership = "leave"
	MembershipBan    Membership = "ban"
)

// RoomMember is the latest known membership state of a user in a room.
type RoomMember struct {
	UserID      string
	DisplayName *string
	AvatarURL   *string
	Membership  Membership
}

// IsActive reports whether the member counts for display name disambiguation.
func (m RoomMember) IsActive() bool {
	return m.Membership == MembershipJoin || m.Membership == MembershipInvite
}
