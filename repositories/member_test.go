package repositories

import (
	"local-echo/domain"
	"log/slog"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestMemberRepository_GetLastMember(t *testing.T) {
	req := require.New(t)
	members := NewMemberRepository(openDB(t), slog.Default())

	member, err := members.GetLastMember(roomID, "@alice:example.org")
	req.NoError(err)
	req.Nil(member)

	req.NoError(members.SaveMember(roomID, domain.RoomMember{UserID: "@alice:example.org", DisplayName: lo.ToPtr("Alice"), Membership: domain.MembershipInvite}))
	req.NoError(members.SaveMember(roomID, domain.RoomMember{UserID: "@alice:example.org", DisplayName: lo.ToPtr("Alice B."), Membership: domain.MembershipJoin}))

	member, err = members.GetLastMember(roomID, "@alice:example.org")
	req.NoError(err)
	req.NotNil(member)
	req.Equal("Alice B.", *member.DisplayName)
	req.Equal(domain.MembershipJoin, member.Membership)
}

func TestMemberRepository_IsUniqueDisplayName_Ignores_Departed_Members(t *testing.T) {
	req := require.New(t)
	members := NewMemberRepository(openDB(t), slog.Default())
	req.NoError(members.SaveMember(roomID, domain.RoomMember{UserID: "@bob:example.org", DisplayName: lo.ToPtr("Bob"), Membership: domain.MembershipJoin}))
	req.NoError(members.SaveMember(roomID, domain.RoomMember{UserID: "@bob2:example.org", DisplayName: lo.ToPtr("Bob"), Membership: domain.MembershipLeave}))

	unique, err := members.IsUniqueDisplayName(roomID, "Bob")
	req.NoError(err)
	req.True(unique)

	req.NoError(members.SaveMember(roomID, domain.RoomMember{UserID: "@bob2:example.org", DisplayName: lo.ToPtr("Bob"), Membership: domain.MembershipJoin}))

	unique, err = members.IsUniqueDisplayName(roomID, "Bob")
	req.NoError(err)
	req.False(unique)

	// Another room is a different namespace
	unique, err = members.IsUniqueDisplayName("!other:example.org", "Bob")
	req.NoError(err)
	req.True(unique)
}
