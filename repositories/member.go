package repositories

import (
	stderrors "errors"
	"local-echo/domain"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

type IMemberRepository interface {
	SaveMember(roomID domain.RoomID, member domain.RoomMember) error
	GetLastMember(roomID domain.RoomID, userID string) (*domain.RoomMember, error)
	IsUniqueDisplayName(roomID domain.RoomID, displayName string) (bool, error)
	Members(roomID domain.RoomID) ([]domain.RoomMember, error)
}

// MemberRepository keeps the latest membership snapshot of each room.
// It is the MembershipResolver used when local echoes are created.
type MemberRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMemberRepository(db *badger.DB, log *slog.Logger) *MemberRepository {
	return &MemberRepository{db: db, log: log}
}

// SaveMember overwrites the previous membership of the user in the room.
func (m *MemberRepository) SaveMember(roomID domain.RoomID, member domain.RoomMember) error {
	return storageError(m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(memberKey(roomID, member.UserID), encodeMember(member))
	}))
}

func (m *MemberRepository) GetLastMember(roomID domain.RoomID, userID string) (*domain.RoomMember, error) {
	var member *domain.RoomMember
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(memberKey(roomID, userID))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := decodeMember(val)
			if err != nil {
				return err
			}
			member = &decoded
			return nil
		})
	})
	if err != nil {
		return nil, storageError(err)
	}
	return member, nil
}

// IsUniqueDisplayName is true when at most one active member of the room
// uses this display name.
func (m *MemberRepository) IsUniqueDisplayName(roomID domain.RoomID, displayName string) (bool, error) {
	members, err := m.Members(roomID)
	if err != nil {
		return false, err
	}
	count := 0
	for _, member := range members {
		if member.IsActive() && member.DisplayName != nil && *member.DisplayName == displayName {
			count++
		}
	}
	return count <= 1, nil
}

func (m *MemberRepository) Members(roomID domain.RoomID) ([]domain.RoomMember, error) {
	var members []domain.RoomMember
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := memberPrefix(roomID)
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				member, err := decodeMember(val)
				if err != nil {
					return err
				}
				members = append(members, member)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storageError(err)
	}
	return members, nil
}
