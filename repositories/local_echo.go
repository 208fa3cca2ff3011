//go:generate go run go.uber.org/mock/mockgen -source=local_echo.go -destination=../mocks/mock_local_echo_repository.go -package=mocks
package repositories

import (
	stderrors "errors"
	"fmt"
	"local-echo/contract"
	"local-echo/domain"
	"local-echo/errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

type ILocalEchoRepository interface {
	Create(evt domain.Event) (domain.LocalEcho, error)
	Get(roomID domain.RoomID, eventID string) (domain.LocalEcho, error)
	UpdateSendState(eventID string, state domain.SendState) ([]StateChange, error)
	UpdateSendStates(roomID domain.RoomID, eventIDs []string, state domain.SendState) ([]StateChange, error)
	DeleteFailed(roomID domain.RoomID, eventID string) (bool, error)
	DeleteAllFailed(roomID domain.RoomID) ([]domain.LocalEcho, error)
	ClearSendingQueue(roomID domain.RoomID) ([]StateChange, error)
	SendingQueue(roomID domain.RoomID) ([]domain.LocalEcho, error)
	EchoesWithStates(roomID domain.RoomID, states ...domain.SendState) ([]domain.LocalEcho, error)
}

// StateChange is a send state transition that was actually written.
type StateChange struct {
	Echo     domain.LocalEcho
	Previous domain.SendState
}

type LocalEchoOptions struct {
	// SequenceBandwidth is the number of display indexes leased at once.
	SequenceBandwidth uint64
	// ConflictRetries bounds how many times a unit of work is replayed
	// after an optimistic transaction conflict.
	ConflictRetries int
	// TombstoneTTL is how long a deleted event id stays reserved.
	TombstoneTTL time.Duration
}

func DefaultLocalEchoOptions() LocalEchoOptions {
	return LocalEchoOptions{
		SequenceBandwidth: 100,
		ConflictRetries:   3,
		TombstoneTTL:      24 * time.Hour,
	}
}

type LocalEchoRepository struct {
	db       *badger.DB
	log      *slog.Logger
	seq      *badger.Sequence
	resolver contract.MembershipResolver
	options  LocalEchoOptions
	now      func() time.Time
}

// NewLocalEchoRepository leases display indexes from a badger sequence.
// Call Close to give the unused part of the lease back.
// resolver may be nil, echoes are then created without sender metadata.
func NewLocalEchoRepository(db *badger.DB, log *slog.Logger, resolver contract.MembershipResolver, options LocalEchoOptions) (*LocalEchoRepository, error) {
	if options.SequenceBandwidth == 0 {
		options.SequenceBandwidth = DefaultLocalEchoOptions().SequenceBandwidth
	}
	seq, err := db.GetSequence(displayIndexSequenceKey, options.SequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("%w: display index sequence: %w", errors.ErrStorage, err)
	}
	return &LocalEchoRepository{
		db:       db,
		log:      log,
		seq:      seq,
		resolver: resolver,
		options:  options,
		now:      time.Now,
	}, nil
}

func (r *LocalEchoRepository) Close() error {
	return r.seq.Release()
}

// Create persists a new UNSENT echo and puts it at the head of its room's
// sending queue. Record and queue membership are written in one transaction.
func (r *LocalEchoRepository) Create(evt domain.Event) (domain.LocalEcho, error) {
	if err := evt.Validate(); err != nil {
		return domain.LocalEcho{}, err
	}
	if evt.OriginServerTS == 0 {
		evt.OriginServerTS = r.now().UnixMilli()
	}
	displayIndex, err := r.seq.Next()
	if err != nil {
		return domain.LocalEcho{}, fmt.Errorf("%w: %w", errors.ErrStorage, err)
	}

	echo := domain.LocalEcho{
		Event:        evt,
		SendState:    domain.SendStateUnsent,
		DisplayIndex: displayIndex,
	}
	r.captureSender(&echo)
	value := encodeEcho(echo)

	err = r.update(func(txn *badger.Txn) error {
		for _, key := range [][]byte{
			eventIndexKey(evt.RoomID, evt.EventID),
			tombstoneKey(evt.RoomID, evt.EventID),
		} {
			found, err := exists(txn, key)
			if err != nil {
				return err
			}
			if found {
				return fmt.Errorf("%w: %s", errors.ErrEchoAlreadyExists, evt.EventID)
			}
		}
		if err := txn.Set(echoKey(evt.RoomID, displayIndex), value); err != nil {
			return err
		}
		if err := txn.Set(eventIndexKey(evt.RoomID, evt.EventID), encodeIndex(displayIndex)); err != nil {
			return err
		}
		if err := txn.Set(eventRoomKey(evt.EventID, evt.RoomID), []byte(evt.RoomID)); err != nil {
			return err
		}
		return txn.Set(queueKey(evt.RoomID, displayIndex), []byte(evt.EventID))
	})
	if err != nil {
		return domain.LocalEcho{}, err
	}
	return echo, nil
}

// captureSender is best effort: a missing member or a failing resolver
// leaves the metadata empty.
func (r *LocalEchoRepository) captureSender(echo *domain.LocalEcho) {
	if r.resolver == nil {
		return
	}
	roomID, senderID := echo.RoomID(), echo.Event.SenderID
	member, err := r.resolver.GetLastMember(roomID, senderID)
	if err != nil {
		r.log.Warn("Membership lookup failed, sender metadata left empty",
			"room_id", roomID, "sender_id", senderID, "error", err)
		return
	}
	if member == nil {
		return
	}
	echo.SenderDisplayName = member.DisplayName
	echo.SenderAvatarURL = member.AvatarURL
	if member.DisplayName == nil {
		return
	}
	unique, err := r.resolver.IsUniqueDisplayName(roomID, *member.DisplayName)
	if err != nil {
		r.log.Warn("Display name disambiguation failed",
			"room_id", roomID, "sender_id", senderID, "error", err)
		return
	}
	echo.UniqueDisplayNameFlag = unique
}

func (r *LocalEchoRepository) Get(roomID domain.RoomID, eventID string) (domain.LocalEcho, error) {
	var echo domain.LocalEcho
	var found bool
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		echo, found, err = getEcho(txn, roomID, eventID)
		return err
	})
	if err != nil {
		return domain.LocalEcho{}, storageError(err)
	}
	if !found {
		return domain.LocalEcho{}, fmt.Errorf("%w: %s", errors.ErrEchoNotFound, eventID)
	}
	return echo, nil
}

// UpdateSendState resolves the rooms holding the event and applies the
// transition in each of them. Event ids are unique per room only.
// An unknown event is a no-op: it may have been deleted or confirmed by sync.
func (r *LocalEchoRepository) UpdateSendState(eventID string, state domain.SendState) ([]StateChange, error) {
	var changes []StateChange
	err := r.update(func(txn *badger.Txn) error {
		changes = nil
		rooms, err := eventRooms(txn, eventID)
		if err != nil {
			return err
		}
		if len(rooms) == 0 {
			r.log.Debug("Send state update ignored, local echo not found", "event_id", eventID, "state", state)
			return nil
		}
		for _, roomID := range rooms {
			change, err := r.transition(txn, roomID, eventID, state)
			if err != nil {
				return err
			}
			if change != nil {
				changes = append(changes, *change)
			}
		}
		return nil
	})
	return changes, err
}

// UpdateSendStates applies the same transition to every event in a single
// transaction. Unknown events are skipped.
func (r *LocalEchoRepository) UpdateSendStates(roomID domain.RoomID, eventIDs []string, state domain.SendState) ([]StateChange, error) {
	var changes []StateChange
	err := r.update(func(txn *badger.Txn) error {
		changes = nil
		for _, eventID := range lo.Uniq(eventIDs) {
			change, err := r.transition(txn, roomID, eventID, state)
			if err != nil {
				return err
			}
			if change != nil {
				changes = append(changes, *change)
			}
		}
		return nil
	})
	return changes, err
}

// transition writes the new state unless the echo is missing, the guard
// refuses it or nothing changes. Reaching SYNCED leaves the sending queue.
func (r *LocalEchoRepository) transition(txn *badger.Txn, roomID domain.RoomID, eventID string, state domain.SendState) (*StateChange, error) {
	echo, found, err := getEcho(txn, roomID, eventID)
	if err != nil {
		return nil, err
	}
	if !found {
		r.log.Debug("Send state update ignored, local echo not found",
			"room_id", roomID, "event_id", eventID, "state", state)
		return nil, nil
	}
	previous := echo.SendState
	if previous == state {
		return nil, nil
	}
	if !previous.CanTransitionTo(state) {
		r.log.Debug("Send state update rejected",
			"room_id", roomID, "event_id", eventID, "from", previous, "to", state)
		return nil, nil
	}

	echo.SendState = state
	if err = txn.Set(echoKey(roomID, echo.DisplayIndex), encodeEcho(echo)); err != nil {
		return nil, err
	}
	switch {
	case state == domain.SendStateSynced:
		err = txn.Delete(queueKey(roomID, echo.DisplayIndex))
	case previous == domain.SendStateSynced:
		err = txn.Set(queueKey(roomID, echo.DisplayIndex), []byte(eventID))
	}
	if err != nil {
		return nil, err
	}
	return &StateChange{Echo: echo, Previous: previous}, nil
}

// DeleteFailed removes the record and its queue membership and reserves the
// id so that a late create can't bring the echo back.
// It reports whether something was deleted.
func (r *LocalEchoRepository) DeleteFailed(roomID domain.RoomID, eventID string) (bool, error) {
	var deleted bool
	err := r.update(func(txn *badger.Txn) error {
		echo, found, err := getEcho(txn, roomID, eventID)
		if err != nil || !found {
			deleted = false
			return err
		}
		deleted = true
		return r.remove(txn, echo)
	})
	if err == nil && !deleted {
		r.log.Debug("Delete ignored, local echo not found", "room_id", roomID, "event_id", eventID)
	}
	return deleted, err
}

// DeleteAllFailed removes every echo of the room that is in a failed state.
func (r *LocalEchoRepository) DeleteAllFailed(roomID domain.RoomID) ([]domain.LocalEcho, error) {
	var removed []domain.LocalEcho
	err := r.update(func(txn *badger.Txn) error {
		var err error
		removed, err = scanEchoes(txn, roomID, domain.FailedSendStates)
		if err != nil {
			return err
		}
		for _, echo := range removed {
			if err = r.remove(txn, echo); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *LocalEchoRepository) remove(txn *badger.Txn, echo domain.LocalEcho) error {
	roomID, eventID := echo.RoomID(), echo.EventID()
	for _, key := range [][]byte{
		echoKey(roomID, echo.DisplayIndex),
		eventIndexKey(roomID, eventID),
		eventRoomKey(eventID, roomID),
		queueKey(roomID, echo.DisplayIndex),
	} {
		if err := txn.Delete(key); err != nil {
			return err
		}
	}
	tombstone := badger.NewEntry(tombstoneKey(roomID, eventID), nil)
	if r.options.TombstoneTTL > 0 {
		tombstone = tombstone.WithTTL(r.options.TombstoneTTL)
	}
	return txn.SetEntry(tombstone)
}

// ClearSendingQueue marks every queued echo UNDELIVERED. Echoes stay in the
// queue so that failed bubbles are still displayed.
func (r *LocalEchoRepository) ClearSendingQueue(roomID domain.RoomID) ([]StateChange, error) {
	var changes []StateChange
	err := r.update(func(txn *badger.Txn) error {
		changes = nil
		eventIDs, err := queuedEventIDs(txn, roomID)
		if err != nil {
			return err
		}
		for _, eventID := range eventIDs {
			change, err := r.transition(txn, roomID, eventID, domain.SendStateUndelivered)
			if err != nil {
				return err
			}
			if change != nil {
				changes = append(changes, *change)
			}
		}
		return nil
	})
	return changes, err
}

// SendingQueue returns the queued echoes of a room, newest first.
func (r *LocalEchoRepository) SendingQueue(roomID domain.RoomID) ([]domain.LocalEcho, error) {
	var echoes []domain.LocalEcho
	err := r.db.View(func(txn *badger.Txn) error {
		eventIDs, err := queuedEventIDs(txn, roomID)
		if err != nil {
			return err
		}
		for _, eventID := range eventIDs {
			echo, found, err := getEcho(txn, roomID, eventID)
			if err != nil {
				return err
			}
			if found {
				echoes = append(echoes, echo)
			}
		}
		return nil
	})
	if err != nil {
		return nil, storageError(err)
	}
	return echoes, nil
}

// EchoesWithStates returns the echoes of a room in one of the given states,
// ordered by display index descending. No state means every echo.
func (r *LocalEchoRepository) EchoesWithStates(roomID domain.RoomID, states ...domain.SendState) ([]domain.LocalEcho, error) {
	var echoes []domain.LocalEcho
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		echoes, err = scanEchoes(txn, roomID, states)
		return err
	})
	if err != nil {
		return nil, storageError(err)
	}
	return echoes, nil
}

// update runs fn as one unit of work. Badger transactions are optimistic,
// a conflicting commit is replayed from scratch, so fn must reset whatever
// it collects.
func (r *LocalEchoRepository) update(fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = r.db.Update(fn)
		if !stderrors.Is(err, badger.ErrConflict) || attempt >= r.options.ConflictRetries {
			break
		}
		r.log.Debug("Transaction conflict, replaying unit of work", "attempt", attempt+1)
	}
	return storageError(err)
}

func storageError(err error) error {
	if err == nil ||
		stderrors.Is(err, errors.ErrEchoAlreadyExists) ||
		stderrors.Is(err, errors.ErrInvalidEvent) ||
		stderrors.Is(err, errors.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", errors.ErrStorage, err)
}

func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

func getEcho(txn *badger.Txn, roomID domain.RoomID, eventID string) (domain.LocalEcho, bool, error) {
	item, err := txn.Get(eventIndexKey(roomID, eventID))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.LocalEcho{}, false, nil
	}
	if err != nil {
		return domain.LocalEcho{}, false, err
	}
	var displayIndex uint64
	err = item.Value(func(val []byte) error {
		displayIndex, err = decodeIndex(val)
		return err
	})
	if err != nil {
		return domain.LocalEcho{}, false, err
	}

	item, err = txn.Get(echoKey(roomID, displayIndex))
	if err != nil {
		return domain.LocalEcho{}, false, err
	}
	var echo domain.LocalEcho
	err = item.Value(func(val []byte) error {
		echo, err = decodeEcho(val)
		return err
	})
	return echo, err == nil, err
}

// scanEchoes walks the room records newest first. The iterator is closed
// before returning so callers may write in the same transaction.
func scanEchoes(txn *badger.Txn, roomID domain.RoomID, states []domain.SendState) ([]domain.LocalEcho, error) {
	prefix := echoPrefix(roomID)
	options := badger.DefaultIteratorOptions
	options.Reverse = true
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	var echoes []domain.LocalEcho
	for it.Seek(seekLast(prefix)); it.ValidForPrefix(prefix); it.Next() {
		var echo domain.LocalEcho
		err := it.Item().Value(func(val []byte) error {
			var err error
			echo, err = decodeEcho(val)
			return err
		})
		if err != nil {
			return nil, err
		}
		if len(states) == 0 || lo.Contains(states, echo.SendState) {
			echoes = append(echoes, echo)
		}
	}
	return echoes, nil
}

// eventRooms lists the rooms holding an echo of the event. The iterator is
// closed before returning so callers may write in the same transaction.
func eventRooms(txn *badger.Txn, eventID string) ([]domain.RoomID, error) {
	prefix := eventRoomPrefix(eventID)
	options := badger.DefaultIteratorOptions
	options.Prefix = prefix
	options.PrefetchValues = false
	it := txn.NewIterator(options)
	defer it.Close()

	var rooms []domain.RoomID
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		rooms = append(rooms, domain.RoomID(it.Item().Key()[len(prefix):]))
	}
	return rooms, nil
}

// queuedEventIDs lists the queue newest first.
func queuedEventIDs(txn *badger.Txn, roomID domain.RoomID) ([]string, error) {
	prefix := queuePrefix(roomID)
	options := badger.DefaultIteratorOptions
	options.Reverse = true
	options.Prefix = prefix
	options.PrefetchValues = false
	it := txn.NewIterator(options)
	defer it.Close()

	var eventIDs []string
	for it.Seek(seekLast(prefix)); it.ValidForPrefix(prefix); it.Next() {
		value, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		eventIDs = append(eventIDs, string(value))
	}
	return eventIDs, nil
}
