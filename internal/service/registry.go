package service

import (
	"sync"
	"time"

	"github.com/Oganesson0221/debate-ai/internal/models"
)

// ParticipantSnapshot is the live view of one connected participant.
// It is copied out of the persisted participant record at join time;
// the database row stays the source of truth for identity and role.
type ParticipantSnapshot struct {
	UserID        uint
	ParticipantID uint
	Team          models.Team
	SpeakerRole   models.SpeakerRole
	IsConnected   bool
	IsSpeaking    bool
}

// RoomState is the ephemeral state of one live room, keyed by connection
// id. It is owned by the RoomRegistry and must only be mutated through
// registry methods.
type RoomState struct {
	SessionID      uint
	RoomCode       string
	Participants   map[string]*ParticipantSnapshot
	CurrentSpeaker string // connection id, empty when nobody is speaking
	SpeechStart    time.Time
	Paused         bool
}

// RoomSnapshot is a copy of the broadcast-relevant room fields, safe to
// read outside the registry lock.
type RoomSnapshot struct {
	SessionID      uint
	CurrentSpeaker string
	SpeechStart    time.Time
	Paused         bool
}

// RoomRegistry holds the in-memory state of every live room in this
// process. Rooms are created lazily on first join and removed when the
// last connection leaves. Nothing here survives a restart; the durable
// session record lives in the database.
//
// Every connection goroutine mutates the registry, so all operations
// take the registry lock. Operations on rooms that do not exist are
// no-ops reported through ok=false; whether absence is an error is the
// caller's decision.
type RoomRegistry struct {
	mu    sync.Mutex
	rooms map[string]*RoomState
	now   func() time.Time
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*RoomState),
		now:   time.Now,
	}
}

// EnsureRoom returns the room for roomCode, creating it if absent.
// Idempotent: concurrent joins for the same code race harmlessly and
// observe the same room.
func (r *RoomRegistry) EnsureRoom(roomCode string, sessionID uint) *RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomCode]
	if !ok {
		room = &RoomState{
			SessionID:    sessionID,
			RoomCode:     roomCode,
			Participants: make(map[string]*ParticipantSnapshot),
		}
		r.rooms[roomCode] = room
	}
	return room
}

// RegisterParticipant inserts or overwrites the snapshot for connID.
// Returns false when the room does not exist.
func (r *RoomRegistry) RegisterParticipant(roomCode, connID string, snap ParticipantSnapshot) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomCode]
	if !ok {
		return false
	}
	snap.IsConnected = true
	room.Participants[connID] = &snap
	return true
}

// Participant returns a copy of the snapshot for connID.
func (r *RoomRegistry) Participant(roomCode, connID string) (ParticipantSnapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomCode]
	if !ok {
		return ParticipantSnapshot{}, false
	}
	p, ok := room.Participants[connID]
	if !ok {
		return ParticipantSnapshot{}, false
	}
	return *p, true
}

// StartSpeaking marks connID as the room's current speaker and records
// the wall-clock start of the speech. A previous speaker is overwritten,
// not stopped; legitimate clients stop before the next speaker starts.
func (r *RoomRegistry) StartSpeaking(roomCode, connID string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomCode]
	if !ok {
		return time.Time{}, false
	}
	p, ok := room.Participants[connID]
	if !ok {
		return time.Time{}, false
	}

	room.CurrentSpeaker = connID
	room.SpeechStart = r.now()
	p.IsSpeaking = true
	return room.SpeechStart, true
}

// StopSpeaking clears the speaker state and returns the elapsed speech
// duration in whole seconds. Without a recorded start the duration is
// zero, never negative.
func (r *RoomRegistry) StopSpeaking(roomCode, connID string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomCode]
	if !ok {
		return 0, false
	}
	p, ok := room.Participants[connID]
	if !ok {
		return 0, false
	}

	duration := 0
	if !room.SpeechStart.IsZero() {
		duration = int(r.now().Sub(room.SpeechStart) / time.Second)
		if duration < 0 {
			duration = 0
		}
	}

	room.CurrentSpeaker = ""
	room.SpeechStart = time.Time{}
	p.IsSpeaking = false
	return duration, true
}

// RemoveParticipant deletes the connection's entry. If it was the
// current speaker, the speaker state is cleared as an abnormal stop (no
// duration reported). The room itself is removed once its participant
// map empties; empty reports whether that happened.
func (r *RoomRegistry) RemoveParticipant(roomCode, connID string) (snap ParticipantSnapshot, wasSpeaking, empty, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, found := r.rooms[roomCode]
	if !found {
		return ParticipantSnapshot{}, false, false, false
	}
	p, found := room.Participants[connID]
	if !found {
		return ParticipantSnapshot{}, false, len(room.Participants) == 0, false
	}

	snap = *p
	delete(room.Participants, connID)

	if room.CurrentSpeaker == connID {
		wasSpeaking = true
		room.CurrentSpeaker = ""
		room.SpeechStart = time.Time{}
	}

	if len(room.Participants) == 0 {
		delete(r.rooms, roomCode)
		empty = true
	}
	return snap, wasSpeaking, empty, true
}

// SetPaused flips the advisory pause flag. The speech start time is
// untouched; clients freeze their own displayed timers on broadcast.
func (r *RoomRegistry) SetPaused(roomCode string, paused bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomCode]
	if !ok {
		return false
	}
	room.Paused = paused
	return true
}

// Snapshot copies the broadcastable fields of a room.
func (r *RoomRegistry) Snapshot(roomCode string) (RoomSnapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomCode]
	if !ok {
		return RoomSnapshot{}, false
	}
	return RoomSnapshot{
		SessionID:      room.SessionID,
		CurrentSpeaker: room.CurrentSpeaker,
		SpeechStart:    room.SpeechStart,
		Paused:         room.Paused,
	}, true
}

// HasRoom reports whether a live room exists for roomCode.
func (r *RoomRegistry) HasRoom(roomCode string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rooms[roomCode]
	return ok
}
