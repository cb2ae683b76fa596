package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Oganesson0221/debate-ai/internal/models"
	"github.com/Oganesson0221/debate-ai/internal/repository"
)

// EventRouter terminates the live connection protocol: it validates each
// inbound event against the persisted session data, drives the
// RoomRegistry through its transitions, and fans the resulting
// broadcasts out through the Hub.
//
// The router keeps no authority over turn order or debate status; those
// live in the persisted session and are mutated by the HTTP layer. Its
// only real-time truth is connectivity and who is actively speaking —
// facts a database round trip is too slow to arbitrate.
type EventRouter struct {
	hub          *Hub
	registry     *RoomRegistry
	sessions     repository.SessionRepository
	participants repository.ParticipantRepository
	logger       zerolog.Logger
	now          func() time.Time
}

func NewEventRouter(
	hub *Hub,
	registry *RoomRegistry,
	sessions repository.SessionRepository,
	participants repository.ParticipantRepository,
	logger zerolog.Logger,
) *EventRouter {
	return &EventRouter{
		hub:          hub,
		registry:     registry,
		sessions:     sessions,
		participants: participants,
		logger:       logger,
		now:          time.Now,
	}
}

// HandleMessage dispatches one inbound frame from a connection. Events
// referencing rooms or connections that have already been cleaned up are
// benign races and are dropped silently; only join failures are reported
// back to the requester.
func (r *EventRouter) HandleMessage(client *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		r.logger.Debug().Str("conn_id", client.ID).Err(err).Msg("malformed frame")
		return
	}

	switch env.Event {
	case EventJoinRoom:
		r.handleJoin(client, env.Data)
	case EventLeaveRoom:
		r.handleLeave(client)
	case EventStartSpeaking:
		r.handleStartSpeaking(client, env.Data)
	case EventStopSpeaking:
		r.handleStopSpeaking(client, env.Data)
	case EventAudioData:
		r.handleAudioData(client, env.Data)
	case EventTranscriptUpdate:
		r.handleTranscriptUpdate(client, env.Data)
	case EventPOIOffered:
		r.handlePOIOffered(client, env.Data)
	case EventPOIResponse:
		r.handlePOIResponse(client, env.Data)
	case EventTimerPause:
		r.handleTimer(client, true)
	case EventTimerResume:
		r.handleTimer(client, false)
	case EventDebateStart:
		r.handleDebateStart(client)
	case EventAdvanceSpeaker:
		r.handleAdvanceSpeaker(client, env.Data)
	case EventDebateEnd:
		r.handleDebateEnd(client)
	case EventRuleViolation:
		r.handleRuleViolation(client, env.Data)
	default:
		r.logger.Debug().Str("conn_id", client.ID).Str("event", env.Event).Msg("unknown event")
	}
}

// HandleDisconnect runs the leave path when the transport drops. A
// connection that never joined a room has nothing to clean up.
func (r *EventRouter) HandleDisconnect(client *Client) {
	if roomCode, ok := r.hub.RoomOf(client); ok {
		r.leaveRoom(client, roomCode)
	}
	r.logger.Debug().Str("conn_id", client.ID).Msg("client disconnected")
}

func (r *EventRouter) handleJoin(client *Client, raw json.RawMessage) {
	var data JoinRoomData
	if err := json.Unmarshal(raw, &data); err != nil {
		r.sendError(client, "Failed to join room")
		return
	}

	// A connection lives in at most one room. Moving to another room
	// runs the full leave path first so the old room's participant map
	// can empty and be reclaimed.
	if prev, ok := r.hub.RoomOf(client); ok && prev != data.RoomCode {
		r.leaveRoom(client, prev)
	}

	session, err := r.sessions.FindByRoomCode(data.RoomCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.sendError(client, "Room not found")
		} else {
			r.logger.Error().Str("room", data.RoomCode).Err(err).Msg("session lookup failed")
			r.sendError(client, "Failed to join room")
		}
		return
	}

	roster, err := r.participants.FindBySession(session.ID)
	if err != nil {
		r.logger.Error().Str("room", data.RoomCode).Err(err).Msg("participant lookup failed")
		r.sendError(client, "Failed to join room")
		return
	}

	var snap ParticipantSnapshot
	found := false
	for _, p := range roster {
		if p.ID == data.ParticipantID {
			snap = ParticipantSnapshot{
				UserID:        p.UserID,
				ParticipantID: p.ID,
				Team:          p.Team,
				SpeakerRole:   p.SpeakerRole,
			}
			found = true
			break
		}
	}
	if !found {
		r.sendError(client, "Participant not found")
		return
	}

	// Persist the connect flag before touching any live state: a failed
	// join must leave nothing behind for the disconnect path to miss.
	if err := r.participants.SetConnected(snap.ParticipantID, true); err != nil {
		r.logger.Error().Uint("participant", snap.ParticipantID).Err(err).Msg("persist connect flag failed")
		r.sendError(client, "Failed to join room")
		return
	}

	r.registry.EnsureRoom(data.RoomCode, session.ID)
	r.registry.RegisterParticipant(data.RoomCode, client.ID, snap)
	r.hub.JoinRoom(client, data.RoomCode)

	// Re-fetch so the broadcast reflects the source of truth, not the
	// in-memory snapshot.
	roster, err = r.participants.FindBySession(session.ID)
	if err != nil {
		r.logger.Error().Str("room", data.RoomCode).Err(err).Msg("participant refetch failed")
		r.sendError(client, "Failed to join room")
		return
	}

	r.hub.BroadcastToRoom(data.RoomCode, EventParticipantsUpdated, ParticipantsUpdatedData{
		Participants: roster,
	})

	state := RoomStateData{
		SessionID:           session.ID,
		Status:              session.Status,
		CurrentSpeakerIndex: session.CurrentSpeakerIndex,
		Participants:        roster,
		IsPaused:            false,
	}
	if room, ok := r.registry.Snapshot(data.RoomCode); ok {
		state.CurrentSpeaker = room.CurrentSpeaker
		state.IsPaused = room.Paused
		if !room.SpeechStart.IsZero() {
			ms := room.SpeechStart.UnixMilli()
			state.SpeechStartTime = &ms
		}
	}
	r.hub.SendTo(client, EventRoomState, state)

	r.logger.Info().
		Str("conn_id", client.ID).
		Str("room", data.RoomCode).
		Str("role", string(snap.SpeakerRole)).
		Msg("joined room")
}

func (r *EventRouter) handleLeave(client *Client) {
	roomCode, ok := r.hub.RoomOf(client)
	if !ok {
		return
	}
	r.leaveRoom(client, roomCode)
}

// leaveRoom is the shared cleanup for explicit leaves and disconnects.
// A departing speaker is treated as an abnormal stop: no duration is
// reported, the room just learns the speaker is gone.
func (r *EventRouter) leaveRoom(client *Client, roomCode string) {
	snap, wasSpeaking, _, ok := r.registry.RemoveParticipant(roomCode, client.ID)
	if ok {
		if err := r.participants.SetConnected(snap.ParticipantID, false); err != nil {
			r.logger.Error().Uint("participant", snap.ParticipantID).Err(err).Msg("persist disconnect flag failed")
		}

		r.hub.BroadcastToOthers(roomCode, client, EventParticipantLeft, ParticipantLeftData{
			ParticipantID: snap.ParticipantID,
			SpeakerRole:   snap.SpeakerRole,
		})
		if wasSpeaking {
			r.hub.BroadcastToOthers(roomCode, client, EventSpeakerDisconnected, SpeakerDisconnectedData{
				ParticipantID: snap.ParticipantID,
			})
		}
	}
	r.hub.LeaveRoom(client)
}

func (r *EventRouter) handleStartSpeaking(client *Client, raw json.RawMessage) {
	var data SpeechRefData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}
	roomCode, ok := r.hub.RoomOf(client)
	if !ok {
		return
	}
	snap, ok := r.registry.Participant(roomCode, client.ID)
	if !ok {
		return
	}
	start, ok := r.registry.StartSpeaking(roomCode, client.ID)
	if !ok {
		return
	}

	r.hub.BroadcastToRoom(roomCode, EventSpeakerStarted, SpeakerStartedData{
		ParticipantID: snap.ParticipantID,
		SpeakerRole:   snap.SpeakerRole,
		Team:          snap.Team,
		SpeechID:      data.SpeechID,
		StartTime:     start.UnixMilli(),
	})
	r.logger.Debug().Str("room", roomCode).Str("role", string(snap.SpeakerRole)).Msg("started speaking")
}

func (r *EventRouter) handleStopSpeaking(client *Client, raw json.RawMessage) {
	var data SpeechRefData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}
	roomCode, ok := r.hub.RoomOf(client)
	if !ok {
		return
	}
	snap, ok := r.registry.Participant(roomCode, client.ID)
	if !ok {
		return
	}
	duration, ok := r.registry.StopSpeaking(roomCode, client.ID)
	if !ok {
		return
	}

	r.hub.BroadcastToRoom(roomCode, EventSpeakerStopped, SpeakerStoppedData{
		ParticipantID: snap.ParticipantID,
		SpeakerRole:   snap.SpeakerRole,
		SpeechID:      data.SpeechID,
		Duration:      duration,
	})
	r.logger.Debug().Str("room", roomCode).Str("role", string(snap.SpeakerRole)).Int("duration", duration).Msg("stopped speaking")
}

// handleAudioData relays opaque audio chunks from the current speaker to
// the rest of the room. Anything from a non-speaker is dropped.
func (r *EventRouter) handleAudioData(client *Client, raw json.RawMessage) {
	var data AudioData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}
	roomCode, ok := r.hub.RoomOf(client)
	if !ok {
		return
	}
	room, ok := r.registry.Snapshot(roomCode)
	if !ok || room.CurrentSpeaker != client.ID {
		return
	}

	r.hub.BroadcastToOthers(roomCode, client, EventAudioStream, AudioStreamData{
		SenderID:   client.ID,
		AudioChunk: data.AudioChunk,
	})
}

func (r *EventRouter) handleTranscriptUpdate(client *Client, raw json.RawMessage) {
	var data TranscriptUpdateData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}
	roomCode, ok := r.hub.RoomOf(client)
	if !ok {
		return
	}

	r.hub.BroadcastToRoom(roomCode, EventTranscriptSegment, TranscriptSegmentData{
		SpeechID:  data.SpeechID,
		Text:      data.Text,
		Timestamp: data.Timestamp,
		SenderID:  client.ID,
	})
}

func (r *EventRouter) handlePOIOffered(client *Client, raw json.RawMessage) {
	var data POIOfferedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}
	roomCode, ok := r.hub.RoomOf(client)
	if !ok {
		return
	}
	snap, ok := r.registry.Participant(roomCode, client.ID)
	if !ok {
		return
	}

	r.hub.BroadcastToRoom(roomCode, EventPOIOffer, POIOfferData{
		OfferedBy:      snap.ParticipantID,
		Team:           snap.Team,
		SpeakerRole:    snap.SpeakerRole,
		TargetSpeechID: data.TargetSpeechID,
		Timestamp:      data.Timestamp,
	})
}

func (r *EventRouter) handlePOIResponse(client *Client, raw json.RawMessage) {
	var data POIResponseData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}
	roomCode, ok := r.hub.RoomOf(client)
	if !ok {
		return
	}

	r.hub.BroadcastToRoom(roomCode, EventPOIResult, POIResultData{
		Accepted: data.Accepted,
		POIID:    data.POIID,
	})
}

func (r *EventRouter) handleTimer(client *Client, pause bool) {
	roomCode, ok := r.hub.RoomOf(client)
	if !ok {
		return
	}
	if !r.registry.SetPaused(roomCode, pause) {
		return
	}

	event := EventTimerResumed
	if pause {
		event = EventTimerPaused
	}
	r.hub.BroadcastToRoom(roomCode, event, TimerEventData{Timestamp: r.now().UnixMilli()})
}

func (r *EventRouter) handleDebateStart(client *Client) {
	roomCode, ok := r.hub.RoomOf(client)
	if !ok || !r.registry.HasRoom(roomCode) {
		return
	}

	r.hub.BroadcastToRoom(roomCode, EventDebateStarted, DebateStartedData{
		Timestamp:    r.now().UnixMilli(),
		FirstSpeaker: models.RolePM,
	})
}

func (r *EventRouter) handleAdvanceSpeaker(client *Client, raw json.RawMessage) {
	var data AdvanceSpeakerData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}
	roomCode, ok := r.hub.RoomOf(client)
	if !ok {
		return
	}

	r.hub.BroadcastToRoom(roomCode, EventSpeakerAdvanced, SpeakerAdvancedData{
		NextSpeaker: data.NextSpeaker,
		Timestamp:   r.now().UnixMilli(),
	})
}

func (r *EventRouter) handleDebateEnd(client *Client) {
	roomCode, ok := r.hub.RoomOf(client)
	if !ok {
		return
	}

	r.hub.BroadcastToRoom(roomCode, EventDebateEnded, DebateEndedData{
		Timestamp: r.now().UnixMilli(),
	})
}

func (r *EventRouter) handleRuleViolation(client *Client, raw json.RawMessage) {
	var data RuleViolationData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}
	roomCode, ok := r.hub.RoomOf(client)
	if !ok {
		return
	}
	if _, ok := r.registry.Participant(roomCode, client.ID); !ok {
		return
	}

	r.hub.BroadcastToRoom(roomCode, EventViolationFlagged, ViolationFlaggedData{
		ViolationType: data.ViolationType,
		Description:   data.Description,
		Timestamp:     r.now().UnixMilli(),
	})
}

func (r *EventRouter) sendError(client *Client, message string) {
	r.hub.SendTo(client, EventError, ErrorData{Message: message})
}
