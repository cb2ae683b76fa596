package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Oganesson0221/debate-ai/internal/models"
	"github.com/Oganesson0221/debate-ai/internal/service"
)

// RoomHandler serves the debate-session lifecycle endpoints.
type RoomHandler struct {
	roomService *service.RoomService
}

func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoom creates a new waiting session and returns its room code.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var input struct {
		UserID      uint                `json:"user_id" binding:"required"`
		Format      models.DebateFormat `json:"format"`
		MotionTitle string              `json:"motion_title"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.roomService.CreateSession(input.UserID, input.Format, input.MotionTitle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        session.ID,
		"room_code": session.RoomCode,
	})
}

// GetRoom returns the session and its roster.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	session, roster, err := h.roomService.GetByRoomCode(c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":      session,
		"participants": roster,
	})
}

// JoinRoom seats a user in a waiting session.
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var input struct {
		UserID      uint               `json:"user_id" binding:"required"`
		Team        models.Team        `json:"team" binding:"required"`
		SpeakerRole models.SpeakerRole `json:"speaker_role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.roomService.Join(c.Param("code"), input.UserID, input.Team, input.SpeakerRole)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"participant_id": participant.ID,
		"session_id":     participant.SessionID,
	})
}

// StartDebate moves the session into progress.
func (h *RoomHandler) StartDebate(c *gin.Context) {
	var input struct {
		Force bool `json:"force"`
	}
	// Body is optional; force defaults to false.
	_ = c.ShouldBindJSON(&input)

	session, err := h.lookupSession(c)
	if err != nil {
		return
	}

	if err := h.roomService.Start(session.ID, input.Force); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "debate started"})
}

// EndDebate completes an in-progress session.
func (h *RoomHandler) EndDebate(c *gin.Context) {
	session, err := h.lookupSession(c)
	if err != nil {
		return
	}

	if err := h.roomService.End(session.ID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "debate ended"})
}

// AdvanceSpeaker moves the session to the next seat in the order.
func (h *RoomHandler) AdvanceSpeaker(c *gin.Context) {
	session, err := h.lookupSession(c)
	if err != nil {
		return
	}

	finished, next, err := h.roomService.AdvanceSpeaker(session.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"finished":     finished,
		"next_speaker": next,
	})
}

// OfferPOI records a point of information.
func (h *RoomHandler) OfferPOI(c *gin.Context) {
	var input struct {
		OfferedByID    uint    `json:"offered_by_id" binding:"required"`
		TargetSpeechID uint    `json:"target_speech_id" binding:"required"`
		Timestamp      float64 `json:"timestamp"`
		Content        string  `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.lookupSession(c)
	if err != nil {
		return
	}

	poi, err := h.roomService.OfferPOI(session.ID, input.OfferedByID, input.TargetSpeechID, input.Timestamp, input.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record poi"})
		return
	}

	c.JSON(http.StatusCreated, poi)
}

// RespondPOI records whether the speaker accepted the POI.
func (h *RoomHandler) RespondPOI(c *gin.Context) {
	poiID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid poi id"})
		return
	}

	var input struct {
		Accepted bool `json:"accepted"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.roomService.RespondPOI(uint(poiID), input.Accepted); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update poi"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "poi updated"})
}

// ListPOIs returns all POIs for the session.
func (h *RoomHandler) ListPOIs(c *gin.Context) {
	session, err := h.lookupSession(c)
	if err != nil {
		return
	}

	pois, err := h.roomService.ListPOIs(session.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pois"})
		return
	}

	c.JSON(http.StatusOK, pois)
}

// ReportViolation records a flagged rule breach.
func (h *RoomHandler) ReportViolation(c *gin.Context) {
	var input struct {
		SpeechID      uint                     `json:"speech_id"`
		ParticipantID uint                     `json:"participant_id"`
		ViolationType models.ViolationType     `json:"violation_type" binding:"required"`
		Description   string                   `json:"description"`
		Severity      models.ViolationSeverity `json:"severity"`
		Timestamp     float64                  `json:"timestamp"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.lookupSession(c)
	if err != nil {
		return
	}

	violation := &models.RuleViolation{
		SessionID:     session.ID,
		SpeechID:      input.SpeechID,
		ParticipantID: input.ParticipantID,
		ViolationType: input.ViolationType,
		Description:   input.Description,
		Severity:      input.Severity,
		Timestamp:     input.Timestamp,
	}
	if err := h.roomService.ReportViolation(violation); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record violation"})
		return
	}

	c.JSON(http.StatusCreated, violation)
}

// ListViolations returns all recorded violations for the session.
func (h *RoomHandler) ListViolations(c *gin.Context) {
	session, err := h.lookupSession(c)
	if err != nil {
		return
	}

	violations, err := h.roomService.ListViolations(session.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list violations"})
		return
	}

	c.JSON(http.StatusOK, violations)
}

// lookupSession resolves the :code path param, writing the error
// response itself when resolution fails.
func (h *RoomHandler) lookupSession(c *gin.Context) (*models.DebateSession, error) {
	session, _, err := h.roomService.GetByRoomCode(c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load room"})
		}
		return nil, err
	}
	return session, nil
}
