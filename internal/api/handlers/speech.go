package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Oganesson0221/debate-ai/internal/models"
	"github.com/Oganesson0221/debate-ai/internal/service"
)

// SpeechHandler serves the durable speech and transcript endpoints.
type SpeechHandler struct {
	speechService *service.SpeechService
	roomService   *service.RoomService
}

func NewSpeechHandler(speechService *service.SpeechService, roomService *service.RoomService) *SpeechHandler {
	return &SpeechHandler{
		speechService: speechService,
		roomService:   roomService,
	}
}

// CreateSpeech opens a speech record for a session.
func (h *SpeechHandler) CreateSpeech(c *gin.Context) {
	var input struct {
		ParticipantID uint               `json:"participant_id" binding:"required"`
		SpeakerRole   models.SpeakerRole `json:"speaker_role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, _, err := h.roomService.GetByRoomCode(c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load room"})
		return
	}

	speech, err := h.speechService.CreateSpeech(session.ID, input.ParticipantID, input.SpeakerRole)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create speech"})
		return
	}

	c.JSON(http.StatusCreated, speech)
}

// ListSpeeches returns all speeches for a session.
func (h *SpeechHandler) ListSpeeches(c *gin.Context) {
	session, _, err := h.roomService.GetByRoomCode(c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load room"})
		return
	}

	speeches, err := h.speechService.ListSpeeches(session.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list speeches"})
		return
	}

	c.JSON(http.StatusOK, speeches)
}

// EndSpeech closes a speech with its transcript and duration.
func (h *SpeechHandler) EndSpeech(c *gin.Context) {
	speechID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid speech id"})
		return
	}

	var input struct {
		Duration   int    `json:"duration"`
		Transcript string `json:"transcript"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.speechService.EndSpeech(uint(speechID), input.Duration, input.Transcript); err != nil {
		if errors.Is(err, service.ErrSpeechNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to end speech"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "speech ended"})
}

// AddSegment appends a transcript segment to a speech.
func (h *SpeechHandler) AddSegment(c *gin.Context) {
	speechID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid speech id"})
		return
	}

	var input struct {
		Text       string  `json:"text" binding:"required"`
		StartTime  float64 `json:"start_time"`
		EndTime    float64 `json:"end_time"`
		Confidence float64 `json:"confidence"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	segment, err := h.speechService.AddSegment(uint(speechID), input.Text, input.StartTime, input.EndTime, input.Confidence)
	if err != nil {
		if errors.Is(err, service.ErrSpeechNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add segment"})
		return
	}

	c.JSON(http.StatusCreated, segment)
}

// ListSegments returns the ordered segments of a speech.
func (h *SpeechHandler) ListSegments(c *gin.Context) {
	speechID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid speech id"})
		return
	}

	segments, err := h.speechService.ListSegments(uint(speechID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list segments"})
		return
	}

	c.JSON(http.StatusOK, segments)
}
