package service

import (
	"errors"
	"testing"

	"github.com/Oganesson0221/debate-ai/internal/models"
)

type fakePOIRepo struct {
	pois   []models.PointOfInformation
	nextID uint
}

func (f *fakePOIRepo) Create(poi *models.PointOfInformation) error {
	f.nextID++
	poi.ID = f.nextID
	f.pois = append(f.pois, *poi)
	return nil
}

func (f *fakePOIRepo) FindByID(id uint) (*models.PointOfInformation, error) {
	for i := range f.pois {
		if f.pois[i].ID == id {
			return &f.pois[i], nil
		}
	}
	return nil, errors.New("poi not found")
}

func (f *fakePOIRepo) FindBySession(sessionID uint) ([]models.PointOfInformation, error) {
	var out []models.PointOfInformation
	for _, p := range f.pois {
		if p.SessionID == sessionID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePOIRepo) Update(poi *models.PointOfInformation) error {
	for i := range f.pois {
		if f.pois[i].ID == poi.ID {
			f.pois[i] = *poi
			return nil
		}
	}
	return errors.New("poi not found")
}

type fakeViolationRepo struct {
	violations []models.RuleViolation
}

func (f *fakeViolationRepo) Create(v *models.RuleViolation) error {
	f.violations = append(f.violations, *v)
	return nil
}

func (f *fakeViolationRepo) FindBySession(sessionID uint) ([]models.RuleViolation, error) {
	var out []models.RuleViolation
	for _, v := range f.violations {
		if v.SessionID == sessionID {
			out = append(out, v)
		}
	}
	return out, nil
}

func newRoomService() (*RoomService, *fakePOIRepo, *fakeViolationRepo) {
	sessions := &fakeSessionRepo{sessions: make(map[string]*models.DebateSession)}
	participants := &fakeParticipantRepo{connected: make(map[uint]bool)}
	pois := &fakePOIRepo{}
	violations := &fakeViolationRepo{}
	return NewRoomService(sessions, participants, pois, violations), pois, violations
}

func TestCreateSessionDefaults(t *testing.T) {
	svc, _, _ := newRoomService()

	session, err := svc.CreateSession(100, "", "This house would ban homework")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if len(session.RoomCode) != roomCodeLength {
		t.Errorf("room code %q has length %d, want %d", session.RoomCode, len(session.RoomCode), roomCodeLength)
	}
	if session.Format != models.FormatAsianParliamentary {
		t.Errorf("Format = %q, want %q", session.Format, models.FormatAsianParliamentary)
	}
	if session.Status != models.SessionStatusWaiting {
		t.Errorf("Status = %q, want %q", session.Status, models.SessionStatusWaiting)
	}
	if session.CreatedBy != 100 {
		t.Errorf("CreatedBy = %d, want 100", session.CreatedBy)
	}
}

func TestJoinSeatGuards(t *testing.T) {
	svc, _, _ := newRoomService()
	session, err := svc.CreateSession(100, models.FormatAsianParliamentary, "motion")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if _, err := svc.Join(session.RoomCode, 100, "referee", models.RolePM); err == nil {
		t.Error("Join accepted an invalid team")
	}
	if _, err := svc.Join(session.RoomCode, 100, models.TeamGovernment, "judge"); err == nil {
		t.Error("Join accepted an invalid role")
	}
	if _, err := svc.Join("ZZZZ9999", 100, models.TeamGovernment, models.RolePM); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("unknown room: err = %v, want ErrSessionNotFound", err)
	}

	if _, err := svc.Join(session.RoomCode, 100, models.TeamGovernment, models.RolePM); err != nil {
		t.Fatalf("first Join: %v", err)
	}
	if _, err := svc.Join(session.RoomCode, 101, models.TeamGovernment, models.RolePM); !errors.Is(err, ErrRoleTaken) {
		t.Errorf("taken seat: err = %v, want ErrRoleTaken", err)
	}
	if _, err := svc.Join(session.RoomCode, 100, models.TeamOpposition, models.RoleLO); !errors.Is(err, ErrAlreadyJoined) {
		t.Errorf("second join by same user: err = %v, want ErrAlreadyJoined", err)
	}
}

func TestStartRequiresFullBench(t *testing.T) {
	svc, _, _ := newRoomService()
	session, _ := svc.CreateSession(100, models.FormatAsianParliamentary, "motion")

	if err := svc.Start(session.ID, false); !errors.Is(err, ErrNotEnoughTeams) {
		t.Errorf("Start with empty bench: err = %v, want ErrNotEnoughTeams", err)
	}

	seats := []struct {
		team models.Team
		role models.SpeakerRole
	}{
		{models.TeamGovernment, models.RolePM},
		{models.TeamGovernment, models.RoleDPM},
		{models.TeamGovernment, models.RoleGW},
		{models.TeamOpposition, models.RoleLO},
		{models.TeamOpposition, models.RoleDLO},
		{models.TeamOpposition, models.RoleOW},
	}
	for i, seat := range seats {
		if _, err := svc.Join(session.RoomCode, uint(200+i), seat.team, seat.role); err != nil {
			t.Fatalf("seat %v: %v", seat, err)
		}
	}

	if err := svc.Start(session.ID, false); err != nil {
		t.Fatalf("Start with full bench: %v", err)
	}
	updated, _, err := svc.GetByRoomCode(session.RoomCode)
	if err != nil {
		t.Fatalf("GetByRoomCode: %v", err)
	}
	if updated.Status != models.SessionStatusInProgress {
		t.Errorf("Status = %q, want %q", updated.Status, models.SessionStatusInProgress)
	}
	if updated.CurrentSpeakerIndex != 0 {
		t.Errorf("CurrentSpeakerIndex = %d, want 0", updated.CurrentSpeakerIndex)
	}
	if updated.StartedAt == nil {
		t.Error("StartedAt not stamped")
	}

	// A started session cannot be joined or started again.
	if _, err := svc.Join(session.RoomCode, 300, models.TeamGovernment, models.RolePMR); !errors.Is(err, ErrNotJoinable) {
		t.Errorf("join after start: err = %v, want ErrNotJoinable", err)
	}
	if err := svc.Start(session.ID, false); !errors.Is(err, ErrNotJoinable) {
		t.Errorf("double start: err = %v, want ErrNotJoinable", err)
	}
}

func TestStartForceSkipsBenchCheck(t *testing.T) {
	svc, _, _ := newRoomService()
	session, _ := svc.CreateSession(100, models.FormatAsianParliamentary, "motion")

	if err := svc.Start(session.ID, true); err != nil {
		t.Fatalf("forced Start: %v", err)
	}
}

func TestAdvanceSpeakerWalksOrderAndCompletes(t *testing.T) {
	svc, _, _ := newRoomService()
	session, _ := svc.CreateSession(100, models.FormatAsianParliamentary, "motion")
	if err := svc.Start(session.ID, true); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Index starts at pm; each advance yields the next seat in order.
	for _, want := range models.APSpeakerOrder[1:] {
		finished, next, err := svc.AdvanceSpeaker(session.ID)
		if err != nil {
			t.Fatalf("AdvanceSpeaker: %v", err)
		}
		if finished {
			t.Fatalf("finished early before %q", want)
		}
		if next != want {
			t.Fatalf("next = %q, want %q", next, want)
		}
	}

	finished, next, err := svc.AdvanceSpeaker(session.ID)
	if err != nil {
		t.Fatalf("final AdvanceSpeaker: %v", err)
	}
	if !finished || next != "" {
		t.Errorf("final advance: finished=%v next=%q, want finished with no next", finished, next)
	}

	updated, _, _ := svc.GetByRoomCode(session.RoomCode)
	if updated.Status != models.SessionStatusCompleted {
		t.Errorf("Status = %q, want %q", updated.Status, models.SessionStatusCompleted)
	}
	if updated.EndedAt == nil {
		t.Error("EndedAt not stamped")
	}

	if _, _, err := svc.AdvanceSpeaker(session.ID); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("advance after completion: err = %v, want ErrNotInProgress", err)
	}
}

func TestEndLifecycle(t *testing.T) {
	svc, _, _ := newRoomService()
	session, _ := svc.CreateSession(100, models.FormatAsianParliamentary, "motion")

	if err := svc.End(session.ID); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("End before start: err = %v, want ErrNotInProgress", err)
	}

	svc.Start(session.ID, true)
	if err := svc.End(session.ID); err != nil {
		t.Fatalf("End: %v", err)
	}

	updated, _, _ := svc.GetByRoomCode(session.RoomCode)
	if updated.Status != models.SessionStatusCompleted {
		t.Errorf("Status = %q, want %q", updated.Status, models.SessionStatusCompleted)
	}
}

func TestPOILifecycle(t *testing.T) {
	svc, pois, _ := newRoomService()
	session, _ := svc.CreateSession(100, models.FormatAsianParliamentary, "motion")

	poi, err := svc.OfferPOI(session.ID, 10, 5, 42.5, "On that point")
	if err != nil {
		t.Fatalf("OfferPOI: %v", err)
	}
	if poi.WasAccepted {
		t.Error("new POI already accepted")
	}

	if err := svc.RespondPOI(poi.ID, true); err != nil {
		t.Fatalf("RespondPOI: %v", err)
	}
	stored, _ := pois.FindByID(poi.ID)
	if !stored.WasAccepted {
		t.Error("acceptance not recorded")
	}

	list, err := svc.ListPOIs(session.ID)
	if err != nil {
		t.Fatalf("ListPOIs: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len(list) = %d, want 1", len(list))
	}
}

func TestReportViolationDefaultsSeverity(t *testing.T) {
	svc, _, _ := newRoomService()
	session, _ := svc.CreateSession(100, models.FormatAsianParliamentary, "motion")

	v := &models.RuleViolation{
		SessionID:     session.ID,
		ViolationType: models.ViolationTimeExceeded,
		Description:   "spoke past the bell",
	}
	if err := svc.ReportViolation(v); err != nil {
		t.Fatalf("ReportViolation: %v", err)
	}
	if v.Severity != models.SeverityMinor {
		t.Errorf("Severity = %q, want %q", v.Severity, models.SeverityMinor)
	}

	list, err := svc.ListViolations(session.ID)
	if err != nil {
		t.Fatalf("ListViolations: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len(list) = %d, want 1", len(list))
	}
}
