package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/TheLMNTRIX/Sangath/internal/delivery/dto"
	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/docstore"
	"github.com/TheLMNTRIX/Sangath/internal/repository"
	"github.com/TheLMNTRIX/Sangath/pkg/idgen"
)

// fakeBlob captures uploads and returns a predictable URL.
type fakeBlob struct {
	keys   []string
	bodies []string
	err    error
}

func (f *fakeBlob) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	f.bodies = append(f.bodies, string(b))
	return "https://recordings.test/" + key, nil
}

func newSessionFixture(store docstore.Store, blobStore *fakeBlob) SessionUsecase {
	alloc := idgen.New(store)
	patientRepo := repository.NewPatientRepository(store, alloc)
	sessionRepo := repository.NewSessionRepository(store)
	return NewSessionUsecase(testLogger(), sessionRepo, patientRepo, blobStore)
}

func TestCreateSessionWithRecording(t *testing.T) {
	store := docstore.NewMemoryStore()
	blobStore := &fakeBlob{}
	uc := newSessionFixture(store, blobStore)
	seedPatient(t, store, &entity.Patient{
		PatientID: "10000001", Name: "Patient One", Age: 27, Gender: "F",
		AssignedASHAID: strptr("123456"),
	})

	resp, err := uc.Create(context.Background(), workerPrincipal("123456"), "10000001", &dto.CreateSessionRequest{
		SessionNumber: 1,
		Notes:         "first visit",
	}, &Recording{
		Filename:    "visit.mp3",
		ContentType: "audio/mpeg",
		Body:        strings.NewReader("audio-bytes"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(blobStore.keys) != 1 {
		t.Fatalf("uploads = %d, want 1", len(blobStore.keys))
	}
	key := blobStore.keys[0]
	if !strings.HasPrefix(key, "recordings/10000001/") || !strings.HasSuffix(key, ".mp3") {
		t.Errorf("upload key = %q", key)
	}
	if blobStore.bodies[0] != "audio-bytes" {
		t.Errorf("uploaded body = %q", blobStore.bodies[0])
	}
	if resp.RecordingURL != "https://recordings.test/"+key {
		t.Errorf("RecordingURL = %q", resp.RecordingURL)
	}
	if resp.ASHAID != "123456" {
		t.Errorf("ASHAID = %q, want caller's key", resp.ASHAID)
	}

	stored, err := repository.NewSessionRepository(store).ListByPatient(context.Background(), "10000001")
	if err != nil {
		t.Fatalf("ListByPatient: %v", err)
	}
	if len(stored) != 1 || stored[0].RecordingURL != resp.RecordingURL {
		t.Error("session not stored with recording reference")
	}
}

func TestCreateSessionWithoutRecording(t *testing.T) {
	store := docstore.NewMemoryStore()
	blobStore := &fakeBlob{}
	uc := newSessionFixture(store, blobStore)
	seedPatient(t, store, &entity.Patient{
		PatientID: "10000001", Name: "Patient One", Age: 27, Gender: "F",
	})

	resp, err := uc.Create(context.Background(), workerPrincipal("123456"), "10000001", &dto.CreateSessionRequest{
		SessionNumber: 2,
	}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.RecordingURL != "" {
		t.Errorf("RecordingURL = %q, want empty", resp.RecordingURL)
	}
	if len(blobStore.keys) != 0 {
		t.Error("blob store touched without a recording")
	}
}

func TestCreateSessionUploadFailureAbortsWrite(t *testing.T) {
	store := docstore.NewMemoryStore()
	blobStore := &fakeBlob{err: errors.New("bucket unavailable")}
	uc := newSessionFixture(store, blobStore)
	seedPatient(t, store, &entity.Patient{
		PatientID: "10000001", Name: "Patient One", Age: 27, Gender: "F",
	})

	_, err := uc.Create(context.Background(), workerPrincipal("123456"), "10000001", &dto.CreateSessionRequest{
		SessionNumber: 1,
	}, &Recording{Filename: "visit.mp3", ContentType: "audio/mpeg", Body: strings.NewReader("x")})
	if err == nil {
		t.Fatal("Create succeeded despite upload failure")
	}

	docs, _ := store.List(context.Background(), docstore.CollectionSessions)
	if len(docs) != 0 {
		t.Error("session stored despite upload failure")
	}
}

func TestCreateSessionUnknownPatient(t *testing.T) {
	store := docstore.NewMemoryStore()
	uc := newSessionFixture(store, &fakeBlob{})

	_, err := uc.Create(context.Background(), workerPrincipal("123456"), "00000000", &dto.CreateSessionRequest{
		SessionNumber: 1,
	}, nil)
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("err = %v, want ErrPatientNotFound", err)
	}
}

func TestListByPatientAccess(t *testing.T) {
	store := docstore.NewMemoryStore()
	uc := newSessionFixture(store, &fakeBlob{})
	seedPatient(t, store, &entity.Patient{
		PatientID: "10000001", Name: "Patient One", Age: 27, Gender: "F",
		AssignedASHAID: strptr("123456"),
	})

	sessionRepo := repository.NewSessionRepository(store)
	for i := 1; i <= 2; i++ {
		if _, err := sessionRepo.Add(context.Background(), &entity.Session{
			PatientID: "10000001", ASHAID: "123456", SessionNumber: i,
		}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	sessions, err := uc.ListByPatient(context.Background(), workerPrincipal("123456"), "10000001")
	if err != nil {
		t.Fatalf("ListByPatient: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("sessions = %d, want 2", len(sessions))
	}

	if _, err := uc.ListByPatient(context.Background(), workerPrincipal("654321"), "10000001"); !errors.Is(err, ErrForbidden) {
		t.Errorf("unassigned worker err = %v, want ErrForbidden", err)
	}

	if _, err := uc.ListByPatient(context.Background(), supervisorPrincipal(), "10000001"); err != nil {
		t.Errorf("supervisor denied: %v", err)
	}
}
