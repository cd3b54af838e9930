package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestService(repo *fakeRepo, blobs *fakeBlobStore) *Service {
	return NewService(repo, blobs, testBucket, zap.NewNop())
}

func TestUploadRejectsMissingTitle(t *testing.T) {
	service := newTestService(newFakeRepo(), newFakeBlobStore())

	fileHeader := buildFileHeader(t, "file", "scan.jpg", "image/jpeg", []byte("img"))
	_, err := service.Upload(context.Background(), uuid.New(), fileHeader, UploadInput{Title: "   "})
	if !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	blobs := newFakeBlobStore()
	repo := newFakeRepo()
	service := newTestService(repo, blobs)

	_, err := service.Upload(context.Background(), uuid.New(), nil, UploadInput{Title: "Ultrasound wk12"})
	if !errors.Is(err, ErrFileRequired) {
		t.Fatalf("expected ErrFileRequired, got %v", err)
	}
	if len(blobs.objects) != 0 || len(repo.records) != 0 {
		t.Fatalf("validation failure must happen before any I/O")
	}
}

func TestUploadStoresBlobThenMetadata(t *testing.T) {
	repo := newFakeRepo()
	blobs := newFakeBlobStore()
	service := newTestService(repo, blobs)

	ownerID := uuid.New()
	fileHeader := buildFileHeader(t, "file", "eco 12 semanas!.jpg", "image/jpeg", []byte("jpegdata"))

	rec, err := service.Upload(context.Background(), ownerID, fileHeader, UploadInput{
		Title:    "Ultrasound wk12",
		Category: CategoryUltrasound,
	})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	if rec.MediaKind != MediaKindImage {
		t.Fatalf("expected media kind image, got %s", rec.MediaKind)
	}
	if rec.Category != CategoryUltrasound {
		t.Fatalf("expected category ultrasound, got %s", rec.Category)
	}
	if rec.OwnerID != ownerID {
		t.Fatalf("owner mismatch")
	}
	if !strings.HasPrefix(rec.StorageKey, ownerID.String()+"/") {
		t.Fatalf("storage key %q must be partitioned under the owner", rec.StorageKey)
	}
	if !strings.HasSuffix(rec.StorageKey, "-eco_12_semanas_.jpg") {
		t.Fatalf("unexpected sanitized key: %q", rec.StorageKey)
	}
	if _, ok := blobs.objects[rec.StorageKey]; !ok {
		t.Fatalf("expected blob stored under %q", rec.StorageKey)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected one metadata record, got %d", len(repo.records))
	}
}

func TestUploadDerivesPDFKindFromContentType(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo, newFakeBlobStore())

	fileHeader := buildFileHeader(t, "file", "results.pdf", "application/pdf", []byte("%PDF"))
	rec, err := service.Upload(context.Background(), uuid.New(), fileHeader, UploadInput{Title: "Blood panel"})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if rec.MediaKind != MediaKindPDF {
		t.Fatalf("expected media kind pdf, got %s", rec.MediaKind)
	}
	if rec.Category != CategoryOther {
		t.Fatalf("expected default category other, got %s", rec.Category)
	}
}

func TestUploadBlobFailureWritesNoMetadata(t *testing.T) {
	repo := newFakeRepo()
	blobs := newFakeBlobStore()
	blobs.uploadErr = errors.New("transport down")
	service := newTestService(repo, blobs)

	fileHeader := buildFileHeader(t, "file", "scan.jpg", "image/jpeg", []byte("img"))
	_, err := service.Upload(context.Background(), uuid.New(), fileHeader, UploadInput{Title: "Scan"})
	if err == nil {
		t.Fatalf("expected error from failed blob write")
	}
	if len(repo.records) != 0 {
		t.Fatalf("metadata must not be written after a failed blob upload")
	}
}

func TestUploadMetadataFailureLeavesOrphanBlob(t *testing.T) {
	repo := newFakeRepo()
	repo.insertErr = errors.New("db down")
	blobs := newFakeBlobStore()
	service := newTestService(repo, blobs)

	fileHeader := buildFileHeader(t, "file", "scan.jpg", "image/jpeg", []byte("img"))
	_, err := service.Upload(context.Background(), uuid.New(), fileHeader, UploadInput{Title: "Scan"})
	if err == nil {
		t.Fatalf("expected error surfaced from metadata insert")
	}
	if len(blobs.objects) != 1 {
		t.Fatalf("blob must not be rolled back; orphan is a stated limitation")
	}
	if blobs.removeCount != 0 {
		t.Fatalf("no blob removal expected, got %d", blobs.removeCount)
	}
}

func TestListReturnsNewestFirstWithFreshLinks(t *testing.T) {
	repo := newFakeRepo()
	blobs := newFakeBlobStore()
	service := newTestService(repo, blobs)

	ownerID := uuid.New()
	older := seedRecord(repo, blobs, ownerID, "older", time.Now().Add(-time.Hour))
	newer := seedRecord(repo, blobs, ownerID, "newer", time.Now())

	views, err := service.List(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(views))
	}
	if views[0].ID != newer.ID || views[1].ID != older.ID {
		t.Fatalf("expected newest-first ordering")
	}
	if views[0].SignedURL == "" || views[1].SignedURL == "" {
		t.Fatalf("expected signed links for every record")
	}
	if views[0].SignedURL == views[1].SignedURL {
		t.Fatalf("links must be scoped per object")
	}
}

func TestListToleratesPerRecordLinkFailure(t *testing.T) {
	repo := newFakeRepo()
	blobs := newFakeBlobStore()
	service := newTestService(repo, blobs)

	ownerID := uuid.New()
	good := seedRecord(repo, blobs, ownerID, "good", time.Now())

	// Legacy row whose blob was deleted out-of-band.
	bad := Record{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Title:      "bad",
		StorageKey: ownerID.String() + "/gone.pdf",
		MediaKind:  MediaKindPDF,
		Category:   CategoryOther,
		UploadedAt: time.Now().Add(time.Minute),
	}
	repo.records[bad.ID] = bad

	views, err := service.List(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("one bad record must not fail the whole list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected both records returned, got %d", len(views))
	}

	byID := map[uuid.UUID]View{}
	for _, v := range views {
		byID[v.ID] = v
	}
	if byID[good.ID].SignedURL == "" {
		t.Fatalf("healthy record must keep its link")
	}
	if byID[bad.ID].SignedURL != "" {
		t.Fatalf("record with missing blob must come back without a link")
	}
}

func TestListResolvesLegacyReferences(t *testing.T) {
	repo := newFakeRepo()
	blobs := newFakeBlobStore()
	service := newTestService(repo, blobs)

	ownerID := uuid.New()
	key := ownerID.String() + "/123-old.pdf"
	blobs.objects[key] = []byte("pdf")

	legacy := Record{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Title:      "legacy",
		StorageKey: "https://abc.example.co/storage/v1/object/" + testBucket + "/" + key,
		MediaKind:  MediaKindPDF,
		Category:   CategoryOther,
		UploadedAt: time.Now(),
	}
	repo.records[legacy.ID] = legacy

	views, err := service.List(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(views) != 1 || views[0].SignedURL == "" {
		t.Fatalf("legacy URL row must still resolve to a usable link")
	}
}

func TestViewLinkIssuesDistinctTokens(t *testing.T) {
	repo := newFakeRepo()
	blobs := newFakeBlobStore()
	service := newTestService(repo, blobs)

	ownerID := uuid.New()
	rec := seedRecord(repo, blobs, ownerID, "doc", time.Now())

	first, err := service.ViewLink(context.Background(), ownerID, rec.ID)
	if err != nil {
		t.Fatalf("first ViewLink returned error: %v", err)
	}
	second, err := service.ViewLink(context.Background(), ownerID, rec.ID)
	if err != nil {
		t.Fatalf("second ViewLink returned error: %v", err)
	}
	if first == second {
		t.Fatalf("consecutive links for the same key must carry fresh tokens")
	}
}

func TestViewLinkMissingObjectSurfacesLinkUnavailable(t *testing.T) {
	repo := newFakeRepo()
	blobs := newFakeBlobStore()
	service := newTestService(repo, blobs)

	ownerID := uuid.New()
	rec := Record{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Title:      "gone",
		StorageKey: ownerID.String() + "/gone.jpg",
		MediaKind:  MediaKindImage,
		Category:   CategoryOther,
		UploadedAt: time.Now(),
	}
	repo.records[rec.ID] = rec

	_, err := service.ViewLink(context.Background(), ownerID, rec.ID)
	if !errors.Is(err, ErrLinkUnavailable) {
		t.Fatalf("expected ErrLinkUnavailable, got %v", err)
	}
}

func TestViewLinkUnknownDocument(t *testing.T) {
	service := newTestService(newFakeRepo(), newFakeBlobStore())

	_, err := service.ViewLink(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestDeleteRemovesBlobAndMetadata(t *testing.T) {
	repo := newFakeRepo()
	blobs := newFakeBlobStore()
	service := newTestService(repo, blobs)

	ownerID := uuid.New()
	rec := seedRecord(repo, blobs, ownerID, "doc", time.Now())

	if err := service.Delete(context.Background(), ownerID, rec.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	views, err := service.List(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("deleted record must vanish from the list")
	}
	if _, ok := blobs.objects[rec.StorageKey]; ok {
		t.Fatalf("blob must be removed")
	}
	if _, err := service.ViewLink(context.Background(), ownerID, rec.ID); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("ViewLink after delete must report not found, got %v", err)
	}
}

func TestDeleteIsOwnerScoped(t *testing.T) {
	repo := newFakeRepo()
	blobs := newFakeBlobStore()
	service := newTestService(repo, blobs)

	ownerID := uuid.New()
	intruderID := uuid.New()
	rec := seedRecord(repo, blobs, ownerID, "doc", time.Now())

	err := service.Delete(context.Background(), intruderID, rec.ID)
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound for foreign owner, got %v", err)
	}
	if _, ok := repo.records[rec.ID]; !ok {
		t.Fatalf("record must be untouched")
	}
	if blobs.removeCount != 0 {
		t.Fatalf("blob must be untouched, got %d removals", blobs.removeCount)
	}
}

func TestDeleteBlobFailureKeepsMetadata(t *testing.T) {
	repo := newFakeRepo()
	blobs := newFakeBlobStore()
	blobs.removeErr = errors.New("store fault")
	service := newTestService(repo, blobs)

	ownerID := uuid.New()
	rec := seedRecord(repo, blobs, ownerID, "doc", time.Now())

	if err := service.Delete(context.Background(), ownerID, rec.ID); err == nil {
		t.Fatalf("expected error from failed blob removal")
	}

	views, err := service.List(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(views) != 1 || views[0].ID != rec.ID {
		t.Fatalf("metadata must still list the document while its content exists")
	}
}

func TestBuildStorageKeySanitizesFilename(t *testing.T) {
	ownerID := uuid.New()
	now := time.UnixMilli(1700000000000)

	key := buildStorageKey(ownerID, "análisis sangre (Q3).pdf", now)
	want := fmt.Sprintf("%s/1700000000000-an_lisis_sangre__Q3_.pdf", ownerID)
	if key != want {
		t.Fatalf("buildStorageKey = %q, want %q", key, want)
	}

	noExt := buildStorageKey(ownerID, "scan", now)
	if !strings.HasSuffix(noExt, ".bin") {
		t.Fatalf("missing extension must default to .bin, got %q", noExt)
	}
}

// --- helpers & fakes ---

func seedRecord(repo *fakeRepo, blobs *fakeBlobStore, ownerID uuid.UUID, title string, uploadedAt time.Time) Record {
	rec := Record{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Title:      title,
		StorageKey: fmt.Sprintf("%s/%d-%s.jpg", ownerID, uploadedAt.UnixMilli(), title),
		MediaKind:  MediaKindImage,
		Category:   CategoryOther,
		UploadedAt: uploadedAt,
	}
	repo.records[rec.ID] = rec
	blobs.objects[rec.StorageKey] = []byte("data")
	return rec
}

func buildFileHeader(t *testing.T, fieldName, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, filename)}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart error: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(int64(len(content)) + 1024); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}

	return req.MultipartForm.File[fieldName][0]
}

type fakeRepo struct {
	records   map[uuid.UUID]Record
	insertErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[uuid.UUID]Record)}
}

func (f *fakeRepo) Insert(ctx context.Context, rec Record) (Record, error) {
	if f.insertErr != nil {
		return Record{}, f.insertErr
	}
	rec.UploadedAt = time.Now()
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakeRepo) Get(ctx context.Context, ownerID, id uuid.UUID) (Record, error) {
	rec, ok := f.records[id]
	if !ok || rec.OwnerID != ownerID {
		return Record{}, ErrDocumentNotFound
	}
	return rec, nil
}

func (f *fakeRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Record, error) {
	var list []Record
	for _, rec := range f.records {
		if rec.OwnerID == ownerID {
			list = append(list, rec)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].UploadedAt.After(list[j].UploadedAt)
	})
	return list, nil
}

func (f *fakeRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	rec, ok := f.records[id]
	if !ok || rec.OwnerID != ownerID {
		return ErrDocumentNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeBlobStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
	removeErr error

	removeCount int
	signCount   int
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	if _, ok := f.objects[key]; ok {
		return ErrObjectExists
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeBlobStore) Remove(ctx context.Context, key string) error {
	f.removeCount++
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[key]; !ok {
		return "", ErrObjectNotFound
	}
	f.signCount++
	return fmt.Sprintf("https://blob.test/%s/%s?token=%d&expires=%d", testBucket, key, f.signCount, int64(ttl.Seconds())), nil
}
