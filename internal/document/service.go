package document

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SignedURLTTL bounds how long an issued view link stays valid. Fixed;
// a leaked link is only good for ten minutes and a single object.
const SignedURLTTL = 600 * time.Second

const listLinkConcurrency = 8

type metadataStore interface {
	Insert(ctx context.Context, rec Record) (Record, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Record, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Record, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type blobStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Service orchestrates the document vault: upload, list, view-link and
// delete workflows spanning the blob store and the metadata repository.
type Service struct {
	repo    metadataStore
	blobs   blobStore
	bucket  string
	logg    *zap.Logger
	nowFunc func() time.Time
}

// NewService constructs a vault service.
func NewService(repo metadataStore, blobs blobStore, bucket string, logg *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		blobs:   blobs,
		bucket:  bucket,
		logg:    logg,
		nowFunc: time.Now,
	}
}

// UploadInput carries user-supplied fields for a new document.
type UploadInput struct {
	Title        string
	Description  *string
	DocumentDate *time.Time
	Category     Category
}

// Upload validates the input, writes the blob, then inserts metadata.
// If the metadata insert fails the blob stays behind as an orphan; it
// is unreachable without a metadata row and is not rolled back.
func (s *Service) Upload(ctx context.Context, ownerID uuid.UUID, fileHeader *multipart.FileHeader, input UploadInput) (Record, error) {
	if strings.TrimSpace(input.Title) == "" {
		return Record{}, ErrTitleRequired
	}
	if fileHeader == nil {
		return Record{}, ErrFileRequired
	}

	contentType := detectContentType(fileHeader)
	kind := MediaKindImage
	if strings.Contains(contentType, "pdf") {
		kind = MediaKindPDF
	}

	category := input.Category
	if category == "" {
		category = CategoryOther
	}

	key := buildStorageKey(ownerID, fileHeader.Filename, s.nowFunc())

	file, err := fileHeader.Open()
	if err != nil {
		return Record{}, fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	if err := s.blobs.Upload(ctx, key, file, fileHeader.Size, contentType); err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		StorageKey:   key,
		MediaKind:    kind,
		Category:     category,
		FileSize:     fileHeader.Size,
		DocumentDate: input.DocumentDate,
	}

	stored, err := s.repo.Insert(ctx, rec)
	if err != nil {
		s.logg.Error("metadata insert failed after blob write, orphaned blob left behind",
			zap.String("storage_key", key),
			zap.Error(err),
		)
		return Record{}, err
	}

	return stored, nil
}

// List returns the owner's documents newest-first, each decorated with
// a signed view link. Link issuance fans out per record; one failed
// record is logged and returned without a link, never failing the list.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]View, error) {
	records, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	views := make([]View, len(records))
	var group errgroup.Group
	group.SetLimit(listLinkConcurrency)

	for i, rec := range records {
		i, rec := i, rec
		views[i] = View{Record: rec}
		group.Go(func() error {
			key := ResolveStorageKey(rec.StorageKey, s.bucket)
			link, err := s.blobs.SignedURL(ctx, key, SignedURLTTL)
			if err != nil {
				s.logg.Warn("signed url issuance failed",
					zap.String("document_id", rec.ID.String()),
					zap.Error(err),
				)
				return nil
			}
			views[i].SignedURL = link
			return nil
		})
	}
	_ = group.Wait()

	return views, nil
}

// ViewLink re-issues a fresh signed URL for a single document, used
// immediately before rendering since the TTL from List may have lapsed.
func (s *Service) ViewLink(ctx context.Context, ownerID, docID uuid.UUID) (string, error) {
	rec, err := s.repo.Get(ctx, ownerID, docID)
	if err != nil {
		return "", err
	}

	key := ResolveStorageKey(rec.StorageKey, s.bucket)
	link, err := s.blobs.SignedURL(ctx, key, SignedURLTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLinkUnavailable, err)
	}
	return link, nil
}

// Delete removes the blob first, then the metadata row. A failed blob
// removal aborts before metadata is touched so the list never drops a
// pointer to content that is still stored.
func (s *Service) Delete(ctx context.Context, ownerID, docID uuid.UUID) error {
	rec, err := s.repo.Get(ctx, ownerID, docID)
	if err != nil {
		return err
	}

	key := ResolveStorageKey(rec.StorageKey, s.bucket)
	if err := s.blobs.Remove(ctx, key); err != nil {
		return err
	}

	return s.repo.Delete(ctx, ownerID, docID)
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// buildStorageKey yields "{ownerID}/{unixMilli}-{sanitizedBase}.{ext}".
// The timestamp segment makes collisions practically impossible; the
// gateway still refuses to overwrite on the off chance of one.
func buildStorageKey(ownerID uuid.UUID, filename string, now time.Time) string {
	base := filename
	ext := "bin"
	if idx := strings.LastIndex(filename, "."); idx > 0 && idx < len(filename)-1 {
		base = filename[:idx]
		ext = strings.ToLower(filename[idx+1:])
	}

	safeBase := unsafeKeyChars.ReplaceAllString(base, "_")
	if safeBase == "" {
		safeBase = "upload"
	}
	safeExt := unsafeKeyChars.ReplaceAllString(ext, "_")

	return fmt.Sprintf("%s/%d-%s.%s", ownerID, now.UnixMilli(), safeBase, safeExt)
}

func detectContentType(fileHeader *multipart.FileHeader) string {
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}
