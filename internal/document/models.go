package document

import (
	"time"

	"github.com/google/uuid"
)

// MediaKind classifies the stored file, derived once at upload time.
type MediaKind string

const (
	MediaKindPDF   MediaKind = "pdf"
	MediaKindImage MediaKind = "image"
)

// Category groups documents by the kind of medical event they record.
type Category string

const (
	CategoryUltrasound   Category = "ultrasound"
	CategoryLabResult    Category = "labresult"
	CategoryPrescription Category = "prescription"
	CategoryOther        Category = "other"
)

// ParseCategory normalizes a raw category value. An empty value maps to
// CategoryOther; anything unknown is rejected.
func ParseCategory(raw string) (Category, bool) {
	switch Category(raw) {
	case "":
		return CategoryOther, true
	case CategoryUltrasound, CategoryLabResult, CategoryPrescription, CategoryOther:
		return Category(raw), true
	default:
		return "", false
	}
}

// Record is one uploaded medical document. StorageKey, MediaKind,
// OwnerID and UploadedAt are immutable after creation.
type Record struct {
	ID           uuid.UUID  `json:"id"`
	OwnerID      uuid.UUID  `json:"owner_id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	StorageKey   string     `json:"storage_key"`
	MediaKind    MediaKind  `json:"media_kind"`
	Category     Category   `json:"category"`
	FileSize     int64      `json:"file_size"`
	DocumentDate *time.Time `json:"document_date,omitempty"`
	UploadedAt   time.Time  `json:"uploaded_at"`
}

// View is a Record decorated with a short-lived signed URL. SignedURL
// is empty when link issuance failed for that record.
type View struct {
	Record
	SignedURL string `json:"signed_url,omitempty"`
}
