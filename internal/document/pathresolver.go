package document

import "strings"

const legacyObjectAPIPrefix = "/storage/v1/object/"

// ResolveStorageKey maps any persisted file reference to the canonical
// storage key. Current rows store the bare key; rows written before the
// bucket went private carry a fully-qualified URL in one of two shapes:
// the object-API path ("…/storage/v1/object/{bucket}/{key}") or a plain
// bucket path ("…/{bucket}/{key}"). Unparseable URLs are returned
// unchanged and the caller handles link issuance failure.
func ResolveStorageKey(reference, bucket string) string {
	if !strings.HasPrefix(reference, "http://") && !strings.HasPrefix(reference, "https://") {
		return reference
	}

	marker := legacyObjectAPIPrefix + bucket + "/"
	if idx := strings.Index(reference, marker); idx != -1 {
		return reference[idx+len(marker):]
	}

	marker = "/" + bucket + "/"
	if idx := strings.Index(reference, marker); idx != -1 {
		return reference[idx+len(marker):]
	}

	return reference
}
