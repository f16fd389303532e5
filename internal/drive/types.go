package drive

import "time"

const (
	// FolderMimeType is the MIME type Google Drive assigns to folders.
	FolderMimeType = "application/vnd.google-apps.folder"

	// MaxPageSize is the largest page the Drive files.list API accepts per
	// request for the field set we ask for.
	MaxPageSize = 100
)

// FileRecord is an immutable snapshot of a Drive file's metadata at fetch
// time. Records are never cached beyond the tool call that produced them.
type FileRecord struct {
	// ID is the stable, opaque Drive identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// MimeType is the Drive content-type tag. Google-native documents carry
	// application/vnd.google-apps.* types and have no byte size.
	MimeType string `json:"mimeType"`

	// Size is the size in bytes; zero for native document types and folders.
	Size int64 `json:"size,omitempty"`

	// CreatedTime is when the file was created.
	CreatedTime time.Time `json:"createdTime,omitzero"`

	// ModifiedTime is when the file was last modified by anyone.
	ModifiedTime time.Time `json:"modifiedTime,omitzero"`

	// ViewedByMeTime is when the authorized user last viewed the file.
	ViewedByMeTime time.Time `json:"viewedByMeTime,omitzero"`

	// WebViewLink opens the file in the relevant Google viewer.
	WebViewLink string `json:"webViewLink,omitempty"`

	// Parents are the IDs of the containing folders.
	Parents []string `json:"parents,omitempty"`

	// Owners identify who owns the file.
	Owners []Owner `json:"owners,omitempty"`

	// Shared reports whether the file is shared with others.
	Shared bool `json:"shared,omitempty"`
}

// Owner identifies a Drive user that owns a file.
type Owner struct {
	DisplayName  string `json:"displayName,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// IsFolder reports whether the record describes a folder.
func (f *FileRecord) IsFolder() bool {
	return f.MimeType == FolderMimeType
}

// ListOptions shape a single files.list page request.
type ListOptions struct {
	// Query is a Drive query-language expression. Build it with the query
	// helpers in this package; raw user input must never reach this field.
	Query string

	// OrderBy is the Drive sort expression, e.g. "modifiedTime desc".
	OrderBy string

	// PageSize is the requested page size (capped at MaxPageSize).
	PageSize int

	// PageToken resumes a paged listing. Empty on the first page.
	PageToken string
}

// RecentMode selects the timestamp a recency listing filters and orders by.
type RecentMode string

const (
	// ModeEdited filters by last modification time.
	ModeEdited RecentMode = "edited"
	// ModeViewed filters by the authorized user's last view time.
	ModeViewed RecentMode = "viewed"
)

// Valid reports whether the mode is one of the defined values.
func (m RecentMode) Valid() bool {
	return m == ModeEdited || m == ModeViewed
}
