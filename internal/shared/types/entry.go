package types

// EntryType distinguishes files from directories in a listing
type EntryType string

const (
	EntryFile      EntryType = "file"
	EntryDirectory EntryType = "directory"
)

// Entry represents a single child of a listed directory
type Entry struct {
	Name string    `json:"name"`
	Path string    `json:"path"` // Relative to the accessor root
	Type EntryType `json:"type"`
}

// IsDir reports whether the entry is a directory
func (e Entry) IsDir() bool {
	return e.Type == EntryDirectory
}

// FileContent holds the decoded text of a file
type FileContent struct {
	Content string `json:"content"`
}

// SoftErrorBody is the payload shape of a soft failure
type SoftErrorBody struct {
	Error string `json:"error"`
}

// TypeOf maps an is-directory flag to its entry type
func TypeOf(isDir bool) EntryType {
	if isDir {
		return EntryDirectory
	}
	return EntryFile
}
