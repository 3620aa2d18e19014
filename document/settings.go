package document

import (
	"time"

	"github.com/google/uuid"
)

// Settings carries the document-wide behavior persisted in the settings
// part.
type Settings struct {
	// DocumentID identifies the document across sessions and renames. It
	// is generated at creation and survives save/load round trips.
	DocumentID uuid.UUID

	// TrackChanges asks editors to record changes when the document is
	// next opened. Saving sets it from the live tracking state.
	TrackChanges bool
}

func newSettings() *Settings {
	return &Settings{DocumentID: uuid.New()}
}

// CoreProperties is the document metadata persisted in the core-properties
// part.
type CoreProperties struct {
	Title          string
	Subject        string
	Creator        string
	Keywords       string
	Description    string
	LastModifiedBy string
	Revision       int
	Created        time.Time
	Modified       time.Time
}

func newCoreProperties() *CoreProperties {
	now := time.Now().UTC().Truncate(time.Second)
	return &CoreProperties{Revision: 1, Created: now, Modified: now}
}
