package badger

import (
	"fmt"

	"github.com/poiesic/helpdesk/core"
)

// Key prefixes for different data types
const (
	documentPrefix       = "docrec"
	documentSourcePrefix = "docrecs"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentPrefix, id))
}

// makeSourceKey generates a composite key for the source index.
// Format: prefix:source:id
func makeSourceKey(source string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", documentSourcePrefix, source, id))
}

// makePartialSourceKey generates a partial key for scanning all chunks of a source.
func makePartialSourceKey(source string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", documentSourcePrefix, source))
}
