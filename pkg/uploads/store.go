package uploads

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store persists an uploaded file and returns the URL it will be served from.
type Store interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// ObjectName builds a collision-resistant name for an upload: creation
// timestamp plus a random id, keeping the original extension.
func ObjectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString(), ext)
}
