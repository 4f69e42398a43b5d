package api

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/callsight/util"
)

// clientFilename normalizes a client-supplied upload name for logs and
// response payloads. Browsers may send full paths, and the multipart
// filename header can carry control characters.
func clientFilename(fh *multipart.FileHeader) string {
	return util.SanitizeString(filepath.Base(fh.Filename))
}

// saveUpload writes one multipart upload to a uniquely named file in the
// system temp directory and returns its path plus a cleanup function.
// The cleanup must run on every exit path.
func saveUpload(c *gin.Context, fh *multipart.FileHeader, id string) (string, func(), error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	path := filepath.Join(os.TempDir(), fmt.Sprintf("callsight_%s%s", id, ext))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		return "", nil, fmt.Errorf("save upload %s: %w", fh.Filename, err)
	}
	return path, func() { os.Remove(path) }, nil
}
