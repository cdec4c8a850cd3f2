package client

import (
	"fmt"
	"os"
	"strings"

	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/utils"
	"github.com/pkg/errors"
)

//UploadLimits are the constraints an upload must satisfy, checked before any network call
type UploadLimits struct {
	MaxMB   int
	Formats []string //lower case extensions, without dot
}

//DefaultUploadLimits returns 500MB, mp4 and mov
func DefaultUploadLimits() UploadLimits {
	return UploadLimits{MaxMB: utils.MaxUploadMB, Formats: utils.AllowedFormats}
}

//ValidateUpload checks given file name's extension (case insensitive) and size in bytes.
//Returns a *models.ValidationError carrying the message shown to the user.
func ValidateUpload(filename string, size int64, limits UploadLimits) error {
	if !utils.InSlice(utils.FileExt(filename), limits.Formats) {
		return &models.ValidationError{Field: "format", Message: fmt.Sprintf(utils.UnsupportedFormatMessage, formatList(limits.Formats))}
	}

	if size > int64(limits.MaxMB)*utils.BytesPerMB {
		return &models.ValidationError{Field: "size", Message: fmt.Sprintf(utils.FileTooLargeMessage, limits.MaxMB)}
	}

	return nil
}

//ValidateFile runs ValidateUpload on a local file
func ValidateFile(path string, limits UploadLimits) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "ValidateFile: could not read '%s'", path)
	}
	if info.IsDir() {
		return nil, &models.ValidationError{Field: "file", Message: utils.NoFileMessage}
	}

	return info, ValidateUpload(info.Name(), info.Size(), limits)
}

//formatList returns "MP4 or MOV" for [mp4 mov], "MP4, MOV or MKV" for [mp4 mov mkv]
func formatList(formats []string) string {
	upper := make([]string, len(formats))
	for i, f := range formats {
		upper[i] = strings.ToUpper(f)
	}

	if len(upper) < 2 {
		return strings.Join(upper, "")
	}
	return strings.Join(upper[:len(upper)-1], ", ") + " or " + upper[len(upper)-1]
}
