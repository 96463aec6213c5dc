package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// HeaderSize: сколько байт начала файла нужно для определения типа.
const HeaderSize = 512

// allowedResumeTypes: расширение файла → допустимый тип по магическим байтам.
var allowedResumeTypes = map[string]string{
	".pdf":  "pdf",
	".doc":  "doc",
	".docx": "docx",
}

// AllowedResumeExtensions возвращает список для сообщений об ошибке.
func AllowedResumeExtensions() []string {
	return []string{".pdf", ".doc", ".docx"}
}

// ValidateResume проверяет размер, расширение и содержимое резюме:
// расширение и магические байты должны совпадать.
func ValidateResume(fileName string, size, maxBytes int64, header []byte) error {
	if size <= 0 {
		return fmt.Errorf("Please upload your resume")
	}
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("Please upload a file smaller than %dMB", maxBytes/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	want, ok := allowedResumeTypes[ext]
	if !ok {
		return fmt.Errorf("Resume must be one of: %s", strings.Join(AllowedResumeExtensions(), ", "))
	}

	kind, err := filetype.Match(header)
	if err != nil || kind == filetype.Unknown {
		return fmt.Errorf("Unrecognised resume file format")
	}
	if kind.Extension != want {
		return fmt.Errorf("Resume content does not match the %s extension", ext)
	}
	return nil
}
