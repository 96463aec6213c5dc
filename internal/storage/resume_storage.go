package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrTooLarge: файл превысил лимит при записи.
var ErrTooLarge = errors.New("storage: file exceeds size limit")

// ResumeStorage: временный каталог для резюме: файл пишется на диск до того,
// как уйдёт во внешний API, и удаляется после отправки.
type ResumeStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// SpooledFile: резюме, сохранённое во временный каталог.
type SpooledFile struct {
	Path string
	Name string
	Size int64
}

// NewResumeStorage создаёт каталог для временных файлов.
func NewResumeStorage(rootPath string, maxUploadMB int64) (*ResumeStorage, error) {
	if err := os.MkdirAll(rootPath, 0o700); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &ResumeStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// MaxBytes возвращает лимит размера файла.
func (s *ResumeStorage) MaxBytes() int64 {
	return s.maxUploadBytes
}

// Spool сохраняет файл. Имя на диске случайное, исходное имя возвращается в Name.
func (s *ResumeStorage) Spool(ctx context.Context, originalName string, r io.Reader) (*SpooledFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	safeName := sanitizeFilename(originalName)
	fileName := fmt.Sprintf("%s_%d%s", uuid.NewString(), time.Now().UnixNano(), strings.ToLower(filepath.Ext(safeName)))

	targetPath := filepath.Join(s.rootPath, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limitedReader := io.LimitedReader{R: r, N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return nil, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return nil, fmt.Errorf("%w: %d байт", ErrTooLarge, s.maxUploadBytes)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return nil, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return nil, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return &SpooledFile{Path: targetPath, Name: safeName, Size: written}, nil
}

// Open открывает сохранённый файл на чтение.
func (s *ResumeStorage) Open(file *SpooledFile) (io.ReadSeekCloser, error) {
	if !s.owns(file.Path) {
		return nil, fmt.Errorf("storage: путь вне каталога хранилища")
	}
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось открыть файл: %w", err)
	}
	return f, nil
}

// Delete удаляет файл из хранилища.
func (s *ResumeStorage) Delete(file *SpooledFile) error {
	if file == nil || !s.owns(file.Path) {
		return nil
	}
	if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

func (s *ResumeStorage) owns(path string) bool {
	rel, err := filepath.Rel(s.rootPath, path)
	return err == nil && !strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)
}

// sanitizeFilename удаляет потенциально опасные символы.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" || name == "." {
		name = "resume"
	}
	return name
}
