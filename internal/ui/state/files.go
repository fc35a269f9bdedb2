package state

import (
	"github.com/google/uuid"

	"github.com/takneev/artisan-studio/internal/ui/model"
)

// FileSet is the ordered selection backing both the preview list and the next upload.
type FileSet struct {
	files []model.SelectedFile
}

// Replace swaps the selection for blobs, giving each a fresh slot key.
func (s *FileSet) Replace(blobs []model.Blob) {
	files := make([]model.SelectedFile, 0, len(blobs))
	for _, b := range blobs {
		if b == nil {
			continue
		}
		files = append(files, model.SelectedFile{Key: uuid.NewString(), Blob: b})
	}
	s.files = files
}

// Remove drops the entry at index. Slot keys of the remaining entries are kept.
func (s *FileSet) Remove(index int) bool {
	if index < 0 || index >= len(s.files) {
		return false
	}
	s.files = append(s.files[:index:index], s.files[index+1:]...)
	return true
}

// Clear empties the selection.
func (s *FileSet) Clear() {
	s.files = nil
}

// Len returns the number of selected files.
func (s *FileSet) Len() int {
	return len(s.files)
}

// First returns the first selected file, used by the AI helpers.
func (s *FileSet) First() (model.SelectedFile, bool) {
	if len(s.files) == 0 {
		return model.SelectedFile{}, false
	}
	return s.files[0], true
}

// Files returns a copy of the selection.
func (s *FileSet) Files() []model.SelectedFile {
	cp := make([]model.SelectedFile, len(s.files))
	copy(cp, s.files)
	return cp
}

// Blobs returns the selected blobs in order.
func (s *FileSet) Blobs() []model.Blob {
	blobs := make([]model.Blob, len(s.files))
	for i, f := range s.files {
		blobs[i] = f.Blob
	}
	return blobs
}
