package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"

	"github.com/takneev/artisan-studio/internal/ui/model"
)

// multipartForm accumulates fields and files, keeping the first error.
type multipartForm struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error
}

func newMultipartForm() *multipartForm {
	f := &multipartForm{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

func (f *multipartForm) field(name, value string) {
	if f.err != nil {
		return
	}
	f.err = f.writer.WriteField(name, value)
}

func (f *multipartForm) file(ctx context.Context, name string, blob model.Blob) {
	if f.err != nil {
		return
	}
	if blob == nil {
		f.err = fmt.Errorf("file %q: no file", name)
		return
	}
	contentType := blob.Type()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     name,
		"filename": blob.Name(),
	}))
	header.Set("Content-Type", contentType)

	part, err := f.writer.CreatePart(header)
	if err != nil {
		f.err = err
		return
	}
	rc, err := blob.Open(ctx)
	if err != nil {
		f.err = fmt.Errorf("open %s: %w", blob.Name(), err)
		return
	}
	defer rc.Close()
	if _, err := io.Copy(part, rc); err != nil {
		f.err = fmt.Errorf("read %s: %w", blob.Name(), err)
	}
}

func (f *multipartForm) finish() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.writer.Close(); err != nil {
		return nil, "", err
	}
	return &f.buf, f.writer.FormDataContentType(), nil
}
