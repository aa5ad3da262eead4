// Package testutil builds fixtures shared by package tests.
package testutil

import (
	"bytes"
	"mime/multipart"
	"testing"
)

var (
	PNGBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	JPEGBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 64)...)
	MP4Bytes  = append([]byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00isomiso2"), make([]byte, 64)...)
)

// FileHeader returns a multipart file header backed by content, as a parsed upload would be.
func FileHeader(t testing.TB, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(int64(len(content)) + 1<<20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

// Image returns a PNG upload.
func Image(t testing.TB, filename string) *multipart.FileHeader {
	t.Helper()
	return FileHeader(t, filename, PNGBytes)
}

// Video returns an MP4 upload.
func Video(t testing.TB, filename string) *multipart.FileHeader {
	t.Helper()
	return FileHeader(t, filename, MP4Bytes)
}
