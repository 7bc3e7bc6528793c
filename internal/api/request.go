package api

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// Method identifies the kind of request. Upload is a multipart POST.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodUpload Method = "UPLOAD"
)

// HTTPMethod returns the verb sent on the wire.
func (m Method) HTTPMethod() string {
	if m == MethodUpload {
		return "POST"
	}
	return string(m)
}

// Request describes a single call. It is built per call and must not be
// modified after being passed to Client.Do.
type Request struct {
	Method   Method
	Endpoint string
	Params   Params
	Body     any

	// Upload only.
	File   *File
	Fields map[string]any
}

// File is an upload payload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// NewFile wraps in-memory content; the content type is sniffed when empty.
func NewFile(name string, data []byte) *File {
	return &File{Name: name, Data: data}
}

// ReadFile loads a file from disk for upload.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload file: %w", err)
	}
	return &File{Name: filepath.Base(path), Data: data}, nil
}

// MediaType returns the explicit content type or one detected from the data.
func (f *File) MediaType() string {
	if f.ContentType != "" {
		return f.ContentType
	}
	return mimetype.Detect(f.Data).String()
}
