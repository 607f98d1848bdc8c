package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rusenback/accident-monitor/internal/model"
)

// UploadField is the multipart field the backend reads the video from
const UploadField = "video"

// ErrNoFile means there is nothing to upload at the given path
var ErrNoFile = errors.New("no video file selected")

// CheckVideoFile reports ErrNoFile unless path names a readable regular file
func CheckVideoFile(path string) error {
	if path == "" {
		return ErrNoFile
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return ErrNoFile
	}
	return nil
}

// UploadVideo posts the file at path to /upload_video. The body is decoded
// whatever the status code, since the backend reports rejections as
// {"error": ...} with a 4xx status.
func (c *Client) UploadVideo(ctx context.Context, path string) (*model.UploadResult, error) {
	if err := CheckVideoFile(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}

	// The form is written into a pipe while the request reads it, so the
	// file is never held in memory. Closing the request body unblocks the
	// writer if the request fails early.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	// Uploads get no request timeout of their own; large files may take a while.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.String()+PathUploadVideo, pr)
	if err != nil {
		f.Close()
		pr.Close()
		return nil, fmt.Errorf("build request %s: %w", PathUploadVideo, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	go writeForm(pw, mw, f, filepath.Base(path))
	defer pr.Close()

	resp, err := c.do(req, PathUploadVideo)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result model.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode %s (status %d): %w", PathUploadVideo, resp.StatusCode, err)
	}
	return &result, nil
}

// writeForm streams f as the video part of mw and closes the pipe with the
// first error, or nil once the form is complete
func writeForm(pw *io.PipeWriter, mw *multipart.Writer, f *os.File, name string) {
	defer f.Close()

	part, err := mw.CreateFormFile(UploadField, name)
	if err != nil {
		pw.CloseWithError(fmt.Errorf("create form file: %w", err))
		return
	}
	if _, err := io.Copy(part, f); err != nil {
		pw.CloseWithError(fmt.Errorf("read video: %w", err))
		return
	}
	pw.CloseWithError(mw.Close())
}
