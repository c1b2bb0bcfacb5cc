package service

import "io"

// ImageUpload is an image file received from a multipart form, on its way to
// the media store.
type ImageUpload struct {
	Reader   io.Reader
	FileName string
}
