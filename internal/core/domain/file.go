package domain

import "io"

// FileUpload carries an incoming file independently of the transport it
// arrived on. Content is read exactly once by the storage client.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}
