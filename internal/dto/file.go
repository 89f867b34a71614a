package dto

// FileUpload is an uploaded file read into memory by the handler.
type FileUpload struct {
	Name string
	Data []byte
}
