package models

// ExtractRequest captures the validated fields of a resume upload before the
// document enters the extraction pipeline.
type ExtractRequest struct {
	FileName  string `json:"file_name" validate:"required"`
	Extension string `json:"extension" validate:"required,oneof=.pdf .docx .txt"`
	FileSize  int64  `json:"file_size" validate:"gt=0"`
}
