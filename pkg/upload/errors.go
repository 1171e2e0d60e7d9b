package upload

import "errors"

var (
	ErrNilFileHeader      = errors.New("file header is nil")
	ErrFileTooLarge       = errors.New("file size exceeds maximum allowed size")
	ErrTypeNotAllowed     = errors.New("file type is not allowed")
	ErrNotImage           = errors.New("file is not an image")
	ErrIndexOutOfRange    = errors.New("file index out of range")
	ErrFailedToOpenFile   = errors.New("failed to open file")
	ErrFailedToReadFile   = errors.New("failed to read file")
	ErrFailedToWriteFile  = errors.New("failed to write file")
	ErrInvalidPath        = errors.New("invalid path")
	ErrInvalidStorageRoot = errors.New("invalid storage root")
)
