// Package upload checks, lists, previews and stores user uploads.
//
// Only JPEG, PNG and PDF files up to 10MB are accepted. Types are detected
// from file content, not from the name the browser sent.
package upload
