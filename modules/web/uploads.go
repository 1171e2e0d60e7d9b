package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"sync"

	"github.com/borrmann/bautagebuch/handler"
	"github.com/borrmann/bautagebuch/pkg/cache"
	"github.com/borrmann/bautagebuch/pkg/logger"
	"github.com/borrmann/bautagebuch/pkg/toast"
	"github.com/borrmann/bautagebuch/pkg/upload"
)

// UploadField is the multipart field carrying the selected files.
const UploadField = "files"

// MaxUploadBody bounds a whole multipart request.
const MaxUploadBody = 5*upload.MaxSize + 1<<20

// selection is the set of files a session currently has selected.
// The slices run parallel to list.
type selection struct {
	list     upload.List
	previews []string
	paths    []string
}

// Uploads receives selected photos and documents, shows them with
// previews and lets the user drop single files again.
type Uploads struct {
	store  *upload.LocalStore
	toasts *toast.Manager
	logger *slog.Logger

	mu         sync.Mutex
	selections *cache.LRU[string, selection]
}

// NewUploads creates the upload handlers over store.
func NewUploads(store *upload.LocalStore, toasts *toast.Manager, l *slog.Logger) *Uploads {
	if l == nil {
		l = logger.Nop()
	}
	return &Uploads{
		store:      store,
		toasts:     toasts,
		logger:     l,
		selections: cache.NewLRU[string, selection](MaxForms),
	}
}

// Items returns the session's selection as shown in the list.
func (h *Uploads) Items(session string) []PreviewItem {
	h.mu.Lock()
	sel, _ := h.selections.Get(session)
	h.mu.Unlock()
	return sel.items()
}

func (s selection) items() []PreviewItem {
	items := s.list.Items()
	out := make([]PreviewItem, len(items))
	for i, it := range items {
		out[i] = PreviewItem{Item: it}
		if i < len(s.previews) {
			out[i].Preview = s.previews[i]
		}
	}
	return out
}

// preview replaces the selection with the posted files. Rejected files
// are reported in a toast each; accepted ones are stored.
func (h *Uploads) preview(ctx handler.Context, _ struct{}) handler.Response {
	r := ctx.Request()
	r.Body = http.MaxBytesReader(ctx.ResponseWriter(), r.Body, MaxUploadBody)
	if err := r.ParseMultipartForm(upload.MaxSize); err != nil {
		return handler.Fail(errors.Join(handler.ErrBadRequest, err))
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	session := SessionID(ctx)
	var (
		items    []upload.Item
		previews []string
		paths    []string
	)
	for _, fh := range r.MultipartForm.File[UploadField] {
		stored, err := h.store.Save(ctx, session, fh)
		if err != nil {
			h.logger.LogAttrs(ctx, slog.LevelInfo, "upload rejected",
				logger.Component("upload"),
				slog.String("file", fh.Filename),
				logger.Error(err),
			)
			notify(ctx, h.toasts, h.logger, session, (*toast.Manager).Error, rejection(upload.SanitizeFilename(fh.Filename), err))
			continue
		}
		preview := ""
		if upload.IsImage(stored.ContentType) {
			if p, err := upload.Preview(fh); err == nil {
				preview = p
			}
		}
		items = append(items, upload.Item{Name: stored.Name, Size: stored.Size})
		previews = append(previews, preview)
		paths = append(paths, stored.Path)
	}

	next := selection{list: upload.ListOf(items...), previews: previews, paths: paths}
	h.mu.Lock()
	prev, _ := h.selections.Get(session)
	h.selections.Put(session, next)
	h.mu.Unlock()
	h.discard(ctx, prev.paths...)

	return handler.Stream(handler.Element(UploadList(next.items())))
}

// remove drops file i from the session's selection.
func (h *Uploads) remove(ctx handler.Context, _ struct{}) handler.Response {
	i, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		return handler.Fail(handler.ErrBadRequest)
	}
	session := SessionID(ctx)

	h.mu.Lock()
	sel, _ := h.selections.Get(session)
	list, err := sel.list.Remove(i)
	if err != nil {
		h.mu.Unlock()
		return handler.Fail(errors.Join(handler.ErrNotFound, err))
	}
	path := sel.paths[i]
	sel = selection{
		list:     list,
		previews: slices.Delete(slices.Clone(sel.previews), i, i+1),
		paths:    slices.Delete(slices.Clone(sel.paths), i, i+1),
	}
	h.selections.Put(session, sel)
	h.mu.Unlock()

	h.discard(ctx, path)
	return handler.Stream(handler.Element(UploadList(sel.items())))
}

func (h *Uploads) discard(ctx handler.Context, paths ...string) {
	for _, p := range paths {
		if err := h.store.Delete(p); err != nil {
			h.logger.LogAttrs(ctx, slog.LevelWarn, "failed to delete upload",
				logger.Component("upload"),
				slog.String("path", p),
				logger.Error(err),
			)
		}
	}
}

func rejection(name string, err error) string {
	switch {
	case errors.Is(err, upload.ErrFileTooLarge):
		return fmt.Sprintf("%s ist zu groß (max. %s).", name, upload.FormatSize(upload.MaxSize))
	case errors.Is(err, upload.ErrTypeNotAllowed):
		return fmt.Sprintf("%s hat ein nicht unterstütztes Format. %s", name, upload.HintText)
	default:
		return fmt.Sprintf("%s konnte nicht gespeichert werden.", name)
	}
}
