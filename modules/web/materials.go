package web

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/borrmann/bautagebuch/handler"
	"github.com/borrmann/bautagebuch/pkg/api"
	"github.com/borrmann/bautagebuch/pkg/cache"
	"github.com/borrmann/bautagebuch/pkg/logger"
	"github.com/borrmann/bautagebuch/pkg/toast"
)

// Materials serves material details and deletion.
type Materials struct {
	backend Backend
	catalog *Catalog
	tables  *Tables
	toasts  *toast.Manager
	logger  *slog.Logger

	mu   sync.Mutex
	seqs *cache.LRU[string, *api.Sequencer]
}

// NewMaterials creates the material handlers.
func NewMaterials(backend Backend, catalog *Catalog, tables *Tables, toasts *toast.Manager, l *slog.Logger) *Materials {
	if l == nil {
		l = logger.Nop()
	}
	return &Materials{
		backend: backend,
		catalog: catalog,
		tables:  tables,
		toasts:  toasts,
		logger:  l,
		seqs:    cache.NewLRU[string, *api.Sequencer](MaxForms),
	}
}

func (h *Materials) sequencer(session string) *api.Sequencer {
	h.mu.Lock()
	defer h.mu.Unlock()
	seq, _ := h.seqs.GetOrLoad(session, func() (*api.Sequencer, error) {
		return &api.Sequencer{}, nil
	})
	return seq
}

// info shows category and unit of the selected material. Only the answer
// to the latest selection of a session is shown.
func (h *Materials) info(ctx handler.Context, _ struct{}) handler.Response {
	id := ctx.Param("id")
	seq := h.sequencer(SessionID(ctx))
	n := seq.Next()

	info, err := h.backend.MaterialInfo(ctx, id)
	if !seq.IsLatest(n) {
		return handler.Empty()
	}
	if err != nil {
		if !errors.Is(err, api.ErrEmptyID) {
			h.logger.LogAttrs(ctx, slog.LevelWarn, "failed to load material info",
				logger.Component("materials"),
				slog.String("material", id),
				logger.Error(err),
			)
		}
		info = api.MaterialInfo{}
	}
	return handler.Stream(handler.Element(MaterialInfo(info)))
}

// remove deletes a material on the server and drops its row.
func (h *Materials) remove(ctx handler.Context, _ struct{}) handler.Response {
	id := ctx.Param("id")
	session := SessionID(ctx)

	if err := h.backend.DeleteMaterial(ctx, id); err != nil {
		h.logger.LogAttrs(ctx, slog.LevelWarn, "failed to delete material",
			logger.Component("materials"),
			slog.String("material", id),
			logger.Error(err),
		)
		notify(ctx, h.toasts, h.logger, session, (*toast.Manager).Error, api.MessageDeleteFailed)
		return handler.Stream()
	}

	h.catalog.Remove(id)
	notify(ctx, h.toasts, h.logger, session, (*toast.Manager).Success, api.MessageMaterialDeleted)

	actions := []handler.Action{handler.Remove("#" + RowID(MaterialsTableID, id))}
	if v, err := h.tables.View(session, MaterialsTableID); err == nil {
		actions = append(actions, handler.Element(TableStats(v)))
	}
	return handler.Stream(actions...)
}
