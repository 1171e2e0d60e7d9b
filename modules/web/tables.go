package web

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/borrmann/bautagebuch/handler"
	"github.com/borrmann/bautagebuch/pkg/cache"
	"github.com/borrmann/bautagebuch/pkg/logger"
	"github.com/borrmann/bautagebuch/pkg/table"
)

// TableSource provides the rows of a table.
type TableSource interface {
	Table() *table.Table
}

type tableKey struct {
	session string
	table   string
}

type tableState struct {
	sort table.SortState
	term string
}

// Tables keeps the sort order and filter of every session's tables.
type Tables struct {
	sources   map[string]TableSource
	deletable map[string]bool
	logger    *slog.Logger

	mu     sync.Mutex
	states *cache.LRU[tableKey, tableState]
}

// NewTables creates the table registry.
func NewTables(l *slog.Logger) *Tables {
	if l == nil {
		l = logger.Nop()
	}
	return &Tables{
		sources:   make(map[string]TableSource),
		deletable: make(map[string]bool),
		logger:    l,
		states:    cache.NewLRU[tableKey, tableState](MaxForms),
	}
}

// Register adds a table. Rows of deletable tables carry a delete button.
func (h *Tables) Register(id string, src TableSource, deletable bool) {
	h.sources[id] = src
	h.deletable[id] = deletable
}

// View returns table id as the session currently sees it.
func (h *Tables) View(session, id string) (TableView, error) {
	src, ok := h.sources[id]
	if !ok {
		return TableView{}, fmt.Errorf("%w: table %s", handler.ErrNotFound, id)
	}
	h.mu.Lock()
	st, _ := h.states.Get(tableKey{session: session, table: id})
	h.mu.Unlock()

	t := src.Table()
	rows := table.Filter(t.Rows, st.term)
	if st.sort.Dir != "" {
		table.Sort(rows, st.sort.Column, st.sort.Dir)
	}
	return TableView{
		Table:  t,
		Rows:   rows,
		State:  st.sort,
		Term:   st.term,
		Total:  len(t.Rows),
		Delete: h.deletable[id],
	}, nil
}

func (h *Tables) update(session, id string, fn func(*tableState)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := tableKey{session: session, table: id}
	st, _ := h.states.Get(key)
	fn(&st)
	h.states.Put(key, st)
}

func (h *Tables) sort(ctx handler.Context, _ struct{}) handler.Response {
	id := ctx.Param("table")
	if _, ok := h.sources[id]; !ok {
		return handler.Fail(fmt.Errorf("%w: table %s", handler.ErrNotFound, id))
	}
	col, err := strconv.Atoi(ctx.Request().URL.Query().Get("col"))
	if err != nil || col < 0 {
		return handler.Fail(handler.ErrBadRequest)
	}
	session := SessionID(ctx)
	h.update(session, id, func(st *tableState) { st.sort = st.sort.Click(col) })

	v, err := h.View(session, id)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Stream(
		handler.Element(TableHead(v)),
		handler.Element(TableBody(v)),
	)
}

func (h *Tables) filter(ctx handler.Context, sig Signals) handler.Response {
	id := ctx.Param("table")
	if _, ok := h.sources[id]; !ok {
		return handler.Fail(fmt.Errorf("%w: table %s", handler.ErrNotFound, id))
	}
	session := SessionID(ctx)
	term := formValues(sig, "filter")[id]
	h.update(session, id, func(st *tableState) { st.term = term })

	v, err := h.View(session, id)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Stream(
		handler.Element(TableBody(v)),
		handler.Element(TableStats(v)),
	)
}
