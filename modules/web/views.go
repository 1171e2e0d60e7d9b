package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/borrmann/bautagebuch/handler"
	"github.com/borrmann/bautagebuch/pkg/api"
	"github.com/borrmann/bautagebuch/pkg/present"
	"github.com/borrmann/bautagebuch/pkg/table"
	"github.com/borrmann/bautagebuch/pkg/theme"
	"github.com/borrmann/bautagebuch/pkg/toast"
	"github.com/borrmann/bautagebuch/pkg/upload"
	"github.com/borrmann/bautagebuch/pkg/validator"
)

// markup builds a component from a function writing HTML.
func markup(fn func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fn(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func esc(s string) string { return templ.EscapeString(s) }

func writeAttr(b *strings.Builder, key, val string) {
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteString(`="`)
	b.WriteString(esc(val))
	b.WriteByte('"')
}

func writeAttrIf(b *strings.Builder, key, val string) {
	if val != "" {
		writeAttr(b, key, val)
	}
}

func writeFlag(b *strings.Builder, key string, on bool) {
	if on {
		b.WriteByte(' ')
		b.WriteString(key)
	}
}

func jsString(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}

func render(c templ.Component) string {
	var b strings.Builder
	_ = c.Render(context.Background(), &b)
	return b.String()
}

// Layout is the full HTML document.
func Layout(t theme.Theme, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="de"`)
		writeAttr(&b, "data-theme", t.String())
		b.WriteString(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<meta name="theme-color"`)
		writeAttr(&b, "content", t.MetaColor())
		b.WriteString(`><title>`)
		b.WriteString(esc(title))
		b.WriteString(`</title>`)
		b.WriteString(`<link rel="stylesheet" href="/static/css/app.css">`)
		b.WriteString(`<script type="module" src="/static/js/datastar.js"></script>`)
		b.WriteString(`</head><body`)
		writeAttr(&b, "class", "theme-"+t.String())
		b.WriteString(`><div id="events" data-on-load="@get('/events')"></div>`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// ThemeToggle is the navbar button switching light and dark mode.
func ThemeToggle(t theme.Theme) templ.Component {
	return markup(func(b *strings.Builder) {
		icon, label := "bi-moon-stars", "Dark Mode aktivieren"
		if t == theme.Dark {
			icon, label = "bi-sun", "Light Mode aktivieren"
		}
		b.WriteString(`<button id="theme-toggle" type="button" class="btn btn-outline-secondary" data-on-click="@post('/theme/toggle')"`)
		writeAttr(b, "aria-label", label)
		writeAttr(b, "title", label)
		b.WriteString(`><i`)
		writeAttr(b, "class", "bi "+icon)
		b.WriteString(`></i></button>`)
	})
}

// ToastContainer holds the visible toasts.
func ToastContainer(toasts []toast.Toast) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<div id="toast-container" class="toast-container position-fixed top-0 end-0 p-3">`)
		for _, t := range toasts {
			b.WriteString(render(ToastItem(t)))
		}
		b.WriteString(`</div>`)
	})
}

// ToastID is the element id of a toast.
func ToastID(id string) string { return "toast-" + id }

// ToastItem renders one toast. Line breaks in the message become <br>.
func ToastItem(t toast.Toast) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<div`)
		writeAttr(b, "id", ToastID(t.ID))
		writeAttr(b, "class", "alert "+t.Type.AlertClass()+" alert-dismissible fade show toast-item")
		b.WriteString(` role="alert"><span class="toast-icon">`)
		b.WriteString(t.Type.Icon())
		b.WriteString(`</span> <span class="toast-message">`)
		lines := strings.Split(t.Message, "\n")
		for i, line := range lines {
			if i > 0 {
				b.WriteString(`<br>`)
			}
			b.WriteString(esc(line))
		}
		b.WriteString(`</span><button type="button" class="btn-close" aria-label="Schließen"`)
		writeAttr(b, "data-on-click", fmt.Sprintf("@post('/toasts/%s/close')", t.ID))
		b.WriteString(`></button></div>`)
	})
}

// ErrorToast renders request failures reported by the error handler.
func ErrorToast(p handler.ErrorToastParams) templ.Component {
	return ToastItem(toast.Toast{
		ID:      "error-" + p.RequestID,
		Type:    toast.ParseType(p.Type),
		Message: p.Message,
	})
}

// FieldGroupID is the id of the element wrapping a field.
func FieldGroupID(h present.Handle) string { return h.ID + "-group" }

func signalPath(formID, name string) string {
	return formID + "." + name
}

// FieldGroup renders a field with label, control, status icon, inline
// feedback and suggestion slot. The control's classes, icon and feedback
// come from v.
func FieldGroup(formID string, f FieldDef, value string, v *present.View) templ.Component {
	h := present.Handle{ID: f.HTMLID()}
	if v == nil {
		v = baseView(f)
	}
	return markup(func(b *strings.Builder) {
		b.WriteString(`<div`)
		writeAttr(b, "id", FieldGroupID(h))
		b.WriteString(` class="mb-3 field-group"><label class="form-label"`)
		writeAttr(b, "for", h.ID)
		b.WriteString(`>`)
		b.WriteString(esc(f.Label))
		if f.Required || strings.Contains(f.Rules, "required") {
			b.WriteString(` <span class="text-danger">*</span>`)
		}
		b.WriteString(`</label><div class="input-wrapper position-relative">`)

		writeControl(b, formID, f, value, v)

		if v.Icon != "" {
			b.WriteString(`<i`)
			writeAttr(b, "id", h.IconID())
			writeAttr(b, "class", "bi "+v.Icon+" field-icon")
			b.WriteString(`></i>`)
		}
		b.WriteString(`</div>`)

		if v.Feedback != nil {
			b.WriteString(`<div`)
			writeAttr(b, "id", h.FeedbackID())
			b.WriteString(` class="invalid-feedback d-block">`)
			b.WriteString(esc(*v.Feedback))
			b.WriteString(`</div>`)
		}
		if f.Help != "" {
			b.WriteString(`<div class="form-text">`)
			b.WriteString(esc(f.Help))
			b.WriteString(`</div>`)
		}
		if len(f.Suggestions) > 0 {
			b.WriteString(render(Suggestions(formID, f, nil)))
		}
		if f.Strength {
			b.WriteString(render(StrengthMeter(f, validator.PasswordStrength(value, validator.DefaultPasswordPolicy()))))
		}
		if f.Name == "material" && formID == FormEntry {
			b.WriteString(render(MaterialInfo(api.MaterialInfo{})))
		}
		b.WriteString(`</div>`)
	})
}

func baseClass(f FieldDef) string {
	if f.Type == "select" {
		return "form-select"
	}
	return "form-control"
}

func baseView(f FieldDef) *present.View {
	return present.NewView(baseClass(f))
}

func writeControl(b *strings.Builder, formID string, f FieldDef, value string, v *present.View) {
	id := f.HTMLID()
	blur := fmt.Sprintf("@post('/forms/%s/blur/%s')", formID, f.Name)
	input := fmt.Sprintf("@post('/forms/%s/input/%s')", formID, f.Name)

	common := func() {
		writeAttr(b, "id", id)
		writeAttr(b, "name", f.Name)
		writeAttr(b, "class", strings.Join(v.ClassList(), " "))
		writeAttr(b, "data-bind", signalPath(formID, f.Name))
		writeAttrIf(b, "data-validate", f.Rules)
		writeFlag(b, "required", f.Required)
		if v.Feedback != nil {
			writeAttr(b, "aria-invalid", "true")
			writeAttr(b, "aria-describedby", present.Handle{ID: id}.FeedbackID())
		}
	}

	switch f.Type {
	case "select":
		b.WriteString(`<select`)
		common()
		change := blur
		if f.OnChange != "" {
			change += "; " + f.OnChange
		}
		writeAttr(b, "data-on-change", change)
		b.WriteString(`><option value="">Bitte wählen…</option>`)
		for _, c := range f.Choices {
			b.WriteString(`<option`)
			writeAttr(b, "value", c.Value)
			writeFlag(b, "selected", c.Value == value)
			b.WriteString(`>`)
			b.WriteString(esc(c.Label))
			b.WriteString(`</option>`)
		}
		b.WriteString(`</select>`)
	case "textarea":
		b.WriteString(`<textarea rows="3"`)
		common()
		writeAttrIf(b, "maxlength", f.MaxLength)
		writeAttr(b, "data-on-blur", blur)
		writeAttr(b, "data-on-input", input)
		b.WriteString(`>`)
		b.WriteString(esc(value))
		b.WriteString(`</textarea>`)
	default:
		b.WriteString(`<input`)
		writeAttr(b, "type", f.Type)
		common()
		writeAttrIf(b, "value", value)
		writeAttrIf(b, "min", f.Min)
		writeAttrIf(b, "max", f.Max)
		writeAttrIf(b, "maxlength", f.MaxLength)
		writeAttrIf(b, "placeholder", f.Placeholder)
		if f.Type == "number" {
			writeAttr(b, "step", "any")
		}
		if len(f.Suggestions) > 0 {
			raw, _ := json.Marshal(f.Suggestions)
			writeAttr(b, "data-suggestions", string(raw))
			writeAttr(b, "autocomplete", "off")
		}
		writeAttr(b, "data-on-blur", blur)
		writeAttr(b, "data-on-input", input)
		b.WriteString(`>`)
	}
}

// SuggestionsID is the id of a field's suggestion list.
func SuggestionsID(f FieldDef) string { return f.HTMLID() + "-suggestions" }

// StrengthMeterID is the id of the strength meter below f.
func StrengthMeterID(f FieldDef) string { return f.HTMLID() + "-strength" }

// StrengthMeter renders the password strength bar and caption.
func StrengthMeter(f FieldDef, s validator.Strength) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<div`)
		writeAttr(b, "id", StrengthMeterID(f))
		b.WriteString(` class="password-strength-meter mt-2"><div class="progress" style="height: 8px;"><div role="progressbar"`)
		writeAttr(b, "class", "progress-bar bg-"+s.Color())
		writeAttr(b, "style", "width: "+strconv.Itoa(s.Score)+"%")
		writeAttr(b, "aria-valuenow", strconv.Itoa(s.Score))
		b.WriteString(`></div></div><small`)
		writeAttr(b, "class", "password-strength-text text-"+s.Color())
		b.WriteString(`>`)
		b.WriteString(esc(s.Text()))
		b.WriteString(`</small></div>`)
	})
}

// Suggestions renders the suggestion list below a field. Clicking an item
// fills the field and validates it.
func Suggestions(formID string, f FieldDef, items []string) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<ul`)
		writeAttr(b, "id", SuggestionsID(f))
		b.WriteString(` class="list-group suggestions">`)
		for _, s := range items {
			b.WriteString(`<li class="list-group-item list-group-item-action"`)
			writeAttr(b, "data-on-click", fmt.Sprintf("$%s = %s; @post('/forms/%s/blur/%s')",
				signalPath(formID, f.Name), jsString(s), formID, f.Name))
			b.WriteString(`>`)
			b.WriteString(esc(s))
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul>`)
	})
}

// FormCard renders a form with all its field groups.
func FormCard(d FormDef, values map[string]string, views map[string]*present.View) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<div class="card mb-4"><div class="card-header"><h2 class="h5 mb-0">`)
		b.WriteString(esc(d.Title))
		b.WriteString(`</h2></div><div class="card-body"><form`)
		writeAttr(b, "id", d.ID)
		writeAttr(b, "action", d.Action)
		writeAttr(b, "method", d.Method)
		writeFlag(b, "data-validate", d.Validate)
		writeFlag(b, "data-autosave", d.AutoSave)
		writeFlag(b, "data-ajax", d.Ajax)
		b.WriteString(` novalidate`)
		writeAttr(b, "data-on-submit__prevent", fmt.Sprintf("@post('/forms/%s/submit')", d.ID))
		b.WriteString(`>`)
		for _, f := range d.Fields {
			b.WriteString(render(FieldGroup(d.ID, f, values[f.Name], views[f.Name])))
		}
		b.WriteString(`<button type="submit" class="btn btn-primary">`)
		b.WriteString(esc(d.Submit))
		b.WriteString(`</button>`)
		if d.AutoSave {
			b.WriteString(`<button type="button" class="btn btn-link"`)
			writeAttr(b, "data-on-click", fmt.Sprintf("@post('/forms/%s/reset')", d.ID))
			b.WriteString(`>Entwurf verwerfen</button>`)
		}
		b.WriteString(`</form></div></div>`)
	})
}

// MaterialInfo shows category and unit of the selected material.
func MaterialInfo(info api.MaterialInfo) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<div id="material-info">`)
		if info.Kategorie != "" || info.Einheit != "" {
			b.WriteString(`<small class="text-muted">`)
			b.WriteString(esc(info.Kategorie))
			if info.Einheit != "" {
				b.WriteString(` (Einheit: `)
				b.WriteString(esc(info.Einheit))
				b.WriteString(`)`)
			}
			b.WriteString(`</small>`)
		}
		b.WriteString(`</div>`)
	})
}

// TableView is a table as currently shown to a session.
type TableView struct {
	Table  *table.Table
	Rows   []table.Row
	State  table.SortState
	Term   string
	Total  int
	Delete bool // rows carry a delete button
}

func tableHeadID(id string) string  { return id + "-head" }
func tableBodyID(id string) string  { return id + "-body" }
func tableStatsID(id string) string { return id + "-stats" }

// RowID is the element id of a table row.
func RowID(tableID, rowID string) string { return tableID + "-row-" + rowID }

// TableHead renders the header with sort indicators.
func TableHead(v TableView) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<thead`)
		writeAttr(b, "id", tableHeadID(v.Table.ID))
		b.WriteString(`><tr>`)
		for i, c := range v.Table.Columns {
			b.WriteString(`<th`)
			if c.Sortable {
				writeAttr(b, "class", strings.TrimSpace("sortable "+v.State.Class(i)))
				writeAttr(b, "data-on-click", fmt.Sprintf("@get('/tables/%s/sort?col=%d')", v.Table.ID, i))
			}
			b.WriteString(`>`)
			b.WriteString(esc(c.Label))
			b.WriteString(`</th>`)
		}
		if v.Delete {
			b.WriteString(`<th></th>`)
		}
		b.WriteString(`</tr></thead>`)
	})
}

// TableBody renders the visible rows.
func TableBody(v TableView) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<tbody`)
		writeAttr(b, "id", tableBodyID(v.Table.ID))
		b.WriteString(`>`)
		for _, r := range v.Rows {
			b.WriteString(`<tr`)
			writeAttr(b, "id", RowID(v.Table.ID, r.ID))
			b.WriteString(`>`)
			for _, c := range r.Cells {
				b.WriteString(`<td>`)
				b.WriteString(esc(c))
				b.WriteString(`</td>`)
			}
			if v.Delete {
				confirm := fmt.Sprintf("Möchten Sie das Material \"%s\" wirklich löschen?", r.Cell(0))
				b.WriteString(`<td class="text-end"><button type="button" class="btn btn-sm btn-outline-danger"`)
				writeAttr(b, "data-on-click", fmt.Sprintf("confirm(%s) && @delete('/materials/%s')", jsString(confirm), r.ID))
				b.WriteString(`><i class="bi bi-trash"></i></button></td>`)
			}
			b.WriteString(`</tr>`)
		}
		b.WriteString(`</tbody>`)
	})
}

// TableStats renders the "N von M Einträgen" counter.
func TableStats(v TableView) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<div`)
		writeAttr(b, "id", tableStatsID(v.Table.ID))
		b.WriteString(` class="table-stats text-muted small">`)
		b.WriteString(esc(table.Stats(len(v.Rows), v.Total)))
		b.WriteString(`</div>`)
	})
}

// TableCard renders a filterable, sortable table.
func TableCard(title string, v TableView) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<div class="card mb-4"><div class="card-header d-flex justify-content-between align-items-center"><h2 class="h5 mb-0">`)
		b.WriteString(esc(title))
		b.WriteString(`</h2><input type="search" class="form-control form-control-sm w-auto" placeholder="Suchen…"`)
		writeAttr(b, "data-bind", "filter."+v.Table.ID)
		writeAttr(b, "value", v.Term)
		writeAttr(b, "data-on-input", fmt.Sprintf("@get('/tables/%s/filter')", v.Table.ID))
		b.WriteString(`></div><div class="card-body"><table class="table table-hover">`)
		b.WriteString(render(TableHead(v)))
		b.WriteString(render(TableBody(v)))
		b.WriteString(`</table>`)
		b.WriteString(render(TableStats(v)))
		b.WriteString(`</div></div>`)
	})
}

// StatCard is one dashboard counter.
type StatCard struct {
	Key   string
	Label string
	Value string
}

// StatID is the element id of a dashboard counter.
func StatID(key string) string { return "stat-" + key }

// StatValue renders the number of a counter.
func StatValue(key, value string) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<span class="stat-value h3"`)
		writeAttr(b, "id", StatID(key))
		writeAttr(b, "data-stat", key)
		b.WriteString(`>`)
		b.WriteString(esc(value))
		b.WriteString(`</span>`)
	})
}

// Dashboard renders the counters and opens the refresh stream.
func Dashboard(cards []StatCard) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<div id="dashboard" class="row mb-4" data-on-load="@get('/dashboard/stats')">`)
		for _, c := range cards {
			b.WriteString(`<div class="col"><div class="card text-center"><div class="card-body">`)
			b.WriteString(render(StatValue(c.Key, c.Value)))
			b.WriteString(`<div class="text-muted">`)
			b.WriteString(esc(c.Label))
			b.WriteString(`</div></div></div></div>`)
		}
		b.WriteString(`</div>`)
	})
}

// PreviewItem is a selected file as listed before upload.
type PreviewItem struct {
	upload.Item
	Preview string // data URL for images, empty otherwise
}

// UploadList renders the selected files with remove buttons.
func UploadList(items []PreviewItem) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<ul id="upload-list" class="list-group">`)
		for i, it := range items {
			b.WriteString(`<li class="list-group-item d-flex align-items-center gap-2">`)
			if it.Preview != "" {
				b.WriteString(`<img class="upload-thumb" width="48" height="48"`)
				writeAttr(b, "src", it.Preview)
				writeAttr(b, "alt", it.Name)
				b.WriteString(`>`)
			} else {
				b.WriteString(`<i class="bi bi-file-earmark-pdf"></i>`)
			}
			b.WriteString(`<span class="flex-grow-1">`)
			b.WriteString(esc(it.Name))
			b.WriteString(`</span><small class="text-muted">`)
			b.WriteString(esc(it.SizeText()))
			b.WriteString(`</small><button type="button" class="btn btn-sm btn-link text-danger"`)
			writeAttr(b, "data-on-click", "@post('/uploads/remove/"+strconv.Itoa(i)+"')")
			b.WriteString(`>Entfernen</button></li>`)
		}
		b.WriteString(`</ul>`)
	})
}

// UploadCard renders the file picker.
func UploadCard(items []PreviewItem) templ.Component {
	return markup(func(b *strings.Builder) {
		b.WriteString(`<div class="card mb-4"><div class="card-header"><h2 class="h5 mb-0">Fotos &amp; Dokumente</h2></div><div class="card-body">`)
		b.WriteString(`<form id="upload-form" enctype="multipart/form-data" data-on-change="@post('/uploads/preview', {contentType: 'form'})">`)
		b.WriteString(`<input type="file" name="files" class="form-control" multiple accept=".jpg,.jpeg,.png,.pdf">`)
		b.WriteString(`<div class="form-text">`)
		b.WriteString(esc(upload.HintText))
		b.WriteString(`</div></form>`)
		b.WriteString(render(UploadList(items)))
		b.WriteString(`</div></div>`)
	})
}

// PageData is everything the diary page shows.
type PageData struct {
	Theme     theme.Theme
	Forms     []FormCardData
	Materials TableView
	Stats     []StatCard
	Uploads   []PreviewItem
	Toasts    []toast.Toast
}

// FormCardData is a form with the session's current values.
type FormCardData struct {
	Def    FormDef
	Values map[string]string
}

// Page is the site diary page.
func Page(p PageData) templ.Component {
	body := markup(func(b *strings.Builder) {
		b.WriteString(`<nav class="navbar border-bottom mb-4"><div class="container"><span class="navbar-brand">Bautagebuch</span>`)
		b.WriteString(render(ThemeToggle(p.Theme)))
		b.WriteString(`</div></nav><main class="container">`)
		b.WriteString(render(Dashboard(p.Stats)))
		b.WriteString(`<div class="row"><div class="col-lg-7">`)
		for _, f := range p.Forms {
			b.WriteString(render(FormCard(f.Def, f.Values, nil)))
		}
		b.WriteString(`</div><div class="col-lg-5">`)
		b.WriteString(render(UploadCard(p.Uploads)))
		b.WriteString(render(TableCard("Materialien", p.Materials)))
		b.WriteString(`</div></div></main>`)
		b.WriteString(render(ToastContainer(p.Toasts)))
	})
	return Layout(p.Theme, "Bautagebuch", body)
}
