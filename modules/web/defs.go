package web

// Choice is one option of a select field.
type Choice struct {
	Value string
	Label string
}

// FieldDef declares how a field is rendered. Validation rules live in the
// rendered markup and are read back by form.ParseMarkup.
type FieldDef struct {
	Name        string
	ID          string
	Label       string
	Type        string // input type, or "select" / "textarea"
	Rules       string // data-validate rule list
	Required    bool
	Min, Max    string
	MaxLength   string
	Placeholder string
	Choices     []Choice
	Suggestions []string
	Help        string
	OnChange    string // extra datastar expression run on change
	Strength    bool   // shows a password strength meter
}

// HTMLID returns the id of the field's control.
func (f FieldDef) HTMLID() string {
	if f.ID != "" {
		return f.ID
	}
	return f.Name
}

// FormDef declares a form of the page.
type FormDef struct {
	ID       string
	Title    string
	Action   string
	Method   string
	Validate bool
	AutoSave bool
	Ajax     bool
	Submit   string
	Fields   []FieldDef
}

// Field returns the definition of name.
func (d FormDef) Field(name string) (FieldDef, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// Form ids.
const (
	FormEntry    = "eintrag"
	FormMaterial = "material"
	FormAccount  = "konto"
)

// Materials is the fixed material catalog offered in the entry form.
var Materials = []Choice{
	{Value: "1", Label: "Beton C25/30"},
	{Value: "2", Label: "Bewehrungsstahl"},
	{Value: "3", Label: "Kalksandstein"},
	{Value: "4", Label: "Kabel NYM-J 3x1,5"},
	{Value: "5", Label: "Dämmplatten EPS"},
}

// Locations are suggested while typing the location of an entry.
var Locations = []string{
	"Baufeld A", "Baufeld B", "Halle 1", "Halle 2",
	"Keller", "Erdgeschoss", "Obergeschoss", "Dachgeschoss", "Tiefgarage",
}

// DefaultForms are the forms of the site diary page.
func DefaultForms() []FormDef {
	return []FormDef{
		{
			ID:       FormEntry,
			Title:    "Neuer Eintrag",
			Action:   "/api/eintraege",
			Method:   "post",
			Validate: true,
			AutoSave: true,
			Ajax:     true,
			Submit:   "Eintrag speichern",
			Fields: []FieldDef{
				{Name: "datum", Label: "Datum", Type: "date", Required: true},
				{Name: "ort", Label: "Ort", Type: "text", Rules: "required|min:3|max:100", Suggestions: Locations, Placeholder: "z.B. Halle 2"},
				{
					Name: "material", Label: "Material", Type: "select", Required: true, Choices: Materials,
					OnChange: "@get('/materials/' + $eintrag.material + '/info')",
				},
				{Name: "menge", Label: "Menge", Type: "number", Required: true, Min: "0", Max: "10000"},
				{Name: "bauleiter", Label: "E-Mail Bauleitung", Type: "email"},
				{Name: "beschreibung", Label: "Beschreibung", Type: "textarea", MaxLength: "500"},
			},
		},
		{
			ID:       FormMaterial,
			Title:    "Material anlegen",
			Action:   "/admin/materials",
			Method:   "post",
			Validate: true,
			Submit:   "Material speichern",
			Fields: []FieldDef{
				{Name: "name", ID: "materialName", Label: "Bezeichnung", Type: "text", Rules: "required|min:2|unique"},
				{Name: "kategorie", Label: "Kategorie", Type: "text", Required: true},
				{Name: "einheit", Label: "Einheit", Type: "text", Rules: `required|pattern:^[A-Za-z0-9²³/.]+$`, Help: "z.B. m³, kg, Stk"},
				{Name: "preis", Label: "Preis (€)", Type: "number", Min: "0"},
			},
		},
		{
			ID:       FormAccount,
			Title:    "Passwort ändern",
			Action:   "/konto/passwort",
			Method:   "post",
			Validate: true,
			Ajax:     true,
			Submit:   "Passwort ändern",
			Fields: []FieldDef{
				{Name: "passwort", Label: "Neues Passwort", Type: "password", Rules: "required|min:8", Strength: true},
				{Name: "passwort_wiederholen", Label: "Passwort wiederholen", Type: "password", Rules: "required|match:passwort"},
			},
		},
	}
}
