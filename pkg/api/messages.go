package api

// User-facing messages shown for request outcomes.
const (
	MessageSaved           = "Erfolgreich gespeichert"
	MessageFailed          = "Ein Fehler ist aufgetreten"
	MessageConnectionError = "Verbindungsfehler. Bitte versuchen Sie es erneut."
	MessageMaterialDeleted = "Material erfolgreich gelöscht"
	MessageDeleteFailed    = "Fehler beim Löschen des Materials"
)
