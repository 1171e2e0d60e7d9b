// Package i18n loads translation catalogs and renders keyed messages.
//
// Catalogs are rooted at a language code. Keys are looked up verbatim first
// and then as a dot-separated path through nested maps, so both of these
// resolve "validation.required":
//
//	de:
//	  validation:
//	    required: "Pflichtfeld"
//
//	de:
//	  validation.required: "Pflichtfeld"
//
// Templates use named placeholders of the form %{name}, filled from
// key/value argument pairs:
//
//	adapter, err := i18n.NewFileAdapter("messages.yaml")
//	if err != nil {
//	    return err
//	}
//	tr, err := i18n.NewTranslator(ctx, adapter)
//	if err != nil {
//	    return err
//	}
//	tr.T("de", "validation.min_length", "min", "3")
//
// A language missing from the catalog falls back to the translator's
// default language before falling back to the key.
package i18n
