// Package validator implements the declarative field-validation engine: a
// rule grammar for compact rule lists and an evaluator that applies them to
// a single field value.
//
// # Rule grammar
//
// Markup declares constraints as pipe-delimited tokens, each a rule name
// with an optional parameter after the first colon:
//
//	required|min:3|max_value:100
//	pattern:^[A-Z]{2}-\d+$
//	match:password
//
// Parse is strict and rejects names outside the closed Kind set with
// ErrUnknownRule. ParseLenient drops unknown names instead, for markup that
// is newer than the server. Parameters are checked at parse time, so a
// parsed Rule never fails at evaluation time.
//
// # Evaluation
//
// Evaluator.Evaluate trims the value and walks the rules in order. The first
// failing rule ends evaluation and its single message is returned. Every
// kind except required passes on an empty value, so "required|min_value:10"
// is the way to demand a non-empty bounded number.
//
//	rules, err := validator.Parse("required|email")
//	if err != nil {
//	    return err
//	}
//	ev := validator.NewEvaluator()
//	if verr := ev.Evaluate(ctx, "email", input, rules, nil); verr != nil {
//	    fmt.Println(verr.Message)
//	}
//
// Messages default to German and render through an i18n.Translator.
// LoadMessages layers a catalog from any i18n.TranslationAdapter, typically a
// YAML file, over the defaults. The unique rule is an extension point wired with
// WithUniqueChecker.
//
// PasswordStrength scores a password against a PasswordPolicy for the
// strength meter of password fields.
package validator
