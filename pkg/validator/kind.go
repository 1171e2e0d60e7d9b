package validator

// Kind is the closed set of rule kinds understood by the evaluator.
type Kind uint8

const (
	KindRequired Kind = iota + 1
	KindEmail
	KindMin
	KindMax
	KindNumeric
	KindMinValue
	KindMaxValue
	KindPattern
	KindMatch
	KindUnique
)

var kindNames = map[Kind]string{
	KindRequired: "required",
	KindEmail:    "email",
	KindMin:      "min",
	KindMax:      "max",
	KindNumeric:  "numeric",
	KindMinValue: "min_value",
	KindMaxValue: "max_value",
	KindPattern:  "pattern",
	KindMatch:    "match",
	KindUnique:   "unique",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// String returns the markup name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a markup rule name to its Kind.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindRequired, KindEmail, KindMin, KindMax, KindNumeric,
		KindMinValue, KindMaxValue, KindPattern, KindMatch, KindUnique,
	}
}
