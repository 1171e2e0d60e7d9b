package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borrmann/bautagebuch/pkg/validator"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("parses rules in declared order", func(t *testing.T) {
		t.Parallel()
		rules, err := validator.Parse("required|min:3|max_value:100")
		require.NoError(t, err)
		require.Len(t, rules, 3)

		assert.Equal(t, validator.KindRequired, rules[0].Kind)
		assert.Equal(t, validator.KindMin, rules[1].Kind)
		assert.Equal(t, []string{"3"}, rules[1].Params)
		assert.Equal(t, validator.KindMaxValue, rules[2].Kind)
		assert.Equal(t, "required|min:3|max_value:100", validator.Format(rules))
	})

	t.Run("ignores empty tokens and whitespace", func(t *testing.T) {
		t.Parallel()
		rules, err := validator.Parse(" required || email ")
		require.NoError(t, err)
		require.Len(t, rules, 2)
		assert.Equal(t, validator.KindEmail, rules[1].Kind)
	})

	t.Run("empty string yields no rules", func(t *testing.T) {
		t.Parallel()
		rules, err := validator.Parse("")
		require.NoError(t, err)
		assert.Empty(t, rules)
	})

	t.Run("pattern keeps colons after the first", func(t *testing.T) {
		t.Parallel()
		rule, err := validator.ParseOne(`pattern:^\d{2}:\d{2}$`)
		require.NoError(t, err)
		assert.Equal(t, []string{`^\d{2}:\d{2}$`}, rule.Params)
	})

	t.Run("match records its target", func(t *testing.T) {
		t.Parallel()
		rule, err := validator.ParseOne("match:password")
		require.NoError(t, err)
		assert.Equal(t, "password", rule.Target())
	})

	t.Run("strict parse rejects unknown rules", func(t *testing.T) {
		t.Parallel()
		_, err := validator.Parse("required|reqiured")
		require.ErrorIs(t, err, validator.ErrUnknownRule)
	})

	t.Run("lenient parse drops unknown rules", func(t *testing.T) {
		t.Parallel()
		rules, err := validator.ParseLenient("required|future_rule:1|email")
		require.NoError(t, err)
		require.Len(t, rules, 2)
		assert.Equal(t, "required|email", validator.Format(rules))
	})

	t.Run("invalid parameters fail in both modes", func(t *testing.T) {
		t.Parallel()
		cases := []string{"min", "min:abc", "max:-1", "min_value:x", "pattern:(", "match:", "max_value"}
		for _, raw := range cases {
			_, err := validator.Parse(raw)
			assert.ErrorIs(t, err, validator.ErrInvalidParam, raw)

			_, err = validator.ParseLenient(raw)
			assert.ErrorIs(t, err, validator.ErrInvalidParam, raw)
		}
	})
}

func TestKind(t *testing.T) {
	t.Parallel()

	for _, k := range validator.Kinds() {
		parsed, ok := validator.ParseKind(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, parsed)
	}

	_, ok := validator.ParseKind("nope")
	assert.False(t, ok)
	assert.Equal(t, "unknown", validator.Kind(0).String())
}

func TestNewRule(t *testing.T) {
	t.Parallel()

	r, err := validator.NewRule(validator.KindMinValue, "2.5")
	require.NoError(t, err)
	assert.Equal(t, "min_value:2.5", r.String())

	assert.True(t, validator.MustRule(validator.KindMin, "3").Equal(validator.MustRule(validator.KindMin, "3")))
	assert.False(t, validator.MustRule(validator.KindMin, "3").Equal(validator.MustRule(validator.KindMax, "3")))

	_, err = validator.NewRule(validator.Kind(99))
	require.ErrorIs(t, err, validator.ErrUnknownRule)

	assert.Panics(t, func() { validator.MustRule(validator.KindPattern) })
}

func TestParser_Caches(t *testing.T) {
	t.Parallel()

	p := validator.NewParser(8, false)

	first, err := p.Parse("required|min:3")
	require.NoError(t, err)
	first[0] = validator.MustRule(validator.KindEmail)

	second, err := p.Parse("required|min:3")
	require.NoError(t, err)
	assert.Equal(t, validator.KindRequired, second[0].Kind, "cached rules must not be mutated through returned slices")

	_, err = p.Parse("bogus")
	require.ErrorIs(t, err, validator.ErrUnknownRule)

	lenient := validator.NewParser(8, true)
	rules, err := lenient.Parse("bogus|required")
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}
