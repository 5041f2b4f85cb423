package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooksExtend_DoesNotAliasParent(t *testing.T) {
	root := Hooks{}.Extend(Hook{Name: "hooks0", Events: map[Event]Arity{OnRequest: Single}})
	// Two siblings extending the same parent must not see each other.
	a := root.Extend(Hook{Name: "hooks1", Events: map[Event]Arity{OnRequest: Many}})
	b := root.Extend(Hook{Name: "hooks2", Events: map[Event]Arity{PreHandler: Single}})

	require.Len(t, root, 1)
	assert.Equal(t, []string{"hooks0.onRequest", "...hooks1.onRequest"}, a.Refs(OnRequest))
	assert.Equal(t, []string{"hooks0.onRequest"}, b.Refs(OnRequest))
	assert.Equal(t, []string{"hooks2.preHandler"}, b.Refs(PreHandler))
}

func TestHooksRefs_SkipsUndeclaredEvents(t *testing.T) {
	hs := Hooks{
		{Name: "hooks0", Events: map[Event]Arity{OnRequest: Many, PreParsing: Single}},
		{Name: "hooks1", Events: map[Event]Arity{PreParsing: Many}},
	}
	assert.Equal(t, []string{"...hooks0.onRequest"}, hs.Refs(OnRequest))
	assert.Equal(t, []string{"hooks0.preParsing", "...hooks1.preParsing"}, hs.Refs(PreParsing))
	assert.Empty(t, hs.Refs(PreValidation))
}

func TestHookDeclares(t *testing.T) {
	h := Hook{Name: "hooks0", Events: map[Event]Arity{OnRequest: Single}}
	assert.True(t, h.Declares(OnRequest))
	assert.False(t, h.Declares(PreHandler))

	absent := Hook{Name: "hooks1", Events: map[Event]Arity{OnRequest: Absent}}
	assert.False(t, absent.Declares(OnRequest))
	assert.Equal(t, []string{"hooks0.onRequest"}, Hooks{h, absent}.Refs(OnRequest))
}

func TestArityRef(t *testing.T) {
	assert.Equal(t, "controller0.get.hooks.preHandler", Single.Ref("controller0.get.hooks", PreHandler))
	assert.Equal(t, "...controller0.get.hooks.preHandler", Many.Ref("controller0.get.hooks", PreHandler))
}

func TestValidatorsParams(t *testing.T) {
	tests := []struct {
		name  string
		chain Validators
		want  string
	}{
		{"empty", nil, ""},
		{"single", Validators{{Name: "validators0"}}, "validators0.params"},
		{
			"two",
			Validators{{Name: "validators0"}, {Name: "validators1"}},
			"validators0.params.and(validators1.params)",
		},
		{
			"three",
			Validators{{Name: "v0"}, {Name: "v1"}, {Name: "v2"}},
			"v0.params.and(v1.params).and(v2.params)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.chain.Params())
		})
	}
}

func TestValidatorsExtend_DoesNotAliasParent(t *testing.T) {
	parent := Validators{}.Extend(Validator{Name: "validators0"})
	left := parent.Extend(Validator{Name: "validators1"})
	right := parent.Extend(Validator{Name: "validators2"})

	assert.Equal(t, "validators0.params.and(validators1.params)", left.Params())
	assert.Equal(t, "validators0.params.and(validators2.params)", right.Params())
	assert.Len(t, parent, 1)
}
