package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pathcache/internal/core/domain"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.Path
		wantErr bool
	}{
		{name: "single segment", input: "x", want: domain.Path{"x"}},
		{name: "nested", input: "trade.instrument.rating", want: domain.Path{"trade", "instrument", "rating"}},
		{name: "empty", input: "", wantErr: true},
		{name: "empty segment", input: "a..b", wantErr: true},
		{name: "trailing dot", input: "a.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParsePath(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrEmptyPath))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestPath_ChildDoesNotAlias(t *testing.T) {
	base := make(domain.Path, 1, 4)
	base[0] = "a"

	b := base.Child("b")
	c := base.Child("c")

	assert.Equal(t, "a.b", b.String())
	assert.Equal(t, "a.c", c.String())
	assert.True(t, b.HasPrefix(base))
	assert.False(t, base.HasPrefix(b))
	assert.Equal(t, "c", c.Last())
}

func TestClass_Resolve(t *testing.T) {
	issuer := domain.NewClass("Issuer").
		Define(domain.Attribute{Name: "rating", Kind: domain.KindString})
	instrument := domain.NewClass("Instrument").
		Define(domain.Attribute{Name: "issuer", Kind: domain.KindObject, Class: issuer}).
		Define(domain.Attribute{Name: "extra", Kind: domain.KindAny})
	trade := domain.NewClass("Trade").
		Define(domain.Attribute{Name: "qty", Kind: domain.KindInt}).
		Define(domain.Attribute{Name: "instrument", Kind: domain.KindObject, Class: instrument})

	tests := []struct {
		name    string
		path    domain.Path
		wantErr error
	}{
		{name: "leaf", path: domain.Path{"qty"}},
		{name: "deep", path: domain.Path{"instrument", "issuer", "rating"}},
		{name: "below any", path: domain.Path{"instrument", "extra", "whatever"}},
		{name: "unknown", path: domain.Path{"instrument", "nope"}, wantErr: domain.ErrUnknownAttribute},
		{name: "below scalar", path: domain.Path{"qty", "x"}, wantErr: domain.ErrNotAnObject},
		{name: "empty", path: domain.Path{}, wantErr: domain.ErrEmptyPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := trade.Resolve(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestClass_AttributesKeepDeclarationOrder(t *testing.T) {
	c := domain.NewClass("T").
		Define(domain.Attribute{Name: "b"}).
		Define(domain.Attribute{Name: "a"}).
		Define(domain.Attribute{Name: "b", Kind: domain.KindInt})

	attrs := c.Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, "b", attrs[0].Name)
	assert.Equal(t, domain.KindInt, attrs[0].Kind)
	assert.Equal(t, "a", attrs[1].Name)
}

func TestEqual(t *testing.T) {
	type obj struct{ v int }
	p1, p2 := &obj{1}, &obj{1}

	assert.True(t, domain.Equal(nil, nil))
	assert.False(t, domain.Equal(nil, 0))
	assert.True(t, domain.Equal(5, 5))
	assert.False(t, domain.Equal(5, int64(5)))
	assert.True(t, domain.Equal(p1, p1))
	assert.False(t, domain.Equal(p1, p2), "distinct instances compare by identity")
	assert.True(t, domain.Equal([]int{1, 2}, []int{1, 2}))
	assert.True(t, domain.Equal(domain.NotReady, domain.NotReady))
	assert.True(t, domain.IsNotReady(domain.NotReady))
	assert.False(t, domain.IsNotReady(nil))
}

type recorder struct {
	changes []domain.PropertyChange
}

func (r *recorder) PropertyChanged(c domain.PropertyChange) {
	r.changes = append(r.changes, c)
}

type thing struct {
	domain.ChangeSupport
}

func TestChangeSupport(t *testing.T) {
	src := &thing{}
	a, b := &recorder{}, &recorder{}

	src.AddPropertyChangeListener("x", a)
	src.AddPropertyChangeListener("x", b)
	src.AddPropertyChangeListener("y", a)
	assert.Equal(t, 2, src.ListenerCount("x"))

	src.Fire(src, "x", 1, 2)
	src.Fire(src, "x", 2, 2)
	src.Fire(src, "y", nil, nil)

	require.Len(t, a.changes, 2)
	assert.Equal(t, domain.PropertyChange{Source: src, Property: "x", OldValue: 1, NewValue: 2}, a.changes[0])
	assert.Equal(t, "y", a.changes[1].Property)
	require.Len(t, b.changes, 1)

	src.RemovePropertyChangeListener("x", a)
	src.RemovePropertyChangeListener("x", a)
	src.RemovePropertyChangeListener("y", a)
	assert.Equal(t, 1, src.ListenerCount("x"))
	assert.Equal(t, 0, src.ListenerCount("y"))
	assert.True(t, src.Observed())

	src.RemovePropertyChangeListener("x", b)
	assert.False(t, src.Observed())
}

func TestStepKind_String(t *testing.T) {
	assert.Equal(t, "remove_root", domain.StepRemoveRoot.String())
	assert.Equal(t, "wait_ready", domain.StepWaitReady.String())
	assert.Equal(t, "unknown", domain.StepKind(200).String())
}

func TestInternedString(t *testing.T) {
	a := domain.NewInternedString("rating")
	b := domain.NewInternedString("rating")

	assert.Equal(t, a, b)
	assert.Equal(t, "rating", a.String())
	assert.False(t, a.IsZero())

	var zero domain.InternedString
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
}
