package beans_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pathcache/internal/adapters/beans"
	"go.trai.ch/pathcache/internal/core/domain"
)

type changes struct {
	got []domain.PropertyChange
}

func (c *changes) PropertyChanged(ch domain.PropertyChange) {
	c.got = append(c.got, ch)
}

func classes() (trade, issuer *domain.Class) {
	issuer = domain.NewClass("Issuer").
		Define(domain.Attribute{Name: "rating", Kind: domain.KindString})
	trade = domain.NewClass("Trade").
		Define(domain.Attribute{Name: "qty", Kind: domain.KindInt}).
		Define(domain.Attribute{Name: "price", Kind: domain.KindFloat}).
		Define(domain.Attribute{Name: "issuer", Kind: domain.KindObject, Class: issuer}).
		Define(domain.Attribute{Name: "note", Kind: domain.KindAny})
	return trade, issuer
}

func TestBean_SetFiresChange(t *testing.T) {
	tradeClass, _ := classes()
	b := beans.New("t1", tradeClass)
	rec := &changes{}
	b.AddPropertyChangeListener("qty", rec)

	require.NoError(t, b.Set("qty", 5))
	require.NoError(t, b.Set("qty", 5))
	require.NoError(t, b.Set("price", 1.5))

	require.Len(t, rec.got, 1, "equal value and other properties do not notify")
	assert.Nil(t, rec.got[0].OldValue)
	assert.Equal(t, 5, rec.got[0].NewValue)
	assert.Same(t, b, rec.got[0].Source)

	v, err := b.Value("qty")
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestBean_Validation(t *testing.T) {
	tradeClass, issuerClass := classes()
	b := beans.New("t1", tradeClass)

	err := b.Set("missing", 1)
	assert.True(t, errors.Is(err, domain.ErrUnknownAttribute))

	err = b.Set("qty", "five")
	assert.True(t, errors.Is(err, domain.ErrTypeMismatch))
	assert.Contains(t, err.Error(), "value does not match attribute type")

	err = b.Set("issuer", beans.New("t2", tradeClass))
	assert.True(t, errors.Is(err, domain.ErrTypeMismatch), "wrong class")

	require.NoError(t, b.Set("issuer", beans.New("i1", issuerClass)))
	require.NoError(t, b.Set("issuer", nil))
	require.NoError(t, b.Set("note", []int{1}))

	_, err = b.Value("missing")
	assert.True(t, errors.Is(err, domain.ErrUnknownAttribute))
}

// position is a typed object that declares accessors instead of using a
// value map.
type position struct {
	domain.ChangeSupport
	size int
}

var positionClass = domain.NewClass("Position").Define(domain.Attribute{
	Name: "size",
	Kind: domain.KindInt,
	Get:  func(obj any) (any, error) { return obj.(*position).size, nil },
	Set: func(obj any, v any) error {
		p := obj.(*position)
		old := p.size
		p.size = v.(int)
		p.Fire(p, "size", old, p.size)
		return nil
	},
}).Define(domain.Attribute{
	Name: "broken",
	Kind: domain.KindInt,
	Get:  func(any) (any, error) { return nil, errors.New("feed offline") },
})

func (*position) Class() *domain.Class { return positionClass }

func TestAccessor_Beans(t *testing.T) {
	tradeClass, issuerClass := classes()
	reg := beans.NewRegistry(tradeClass, issuerClass)
	acc := beans.NewAccessor(reg)

	issuer := beans.New("i1", issuerClass)
	trade := beans.New("t1", tradeClass)
	require.NoError(t, acc.Set(issuer, "rating", "AA"))
	require.NoError(t, acc.Set(trade, "issuer", issuer))

	v, err := acc.GetPath(trade, domain.Path{"issuer", "rating"})
	require.NoError(t, err)
	assert.Equal(t, "AA", v)

	require.NoError(t, acc.Set(trade, "issuer", nil))
	v, err = acc.GetPath(trade, domain.Path{"issuer", "rating"})
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = acc.Get(nil, "rating")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = acc.Get(trade, "rating")
	assert.True(t, errors.Is(err, domain.ErrUnknownAttribute))

	_, err = acc.Get(42, "rating")
	assert.True(t, errors.Is(err, domain.ErrUnknownClass))

	err = acc.Set(trade, "qty", 1.5)
	assert.True(t, errors.Is(err, domain.ErrTypeMismatch))
}

func TestAccessor_TypedObject(t *testing.T) {
	acc := beans.NewAccessor(beans.NewRegistry())
	p := &position{size: 3}
	rec := &changes{}
	p.AddPropertyChangeListener("size", rec)

	v, err := acc.Get(p, "size")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	require.NoError(t, acc.Set(p, "size", 4))
	require.Len(t, rec.got, 1)
	assert.Equal(t, 3, rec.got[0].OldValue)

	_, err = acc.Get(p, "broken")
	assert.True(t, errors.Is(err, domain.ErrReadFailed))
	assert.Contains(t, err.Error(), "feed offline")

	err = acc.Set(p, "broken", 1)
	assert.True(t, errors.Is(err, domain.ErrReadOnlyAttribute))
}

func TestRegistry(t *testing.T) {
	tradeClass, issuerClass := classes()
	reg := beans.NewRegistry(tradeClass)
	reg.Register(issuerClass)

	c, ok := reg.Lookup("Issuer")
	require.True(t, ok)
	assert.Same(t, issuerClass, c)
	assert.Equal(t, []string{"Issuer", "Trade"}, reg.Names())

	c, ok = reg.ClassOf(beans.New("t", tradeClass))
	require.True(t, ok)
	assert.Same(t, tradeClass, c)

	_, ok = reg.ClassOf("string")
	assert.False(t, ok)
}
