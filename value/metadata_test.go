package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simon-lentz/xjs/value"
)

func TestMetadata_DefaultsAreUnset(t *testing.T) {
	t.Parallel()

	m := value.NewMetadata()
	assert.Equal(t, value.Unset, m.LinesAbove)
	assert.Equal(t, value.Unset, m.LinesBetween)
	assert.Equal(t, value.Unset, m.LinesTrailing)
	assert.True(t, m.Flags.IsInitialized())
}

func TestMetadata_SetDefaults_FillsUnsetOnly(t *testing.T) {
	t.Parallel()

	m := value.Metadata{LinesAbove: 2, LinesBetween: value.Unset, LinesTrailing: value.Unset}
	defaults := value.Metadata{LinesAbove: 9, LinesBetween: 1, LinesTrailing: 0}

	m.SetDefaults(defaults)

	assert.Equal(t, 2, m.LinesAbove, "already-set field must not be overwritten")
	assert.Equal(t, 1, m.LinesBetween)
	assert.Equal(t, 0, m.LinesTrailing)
}

func TestFlags_WithWithout(t *testing.T) {
	t.Parallel()

	f := value.NewMetadata().Flags
	f = f.With(value.FlagTrailingComma)
	assert.True(t, f.Has(value.FlagTrailingComma))
	assert.False(t, f.Has(value.FlagSameLine))

	f = f.Without(value.FlagTrailingComma)
	assert.False(t, f.Has(value.FlagTrailingComma))
	assert.True(t, f.IsInitialized())
}

func TestComments_HasAnyRequiresAllFiveSlots(t *testing.T) {
	t.Parallel()

	c := &value.Comments{}
	assert.False(t, c.HasAny())

	c.Set(value.SlotHeader, "// a")
	assert.False(t, c.HasAny(), "one populated slot is not enough for HasAny")
	assert.True(t, c.HasSlot(value.SlotHeader))
	assert.False(t, c.IsEmpty())

	c.Set(value.SlotEol, "// b")
	c.Set(value.SlotFooter, "// c")
	c.Set(value.SlotValue, "// d")
	c.Set(value.SlotInterior, "// e")
	assert.True(t, c.HasAny(), "all five slots populated")
}

func TestComments_Clone(t *testing.T) {
	t.Parallel()

	c := &value.Comments{}
	c.Set(value.SlotHeader, "// hi")
	dup := c.Clone()
	dup.Set(value.SlotEol, "// bye")

	assert.False(t, c.HasSlot(value.SlotEol), "clone must not alias the original")
	assert.True(t, dup.HasSlot(value.SlotEol))
}
