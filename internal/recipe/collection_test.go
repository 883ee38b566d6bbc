package recipe

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(n int) Collection {
	c := make(Collection, n)
	for i := range c {
		c[i] = Recipe{Title: fmt.Sprintf("r%d", i), Description: fmt.Sprintf("desc %d", i)}
	}
	return c
}

func TestCollection_EncodeNilIsEmptyArray(t *testing.T) {
	var c Collection
	s, err := c.Encode()
	require.NoError(t, err)
	assert.Equal(t, "[]", s)
}

func TestCollection_RoundTrip(t *testing.T) {
	c := Collection{
		{Title: "Soup", Description: "Warm", Image: "https://example.com/soup.jpg"},
		{Title: "Salad", Description: "Crisp", ID: "0190-abc"},
		{Title: "Ünïcødé", Description: "日本語の説明"},
	}

	s, err := c.Encode()
	require.NoError(t, err)

	got, err := Decode(s)
	require.NoError(t, err)
	assert.True(t, c.Equal(got), "round trip changed collection: %s", s)
}

func TestDecode_Null(t *testing.T) {
	c, err := Decode("null")
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
}

func TestDecode_Malformed(t *testing.T) {
	for _, in := range []string{"", "{", `{"title":"x"}`, `[1,2]`, `[null]`} {
		t.Run(in, func(t *testing.T) {
			_, err := Decode(in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "decode collection")
		})
	}
}

func TestCollection_WithoutEveryIndex(t *testing.T) {
	c := sample(5)
	for i := 0; i < c.Len(); i++ {
		t.Run(fmt.Sprintf("index_%d", i), func(t *testing.T) {
			got := c.Without(i)
			require.Equal(t, c.Len()-1, got.Len())

			var want Collection
			want = append(want, c[:i]...)
			want = append(want, c[i+1:]...)
			assert.True(t, want.Equal(got))

			for _, r := range got {
				assert.NotEqual(t, c[i].Title, r.Title)
			}
		})
	}
	assert.Equal(t, 5, c.Len(), "source must not change")
}

func TestCollection_WithoutPanicsOutOfRange(t *testing.T) {
	c := sample(2)
	assert.Panics(t, func() { c.Without(2) })
	assert.Panics(t, func() { c.Without(-1) })
}

func TestCollection_ReplaceAndAppend(t *testing.T) {
	c := sample(2)

	replaced := c.Replace(1, Recipe{Title: "new"})
	assert.Equal(t, "new", replaced[1].Title)
	assert.Equal(t, "r1", c[1].Title)

	appended := c.Append(Recipe{Title: "tail"})
	require.Equal(t, 3, appended.Len())
	assert.Equal(t, "tail", appended[2].Title)
	assert.Equal(t, 2, c.Len())
}

func TestCollection_EqualNilAndEmpty(t *testing.T) {
	var nilC Collection
	assert.True(t, nilC.Equal(Collection{}))
	assert.False(t, sample(1).Equal(sample(2)))
}

func TestCollection_CloneNeverNil(t *testing.T) {
	var c Collection
	assert.NotNil(t, c.Clone())
}
