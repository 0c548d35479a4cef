package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-mdict/mdict/section"
)

func TestInsertAndGetSingle(t *testing.T) {
	s := New()
	s.Insert("hello", section.Locator{Block: 1, Offset: 10, Length: 5})

	v, ok := s.Get("hello")
	require.True(t, ok)
	require.Equal(t, []section.Locator{{Block: 1, Offset: 10, Length: 5}}, v.Locators())
}

func TestGetMissing(t *testing.T) {
	s := New()
	_, ok := s.Get("nope")
	require.False(t, ok)
}

func TestInsertPromotesToManyNewestFirst(t *testing.T) {
	s := New()
	first := section.Locator{Block: 0, Offset: 0, Length: 3}
	second := section.Locator{Block: 0, Offset: 10, Length: 4}
	third := section.Locator{Block: 0, Offset: 20, Length: 5}

	s.Insert("run", first)
	s.Insert("run", second)
	s.Insert("run", third)

	v, ok := s.Get("run")
	require.True(t, ok)
	require.Equal(t, []section.Locator{third, second, first}, v.Locators())
}

func TestLenAndKeys(t *testing.T) {
	s := New()
	s.Insert("banana", section.Locator{})
	s.Insert("apple", section.Locator{})
	s.Insert("cherry", section.Locator{})

	require.Equal(t, 3, s.Len())
	require.Equal(t, []string{"apple", "banana", "cherry"}, s.Keys())
}
