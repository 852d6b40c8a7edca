package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	var set []int64

	set = Toggle(set, 3)
	set = Toggle(set, 1)
	set = Toggle(set, 7)
	assert.Equal(t, []int64{3, 1, 7}, set, "порядок добавления сохраняется")

	set = Toggle(set, 1)
	assert.Equal(t, []int64{3, 7}, set)

	assert.True(t, Contains(set, 3))
	assert.False(t, Contains(set, 1))
}

func TestTogglePairIsIdempotent(t *testing.T) {
	original := []int64{5, 2, 9}

	set := Toggle(append([]int64(nil), original...), 11)
	set = Toggle(set, 11)
	assert.Equal(t, original, set, "двойное переключение нового id возвращает исходный набор")

	set = Toggle(append([]int64(nil), original...), 2)
	set = Toggle(set, 2)
	assert.ElementsMatch(t, original, set, "двойное переключение существующего id сохраняет членство")
}

func TestToggleNoDuplicates(t *testing.T) {
	set := []int64{4}
	set = Toggle(set, 4)
	set = Toggle(set, 4)
	assert.Equal(t, []int64{4}, set)
}
