package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/firmdesk/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingList builds a list whose row func records every index it renders.
func countingList(rowHeight, height, count int) (*virtualList, *[]int) {
	var calls []int
	l := newVirtualList(rowHeight, height, func(i int) string {
		calls = append(calls, i)
		if rowHeight == 1 {
			return fmt.Sprintf("row %d", i)
		}
		return fmt.Sprintf("row %d\ndetail %d", i, i)
	})
	l.SetCount(count)
	return &l, &calls
}

func TestVirtualList_RendersOnlyVisibleRows(t *testing.T) {
	l, calls := countingList(1, 10, 10000)

	first, last := l.visibleRange()
	assert.Equal(t, 0, first)
	assert.Equal(t, 10, last)

	out := l.render()
	assert.Len(t, *calls, 10)
	assert.Equal(t, 10, strings.Count(out, "\n")+1)
	assert.Contains(t, out, "row 0")
	assert.Contains(t, out, "row 9")
	assert.NotContains(t, out, "row 10")
}

func TestVirtualList_RowHeightSpansLines(t *testing.T) {
	l, calls := countingList(2, 10, 100)

	first, last := l.visibleRange()
	assert.Equal(t, 0, first)
	assert.Equal(t, 5, last)

	out := l.render()
	assert.Len(t, *calls, 5)
	assert.Contains(t, out, "detail 4")
	assert.NotContains(t, out, "row 5")
}

func TestVirtualList_PartialRowAtTop(t *testing.T) {
	// Height 5 with two-line rows: following row 3 scrolls to line 3, so
	// row 1 is half visible.
	l, _ := countingList(2, 5, 10)
	for range 3 {
		l.Update(teatest.Key("down"))
	}
	require.Equal(t, 3, l.Cursor())

	first, last := l.visibleRange()
	assert.Equal(t, 1, first)
	assert.Equal(t, 4, last)

	lines := strings.Split(l.render(), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "detail 1", lines[0])
	assert.Equal(t, "detail 3", lines[4])
}

func TestVirtualList_RowAtOutOfRange(t *testing.T) {
	l, calls := countingList(1, 10, 3)

	for _, i := range []int{-1, 3, 100} {
		s, ok := l.rowAt(i)
		assert.False(t, ok)
		assert.Empty(t, s)
	}
	assert.Empty(t, *calls)

	s, ok := l.rowAt(2)
	assert.True(t, ok)
	assert.Equal(t, "row 2", s)
}

func TestVirtualList_Empty(t *testing.T) {
	l, calls := countingList(1, 10, 0)

	first, last := l.visibleRange()
	assert.Equal(t, first, last)
	assert.Empty(t, l.render())
	assert.Empty(t, *calls)

	l.Update(teatest.Key("down"))
	assert.Equal(t, 0, l.Cursor())
}

func TestVirtualList_Navigation(t *testing.T) {
	l, _ := countingList(1, 10, 50)

	assert.True(t, l.Update(teatest.Key("pgdown")))
	assert.Equal(t, 10, l.Cursor())

	l.Update(teatest.Key("end"))
	assert.Equal(t, 49, l.Cursor())
	first, last := l.visibleRange()
	assert.Equal(t, 40, first)
	assert.Equal(t, 50, last)

	l.Update(teatest.Key("up"))
	assert.Equal(t, 48, l.Cursor())
	first, _ = l.visibleRange()
	assert.Equal(t, 40, first, "moving within the viewport does not scroll")

	l.Update(teatest.Key("g"))
	assert.Equal(t, 0, l.Cursor())
	first, _ = l.visibleRange()
	assert.Equal(t, 0, first)

	assert.False(t, l.Update(teatest.Key("x")))
}

func TestVirtualList_ShrinkingCountClampsCursor(t *testing.T) {
	l, _ := countingList(1, 10, 50)
	l.Update(teatest.Key("end"))

	l.SetCount(5)
	assert.Equal(t, 4, l.Cursor())
	first, last := l.visibleRange()
	assert.Equal(t, 0, first)
	assert.Equal(t, 5, last)
}

func TestVirtualList_Resize(t *testing.T) {
	l, _ := countingList(1, 10, 50)
	l.Update(teatest.Key("end"))

	l.SetHeight(20)
	first, last := l.visibleRange()
	assert.Equal(t, 30, first)
	assert.Equal(t, 50, last)
}
