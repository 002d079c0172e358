package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func seq(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		size      int
		number    int
		wantItems []int
		wantCount int
	}{
		{"ten rows third page", 10, 4, 3, []int{8, 9}, 3},
		{"ten rows first page", 10, 4, 1, []int{0, 1, 2, 3}, 3},
		{"exact multiple last page", 8, 4, 2, []int{4, 5, 6, 7}, 2},
		{"beyond last page", 10, 4, 4, []int{}, 3},
		{"no page requested", 10, 4, 0, seq(10), 3},
		{"negative page treated as absent", 5, 4, -1, seq(5), 2},
		{"empty set", 0, 4, 1, []int{}, 0},
		{"empty set no page", 0, 4, 0, []int{}, 0},
		{"huge page number", 3, 4, int(^uint(0) >> 1), []int{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := Paginate(seq(tt.rows), tt.size, tt.number)
			require.NoError(t, err)
			assert.Equal(t, tt.wantItems, page.Items)
			assert.Equal(t, tt.wantCount, page.PageCount)
			assert.NotNil(t, page.Items)
		})
	}
}

func TestPaginate_InvalidPageSize(t *testing.T) {
	for _, size := range []int{0, -4} {
		_, err := Paginate(seq(3), size, 1)
		assert.ErrorIs(t, err, ErrInvalidPageSize)
	}
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	rows := seq(6)
	page, err := Paginate(rows, 4, 1)
	require.NoError(t, err)

	page.Items[0] = 99
	assert.Equal(t, 0, rows[0])
}

func TestPaginate_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 200).Draw(rt, "n")
		size := rapid.IntRange(1, 25).Draw(rt, "size")
		rows := seq(n)

		wantCount := (n + size - 1) / size

		full, err := Paginate(rows, size, 0)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if full.PageCount != wantCount {
			rt.Fatalf("pageCount = %d, want %d", full.PageCount, wantCount)
		}
		if len(full.Items) != n {
			rt.Fatalf("unpaged items = %d, want %d", len(full.Items), n)
		}

		// Every row appears exactly once, in order, across the pages.
		seen := 0
		for number := 1; number <= wantCount; number++ {
			page, err := Paginate(rows, size, number)
			if err != nil {
				rt.Fatalf("unexpected error: %v", err)
			}
			want := min(size, n-(number-1)*size)
			if len(page.Items) != want {
				rt.Fatalf("page %d has %d items, want %d", number, len(page.Items), want)
			}
			for _, v := range page.Items {
				if v != seen {
					rt.Fatalf("page %d item %d, want %d", number, v, seen)
				}
				seen++
			}
		}
		if seen != n {
			rt.Fatalf("pages covered %d rows, want %d", seen, n)
		}

		beyond := rapid.IntRange(wantCount+1, wantCount+50).Draw(rt, "beyond")
		page, err := Paginate(rows, size, beyond)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if len(page.Items) != 0 {
			rt.Fatalf("page %d beyond %d pages has %d items", beyond, wantCount, len(page.Items))
		}
	})
}
