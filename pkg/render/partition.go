package render

// Rows returns the image rows owned by worker i of n: i, i+n, i+2n, ...
//
// Across i in [0, n) the row sets are pairwise disjoint and together cover
// [0, size). When n > size the surplus workers own no rows.
func Rows(i, n, size int) []int {
	if n <= 0 || i < 0 || i >= n || size <= 0 {
		return nil
	}

	rows := make([]int, 0, (size-i+n-1)/n)
	for row := i; row < size; row += n {
		rows = append(rows, row)
	}
	return rows
}
