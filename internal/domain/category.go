package domain

// Category represents the algorithm family an assignment description belongs to
type Category string

const (
	CategoryBFS       Category = "bfs"
	CategoryDFS       Category = "dfs"
	CategoryDijkstra  Category = "dijkstra"
	CategoryMergeSort Category = "merge_sort"
	CategorySQLSelect Category = "sql_select"
	CategoryNone      Category = "none"
)

// Categories lists the classifiable categories in classification priority order.
func Categories() []Category {
	return []Category{
		CategoryBFS,
		CategoryDFS,
		CategoryDijkstra,
		CategoryMergeSort,
		CategorySQLSelect,
	}
}

func (c Category) String() string {
	return string(c)
}
