package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/algotutor.net/internal/adapter/logging"
	"gitlab.com/algotutor.net/internal/domain"
)

func TestClassify(t *testing.T) {
	svc := NewClassifierService(logging.NewNopLogger())

	tests := []struct {
		name string
		desc string
		want domain.Category
	}{
		{"empty", "", domain.CategoryNone},
		{"bfs english", "implement breadth first search on a graph", domain.CategoryBFS},
		{"bfs upper", "Write a BFS traversal", domain.CategoryBFS},
		{"bfs chinese", "請實作二元樹的層序走訪", domain.CategoryBFS},
		{"dfs", "Depth-first search over a grid", domain.CategoryDFS},
		{"dfs chinese", "用深度優先搜尋找連通元件", domain.CategoryDFS},
		{"dijkstra", "Find the SHORTEST PATH between cities", domain.CategoryDijkstra},
		{"dijkstra chinese", "計算最短路徑", domain.CategoryDijkstra},
		{"merge sort", "sort an array of integers", domain.CategoryMergeSort},
		{"merge sort chinese", "歸併排序", domain.CategoryMergeSort},
		{"sql", "write a database query for top students", domain.CategorySQLSelect},
		{"sql chinese", "從資料庫取出資料", domain.CategorySQLSelect},
		{"unmatched", "print hello world", domain.CategoryNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Classify(tt.desc))
		})
	}
}

func TestClassify_FirstRuleWins(t *testing.T) {
	svc := NewClassifierService(logging.NewNopLogger())

	assert.Equal(t, domain.CategoryBFS, svc.Classify("bfs then merge sort the visited nodes"))
	assert.Equal(t, domain.CategoryBFS, svc.Classify("sort the nodes of a tree 樹"))
	assert.Equal(t, domain.CategoryDFS, svc.Classify("depth first then select results"))
	assert.Equal(t, domain.CategoryDijkstra, svc.Classify("dijkstra and then sort distances"))
}

func TestClassify_Deterministic(t *testing.T) {
	svc := NewClassifierService(logging.NewNopLogger())

	inputs := []string{"breadth", "nothing relevant", strings.Repeat("x", 200), "SeLeCt *"}
	for _, in := range inputs {
		assert.Equal(t, svc.Classify(in), svc.Classify(in), in)
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "abc", preview("abc", 5))
	assert.Equal(t, "廣度...", preview("廣度優先", 2))
}
