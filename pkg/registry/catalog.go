package registry

import (
	"github.com/aretw0/algoscope/pkg/algorithms"
)

// Default returns a registry holding every built-in algorithm.
func Default(opts ...Option) *Registry {
	r := NewRegistry(opts...)
	for _, e := range catalog {
		r.Register(e)
	}
	return r
}

// Names lists the built-in algorithm names in catalogue order.
func Names() []string {
	out := make([]string, len(catalog))
	for i, e := range catalog {
		out[i] = e.Name
	}
	return out
}

var catalog = []Entry{
	{Name: "linear", Family: FamilySearch, Title: "Linear Search", Generator: algorithms.LinearSearch,
		Summary: "Scans every element from left to right.\n\n* **Time:** O(n)\n* When the target repeats, the **last** match is reported."},
	{Name: "binary", Family: FamilySearch, Title: "Binary Search", Generator: algorithms.BinarySearch,
		Summary: "Halves a sorted range around `mid` until the target is found, then keeps narrowing until `low == high`.\n\n* **Time:** O(log n)\n* Input must be sorted."},

	{Name: "bubble", Family: FamilySorting, Title: "Bubble Sort", Generator: algorithms.BubbleSort,
		Summary: "Compares adjacent pairs and swaps them when out of order. Each pass fixes the largest remaining value at the end.\n\n* **Time:** O(n²)\n* **Stable:** yes"},
	{Name: "insertion", Family: FamilySorting, Title: "Insertion Sort", Generator: algorithms.InsertionSort,
		Summary: "Grows a sorted prefix by sliding each new element left into place.\n\n* **Time:** O(n²), O(n) when nearly sorted\n* **Stable:** yes"},
	{Name: "selection", Family: FamilySorting, Title: "Selection Sort", Generator: algorithms.SelectionSort,
		Summary: "Selects the minimum of the unsorted suffix and swaps it to the front.\n\n* **Time:** O(n²)\n* **Stable:** no"},
	{Name: "merge", Family: FamilySorting, Title: "Merge Sort", Generator: algorithms.MergeSort,
		Summary: "Splits the array in halves, sorts them recursively and merges them back.\n\n* **Time:** O(n log n)\n* **Stable:** yes"},
	{Name: "quick", Family: FamilySorting, Title: "Quick Sort", Generator: algorithms.QuickSort,
		Summary: "Lomuto partition around the last element, then recursion into the low and high parts.\n\n* **Time:** O(n log n) average, O(n²) worst\n* **Stable:** no"},
	{Name: "heap", Family: FamilySorting, Title: "Heap Sort", Generator: algorithms.HeapSort,
		Summary: "Builds a max-heap and repeatedly moves the root behind the heap.\n\n* **Time:** O(n log n)\n* **Stable:** no"},
	{Name: "bucket", Family: FamilySorting, Title: "Bucket Sort", Generator: algorithms.BucketSort,
		Summary: "Scatters values in `[0, 100)` into five buckets, sorts each bucket and gathers them.\n\n* **Time:** O(n + k) on uniform data"},

	{Name: "bfs", Family: FamilyGraph, Title: "Breadth-First Search", Generator: algorithms.BFS, NeedsStart: true,
		Summary: "Visits nodes level by level using a FIFO queue and continues into every other component."},
	{Name: "dfs", Family: FamilyGraph, Title: "Depth-First Search", Generator: algorithms.DFS, NeedsStart: true,
		Summary: "Follows one branch as deep as possible using a stack and continues into every other component."},
	{Name: "dijkstra", Family: FamilyGraph, Title: "Dijkstra", Generator: algorithms.Dijkstra, NeedsStart: true, NeedsWeights: true,
		Summary: "Settles nodes by increasing distance with a priority queue.\n\n> Negative weights give undefined results; use Bellman-Ford."},
	{Name: "bellman-ford", Family: FamilyGraph, Title: "Bellman-Ford", Generator: algorithms.BellmanFord, NeedsStart: true, NeedsWeights: true,
		Summary: "Relaxes every edge V−1 times, then checks once more to detect negative cycles."},
	{Name: "floyd-warshall", Family: FamilyGraph, Title: "Floyd-Warshall", Generator: algorithms.FloydWarshall, NeedsWeights: true,
		Summary: "All-pairs shortest paths through every intermediate node `k`.\n\n* **Time:** O(V³)"},
	{Name: "kruskal", Family: FamilyGraph, Title: "Kruskal", Generator: algorithms.Kruskal, NeedsWeights: true,
		Summary: "Minimum spanning forest: takes edges by ascending weight, using union-find to reject cycles."},
	{Name: "prim", Family: FamilyGraph, Title: "Prim", Generator: algorithms.Prim, NeedsStart: true, NeedsWeights: true,
		Summary: "Minimum spanning forest grown from the start node along the lightest crossing edge."},
	{Name: "topological", Family: FamilyGraph, Title: "Topological Sort", Generator: algorithms.TopologicalSort,
		Summary: "Kahn's algorithm: repeatedly outputs a node with in-degree 0. Reports a cycle when nodes remain."},
	{Name: "kosaraju", Family: FamilyGraph, Title: "Kosaraju", Generator: algorithms.Kosaraju,
		Summary: "Strongly connected components from a finish-order DFS followed by a DFS on the transposed graph."},
	{Name: "coloring", Family: FamilyGraph, Title: "Greedy Coloring", Generator: algorithms.GreedyColoring,
		Summary: "Gives each node, in insertion order, the smallest color unused by its neighbors."},
	{Name: "astar", Family: FamilyGraph, Title: "A*", Generator: algorithms.AStar, NeedsStart: true, NeedsGoal: true, NeedsWeights: true,
		Summary: "Best-first search on `f = g + h` with a euclidean, manhattan or zero heuristic over node positions."},
}
