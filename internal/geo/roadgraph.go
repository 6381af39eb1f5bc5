package geo

import "container/heap"

// Node is a road-graph vertex: (y=lat, x=lon) per the consumed road-graph
// interface.
type Node struct {
	ID  int64
	Lat float64
	Lon float64
}

// Edge is a weighted undirected road-graph edge, weight in meters.
type Edge struct {
	To     int64
	Length float64
}

// Graph is an undirected weighted road network. It is built once at
// startup and never mutated during queries, matching the read-only
// lifecycle of every other core input.
type Graph struct {
	nodes map[int64]Node
	adj   map[int64][]Edge
}

// NewGraph builds an empty graph; callers add nodes/edges before first use.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[int64]Node), adj: make(map[int64][]Edge)}
}

// AddNode registers a node.
func (g *Graph) AddNode(n Node) {
	g.nodes[n.ID] = n
}

// AddEdge registers an undirected edge between two existing nodes.
func (g *Graph) AddEdge(a, b int64, lengthMeters float64) {
	g.adj[a] = append(g.adj[a], Edge{To: b, Length: lengthMeters})
	g.adj[b] = append(g.adj[b], Edge{To: a, Length: lengthMeters})
}

// NodeCount reports how many nodes the graph holds; zero means "absent"
// per the consumed-interface contract (road graph is optional).
func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

// NearestNode performs a linear nearest-node scan (graphs in this domain
// are regional road networks, not continental ones; a spatial index is not
// warranted at this scale, matching the teacher's preference for simple
// indexed lookups over precomputation machinery it doesn't need).
func (g *Graph) NearestNode(p Point) (Node, bool) {
	if len(g.nodes) == 0 {
		return Node{}, false
	}
	var best Node
	bestDist := -1.0
	for _, n := range g.nodes {
		d := HaversineMeters(p, Point{Lat: n.Lat, Lon: n.Lon})
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = n
		}
	}
	return best, true
}

// pqItem is one entry in the Dijkstra frontier.
type pqItem struct {
	node     int64
	distance float64
	index    int
}

// priorityQueue is a container/heap.Interface min-heap by distance,
// grounded on the teacher pack's astar.go PriorityQueue pattern with the
// heuristic term removed (this kernel needs point-to-point shortest path,
// not a goal-directed search).
type priorityQueue []*pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool   { return pq[i].distance < pq[j].distance }
func (pq priorityQueue) Swap(i, j int)        { pq[i], pq[j] = pq[j], pq[i]; pq[i].index = i; pq[j].index = j }
func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// ShortestPath runs a bounded Dijkstra from a source node, returning the
// distance in meters to target, or (0, false) if unreachable or the
// explored-node budget is exhausted first.
func (g *Graph) ShortestPath(source, target int64, maxExplored int) (float64, bool) {
	if source == target {
		return 0, true
	}
	dist := make(map[int64]float64)
	dist[source] = 0

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{node: source, distance: 0})

	explored := 0
	visited := make(map[int64]bool)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		if visited[item.node] {
			continue
		}
		visited[item.node] = true
		explored++
		if item.node == target {
			return item.distance, true
		}
		if explored > maxExplored {
			return 0, false
		}
		for _, e := range g.adj[item.node] {
			if visited[e.To] {
				continue
			}
			nd := item.distance + e.Length
			if cur, ok := dist[e.To]; !ok || nd < cur {
				dist[e.To] = nd
				heap.Push(pq, &pqItem{node: e.To, distance: nd})
			}
		}
	}
	return 0, false
}
