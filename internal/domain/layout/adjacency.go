package layout

import "sort"

// AdjacencyGraph は会場構成内の座席隣接関係を表す無向グラフ
type AdjacencyGraph struct {
	neighbors map[string][]string
}

// BuildAdjacency は座席一覧から隣接グラフを構築する
// NextTo は対称に保存されている前提だが、片方向しか無い場合もここで補う
func BuildAdjacency(seats []*Seat) *AdjacencyGraph {
	set := make(map[string]map[string]struct{}, len(seats))
	ids := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		ids[s.ID] = struct{}{}
	}
	add := func(a, b string) {
		if set[a] == nil {
			set[a] = make(map[string]struct{})
		}
		set[a][b] = struct{}{}
	}
	for _, s := range seats {
		for _, n := range s.NextTo {
			if _, ok := ids[n]; !ok {
				continue
			}
			add(s.ID, n)
			add(n, s.ID)
		}
	}

	g := &AdjacencyGraph{neighbors: make(map[string][]string, len(set))}
	for id, ns := range set {
		sorted := make([]string, 0, len(ns))
		for n := range ns {
			sorted = append(sorted, n)
		}
		sort.Strings(sorted)
		g.neighbors[id] = sorted
	}
	return g
}

// Neighbors は座席に隣接する座席IDをソート済みで返す
func (g *AdjacencyGraph) Neighbors(seatID string) []string {
	return g.neighbors[seatID]
}

// Adjacent は2つの座席が隣接しているかを返す
func (g *AdjacencyGraph) Adjacent(a, b string) bool {
	for _, n := range g.neighbors[a] {
		if n == b {
			return true
		}
	}
	return false
}
