package application

import (
	"errors"
	"sort"

	"github.com/sanosuguru/go-reserved-seating/internal/domain/layout"
)

// 自動座席選択のエラー定義
var (
	ErrInvalidNumSeats          = errors.New("座席数は1以上である必要があります")
	ErrInsufficientAvailability = errors.New("条件を満たす空き座席がありません")
)

// 選択結果の種別（メトリクスのラベルに使用）
const (
	selectionAdjacent   = "adjacent"
	selectionFallback   = "fallback"
	selectionCrossClass = "cross_class"
)

// 隣接探索を打ち切る空き座席数の上限
// これを超える場合は隣接性をあきらめてクラス内の先頭から選ぶ
const maxAdjacencySearchSeats = 4096

// selectCandidates は空き座席から numSeats 席の候補を選ぶ
// 希望クラスがある場合は優先順にクラスの空き席を使い切り、
// 足りない分を次のクラスで補う（先頭クラス単独で足りる場合は隣接した並びを優先）
// 希望クラスがない場合は単独で足りるクラスを探し、どのクラスでも
// 足りなければクラス名順にまたいで集める
// 候補が作れない場合は nil を返す
func selectCandidates(seats []*layout.Seat, free map[string]struct{}, numSeats int, preference []string) ([]string, string) {
	freeByClass := make(map[string][]*layout.Seat)
	for _, s := range seats {
		if _, ok := free[s.ID]; ok {
			freeByClass[s.SeatClass] = append(freeByClass[s.SeatClass], s)
		}
	}

	graph := layout.BuildAdjacency(seats)

	if len(preference) > 0 {
		return selectByPreference(graph, freeByClass, numSeats, dedupeClasses(preference))
	}

	classes := make([]string, 0, len(freeByClass))
	for c := range freeByClass {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	for _, class := range classes {
		classFree := freeByClass[class]
		if len(classFree) < numSeats {
			continue
		}
		if run := findAdjacentRun(graph, classFree, numSeats); run != nil {
			return run, selectionAdjacent
		}
		return firstSeatIDs(classFree, numSeats), selectionFallback
	}

	// どのクラス単独でも足りない場合の最終手段: クラスをまたいで集める
	var combined []string
	for _, class := range classes {
		for _, s := range freeByClass[class] {
			combined = append(combined, s.ID)
			if len(combined) == numSeats {
				return combined, selectionCrossClass
			}
		}
	}
	return nil, ""
}

// selectByPreference は希望クラスを優先順に使い切りながら候補を集める
// 例: VIP 2席 + GA 5席で [VIP, GA] の3席要求なら、GA単独でも
// 足りるかどうかに関わらず VIP 2席 + GA 1席を返す
func selectByPreference(graph *layout.AdjacencyGraph, freeByClass map[string][]*layout.Seat, numSeats int, classes []string) ([]string, string) {
	var picked []string
	for _, class := range classes {
		classFree := freeByClass[class]
		if len(classFree) == 0 {
			continue
		}

		remaining := numSeats - len(picked)
		if len(picked) == 0 && len(classFree) >= remaining {
			// 先頭の希望クラス単独で足りる場合は隣接した並びを優先
			if run := findAdjacentRun(graph, classFree, numSeats); run != nil {
				return run, selectionAdjacent
			}
			return firstSeatIDs(classFree, numSeats), selectionFallback
		}

		for _, s := range classFree {
			picked = append(picked, s.ID)
			if len(picked) == numSeats {
				return picked, selectionCrossClass
			}
		}
	}
	return nil, ""
}

// dedupeClasses は希望クラスの重複を取り除き、初出順を保つ
// （同じクラスを二度訪れると同じ座席が候補に重複して入る）
func dedupeClasses(classes []string) []string {
	seen := make(map[string]struct{}, len(classes))
	result := make([]string, 0, len(classes))
	for _, c := range classes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		result = append(result, c)
	}
	return result
}

func firstSeatIDs(seats []*layout.Seat, n int) []string {
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = seats[i].ID
	}
	return ids
}

// findAdjacentRun は nextTo グラフ上で numSeats 席の連結な集合を探す
// 各候補席から幅優先で連結成分を広げ、最初に見つかった成分の
// 先頭 numSeats 席を返す（BFSの訪問前置は常に連結）
// 空き座席数が上限を超える場合は探索をあきらめて nil を返す
func findAdjacentRun(graph *layout.AdjacencyGraph, classFree []*layout.Seat, numSeats int) []string {
	if len(classFree) > maxAdjacencySearchSeats {
		return nil
	}
	freeSet := make(map[string]struct{}, len(classFree))
	for _, s := range classFree {
		freeSet[s.ID] = struct{}{}
	}

	visited := make(map[string]struct{}, len(classFree))
	for _, start := range classFree {
		if _, ok := visited[start.ID]; ok {
			continue
		}
		component := []string{start.ID}
		visited[start.ID] = struct{}{}
		for i := 0; i < len(component); i++ {
			for _, n := range graph.Neighbors(component[i]) {
				if _, ok := freeSet[n]; !ok {
					continue
				}
				if _, ok := visited[n]; ok {
					continue
				}
				visited[n] = struct{}{}
				component = append(component, n)
			}
		}
		if len(component) >= numSeats {
			return component[:numSeats]
		}
	}
	return nil
}
