// Package match solves one min-cost bipartite assignment per urgency group
// and provides a nearest-courier fallback for a group whose solve yields no
// feasible match.
package match

import "math"

// Sentinel is the cost assigned to an infeasible (courier, bundle) cell. A
// matched pair whose solved cost equals Sentinel is treated as unmatched.
const Sentinel = 1e12

// solveSquare runs the classic O(n^3) Hungarian algorithm (Kuhn-Munkres with
// potentials) on a square cost matrix, minimizing total cost. No library in
// this codebase's dependency stack implements linear-sum assignment, so
// this is a from-scratch, deterministic, stdlib-only solver.
//
// Returns rowToCol where rowToCol[i] is the column assigned to row i.
func solveSquare(cost [][]float64) []int {
	n := len(cost)
	const inf = math.MaxFloat64 / 4

	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	rowToCol := make([]int, n)
	for i := range rowToCol {
		rowToCol[i] = -1
	}
	for j := 1; j <= n; j++ {
		if p[j] != 0 {
			rowToCol[p[j]-1] = j - 1
		}
	}
	return rowToCol
}

// Solve runs min-cost bipartite assignment over a possibly-rectangular cost
// matrix, padding with Sentinel-cost dummy rows/columns so every real row
// and column still gets considered. rowToCol[i] is the real column assigned
// to real row i, or -1 if row i matched a dummy column (i.e. unmatched).
func Solve(cost [][]float64) []int {
	rows := len(cost)
	if rows == 0 {
		return nil
	}
	cols := len(cost[0])

	n := rows
	if cols > n {
		n = cols
	}

	square := make([][]float64, n)
	for i := range square {
		square[i] = make([]float64, n)
		for j := range square[i] {
			switch {
			case i < rows && j < cols:
				square[i][j] = cost[i][j]
			default:
				square[i][j] = Sentinel
			}
		}
	}

	assignment := solveSquare(square)

	rowToCol := make([]int, rows)
	for i := 0; i < rows; i++ {
		col := assignment[i]
		if col >= cols {
			rowToCol[i] = -1
			continue
		}
		if cost[i][col] >= Sentinel {
			rowToCol[i] = -1
			continue
		}
		rowToCol[i] = col
	}
	return rowToCol
}
