// Package matrix provides Dense, a flat row-major float64 buffer with
// bounds-checked At/Set. The teacher's graph-adjacency/incidence
// representations and its decomposition/statistics facade (LU, QR,
// eigen, Floyd-Warshall, elementwise/statistics ops) are not exercised
// anywhere in this module — gpenum's bottleneck-steiner-distance table
// is the only caller, and it only needs NewDense/At/Set/Rows/Cols — so
// that surface has been trimmed; see DESIGN.md.
package matrix
