// Package ordering decides the horizontal order of nodes inside each layer.
//
// Layer order is the single biggest factor in how readable a layered drawing
// is: every pair of edges whose endpoints appear in opposite order on two
// adjacent layers crosses. Minimizing crossings is NP-hard, so the package
// offers heuristics behind the [Orderer] interface:
//
//   - [Input]: keeps the input order (real nodes by node list index, then
//     virtual nodes by creation). Useful as a baseline and in tests.
//   - [Barycentric]: the classic barycenter heuristic with alternating
//     sweeps and adjacent-swap refinement. This is the default.
//   - [Exhaustive]: barycentric followed by a brute-force search over the
//     permutations of every small layer. Slower, never worse.
//
// Orderers must run after [transform.Subdivide] so every edge connects
// adjacent layers; crossings are counted with [dag.CountCrossings].
//
// [transform.Subdivide]: github.com/speich/dGraph/pkg/dag/transform
package ordering
