// Package gisp generates instances of the generalized independent set
// problem.
//
// An instance starts from an Erdős–Rényi base graph G(n, p) with node
// revenues and edge removal costs. A subset of the edges is marked
// removable. The model selects nodes (binary x) and removable edges to
// delete (binary y): two adjacent selected nodes are only feasible when
// their shared edge is removable and paid for. The objective maximizes
// total node revenue minus total removal cost.
//
// Two parameter regimes follow the literature: SET1 draws integer node
// revenues uniformly from [1, 100] and prices each edge at the sum of its
// endpoint revenues divided by SetParam; SET2 gives every node revenue
// SetParam and every edge cost 1.
package gisp
