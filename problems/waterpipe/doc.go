// Package waterpipe generates instances of the water pipe enhancement
// problem.
//
// An instance starts from a road network sampled as an Erdős–Rényi
// graph, with one arc per direction of each road section and a sampled
// enhancement cost per section. Node roles are drawn at random: critical
// customers that must receive enhanced supply, water sources, and
// housing-area centers whose k-hop edge neighborhoods must be reached by
// at least one enhanced section. Binary x variables select sections to
// enhance; integer y variables count the enhanced paths routed over each
// arc, fed by per-source integers yT and absorbed by a slack integer z.
// Flow balance holds at every node, each section is enhanced in at most
// one direction, and two accounting equalities tie sources, enhanced
// sections, and critical customers together. The objective minimizes
// total enhancement cost.
//
// The construction follows Gupta et al. (ACM COMPASS 2020,
// doi:10.1145/3378393.3402246).
package waterpipe
