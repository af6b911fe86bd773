// Package fcmnf generates instances of the fixed-charge multicommodity
// network flow problem.
//
// An instance is a directed Erdős–Rényi graph whose arcs carry a variable
// cost, a fixed opening charge, and a capacity, together with K
// commodities, each an (origin, destination, quantity) triple whose
// endpoints are guaranteed connected in the sampled graph. Binary y
// variables open arcs; continuous x variables in [0, 1] route the fraction
// of each commodity's quantity over each arc. Flow conservation holds at
// every node, arc capacities bind total routed quantity to opened arcs,
// and the objective minimizes fixed plus variable cost.
//
// The construction follows Hewitt, Nemhauser and Savelsbergh (2010).
package fcmnf
