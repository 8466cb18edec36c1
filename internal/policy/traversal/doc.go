// Package traversal implements the crawl traversal policy engine: the value
// object describing one policy, a catalog of named presets, the pure decision
// functions consulted by workers and the fetch pipeline, and the propagation
// rules that derive policies for resources discovered during a crawl.
package traversal
