/*
Package rohd turns declarative If/Case/assignment statements written
inside combinational and clock-triggered sequential blocks into a
validated set of per-signal drivers, and drives a discrete-event
simulator that propagates four-valued logic {0, 1, X, Z} through that
driver set and samples it at clock edges.

Combinational blocks are re-evaluated every delta cycle until their
outputs are a fixed point of their inputs; signals undriven on the taken
branch become X. Sequential blocks are evaluated once per recognized
clock edge, read pre-edge values and commit atomically; undriven signals
hold. Feedback expressions inside a combinational block use the SSA form
(CombinationalSSA), which rewrites every write into a fresh intermediate
version so that reading a signal after writing it is well defined.

Elaboration hazards fail fast: reading a possibly written signal in the
same non-SSA pass is ErrWriteAfterRead, a signal driven by two blocks or
to conflicting values is ErrSignalRedriven, and a combinational loop that
never settles is ErrNonConvergence.
*/
package rohd
