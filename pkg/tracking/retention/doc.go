// Package retention decides which vessels' position history is kept and
// executes the resulting deletions in bounded batches.
//
// Two policy variants exist. The crossing variant keeps a vessel when it
// visited two or more distinct named jurisdictions inside the lookback
// window; deletions are scoped to that window so older crossing evidence
// survives. The flagged variant first retains flagged-nationality vessels
// unconditionally, then applies the crossing test to a shorter recent
// window, counting international waters as a distinct value; its deletions
// remove a vessel's entire history.
//
// A verdict is a pure function of the aggregated evidence: no state is
// carried between runs, so re-running on unchanged data yields the same
// partition.
package retention
