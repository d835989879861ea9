// Package formset edits Django style dynamic formsets held in a document
// tree. A formset is a container of repeated blocks, every control in block i
// named "<prefix>-i-<field>", plus a hidden "<prefix>-TOTAL_FORMS" counter
// that the server-side decoder reads to learn how many blocks to expect.
//
// The Editor appends clones of the last block and removes the tail, the
// Indexer renumbers a block's identifiers, the Guard decides whether a
// keystroke or submit attempt may proceed, and the Dispatcher maps raw UI
// events onto those operations. All of them work against the Tree interface
// so the HTML document in pkg/dom and the in-memory tree in memtree are
// interchangeable.
//
// A Formset is single-threaded: each Dispatch call runs to completion and
// leaves the tree in a quiescent state. Callers serialise events.
package formset
