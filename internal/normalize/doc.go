// Package normalize collapses runs of blank lines in SQL text.
//
// A line is blank when it contains only whitespace. Every maximal run of
// blank lines, including a run at the very start or end of the text, is
// replaced by a single "\n". All other lines are copied byte for byte, in
// order, with their original line terminators.
//
// The transform is idempotent: Text(Text(x)) == Text(x).
package normalize
