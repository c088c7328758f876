// Package live decorates an editor buffer while the user types.
//
// The host supplies the buffer through TextProvider, the cursors through
// SelectionProvider and the active document through DocumentProvider. The
// adapter answers with a list of Specs sorted by start offset: a match the
// cursor or an IME composition touches is only styled (Mark) so the edit in
// progress stays intact, every other match is replaced by its rendered
// decoration (Replace), with delimiters concealed rather than removed.
package live
