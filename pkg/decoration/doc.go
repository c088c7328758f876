// Package decoration turns a regex match into the nested span tree a render
// adapter splices into the host document.
//
// A decorated match is a Match node carrying the rule class. Its children
// are plain Text leaves, Hidden leaves for delimiter text the rule hides,
// and Group nodes for the named capture groups, nested by interval
// containment:
//
//	(?<outer>a(?<inner>b)c) on "abc"
//
//	Match(cls) ─ Group(outer) ─┬─ Text "a"
//	                           ├─ Group(inner) ─ Text "b"
//	                           └─ Text "c"
//
// Trees are plain values. Building the same match twice yields equal trees,
// which hosts rely on to diff re-renders.
package decoration
