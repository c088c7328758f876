package decoration

import (
	"strings"

	"github.com/beevik/etree"
)

// HideMode selects how Hidden leaves are rendered.
type HideMode int

const (
	// Remove drops hidden text, for static rendering.
	Remove HideMode = iota
	// Conceal keeps hidden text in a span styled away by the editor, so
	// offsets in live documents stay intact.
	Conceal
)

// ConcealClass is the class of concealed delimiter spans.
const ConcealClass = "cm-hide"

var writeSettings = &etree.WriteSettings{
	CanonicalEndTags: true,
	CanonicalText:    true,
}

// AppendTo adds the markup of n to parent.
func AppendTo(parent *etree.Element, n *Node, mode HideMode) {
	switch n.Kind {
	case Text:
		parent.CreateText(n.Text)
	case Hidden:
		if mode == Conceal {
			el := parent.CreateElement("span")
			el.CreateAttr("class", ConcealClass)
			el.CreateText(n.Text)
		}
	case Group:
		el := parent.CreateElement("span")
		el.CreateAttr("class", n.Class)
		el.CreateAttr("data-group", "true")
		el.CreateAttr("data-contents", n.Contents)
		for _, c := range n.Children {
			AppendTo(el, c, mode)
		}
	case Match:
		el := parent.CreateElement("span")
		el.CreateAttr("class", n.Class)
		el.CreateAttr("data-contents", n.Contents)
		el.CreateAttr("data-processed", "true")
		for _, c := range n.Children {
			AppendTo(el, c, mode)
		}
	}
}

// HTML serialises n.
func HTML(n *Node, mode HideMode) string {
	holder := etree.NewElement("holder")
	AppendTo(holder, n, mode)
	return serialise(holder)
}

// FragmentHTML serialises the fragment with its surrounding text.
func FragmentHTML(f *Fragment, mode HideMode) string {
	holder := etree.NewElement("holder")
	if f.Before != "" {
		holder.CreateText(f.Before)
	}
	AppendTo(holder, f.Node, mode)
	if f.After != "" {
		holder.CreateText(f.After)
	}
	return serialise(holder)
}

func serialise(holder *etree.Element) string {
	var b strings.Builder
	for _, t := range holder.Child {
		t.WriteTo(&b, writeSettings)
	}
	return b.String()
}
