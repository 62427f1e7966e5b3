// Package html renders contact detail lists as HTML for rich clipboard
// content and web display.
package html

import (
	"bytes"

	"github.com/fwojciec/contactx"
	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Renderer implements contactx.Renderer at compile time.
var _ contactx.Renderer = (*Renderer)(nil)

// Renderer builds an HTML node tree from a contactx.Detail and serializes
// it, so contact data is always emitted as escaped text. The output is then
// restricted to the handful of elements a detail list uses.
type Renderer struct {
	policy *bluemonday.Policy
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("p", "ul", "ol", "li", "strong", "br")
	return &Renderer{policy: policy}
}

// Render returns the markup for d: one <p> per entry for the simple style,
// a <ul> for bullets and an <ol> for numbers. Names are wrapped in <strong>.
func (r *Renderer) Render(d *contactx.Detail) (string, error) {
	if d == nil || len(d.Entries) == 0 {
		return "", nil
	}

	var nodes []*xhtml.Node
	switch d.Style {
	case contactx.DetailBullet, contactx.DetailNumber:
		list := element(atom.Ul)
		if d.Style == contactx.DetailNumber {
			list = element(atom.Ol)
		}
		for _, e := range d.Entries {
			li := element(atom.Li)
			appendEntry(li, e)
			list.AppendChild(li)
		}
		nodes = append(nodes, list)
	default:
		for _, e := range d.Entries {
			p := element(atom.P)
			appendEntry(p, e)
			nodes = append(nodes, p)
		}
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := xhtml.Render(&buf, n); err != nil {
			return "", contactx.Errorf(contactx.EINTERNAL, "failed to render detail list: %s", err)
		}
	}

	return r.policy.Sanitize(buf.String()), nil
}

func appendEntry(parent *xhtml.Node, e contactx.DetailEntry) {
	if e.Bold != "" {
		strong := element(atom.Strong)
		strong.AppendChild(text(e.Bold))
		parent.AppendChild(strong)
	}
	if e.Rest != "" {
		rest := e.Rest
		if e.Bold != "" {
			rest = " " + rest
		}
		parent.AppendChild(text(rest))
	}
}

func element(a atom.Atom) *xhtml.Node {
	return &xhtml.Node{Type: xhtml.ElementNode, DataAtom: a, Data: a.String()}
}

func text(s string) *xhtml.Node {
	return &xhtml.Node{Type: xhtml.TextNode, Data: s}
}
