package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// node is one token of a parsed XML part. Element nodes carry start and
// children; every other token kind is kept verbatim in tok.
type node struct {
	start    xml.StartElement
	children []*node
	parent   *node
	tok      xml.Token
}

func (n *node) isElement() bool {
	return n.tok == nil
}

// is reports whether n is the element prefix:local
func (n *node) is(prefix, local string) bool {
	return n.isElement() && n.start.Name.Space == prefix && n.start.Name.Local == local
}

// attr returns the value of prefix:local, if present
func (n *node) attr(prefix, local string) (string, bool) {
	for _, a := range n.start.Attr {
		if a.Name.Space == prefix && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// text concatenates the character data directly under n
func (n *node) text() string {
	var sb strings.Builder
	for _, c := range n.children {
		if cd, ok := c.tok.(xml.CharData); ok {
			sb.Write(cd)
		}
	}
	return sb.String()
}

func (n *node) indexOf(child *node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *node) remove(child *node) {
	if i := n.indexOf(child); i >= 0 {
		n.children = append(n.children[:i], n.children[i+1:]...)
		child.parent = nil
	}
}

func (n *node) insert(at int, nodes ...*node) {
	if at < 0 || at > len(n.children) {
		at = len(n.children)
	}
	for _, c := range nodes {
		c.parent = n
	}
	tail := append([]*node{}, n.children[at:]...)
	n.children = append(append(n.children[:at], nodes...), tail...)
}

func (n *node) append(nodes ...*node) {
	n.insert(len(n.children), nodes...)
}

func newElement(prefix, local string, attrs ...xml.Attr) *node {
	return &node{start: xml.StartElement{
		Name: xml.Name{Space: prefix, Local: local},
		Attr: attrs,
	}}
}

func newText(s string) *node {
	return &node{tok: xml.CharData(s)}
}

// parseTree reads an XML part without namespace translation so that prefixes
// survive a round trip unchanged.
func parseTree(data []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	root := &node{start: xml.StartElement{}}
	current := root

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &node{start: t.Copy()}
			current.append(el)
			current = el
		case xml.EndElement:
			if current == root || current.start.Name != t.Name {
				return nil, fmt.Errorf("unexpected end element %s", qname(t.Name))
			}
			current = current.parent
		default:
			current.append(&node{tok: xml.CopyToken(t)})
		}
	}

	if current != root {
		return nil, fmt.Errorf("unclosed element %s", qname(current.start.Name))
	}
	return root, nil
}

// documentElement returns the first element under the synthetic root
func documentElement(root *node) *node {
	for _, c := range root.children {
		if c.isElement() {
			return c
		}
	}
	return nil
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// writeTree serializes the children of the synthetic root
func writeTree(root *node) []byte {
	var buf bytes.Buffer
	for _, c := range root.children {
		writeNode(&buf, c)
	}
	return buf.Bytes()
}

func writeNode(buf *bytes.Buffer, n *node) {
	if !n.isElement() {
		writeToken(buf, n.tok)
		return
	}

	name := qname(n.start.Name)
	buf.WriteByte('<')
	buf.WriteString(name)
	for _, a := range n.start.Attr {
		buf.WriteByte(' ')
		buf.WriteString(qname(a.Name))
		buf.WriteString(`="`)
		buf.WriteString(attrEscaper.Replace(a.Value))
		buf.WriteByte('"')
	}
	if len(n.children) == 0 {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	for _, c := range n.children {
		writeNode(buf, c)
	}
	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteByte('>')
}

func writeToken(buf *bytes.Buffer, tok xml.Token) {
	switch t := tok.(type) {
	case xml.CharData:
		buf.WriteString(textEscaper.Replace(string(t)))
	case xml.Comment:
		buf.WriteString("<!--")
		buf.Write(t)
		buf.WriteString("-->")
	case xml.ProcInst:
		buf.WriteString("<?")
		buf.WriteString(t.Target)
		if len(t.Inst) > 0 {
			buf.WriteByte(' ')
			buf.Write(t.Inst)
		}
		buf.WriteString("?>")
	case xml.Directive:
		buf.WriteString("<!")
		buf.Write(t)
		buf.WriteByte('>')
	}
}
