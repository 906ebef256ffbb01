package docx

import (
	"encoding/xml"
	"strings"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// wordPrefix returns the prefix bound to the main WordprocessingML namespace
// on the root element, "w" when none is declared.
func wordPrefix(root *node) string {
	for _, a := range root.start.Attr {
		if a.Name.Space == "xmlns" && a.Value == mainNamespace {
			return a.Name.Local
		}
	}
	return "w"
}

// runBinding ties a model run to its w:r element
type runBinding struct {
	el   *node
	text string
}

// paragraphBinding ties a model paragraph to its w:p element and remembers
// the runs it was decoded with.
type paragraphBinding struct {
	el    *node
	model *domain.Paragraph
	runs  []*domain.Run
}

type binder struct {
	w          string
	paragraphs []*paragraphBinding
	runs       map[*domain.Run]*runBinding
}

func newBinder(prefix string) *binder {
	return &binder{
		w:    prefix,
		runs: make(map[*domain.Run]*runBinding),
	}
}

func (b *binder) child(parent *node, local string) *node {
	for _, c := range parent.children {
		if c.is(b.w, local) {
			return c
		}
	}
	return nil
}

// document builds the model from w:body
func (b *binder) document(body *node) *domain.Document {
	doc := &domain.Document{
		Paragraphs: make([]*domain.Paragraph, 0),
	}
	b.blocks(body, &doc.Paragraphs, &doc.Tables)
	return doc
}

// blocks collects the paragraphs and tables of a block container, looking
// through content controls and custom XML wrappers.
func (b *binder) blocks(container *node, paragraphs *[]*domain.Paragraph, tables *[]*domain.Table) {
	for _, c := range container.children {
		switch {
		case c.is(b.w, "p"):
			*paragraphs = append(*paragraphs, b.paragraph(c))
		case c.is(b.w, "tbl"):
			*tables = append(*tables, b.table(c))
		case c.is(b.w, "sdt"):
			if content := b.child(c, "sdtContent"); content != nil {
				b.blocks(content, paragraphs, tables)
			}
		case c.is(b.w, "customXml"):
			b.blocks(c, paragraphs, tables)
		}
	}
}

func (b *binder) table(el *node) *domain.Table {
	t := &domain.Table{Rows: make([]*domain.Row, 0)}
	for _, tr := range b.rows(el) {
		row := &domain.Row{Cells: make([]*domain.Cell, 0)}
		for _, tc := range b.cells(tr) {
			cell := &domain.Cell{Paragraphs: make([]*domain.Paragraph, 0)}
			b.blocks(tc, &cell.Paragraphs, &cell.Tables)
			row.Cells = append(row.Cells, cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func (b *binder) rows(tbl *node) []*node {
	var out []*node
	for _, c := range tbl.children {
		switch {
		case c.is(b.w, "tr"):
			out = append(out, c)
		case c.is(b.w, "sdt"):
			if content := b.child(c, "sdtContent"); content != nil {
				out = append(out, b.rows(content)...)
			}
		}
	}
	return out
}

func (b *binder) cells(tr *node) []*node {
	var out []*node
	for _, c := range tr.children {
		switch {
		case c.is(b.w, "tc"):
			out = append(out, c)
		case c.is(b.w, "sdt"):
			if content := b.child(c, "sdtContent"); content != nil {
				out = append(out, b.cells(content)...)
			}
		}
	}
	return out
}

func (b *binder) paragraph(el *node) *domain.Paragraph {
	p := &domain.Paragraph{Runs: make([]*domain.Run, 0)}
	for _, r := range b.runElements(el) {
		text, ok := b.runText(r)
		if !ok {
			continue
		}
		run := &domain.Run{Text: text, Format: b.runFormat(r)}
		p.Runs = append(p.Runs, run)
		b.runs[run] = &runBinding{el: r, text: text}
	}

	original := make([]*domain.Run, len(p.Runs))
	copy(original, p.Runs)
	b.paragraphs = append(b.paragraphs, &paragraphBinding{el: el, model: p, runs: original})
	return p
}

// runElements returns the w:r elements of a paragraph in document order,
// including runs nested in hyperlinks, insertions, moved-in content, bidi
// wrappers, smart tags, simple fields and inline content controls. Deleted
// and moved-out runs are not part of the text.
func (b *binder) runElements(el *node) []*node {
	var out []*node
	for _, c := range el.children {
		switch {
		case c.is(b.w, "r"):
			out = append(out, c)
		case c.is(b.w, "hyperlink"), c.is(b.w, "ins"), c.is(b.w, "moveTo"),
			c.is(b.w, "dir"), c.is(b.w, "bdo"), c.is(b.w, "smartTag"),
			c.is(b.w, "fldSimple"), c.is(b.w, "customXml"):
			out = append(out, b.runElements(c)...)
		case c.is(b.w, "sdt"):
			if content := b.child(c, "sdtContent"); content != nil {
				out = append(out, b.runElements(content)...)
			}
		}
	}
	return out
}

// isTextChild reports whether c contributes to the run's text
func (b *binder) isTextChild(c *node) bool {
	return c.is(b.w, "t") || c.is(b.w, "tab") || c.is(b.w, "br") || c.is(b.w, "cr")
}

// runText returns the run's text; runs without text content (drawings,
// field characters) report false and stay outside the model.
func (b *binder) runText(r *node) (string, bool) {
	var sb strings.Builder
	found := false
	for _, c := range r.children {
		switch {
		case c.is(b.w, "t"):
			sb.WriteString(c.text())
			found = true
		case c.is(b.w, "tab"):
			sb.WriteByte('\t')
			found = true
		case c.is(b.w, "br"), c.is(b.w, "cr"):
			sb.WriteByte('\n')
			found = true
		}
	}
	return sb.String(), found
}

func (b *binder) runFormat(r *node) *domain.RunFormat {
	rPr := b.child(r, "rPr")
	if rPr == nil {
		return nil
	}

	f := &domain.RunFormat{}
	for _, c := range rPr.children {
		switch {
		case c.is(b.w, "b"):
			f.Bold = b.toggle(c)
		case c.is(b.w, "i"):
			f.Italic = b.toggle(c)
		case c.is(b.w, "u"):
			v, _ := c.attr(b.w, "val")
			f.Underline = v != "none"
		case c.is(b.w, "rStyle"):
			f.Style, _ = c.attr(b.w, "val")
		}
	}
	if *f == (domain.RunFormat{}) {
		return nil
	}
	return f
}

// toggle reads an on/off property such as w:b; a missing w:val means on
func (b *binder) toggle(el *node) bool {
	v, ok := el.attr(b.w, "val")
	if !ok {
		return true
	}
	switch v {
	case "0", "false", "off":
		return false
	}
	return true
}

// writeBack pushes the model state into the XML tree
func (b *binder) writeBack() {
	for _, pb := range b.paragraphs {
		if sameRuns(pb.runs, pb.model.Runs) {
			for _, r := range pb.model.Runs {
				if rb := b.runs[r]; rb != nil && rb.text != r.Text {
					b.setRunText(rb.el, r.Text)
					rb.text = r.Text
				}
			}
			continue
		}
		b.rebuild(pb)
	}
}

func sameRuns(a, b []*domain.Run) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// rebuild replaces the bound runs of a paragraph with its current model runs.
// New runs are inserted where the first bound run sat, or after the
// paragraph properties when the paragraph had no text runs.
func (b *binder) rebuild(pb *paragraphBinding) {
	anchor := -1
	if len(pb.runs) > 0 {
		anchor = topLevelIndex(pb.el, b.runs[pb.runs[0]].el)
	}
	if anchor < 0 {
		anchor = len(pb.el.children)
		if pPr := b.child(pb.el, "pPr"); pPr != nil {
			anchor = pb.el.indexOf(pPr) + 1
		}
	}

	for _, r := range pb.runs {
		el := b.runs[r].el
		if el.parent != nil {
			el.parent.remove(el)
		}
	}

	var fresh []*node
	for _, r := range pb.model.Runs {
		if rb := b.runs[r]; rb != nil {
			if rb.text != r.Text {
				b.setRunText(rb.el, r.Text)
				rb.text = r.Text
			}
			fresh = append(fresh, rb.el)
			continue
		}
		if r.Text == "" {
			continue
		}
		el := b.newRun(r)
		b.runs[r] = &runBinding{el: el, text: r.Text}
		fresh = append(fresh, el)
	}

	if anchor > len(pb.el.children) {
		anchor = len(pb.el.children)
	}
	pb.el.insert(anchor, fresh...)

	pb.runs = append(pb.runs[:0], pb.model.Runs...)
}

// topLevelIndex returns the index of the child of p that contains el
func topLevelIndex(p, el *node) int {
	for cur := el; cur != nil; cur = cur.parent {
		if cur.parent == p {
			return p.indexOf(cur)
		}
	}
	return -1
}

// setRunText replaces the text children of a run with text, placing the new
// nodes where the first text child was.
func (b *binder) setRunText(r *node, text string) {
	at := -1
	kept := r.children[:0]
	for _, c := range r.children {
		if b.isTextChild(c) {
			if at < 0 {
				at = len(kept)
			}
			c.parent = nil
			continue
		}
		kept = append(kept, c)
	}
	r.children = kept
	r.insert(at, b.textNodes(text)...)
}

// textNodes renders text as w:t, w:tab and w:br elements
func (b *binder) textNodes(text string) []*node {
	var out []*node
	var sb strings.Builder
	flush := func() {
		if sb.Len() == 0 {
			return
		}
		t := newElement(b.w, "t", xml.Attr{Name: xml.Name{Space: "xml", Local: "space"}, Value: "preserve"})
		t.append(newText(sb.String()))
		out = append(out, t)
		sb.Reset()
	}

	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			out = append(out, newElement(b.w, "tab"))
		case '\n':
			flush()
			out = append(out, newElement(b.w, "br"))
		default:
			sb.WriteRune(ch)
		}
	}
	flush()

	if len(out) == 0 {
		out = append(out, newElement(b.w, "t"))
	}
	return out
}

// newRun builds a w:r element for a run that has no XML counterpart yet
func (b *binder) newRun(r *domain.Run) *node {
	run := newElement(b.w, "r")
	if rPr := b.newRunProperties(r.Format); rPr != nil {
		run.append(rPr)
	}
	run.append(b.textNodes(r.Text)...)
	return run
}

func (b *binder) newRunProperties(f *domain.RunFormat) *node {
	if f == nil {
		return nil
	}
	rPr := newElement(b.w, "rPr")
	val := func(v string) xml.Attr {
		return xml.Attr{Name: xml.Name{Space: b.w, Local: "val"}, Value: v}
	}
	if f.Style != "" {
		rPr.append(newElement(b.w, "rStyle", val(f.Style)))
	}
	if f.Bold {
		rPr.append(newElement(b.w, "b"))
	}
	if f.Italic {
		rPr.append(newElement(b.w, "i"))
	}
	if f.Underline {
		rPr.append(newElement(b.w, "u", val("single")))
	}
	if len(rPr.children) == 0 {
		return nil
	}
	return rPr
}
