// Copyright (c) 2025, the translate-pptx contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package pptx

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// The scanner records byte offsets into the raw slide XML instead of decoding
// it into a tree. Extraction and replacement walk the same spans, which keeps
// their shape/paragraph/run indexing identical, and replacement can splice
// new text in without re-encoding (and thereby mangling) the namespaced
// markup PowerPoint produces.

type span struct{ start, end int }

func (s span) empty() bool { return s.end == 0 }

// runSpan locates the pieces of one <a:r> element we may rewrite.
type runSpan struct {
	openEnd int  // offset just past the <a:r> start tag
	rPrTag  span // the whole <a:rPr ...> start tag, if present
	szVal   span // the digits of the rPr sz attribute, if present
	text    span // content between <a:t> and </a:t>
	tTag    span // the whole tag when the run's <a:t/> is self-closing
	hasText bool // the run contains an <a:t> element
}

type paraSpan struct {
	runs []runSpan
}

type shapeSpan struct {
	runMode bool
	paras   []paraSpan
}

func (r runSpan) textValue(data []byte) string {
	if !r.hasText || r.tTag.end != 0 || r.text.empty() {
		return ""
	}
	return unescapeText(string(data[r.text.start:r.text.end]))
}

func (p paraSpan) textValue(data []byte) string {
	var b strings.Builder
	for _, r := range p.runs {
		b.WriteString(r.textValue(data))
	}
	return b.String()
}

// texts returns the shape's extractable strings: one per non-empty run in
// run mode, one per non-empty paragraph otherwise.
func (s shapeSpan) texts(data []byte) []string {
	var out []string
	if s.runMode {
		for _, p := range s.paras {
			for _, r := range p.runs {
				if t := r.textValue(data); t != "" {
					out = append(out, t)
				}
			}
		}
		return out
	}
	for _, p := range s.paras {
		if t := p.textValue(data); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseSlide scans a slide part and returns spans for every shape directly
// under the shape tree, including shapes that turn out to hold no text.
func parseSlide(data []byte) []shapeSpan {
	var shapes []shapeSpan
	pos := 0
	for {
		t, ok := nextTag(data, pos)
		if !ok {
			break
		}
		pos = t.end
		if t.closing || t.selfClosing {
			continue
		}
		switch t.name {
		case "p:sp", "p:grpSp", "p:graphicFrame", "p:pic", "p:cxnSp":
			sh, next := parseShape(data, t)
			shapes = append(shapes, sh)
			pos = next
		}
	}
	return shapes
}

// parseShape consumes one shape element, nested children included, and
// returns its span along with the offset just past its closing tag.
func parseShape(data []byte, open tag) (shapeSpan, int) {
	// Grouped shapes flatten to one unit and are replaced run by run, the
	// same way charts are.
	sh := shapeSpan{runMode: open.name == "p:grpSp"}
	depth := 1
	named := false
	var para *paraSpan
	var run *runSpan
	pos := open.end

	for depth > 0 {
		t, ok := nextTag(data, pos)
		if !ok {
			break
		}
		pos = t.end

		if t.closing {
			switch t.name {
			case "a:r":
				if para != nil && run != nil {
					para.runs = append(para.runs, *run)
				}
				run = nil
			case "a:p":
				if para != nil {
					sh.paras = append(sh.paras, *para)
				}
				para = nil
			}
			depth--
			continue
		}

		switch t.name {
		case "p:cNvPr":
			// The first cNvPr names the shape itself; nested ones belong
			// to group children.
			if !named {
				named = true
				if v, ok := t.attr("name"); ok && chartLikeName(string(data[v.start:v.end])) {
					sh.runMode = true
				}
			}
		case "a:graphicData":
			if v, ok := t.attr("uri"); ok && bytes.Contains(data[v.start:v.end], []byte("/chart")) {
				sh.runMode = true
			}
		case "a:p":
			if !t.selfClosing {
				para = &paraSpan{}
			}
		case "a:r":
			if !t.selfClosing && para != nil {
				run = &runSpan{openEnd: t.end}
			}
		case "a:rPr":
			if run != nil && run.rPrTag.empty() {
				run.rPrTag = span{t.start, t.end}
				if v, ok := t.attr("sz"); ok {
					run.szVal = v
				}
			}
		case "a:t":
			// <a:t> holds character data only, so its end tag is the next
			// literal "</a:t>". Fields (a:fld) carry a:t too but sit outside
			// a:r and are skipped here, matching extraction.
			if t.selfClosing {
				if run != nil && !run.hasText {
					run.hasText = true
					run.tTag = span{t.start, t.end}
				}
				continue
			}
			end := bytes.Index(data[t.end:], []byte("</a:t>"))
			if end < 0 {
				return sh, len(data)
			}
			if run != nil && !run.hasText {
				run.hasText = true
				run.text = span{t.end, t.end + end}
			}
			pos = t.end + end + len("</a:t>")
			continue
		}

		if !t.selfClosing {
			depth++
		}
	}

	return sh, pos
}

func chartLikeName(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "chart") || strings.Contains(n, "diagram") || strings.Contains(n, "smartart")
}

// tag is one piece of markup located in the raw XML.
type tag struct {
	name        string
	start, end  int // [start,end) covers the whole "<...>"
	closing     bool
	selfClosing bool
	attrs       []attrSpan
}

type attrSpan struct {
	name string
	val  span // attribute value without the quotes
}

func (t *tag) attr(name string) (span, bool) {
	for _, a := range t.attrs {
		if a.name == name {
			return a.val, true
		}
	}
	return span{}, false
}

// nextTag finds the next element tag at or after pos, skipping comments,
// processing instructions and CDATA sections.
func nextTag(data []byte, pos int) (tag, bool) {
	for {
		i := bytes.IndexByte(data[pos:], '<')
		if i < 0 {
			return tag{}, false
		}
		i += pos

		switch {
		case bytes.HasPrefix(data[i:], []byte("<!--")):
			j := bytes.Index(data[i+4:], []byte("-->"))
			if j < 0 {
				return tag{}, false
			}
			pos = i + 4 + j + 3
		case bytes.HasPrefix(data[i:], []byte("<![CDATA[")):
			j := bytes.Index(data[i+9:], []byte("]]>"))
			if j < 0 {
				return tag{}, false
			}
			pos = i + 9 + j + 3
		case bytes.HasPrefix(data[i:], []byte("<?")):
			j := bytes.Index(data[i+2:], []byte("?>"))
			if j < 0 {
				return tag{}, false
			}
			pos = i + 2 + j + 2
		case bytes.HasPrefix(data[i:], []byte("<!")):
			j := bytes.IndexByte(data[i:], '>')
			if j < 0 {
				return tag{}, false
			}
			pos = i + j + 1
		default:
			return parseTag(data, i)
		}
	}
}

func parseTag(data []byte, start int) (tag, bool) {
	t := tag{start: start}
	p := start + 1
	if p < len(data) && data[p] == '/' {
		t.closing = true
		p++
	}

	nameStart := p
	for p < len(data) && !isSpace(data[p]) && data[p] != '>' && data[p] != '/' {
		p++
	}
	t.name = string(data[nameStart:p])

	for p < len(data) {
		for p < len(data) && isSpace(data[p]) {
			p++
		}
		if p >= len(data) {
			return tag{}, false
		}
		switch data[p] {
		case '>':
			t.end = p + 1
			return t, true
		case '/':
			if p+1 < len(data) && data[p+1] == '>' {
				t.selfClosing = true
				t.end = p + 2
				return t, true
			}
			p++
		default:
			aStart := p
			for p < len(data) && data[p] != '=' && data[p] != '>' && !isSpace(data[p]) {
				p++
			}
			name := string(data[aStart:p])
			for p < len(data) && isSpace(data[p]) {
				p++
			}
			if p < len(data) && data[p] == '=' {
				p++
				for p < len(data) && isSpace(data[p]) {
					p++
				}
				if p < len(data) && (data[p] == '"' || data[p] == '\'') {
					q := data[p]
					p++
					vStart := p
					for p < len(data) && data[p] != q {
						p++
					}
					if p >= len(data) {
						return tag{}, false
					}
					t.attrs = append(t.attrs, attrSpan{name: name, val: span{vStart, p}})
					p++
				}
			}
		}
	}
	return tag{}, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func unescapeText(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var v struct {
		Text string `xml:",chardata"`
	}
	if err := xml.Unmarshal([]byte("<t>"+s+"</t>"), &v); err != nil {
		return s
	}
	return v.Text
}
