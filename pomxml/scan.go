// Package pomxml reads and patches Maven pom.xml files.
//
// Scanning records, for every element that carries coordinate children
// (groupId, artifactId, version), the text of those children and the byte
// span of the version text. Patches splice new text into those spans and
// leave every other byte of the file alone, so whitespace, comments and
// element order survive.
package pomxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// span is a half-open byte range of the scanned input.
type span struct {
	start, end int
}

func (s span) valid() bool { return s.end >= s.start && s.start > 0 }

// Element is an XML element with coordinate children, such as <project>,
// <parent>, <dependency> or <plugin>.
type Element struct {
	// Path lists element names from the document root, e.g.
	// ["project", "dependencies", "dependency"].
	Path []string

	GroupID    string
	ArtifactID string
	Version    string

	version span
}

// PathString joins Path with slashes.
func (e *Element) PathString() string { return "/" + strings.Join(e.Path, "/") }

// HasVersion reports whether the element's version text can be patched.
func (e *Element) HasVersion() bool { return e.version.valid() && e.version.end > e.version.start }

// PropertyEntry is one child of /project/properties.
type PropertyEntry struct {
	Key   string
	Value string

	value span
}

// Document is the scanned structure of one pom.
type Document struct {
	// Project holds the coordinate children of /project. It is nil when the
	// project declares none.
	Project *Element

	// Parent is /project/parent, nil when absent.
	Parent *Element

	// RelativePath is /project/parent/relativePath, empty when absent.
	RelativePath string

	// Coordinates are every other element with coordinate children, in
	// document order.
	Coordinates []*Element

	// Modules are /project/modules/module values.
	Modules []string

	// Properties are /project/properties children, in document order.
	Properties []PropertyEntry
}

type frame struct {
	name    string
	el      *Element
	text    bytes.Buffer
	content span
	inner   int
}

// Scan tokenises a pom.
func Scan(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	doc := &Document{}
	var stack []*frame

	path := func() []string {
		names := make([]string, len(stack))
		for i, f := range stack {
			names[i] = f.name
		}
		return names
	}

	for {
		start := int(dec.InputOffset())
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		end := int(dec.InputOffset())

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, &frame{name: t.Name.Local, inner: end})
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			f := stack[len(stack)-1]
			f.text.Write(t)
			if !f.content.valid() {
				f.content.start = start
			}
			f.content.end = end
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected </%s>", t.Name.Local)
			}
			f := stack[len(stack)-1]
			p := path()
			stack = stack[:len(stack)-1]
			doc.finish(f, p, stack, data)
		}
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("unclosed <%s>", stack[len(stack)-1].name)
	}
	return doc, nil
}

// finish files a closed element into the document.
func (doc *Document) finish(f *frame, p []string, stack []*frame, data []byte) {
	text := strings.TrimSpace(f.text.String())
	contentSpan := trimSpan(data, f.content)
	if !f.content.valid() {
		contentSpan = span{start: f.inner, end: f.inner}
	}

	if len(stack) > 0 {
		owner := stack[len(stack)-1]
		switch f.name {
		case "groupId", "artifactId", "version":
			if owner.el == nil {
				owner.el = &Element{Path: p[:len(p)-1]}
			}
			switch f.name {
			case "groupId":
				owner.el.GroupID = text
			case "artifactId":
				owner.el.ArtifactID = text
			case "version":
				owner.el.Version = text
				owner.el.version = contentSpan
			}
		}
	}

	switch {
	case match(p, "project", "modules", "module"):
		if text != "" {
			doc.Modules = append(doc.Modules, text)
		}
	case match(p, "project", "parent", "relativePath"):
		doc.RelativePath = text
	case len(p) == 3 && p[0] == "project" && p[1] == "properties":
		doc.Properties = append(doc.Properties, PropertyEntry{Key: f.name, Value: text, value: contentSpan})
	}

	if f.el == nil || f.el.ArtifactID == "" {
		return
	}
	switch {
	case match(p, "project"):
		doc.Project = f.el
	case match(p, "project", "parent"):
		doc.Parent = f.el
	default:
		doc.Coordinates = append(doc.Coordinates, f.el)
	}
}

func match(p []string, names ...string) bool {
	if len(p) != len(names) {
		return false
	}
	for i := range p {
		if p[i] != names[i] {
			return false
		}
	}
	return true
}

// trimSpan narrows s to exclude surrounding whitespace in data.
func trimSpan(data []byte, s span) span {
	if !s.valid() || s.end > len(data) {
		return s
	}
	for s.start < s.end && isSpace(data[s.start]) {
		s.start++
	}
	for s.end > s.start && isSpace(data[s.end-1]) {
		s.end--
	}
	return s
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// EffectiveGroupID returns the project's group id, falling back to the parent.
func (doc *Document) EffectiveGroupID() string {
	if doc.Project != nil && doc.Project.GroupID != "" {
		return doc.Project.GroupID
	}
	if doc.Parent != nil {
		return doc.Parent.GroupID
	}
	return ""
}

// elements returns every patchable element with the project's group id
// resolved.
func (doc *Document) elements() []Element {
	var out []Element
	if doc.Project != nil {
		e := *doc.Project
		e.GroupID = doc.EffectiveGroupID()
		out = append(out, e)
	}
	if doc.Parent != nil {
		out = append(out, *doc.Parent)
	}
	for _, e := range doc.Coordinates {
		out = append(out, *e)
	}
	return out
}
