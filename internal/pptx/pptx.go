// Copyright (c) 2025, the translate-pptx contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package pptx reads and rewrites the translatable text of PowerPoint
// presentations. A .pptx file is a zip archive of XML parts; the package
// extracts text per slide and per shape, and writes translated text back
// while copying every untouched byte of the archive verbatim.
package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
)

// Shape holds the translatable text of a single shape on a slide.
//
// In paragraph mode each entry is the concatenated text of one non-empty
// paragraph. Charts, diagrams and grouped shapes use run mode, where each
// entry is one non-empty text run; their layout breaks when runs are merged.
type Shape struct {
	Texts   []string
	RunMode bool
}

// Slide is the ordered list of text-bearing shapes on one slide.
type Slide struct {
	Number int
	Shapes []Shape
}

// Document is the extractable text of a whole presentation.
type Document struct {
	Slides []Slide
}

// Structure returns the nested slide/shape/text arrays the translation
// prompt operates on.
func (d *Document) Structure() [][][]string {
	out := make([][][]string, len(d.Slides))
	for i, slide := range d.Slides {
		shapes := make([][]string, len(slide.Shapes))
		for j, shape := range slide.Shapes {
			shapes[j] = shape.Texts
		}
		out[i] = shapes
	}
	return out
}

var slideNameRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

type slideEntry struct {
	file   *zip.File
	number int
}

// slideEntries returns the slide parts of the archive in slide order.
func slideEntries(files []*zip.File) []slideEntry {
	var slides []slideEntry
	for _, f := range files {
		m := slideNameRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slideEntry{file: f, number: n})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].number < slides[j].number })
	return slides
}

// Extract reads a presentation and returns its translatable text. Shapes
// without any text are skipped, so the returned structure lines up with what
// Replace expects.
func Extract(path string) (*Document, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open presentation: %w", err)
	}
	defer r.Close()

	doc := &Document{}
	for _, entry := range slideEntries(r.File) {
		rc, err := entry.file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", entry.file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.file.Name, err)
		}

		slide := Slide{Number: entry.number}
		for _, sh := range parseSlide(data) {
			texts := sh.texts(data)
			if len(texts) == 0 {
				continue
			}
			slide.Shapes = append(slide.Shapes, Shape{Texts: texts, RunMode: sh.runMode})
		}
		doc.Slides = append(doc.Slides, slide)
	}

	return doc, nil
}
