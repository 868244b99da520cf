// Copyright (c) 2025, the translate-pptx contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Replace writes a copy of the presentation at inputPath to outputPath with
// its slide text replaced by texts, the structure Extract returned. Slides
// or shapes beyond the provided structure keep their original text; every
// non-slide part of the archive is copied unchanged.
func Replace(inputPath, outputPath string, texts [][][]string, targetLanguage string) error {
	r, err := zip.OpenReader(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open presentation: %w", err)
	}
	defer r.Close()

	slideIndex := make(map[string]int)
	for i, entry := range slideEntries(r.File) {
		if i >= len(texts) {
			break
		}
		slideIndex[entry.file.Name] = i
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, f := range r.File {
		idx, ok := slideIndex[f.Name]
		if !ok {
			if err := zw.Copy(f); err != nil {
				return fmt.Errorf("failed to copy %s: %w", f.Name, err)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.Name, err)
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   f.Method,
			Modified: f.Modified,
		})
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", f.Name, err)
		}
		if _, err := w.Write(rewriteSlide(data, texts[idx], targetLanguage)); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize output file: %w", err)
	}
	return nil
}

// edit replaces data[start:end) with repl; start == end inserts.
type edit struct {
	start, end int
	repl       []byte
}

func rewriteSlide(data []byte, shapes [][]string, targetLanguage string) []byte {
	var edits []edit
	shapeIdx := 0
	for _, sh := range parseSlide(data) {
		// Shapes without text were never extracted, so they don't consume
		// a translation slot.
		if len(sh.texts(data)) == 0 {
			continue
		}
		if shapeIdx >= len(shapes) {
			break
		}
		edits = append(edits, sh.edits(data, shapes[shapeIdx], targetLanguage)...)
		shapeIdx++
	}
	if len(edits) == 0 {
		return data
	}
	return applyEdits(data, edits)
}

func applyEdits(data []byte, edits []edit) []byte {
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var buf bytes.Buffer
	pos := 0
	for _, e := range edits {
		if e.start < pos {
			continue
		}
		buf.Write(data[pos:e.start])
		buf.Write(e.repl)
		pos = e.end
	}
	buf.Write(data[pos:])
	return buf.Bytes()
}

func (s shapeSpan) edits(data []byte, texts []string, targetLanguage string) []edit {
	if s.runMode {
		return s.runEdits(data, texts)
	}
	return s.paragraphEdits(data, texts, targetLanguage)
}

// runEdits replaces each non-empty run in place, in extraction order.
func (s shapeSpan) runEdits(data []byte, texts []string) []edit {
	var edits []edit
	i := 0
	for _, p := range s.paras {
		for _, r := range p.runs {
			if r.textValue(data) == "" {
				continue
			}
			if i >= len(texts) {
				return edits
			}
			edits = append(edits, r.setText(texts[i]))
			i++
		}
	}
	return edits
}

// paragraphEdits collapses each non-empty paragraph into its first text run:
// that run receives the full translation and the remaining runs are emptied,
// so a translation never inherits mid-paragraph formatting changes. When the
// target language is English the run's point size is adjusted as well.
func (s shapeSpan) paragraphEdits(data []byte, texts []string, targetLanguage string) []edit {
	english := strings.EqualFold(targetLanguage, "english")

	var edits []edit
	i := 0
	for _, p := range s.paras {
		if p.textValue(data) == "" {
			continue
		}
		if i >= len(texts) {
			break
		}
		text := texts[i]
		i++

		target := -1
		for j, r := range p.runs {
			if r.hasText {
				target = j
				break
			}
		}
		if target < 0 {
			continue
		}

		edits = append(edits, p.runs[target].setText(text))
		for _, r := range p.runs[target+1:] {
			if r.hasText && r.tTag.empty() && r.text.end > r.text.start {
				edits = append(edits, edit{start: r.text.start, end: r.text.end})
			}
		}

		if english {
			edits = append(edits, p.runs[target].setSize(englishPointSize(p.originalSize(data))))
		}
	}
	return edits
}

func (r runSpan) setText(text string) edit {
	escaped := escapeText(text)
	if !r.tTag.empty() {
		return edit{r.tTag.start, r.tTag.end, []byte("<a:t>" + escaped + "</a:t>")}
	}
	return edit{r.text.start, r.text.end, []byte(escaped)}
}

// setSize rewrites the run's sz attribute (hundredths of a point), adding
// the attribute or a run-properties element when missing.
func (r runSpan) setSize(pt float64) edit {
	sz := strconv.Itoa(int(math.Round(pt * 100)))
	switch {
	case !r.szVal.empty():
		return edit{r.szVal.start, r.szVal.end, []byte(sz)}
	case !r.rPrTag.empty():
		at := r.rPrTag.start + len("<a:rPr")
		return edit{at, at, []byte(` sz="` + sz + `"`)}
	default:
		return edit{r.openEnd, r.openEnd, []byte(`<a:rPr sz="` + sz + `"/>`)}
	}
}

// originalSize returns the paragraph's first explicit run size in points,
// or 0 when no run declares one.
func (p paraSpan) originalSize(data []byte) float64 {
	for _, r := range p.runs {
		if r.szVal.empty() {
			continue
		}
		if v, err := strconv.Atoi(string(data[r.szVal.start:r.szVal.end])); err == nil && v > 0 {
			return float64(v) / 100
		}
	}
	return 0
}
