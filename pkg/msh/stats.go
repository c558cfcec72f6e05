// Package msh extracts summary statistics from Gmsh mesh artifacts.
//
// The parser is best-effort by contract: a malformed or absent section
// degrades to default values instead of failing the caller, so a missing
// statistics block never hides an otherwise successful mesh run. Callers that
// care which sections were readable inspect [Result.Missing].
package msh

import (
	"bufio"
	"strconv"
	"strings"
)

// Group locates one physical group inside the mesh.
type Group struct {
	Dimension int // 2 = surface, 3 = volume
	Tag       int
}

// Statistics summarizes a mesh artifact.
type Statistics struct {
	NumVertices    int
	NumElements    int
	PhysicalGroups map[string]Group // keyed by group name
}

// Result is the outcome of a statistics extraction. Stats is always usable;
// Missing names the sections that were absent or unreadable, so callers can
// distinguish "no data available" from an error without control flow by
// exception.
type Result struct {
	Stats   Statistics
	Missing []string
}

// Complete reports whether every section was read.
func (r Result) Complete() bool { return len(r.Missing) == 0 }

// Section names reported in [Result.Missing].
const (
	sectionPhysicalNames = "PhysicalNames"
	sectionNodes         = "Nodes"
	sectionElements      = "Elements"
)

// Parse scans the section-delimited ASCII text of a mesh artifact.
//
// A $PhysicalNames section begins with a count line followed by that many
// records of the form `<dimension> <tag> "<name>"`; the section is read up to
// the declared count or the records actually present, whichever is shorter.
// The $Nodes and $Elements sections each have a header line whose fourth
// whitespace-separated field is the respective total count. Parse never
// fails: whatever cannot be read is left at its zero value and reported in
// Missing.
func Parse(text string) Result {
	stats := Statistics{PhysicalGroups: make(map[string]Group)}
	var gotNames, gotNodes, gotElements bool

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		switch strings.TrimSpace(sc.Text()) {
		case "$PhysicalNames":
			gotNames = parsePhysicalNames(sc, stats.PhysicalGroups)
		case "$Nodes":
			stats.NumVertices, gotNodes = parseCountHeader(sc)
		case "$Elements":
			stats.NumElements, gotElements = parseCountHeader(sc)
		}
	}

	var missing []string
	if !gotNames {
		missing = append(missing, sectionPhysicalNames)
	}
	if !gotNodes {
		missing = append(missing, sectionNodes)
	}
	if !gotElements {
		missing = append(missing, sectionElements)
	}
	return Result{Stats: stats, Missing: missing}
}

// parsePhysicalNames reads the count line and up to count records. Records
// past the end of the section or with fewer than three fields are skipped
// without error.
func parsePhysicalNames(sc *bufio.Scanner, groups map[string]Group) bool {
	if !sc.Scan() {
		return false
	}
	count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || count < 0 {
		return false
	}

	for i := 0; i < count && sc.Scan(); i++ {
		line := strings.TrimSpace(sc.Text())
		if line == "$EndPhysicalNames" {
			break // fewer usable records than declared
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		dim, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		tag, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		name := strings.Trim(strings.Join(fields[2:], " "), `"`)
		if name == "" {
			continue
		}
		groups[name] = Group{Dimension: dim, Tag: tag}
	}
	return true
}

// parseCountHeader reads the section header line and returns its fourth
// whitespace-separated field as an integer count.
func parseCountHeader(sc *bufio.Scanner) (int, bool) {
	if !sc.Scan() {
		return 0, false
	}
	fields := strings.Fields(sc.Text())
	if len(fields) < 4 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[3])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
