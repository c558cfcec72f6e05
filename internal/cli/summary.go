package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/afanto/cylmesh/pkg/msh"
	"github.com/afanto/cylmesh/pkg/stack"
)

// printSummary renders the styled end-of-run summary: stack parameters,
// layer configuration, output files, and (when available) mesh statistics.
func printSummary(st *stack.Stack, geoPath, mshPath string, res *msh.Result, cached bool) {
	printNewline()
	title := fmt.Sprintf("%d-Layer Cylinder", st.NumLayers())
	if st.NumLayers() == 1 {
		title = "Single-Layer Cylinder"
	}
	fmt.Println(StyleTitle.Render(title + " Summary"))
	printNewline()

	printKeyValue("Mesh length", fmt.Sprintf("%.3g nm", st.ML()))
	printKeyValue("Radius", fmt.Sprintf("%.3g nm", st.Radius()))
	printKeyValue("Total height", fmt.Sprintf("%.3g nm", st.TotalHeight()))
	printNewline()

	fmt.Println(StyleHighlight.Render("Layers (bottom to top)"))
	for i, l := range st.Layers() {
		sections := "section"
		if l.Subdivisions != 1 {
			sections = "sections"
		}
		printDetail("%s: %.3g nm, %d %s", st.VolumeName(i), l.Thickness, l.Subdivisions, sections)
	}
	printNewline()

	fmt.Println(StyleHighlight.Render("Output files"))
	printFile(geoPath)
	if mshPath != "" {
		printFile(mshPath)
	}

	if res != nil {
		printNewline()
		status := styleComputed.Render(iconFresh)
		if cached {
			status = styleCached.Render(iconCached)
		}
		printMeshStats(res, status)
	}
	printNewline()
}

// printMeshStats renders vertex/element counts and the physical groups of a
// parsed mesh artifact. Groups are listed per dimension, ordered by tag.
func printMeshStats(res *msh.Result, status string) {
	header := StyleHighlight.Render("Mesh statistics")
	if status != "" {
		header += " " + status
	}
	fmt.Println(header)
	printKeyValue("Vertices", strconv.Itoa(res.Stats.NumVertices))
	printKeyValue("Elements", strconv.Itoa(res.Stats.NumElements))

	surfaces, volumes := splitGroups(res.Stats.PhysicalGroups)
	if len(surfaces) > 0 {
		printDetail("Surfaces: %s", strings.Join(surfaces, ", "))
	}
	if len(volumes) > 0 {
		printDetail("Volumes: %s", strings.Join(volumes, ", "))
	}

	if !res.Complete() {
		printWarning("Statistics incomplete: missing %s", strings.Join(res.Missing, ", "))
	}
}

// splitGroups partitions physical groups into surface and volume name lists,
// each sorted by tag so the output order matches the geometry script.
func splitGroups(groups map[string]msh.Group) (surfaces, volumes []string) {
	type entry struct {
		name string
		tag  int
	}
	var surf, vol []entry
	for name, g := range groups {
		switch g.Dimension {
		case 2:
			surf = append(surf, entry{name, g.Tag})
		case 3:
			vol = append(vol, entry{name, g.Tag})
		}
	}
	sort.Slice(surf, func(i, j int) bool { return surf[i].tag < surf[j].tag })
	sort.Slice(vol, func(i, j int) bool { return vol[i].tag < vol[j].tag })
	for _, e := range surf {
		surfaces = append(surfaces, e.name)
	}
	for _, e := range vol {
		volumes = append(volumes, e.name)
	}
	return surfaces, volumes
}
