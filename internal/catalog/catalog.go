// Package catalog declares the fixed set of App Store analytics reports the
// sync pipeline downloads. The catalog is pure data: iteration order here is
// the traversal order of every sync run.
package catalog

import "strings"

// Granularity is the temporal bucket size of a report instance.
type Granularity string

// Report instance granularities accepted by the analytics API.
const (
	Daily   Granularity = "DAILY"
	Weekly  Granularity = "WEEKLY"
	Monthly Granularity = "MONTHLY"
)

// Lower returns the lowercase form used in filenames.
func (g Granularity) Lower() string {
	return strings.ToLower(string(g))
}

// granularityPlaceholder is substituted in filename templates.
const granularityPlaceholder = "{granularity}"

// ReportDefinition describes one report family to download. Prefix composes
// the remote report ID together with the request ID; the report ID is never
// fetched from the server.
type ReportDefinition struct {
	Prefix           string
	Granularities    []Granularity
	FilenameTemplate string
}

// ReportID builds the remote report identifier for this definition under the
// given report request.
func (d ReportDefinition) ReportID(requestID string) string {
	return d.Prefix + "-" + requestID
}

// Filename expands the definition's filename template for one granularity.
func (d ReportDefinition) Filename(g Granularity) string {
	return strings.ReplaceAll(d.FilenameTemplate, granularityPlaceholder, g.Lower())
}

// Definitions is the ordered report catalog. Order matters: sync runs walk
// it top to bottom and the run summary reflects that order.
var Definitions = []ReportDefinition{
	{Prefix: "r3", Granularities: []Granularity{Daily}, FilenameTemplate: "downloads_standard_{granularity}.csv"},
	{Prefix: "r4", Granularities: []Granularity{Daily, Weekly, Monthly}, FilenameTemplate: "downloads_detailed_{granularity}.csv"},
	{Prefix: "r12", Granularities: []Granularity{Daily, Weekly, Monthly}, FilenameTemplate: "purchases_standard_{granularity}.csv"},
	{Prefix: "r6", Granularities: []Granularity{Daily, Weekly, Monthly}, FilenameTemplate: "install_delete_standard_{granularity}.csv"},
	{Prefix: "r8", Granularities: []Granularity{Daily, Weekly, Monthly}, FilenameTemplate: "sessions_standard_{granularity}.csv"},
	{Prefix: "r9", Granularities: []Granularity{Weekly, Monthly}, FilenameTemplate: "sessions_detailed_{granularity}.csv"},
	{Prefix: "r14", Granularities: []Granularity{Daily, Weekly, Monthly}, FilenameTemplate: "discovery_standard_{granularity}.csv"},
	{Prefix: "r15", Granularities: []Granularity{Daily, Weekly, Monthly}, FilenameTemplate: "discovery_detailed_{granularity}.csv"},
}

// CellCount is the number of (definition, granularity) cells a full App Store
// traversal yields.
func CellCount() int {
	count := 0
	for _, def := range Definitions {
		count += len(def.Granularities)
	}

	return count
}
