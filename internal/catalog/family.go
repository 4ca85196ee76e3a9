package catalog

import "strings"

// Family groups downloaded files in the run summary.
type Family string

// Summary families, in display order.
const (
	FamilyDownloads     Family = "Downloads"
	FamilyPurchases     Family = "Purchases"
	FamilyInstallDelete Family = "Install-Delete"
	FamilySessions      Family = "Sessions"
	FamilyDiscovery     Family = "Discovery"
	FamilyFirebase      Family = "Firebase"
)

// Families lists all families in the order the summary renders them.
var Families = []Family{
	FamilyDownloads,
	FamilyPurchases,
	FamilyInstallDelete,
	FamilySessions,
	FamilyDiscovery,
	FamilyFirebase,
}

// familySubstrings maps a filename substring to its family. Checked in
// order; the firebase check runs first so firebase exports never land in an
// App Store family.
var familySubstrings = []struct {
	substr string
	family Family
}{
	{"firebase", FamilyFirebase},
	{"downloads", FamilyDownloads},
	{"purchases", FamilyPurchases},
	{"install_delete", FamilyInstallDelete},
	{"sessions", FamilySessions},
	{"discovery", FamilyDiscovery},
}

// ClassifyFilename assigns a filename to its summary family by substring
// match, first match wins. Filenames outside the vocabulary return ok=false
// and are absent from the categorized summary view.
func ClassifyFilename(filename string) (Family, bool) {
	for _, entry := range familySubstrings {
		if strings.Contains(filename, entry.substr) {
			return entry.family, true
		}
	}

	return "", false
}
