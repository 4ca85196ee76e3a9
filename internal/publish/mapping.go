// Package publish replays downloaded report files into the external tabular
// store, one destination table per file, full replace.
package publish

// DestinationTables maps report filenames to destination table names.
// Files absent from this map are skipped, not errored.
var DestinationTables = map[string]string{
	// App Store reports.
	"downloads_standard_daily.csv":        "Downloads Daily",
	"downloads_detailed_daily.csv":        "Downloads Detailed Daily",
	"downloads_detailed_weekly.csv":       "Downloads Detailed Weekly",
	"downloads_detailed_monthly.csv":      "Downloads Detailed Monthly",
	"purchases_standard_daily.csv":        "Purchases Daily",
	"purchases_standard_weekly.csv":       "Purchases Weekly",
	"purchases_standard_monthly.csv":      "Purchases Monthly",
	"install_delete_standard_daily.csv":   "Install-Delete Daily",
	"install_delete_standard_weekly.csv":  "Install-Delete Weekly",
	"install_delete_standard_monthly.csv": "Install-Delete Monthly",
	"sessions_standard_daily.csv":         "Sessions Daily",
	"sessions_standard_weekly.csv":        "Sessions Weekly",
	"sessions_standard_monthly.csv":       "Sessions Monthly",
	"sessions_detailed_weekly.csv":        "Sessions Detailed Weekly",
	"sessions_detailed_monthly.csv":       "Sessions Detailed Monthly",
	"discovery_standard_daily.csv":        "Discovery Daily",
	"discovery_standard_weekly.csv":       "Discovery Weekly",
	"discovery_standard_monthly.csv":      "Discovery Monthly",
	"discovery_detailed_daily.csv":        "Discovery Detailed Daily",
	"discovery_detailed_weekly.csv":       "Discovery Detailed Weekly",
	"discovery_detailed_monthly.csv":      "Discovery Detailed Monthly",

	// Secondary analytics exports.
	"firebase_events_summary.csv":  "Firebase Events",
	"firebase_daily_users.csv":     "Firebase DAU",
	"firebase_retention.csv":       "Firebase Retention",
	"firebase_screens.csv":         "Firebase Screens",
	"firebase_user_properties.csv": "Firebase Users",
}
