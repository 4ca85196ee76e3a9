package warehouse

import "fmt"

// Query result caps, matching what the dashboards consume.
const (
	eventLimit      = 100
	screenLimit     = 50
	propertiesLimit = 100

	// retentionWindowDays is the fixed cohort observation window.
	retentionWindowDays = 90
)

// queryFunc builds the SQL for one report. The days argument is only
// meaningful when the owning report declares TakesDays.
type queryFunc func(days int) string

// Report is one secondary analytics report: an explicit query function and
// an explicit flag saying whether it takes the lookback window. No
// parameter-name inspection happens at runtime.
type Report struct {
	Filename    string
	Description string
	Query       queryFunc
	TakesDays   bool
}

// Reports is the static secondary analytics report table, in run order.
var Reports = []Report{
	{
		Filename:    "firebase_events_summary.csv",
		Description: "Events Summary",
		Query:       eventsSummaryQuery,
		TakesDays:   true,
	},
	{
		Filename:    "firebase_daily_users.csv",
		Description: "Daily Active Users",
		Query:       dailyActiveUsersQuery,
		TakesDays:   true,
	},
	{
		Filename:    "firebase_retention.csv",
		Description: "User Retention",
		Query:       retentionQuery,
		TakesDays:   true,
	},
	{
		Filename:    "firebase_screens.csv",
		Description: "Screen Views",
		Query:       screenViewsQuery,
		TakesDays:   true,
	},
	{
		Filename:    "firebase_user_properties.csv",
		Description: "User Properties",
		Query:       userPropertiesQuery,
		TakesDays:   true,
	},
}

func eventsSummaryQuery(days int) string {
	return fmt.Sprintf(`
SELECT
    event_name,
    COUNT(*) AS event_count,
    COUNT(DISTINCT user_pseudo_id) AS unique_users,
    MIN(event_date) AS first_seen,
    MAX(event_date) AS last_seen
FROM analytics_events
WHERE event_date >= CURRENT_DATE - INTERVAL '%d days'
GROUP BY event_name
ORDER BY event_count DESC
LIMIT %d`, days, eventLimit)
}

func dailyActiveUsersQuery(days int) string {
	return fmt.Sprintf(`
SELECT
    event_date AS date,
    COUNT(DISTINCT user_pseudo_id) AS active_users,
    COUNT(*) AS total_events
FROM analytics_events
WHERE event_date >= CURRENT_DATE - INTERVAL '%d days'
GROUP BY event_date
ORDER BY event_date DESC`, days)
}

func retentionQuery(days int) string {
	return fmt.Sprintf(`
WITH first_visits AS (
    SELECT user_pseudo_id, MIN(event_date) AS first_visit_date
    FROM analytics_events
    WHERE event_date >= CURRENT_DATE - INTERVAL '%d days'
    GROUP BY user_pseudo_id
),
user_activity AS (
    SELECT
        e.user_pseudo_id,
        fv.first_visit_date,
        e.event_date - fv.first_visit_date AS days_since_first
    FROM analytics_events e
    JOIN first_visits fv ON e.user_pseudo_id = fv.user_pseudo_id
    WHERE e.event_date >= CURRENT_DATE - INTERVAL '%d days'
)
SELECT
    first_visit_date AS cohort_date,
    COUNT(DISTINCT user_pseudo_id) AS cohort_size,
    COUNT(DISTINCT user_pseudo_id) FILTER (WHERE days_since_first = 1) AS day_1,
    COUNT(DISTINCT user_pseudo_id) FILTER (WHERE days_since_first = 7) AS day_7,
    COUNT(DISTINCT user_pseudo_id) FILTER (WHERE days_since_first = 14) AS day_14,
    COUNT(DISTINCT user_pseudo_id) FILTER (WHERE days_since_first = 30) AS day_30
FROM user_activity
GROUP BY cohort_date
ORDER BY cohort_date DESC
LIMIT %d`, retentionWindowDays, retentionWindowDays, days)
}

func screenViewsQuery(days int) string {
	return fmt.Sprintf(`
SELECT
    screen_name,
    COUNT(*) AS view_count,
    COUNT(DISTINCT user_pseudo_id) AS unique_users
FROM analytics_events
WHERE event_name = 'screen_view'
  AND screen_name IS NOT NULL
  AND event_date >= CURRENT_DATE - INTERVAL '%d days'
GROUP BY screen_name
ORDER BY view_count DESC
LIMIT %d`, days, screenLimit)
}

func userPropertiesQuery(days int) string {
	return fmt.Sprintf(`
SELECT
    device_category,
    os,
    os_version,
    country,
    COUNT(DISTINCT user_pseudo_id) AS users
FROM analytics_events
WHERE event_date >= CURRENT_DATE - INTERVAL '%d days'
GROUP BY device_category, os, os_version, country
ORDER BY users DESC
LIMIT %d`, days, propertiesLimit)
}
