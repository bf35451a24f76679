package agent

import "strings"

// timeKeywords gates the time agent: a question must contain at least
// one of these substrings to be answered at all.
var timeKeywords = []string{
	"几点", "时间", "现在", "日期", "几号", "星期", "今天", "明天", "昨天", "时刻", "几点钟", "时区",
	"time", "date", "today", "now", "weekday", "clock", "timezone",
}

// gazetteerEntry maps a city's name variants to its IANA timezone. The
// alias that matched becomes the display name in the summary.
type gazetteerEntry struct {
	aliases  []string
	timezone string
}

// cityGazetteer is scanned in order so extraction is deterministic.
var cityGazetteer = []gazetteerEntry{
	{[]string{"北京", "Beijing"}, "Asia/Shanghai"},
	{[]string{"上海", "Shanghai"}, "Asia/Shanghai"},
	{[]string{"广州", "Guangzhou"}, "Asia/Shanghai"},
	{[]string{"深圳", "Shenzhen"}, "Asia/Shanghai"},
	{[]string{"纽约", "New York"}, "America/New_York"},
	{[]string{"洛杉矶", "Los Angeles"}, "America/Los_Angeles"},
	{[]string{"芝加哥", "Chicago"}, "America/Chicago"},
	{[]string{"伦敦", "London"}, "Europe/London"},
	{[]string{"巴黎", "Paris"}, "Europe/Paris"},
	{[]string{"东京", "Tokyo"}, "Asia/Tokyo"},
	{[]string{"悉尼", "Sydney"}, "Australia/Sydney"},
}

// locationRequest pairs a display name with its resolved timezone. An
// empty Location means no city was extracted and the configured default
// timezone is in effect.
type locationRequest struct {
	Location string
	Timezone string
}

func containsTimeKeyword(question string) bool {
	lowered := strings.ToLower(question)
	for _, keyword := range timeKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// extractLocations finds every known city mentioned in the question,
// each at most once, in gazetteer order.
func extractLocations(question string) []locationRequest {
	lowered := strings.ToLower(question)

	var found []locationRequest
	for _, entry := range cityGazetteer {
		for _, alias := range entry.aliases {
			if strings.Contains(lowered, strings.ToLower(alias)) {
				found = append(found, locationRequest{
					Location: alias,
					Timezone: entry.timezone,
				})
				break
			}
		}
	}
	return found
}
