package calendar

// fallbackHolidays returns the hardcoded TWSE closure dates for the given
// year, used when the holiday feed is unreachable. Only years with a published
// table are covered; unknown years return nil and the resolver fails open.
func fallbackHolidays(year int) []string {
	if year != 2026 {
		return nil
	}
	return []string{
		"2026-01-01", // 中華民國開國紀念日
		"2026-02-12", // 市場無交易，僅辦理結算交割作業
		"2026-02-13", // 市場無交易，僅辦理結算交割作業
		"2026-02-15", // 農曆除夕及春節
		"2026-02-16", // 農曆除夕及春節
		"2026-02-17", // 農曆除夕及春節
		"2026-02-18", // 農曆除夕及春節
		"2026-02-19", // 農曆除夕及春節
		"2026-02-20", // 春節補假
		"2026-02-27", // 和平紀念日補假
		"2026-02-28", // 和平紀念日
		"2026-04-03", // 兒童節及民族掃墓節補假
		"2026-04-04", // 兒童節及民族掃墓節
		"2026-04-05", // 兒童節及民族掃墓節
		"2026-04-06", // 兒童節及民族掃墓節補假
		"2026-05-01", // 勞動節
		"2026-06-19", // 端午節
		"2026-09-25", // 中秋節
		"2026-09-28", // 教師節
		"2026-10-09", // 國慶日補假
		"2026-10-10", // 國慶日
		"2026-10-25", // 臺灣光復節
		"2026-10-26", // 臺灣光復節補假
		"2026-12-25", // 行憲紀念日
	}
}
