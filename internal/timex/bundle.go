package timex

import "time"

// DateBundle is the presentation data derived from a single timestamp.
type DateBundle struct {
	Epoch        int64  `json:"epoch"`
	DateISO      string `json:"date_iso"`
	DateReadable string `json:"date_readable"`
	Time24h      string `json:"time_24h"`
	WeeksAgo     int    `json:"weeks_ago"`
	DaysAgo      int    `json:"days_ago"`
}

// Describe derives a DateBundle for s as seen from now in loc.
//
// DaysAgo counts calendar days between the two dates. WeeksAgo is 0 for
// dates after the last Sunday before today, so a Sunday today is still week
// 0. That previous Sunday and the six days before it are week 1, and each
// further seven days back adds one.
func Describe(s string, now time.Time, loc *time.Location) (DateBundle, error) {
	t, err := Parse(s, loc)
	if err != nil {
		return DateBundle{}, err
	}
	t = t.In(loc)
	now = now.In(loc)

	date := civilDay(t)
	today := civilDay(now)

	back := int(now.Weekday())
	if back == 0 {
		back = 7
	}
	prevSunday := today - int64(back)

	return DateBundle{
		Epoch:        t.Unix(),
		DateISO:      t.Format("2006-01-02"),
		DateReadable: t.Format("Mon, Jan 2"),
		Time24h:      t.Format("15:04"),
		WeeksAgo:     int(floorDiv(prevSunday-date, 7)) + 1,
		DaysAgo:      int(today - date),
	}, nil
}

// civilDay numbers calendar days so that DST transitions do not skew
// differences.
func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
