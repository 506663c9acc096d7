package contact

import (
	"sort"
	"time"
)

// DefaultBirthdayWindow is the look-ahead used when callers do not pick one.
const DefaultBirthdayWindow = 7

// Upcoming pairs a contact with the date of its next birthday.
type Upcoming struct {
	Contact      Contact
	NextBirthday time.Time
}

// NextBirthday returns the first anniversary of birthday on or after today.
// Feb 29 birthdays fall on Feb 28 in common years.
func NextBirthday(birthday time.Time, today time.Time) time.Time {
	today = truncateDay(today)
	next := anniversary(birthday, today.Year())
	if next.Before(today) {
		next = anniversary(birthday, today.Year()+1)
	}
	return next
}

// UpcomingBirthdays returns contacts whose next birthday falls within
// [today, today+days], ordered by that date and then by name. Contacts with
// unparseable birthdays are skipped.
func UpcomingBirthdays(contacts []Contact, today time.Time, days int) []Upcoming {
	if days < 0 {
		return nil
	}
	today = truncateDay(today)
	limit := today.AddDate(0, 0, days)

	upcoming := make([]Upcoming, 0)
	for _, c := range contacts {
		birthday, err := ParseBirthday(c.Birthday)
		if err != nil {
			continue
		}
		next := NextBirthday(birthday, today)
		if next.After(limit) {
			continue
		}
		upcoming = append(upcoming, Upcoming{Contact: c, NextBirthday: next})
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		if !upcoming[i].NextBirthday.Equal(upcoming[j].NextBirthday) {
			return upcoming[i].NextBirthday.Before(upcoming[j].NextBirthday)
		}
		if upcoming[i].Contact.LastName != upcoming[j].Contact.LastName {
			return upcoming[i].Contact.LastName < upcoming[j].Contact.LastName
		}
		return upcoming[i].Contact.FirstName < upcoming[j].Contact.FirstName
	})
	return upcoming
}

func anniversary(birthday time.Time, year int) time.Time {
	month, day := birthday.Month(), birthday.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
