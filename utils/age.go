package utils

import "time"

// CalculateAge returns full years between birthday and now.
func CalculateAge(birthday, now time.Time) int {
	age := now.Year() - birthday.Year()
	if now.Before(birthday.AddDate(age, 0, 0)) {
		age--
	}
	return age
}
